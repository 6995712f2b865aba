package probes

import (
	"time"

	"go.uber.org/zap"
)

// DefaultGracePeriod bounds how long a finished trace waits for pending
// completion handles before it is finalized anyway.
const DefaultGracePeriod = 30 * time.Second

type config struct {
	clock     Clock
	logger    logger
	userAgent string

	// when false, remove per-name init mutex entries after an instrument is
	// created. Default: false.
	doNotCleanupInits bool

	gracePeriod time.Duration
	traceIDs    Counter
	traceSink   *Manifold
	traceName   string
}

// Option configures a Manifold or a TraceEngine. Options that do not apply
// to the component being built are ignored.
type Option func(*config)

func newConfig(opts []Option) *config {
	cfg := &config{gracePeriod: DefaultGracePeriod}
	for _, o := range opts {
		if o != nil {
			o(cfg)
		}
	}
	if cfg.clock == nil {
		cfg.clock = SystemClock()
	}
	if cfg.logger == nil {
		cfg.logger = newNoopLogger()
	}
	if cfg.userAgent == "" {
		cfg.userAgent = UserAgent()
	}
	if cfg.gracePeriod <= 0 {
		cfg.gracePeriod = DefaultGracePeriod
	}
	return cfg
}

// WithClock replaces the system clock, mostly for tests.
func WithClock(c Clock) Option {
	return func(cfg *config) { cfg.clock = c }
}

// WithLogger sets the logger; *zap.SugaredLogger satisfies it.
func WithLogger(l logger) Option {
	return func(cfg *config) { cfg.logger = l }
}

// WithZapLogger logs through l.
func WithZapLogger(l *zap.Logger) Option {
	return func(cfg *config) { cfg.logger = zapLogger(l) }
}

// WithUserAgent overrides the environment descriptor reported by
// Manifold.Exports.
func WithUserAgent(ua string) Option {
	return func(cfg *config) { cfg.userAgent = ua }
}

// WithInitCleanupDisabled keeps per-name init mutex entries in the
// manifold after an instrument is created. Cleanup is enabled by default.
func WithInitCleanupDisabled() Option {
	return func(cfg *config) { cfg.doNotCleanupInits = true }
}

// WithGracePeriod sets how long a finished trace waits for its pending
// handles. Non-positive values keep DefaultGracePeriod.
func WithGracePeriod(d time.Duration) Option {
	return func(cfg *config) { cfg.gracePeriod = d }
}

// WithTracePublishing publishes every finalized trace into m under name,
// with the engine as the resettable source.
func WithTracePublishing(m *Manifold, name string) Option {
	return func(cfg *config) { cfg.traceSink, cfg.traceName = m, name }
}

// WithTraceIDs numbers traces from ids instead of a counter owned by the
// engine. Engines sharing ids hand out distinct, increasing trace ids.
// ids must be writable, not a read-only view.
func WithTraceIDs(ids Counter) Option {
	return func(cfg *config) { cfg.traceIDs = ids }
}

package probes

import (
	"sync"
	"sync/atomic"
)

// Resetter is implemented by sources whose state can be cleared. A source
// typically publishes a fresh snapshot from its Reset.
type Resetter interface {
	Reset()
}

// Export is a point-in-time copy of every published snapshot together with
// when and where it was collected.
type Export struct {
	Probes    map[string]any `json:"probes"`
	Timestamp int64          `json:"timestamp"`
	UserAgent string         `json:"userAgent"`
}

type entry struct {
	snapshot any
	source   Resetter
}

// Manifold is a named registry of published snapshots. Publishing a name
// that already exists replaces its entry. It is safe for concurrent use.
type Manifold struct {
	cfg    *config
	logger logger

	mu      sync.RWMutex
	entries map[string]entry

	instruments sync.Map // map[string]*instrument
	// per-name init mutexes: protect concurrent creation of the same instrument
	inits sync.Map // map[string]*sync.Mutex

	violations atomic.Int32
}

// NewManifold constructs an empty manifold.
func NewManifold(opts ...Option) *Manifold {
	cfg := newConfig(opts)
	return &Manifold{cfg: cfg, logger: cfg.logger, entries: make(map[string]entry)}
}

var (
	defaultManifold     *Manifold
	defaultManifoldOnce sync.Once
)

// Default returns the process-wide manifold.
func Default() *Manifold {
	defaultManifoldOnce.Do(func() {
		defaultManifold = NewManifold()
	})
	return defaultManifold
}

// Publish stores snapshot under name. source may be nil; when set, Flush
// resets it.
func (m *Manifold) Publish(name string, snapshot any, source Resetter) {
	m.mu.Lock()
	m.entries[name] = entry{snapshot: snapshot, source: source}
	m.mu.Unlock()
}

// Lookup returns the snapshot published under name.
func (m *Manifold) Lookup(name string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[name]
	if !ok {
		return nil, false
	}
	return e.snapshot, true
}

// All returns a shallow copy of every published snapshot by name.
func (m *Manifold) All() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]any, len(m.entries))
	for name, e := range m.entries {
		out[name] = e.snapshot
	}
	return out
}

// Exports returns every snapshot stamped with the current wall-clock time
// and the user agent.
func (m *Manifold) Exports() Export {
	return Export{
		Probes:    m.All(),
		Timestamp: m.cfg.clock.Now(),
		UserAgent: m.cfg.userAgent,
	}
}

// Flush resets every source registered with a published snapshot. Sources
// are reset outside the manifold lock so they can publish again.
func (m *Manifold) Flush() {
	m.mu.RLock()
	sources := make(map[string]Resetter, len(m.entries))
	for name, e := range m.entries {
		if e.source != nil {
			sources[name] = e.source
		}
	}
	m.mu.RUnlock()

	for name, src := range sources {
		m.reset(name, src)
	}
}

func (m *Manifold) reset(name string, src Resetter) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf("[probes] reset of %q panicked: %v", name, r)
		}
	}()
	src.Reset()
}

// Remove deletes the entry for name. The source is not touched and may
// publish again later.
func (m *Manifold) Remove(name string) {
	m.mu.Lock()
	delete(m.entries, name)
	m.mu.Unlock()
}

// reportInvariantViolation reports unexpected internal states such as an
// instrument registered under a name with a different type. In release
// builds it logs up to 10 times per manifold; in debug builds (or under
// race detector) it panics to catch bugs early.
func (m *Manifold) reportInvariantViolation(kind, name string) {
	const maxReports = 10
	if m.violations.Add(1) > maxReports {
		return
	}

	msg := "[probes] invariant violation: " + kind + " for " + name

	// In debug builds, fail fast.
	if isDebugBuild() {
		panic(msg)
	}

	// In release builds, just log a warning.
	m.logger.Warnf(msg)
}

// isDebugBuild reports whether we're in a "debug" or "race" build.
// This uses Go's built-in race detector flag or a debug build tag.
func isDebugBuild() bool {
	return raceBuild || debugBuild
}

package probes

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds settings read from the environment.
type Config struct {
	// TraceGracePeriod bounds how long a trace waits for pending handles.
	TraceGracePeriod time.Duration `envconfig:"TRACE_GRACE_PERIOD" default:"30s"`
	// UserAgent overrides the generated environment descriptor.
	UserAgent string    `envconfig:"USER_AGENT"`
	Logging   LogConfig `envconfig:"LOG"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LEVEL" default:"info"`
	Development bool   `envconfig:"DEVELOPMENT" default:"false"`
}

// LoadConfig reads PROBES_TRACE_GRACE_PERIOD, PROBES_USER_AGENT,
// PROBES_LOG_LEVEL and PROBES_LOG_DEVELOPMENT.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("probes", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load probes config: %w", err)
	}
	return cfg, nil
}

// Options converts cfg into options for NewManifold and NewTraceEngine,
// logging through l when it is not nil.
func (c Config) Options(l *zap.Logger) []Option {
	opts := []Option{WithGracePeriod(c.TraceGracePeriod)}
	if c.UserAgent != "" {
		opts = append(opts, WithUserAgent(c.UserAgent))
	}
	if l != nil {
		opts = append(opts, WithZapLogger(l))
	}
	return opts
}

// NewLogger builds a zap logger: JSON in production, console in development.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build(zap.Fields(zap.String("component", "probes")))
}

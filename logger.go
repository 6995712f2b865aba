package probes

import "go.uber.org/zap"

// logger is the minimal logging surface used by the manifold and the trace
// engine. *zap.SugaredLogger satisfies it.
type logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

func newNoopLogger() logger {
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}

// zapLogger returns l as a logger, falling back to noop for nil.
func zapLogger(l *zap.Logger) logger {
	if l == nil {
		return newNoopLogger()
	}
	return l.Sugar()
}

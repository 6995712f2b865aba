package probes

// NoopProvider hands out working instruments that are never published.
// Use it to keep instrumented code paths intact with telemetry disabled.
type NoopProvider struct{}

// NewNoopProvider returns a Provider that publishes nothing.
func NewNoopProvider() NoopProvider { return NoopProvider{} }

func (NoopProvider) Gauge(string, ...InstrumentOption) *Gauge { return NewGauge() }

func (NoopProvider) ResponseTimeGauge(string, ...InstrumentOption) *ResponseTimeGauge {
	return NewResponseTimeGauge()
}

package probes

import (
	"sync"
	"sync/atomic"
)

// ResponseTimeSnapshot holds one gauge snapshot per call outcome. Values are
// durations in microseconds.
type ResponseTimeSnapshot struct {
	All      GaugeSnapshot `json:"all"`
	Returned GaugeSnapshot `json:"returned"`
	Thrown   GaugeSnapshot `json:"thrown"`
	Resolved GaugeSnapshot `json:"resolved"`
	Rejected GaugeSnapshot `json:"rejected"`
}

// ResponseTimeGauge keeps gauges of call durations split by outcome. Every
// synchronous completion feeds "all" plus "returned" or "thrown"; settled
// completion handles feed "resolved" or "rejected".
type ResponseTimeGauge struct {
	all      *Gauge
	returned *Gauge
	thrown   *Gauge
	resolved *Gauge
	rejected *Gauge

	detached atomic.Bool

	mu      sync.Mutex
	stats   ResponseTimeSnapshot
	publish func(ResponseTimeSnapshot)
}

// NewResponseTimeGauge returns a gauge set that has seen no calls.
func NewResponseTimeGauge() *ResponseTimeGauge {
	rt := &ResponseTimeGauge{
		all:      NewGauge(),
		returned: NewGauge(),
		thrown:   NewGauge(),
		resolved: NewGauge(),
		rejected: NewGauge(),
	}
	rt.stats = rt.collect()
	return rt
}

// Returned records a call that returned normally after d.
func (rt *ResponseTimeGauge) Returned(d Duration) ResponseTimeSnapshot {
	return rt.record(d, rt.all, rt.returned)
}

// Thrown records a call that failed synchronously after d.
func (rt *ResponseTimeGauge) Thrown(d Duration) ResponseTimeSnapshot {
	return rt.record(d, rt.all, rt.thrown)
}

// Resolved records a completion handle that resolved d after the call began.
func (rt *ResponseTimeGauge) Resolved(d Duration) ResponseTimeSnapshot {
	return rt.record(d, rt.resolved)
}

// Rejected records a completion handle that rejected d after the call began.
func (rt *ResponseTimeGauge) Rejected(d Duration) ResponseTimeSnapshot {
	return rt.record(d, rt.rejected)
}

// Watch records the settlement of h, measured by t from the start of the
// call.
func (rt *ResponseTimeGauge) Watch(t *Timer, h *Handle) {
	h.OnSettle(func(o Outcome, _ any) {
		d := t.End()
		switch o {
		case Resolved:
			rt.Resolved(d)
		case Rejected:
			rt.Rejected(d)
		}
	})
}

// Detach stops further recording. The last published snapshot is kept.
func (rt *ResponseTimeGauge) Detach() { rt.detached.Store(true) }

// Snapshot returns the most recent snapshot.
func (rt *ResponseTimeGauge) Snapshot() ResponseTimeSnapshot {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.stats
}

// Reset clears every gauge and publishes the empty snapshot.
func (rt *ResponseTimeGauge) Reset() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	for _, g := range []*Gauge{rt.all, rt.returned, rt.thrown, rt.resolved, rt.rejected} {
		g.Reset()
	}
	rt.update()
}

func (rt *ResponseTimeGauge) record(d Duration, gauges ...*Gauge) ResponseTimeSnapshot {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.detached.Load() {
		return rt.stats
	}
	for _, g := range gauges {
		g.Sample(float64(d.Micros))
	}
	rt.update()
	return rt.stats
}

func (rt *ResponseTimeGauge) collect() ResponseTimeSnapshot {
	return ResponseTimeSnapshot{
		All:      rt.all.Snapshot(),
		Returned: rt.returned.Snapshot(),
		Thrown:   rt.thrown.Snapshot(),
		Resolved: rt.resolved.Snapshot(),
		Rejected: rt.rejected.Snapshot(),
	}
}

// update must be called with rt.mu held.
func (rt *ResponseTimeGauge) update() {
	rt.stats = rt.collect()
	if rt.publish != nil {
		rt.publish(rt.stats)
	}
}

func (rt *ResponseTimeGauge) publishTo(fn func(ResponseTimeSnapshot)) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.publish = fn
	fn(rt.stats)
}

package probes

import (
	"math"
	"sync"
)

// GaugeSnapshot is an immutable summary of a Gauge at one point in time.
type GaugeSnapshot struct {
	Count  int64   `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Max    float64 `json:"max"`
	Min    float64 `json:"min"`
}

// emptyGaugeSnapshot is the snapshot of a gauge that has seen no samples.
func emptyGaugeSnapshot() GaugeSnapshot {
	return GaugeSnapshot{Mean: math.NaN(), StdDev: math.NaN(), Max: math.NaN(), Min: math.NaN()}
}

// Gauge bundles a counter, range, mean and standard deviation over one
// stream of values. It is safe for concurrent use.
type Gauge struct {
	mu    sync.Mutex
	c     *BasicCounter
	r     *BasicRange
	m     *BasicMean
	sd    *BasicStdDev
	stats GaugeSnapshot

	// publish is set when the gauge is owned by a Manifold.
	publish func(GaugeSnapshot)
}

// NewGauge returns a gauge that has seen no samples.
func NewGauge() *Gauge {
	c := NewCounter()
	m := NewMean(c)
	return &Gauge{
		c:     c,
		r:     NewRange(),
		m:     m,
		sd:    NewStdDev(m, c),
		stats: emptyGaugeSnapshot(),
	}
}

// Sample feeds v into every statistic and returns the new snapshot.
// A NaN sample is counted and turns mean and stddev into NaN; the range
// ignores it.
func (g *Gauge) Sample(v float64) GaugeSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.c.Inc()
	g.r.Sample(v)
	g.m.Sample(v)
	g.sd.Sample(v)
	return g.collect()
}

// Reset clears every statistic and returns the empty snapshot.
func (g *Gauge) Reset() GaugeSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.c.Reset()
	g.r.Reset()
	g.m.Reset()
	g.sd.Reset()
	return g.collect()
}

// Snapshot returns the most recent snapshot without sampling.
func (g *Gauge) Snapshot() GaugeSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}

// collect must be called with g.mu held.
func (g *Gauge) collect() GaugeSnapshot {
	g.stats = GaugeSnapshot{
		Count:  g.c.Value(),
		Mean:   g.m.Value(),
		StdDev: g.sd.Value(),
		Max:    g.r.Max(),
		Min:    g.r.Min(),
	}
	if g.publish != nil {
		g.publish(g.stats)
	}
	return g.stats
}

// gaugeResetter adapts Gauge to Resetter.
type gaugeResetter struct{ g *Gauge }

func (r gaugeResetter) Reset() { r.g.Reset() }

// publishTo makes g report every new snapshot through fn, starting with the
// current one.
func (g *Gauge) publishTo(fn func(GaugeSnapshot)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.publish = fn
	fn(g.stats)
}

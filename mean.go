package probes

import (
	"math"
	"sync"
)

// Mean is a running arithmetic mean.
type Mean interface {
	// Sample folds v into the mean and returns the updated mean.
	Sample(v float64) float64
	// Value returns the current mean, NaN before the first sample.
	Value() float64
	Reset()
	ReadOnly() Mean
}

// BasicMean computes a streaming mean using the incremental update
// mean += (v - mean) / count.
type BasicMean struct {
	mu   sync.Mutex
	c    Counter
	m    float64
	seen bool
}

// NewMean returns a mean over its own counter, or over shared when it is not
// nil. A shared counter is observed through its read-only view: the owner of
// shared must advance it for every sample before Sample is called.
func NewMean(shared Counter) *BasicMean {
	c := Counter(NewCounter())
	if shared != nil {
		c = shared.ReadOnly()
	}
	return &BasicMean{c: c, m: math.NaN()}
}

// Sample updates the mean with v. A NaN sample leaves the mean NaN until
// the next Reset.
func (m *BasicMean) Sample(v float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.seen {
		m.m, m.seen = 0, true
	}
	m.m += (v - m.m) / float64(m.c.Inc())
	return m.m
}

// Value returns the current mean.
func (m *BasicMean) Value() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.m
}

// Reset resets an owned counter and sets the mean to NaN.
func (m *BasicMean) Reset() {
	m.mu.Lock()
	m.c.Reset()
	m.m, m.seen = math.NaN(), false
	m.mu.Unlock()
}

// ReadOnly returns a view that observes m and never updates it.
func (m *BasicMean) ReadOnly() Mean { return readOnlyMean{m: m} }

type readOnlyMean struct {
	m *BasicMean
}

func (r readOnlyMean) Sample(float64) float64 { return r.m.Value() }
func (r readOnlyMean) Value() float64         { return r.m.Value() }
func (r readOnlyMean) Reset()                 {}
func (r readOnlyMean) ReadOnly() Mean         { return r }

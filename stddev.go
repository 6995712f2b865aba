package probes

import (
	"math"
	"sync"
)

// StdDev is a running sample standard deviation.
type StdDev interface {
	// Sample folds v in and returns the updated standard deviation.
	Sample(v float64) float64
	// Value returns the current standard deviation, NaN while count <= 1.
	Value() float64
	Reset()
	ReadOnly() StdDev
}

// BasicStdDev computes a streaming standard deviation with Welford's method.
type BasicStdDev struct {
	mu sync.Mutex
	c  Counter
	m  Mean

	prevSumSq float64
	prevMean  float64
}

// NewStdDev returns a standard deviation over a shared mean and counter when
// both are given, or over owned instances otherwise. Shared instances are
// observed through their read-only views; the owner advances them.
func NewStdDev(mean Mean, counter Counter) *BasicStdDev {
	if mean != nil && counter != nil {
		return &BasicStdDev{c: counter.ReadOnly(), m: mean.ReadOnly()}
	}
	c := NewCounter()
	return &BasicStdDev{c: c, m: NewMean(c)}
}

// Sample updates the standard deviation with v.
func (s *BasicStdDev) Sample(v float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := s.c.Inc()
	newMean := s.m.Sample(v)
	sumSq := s.prevSumSq + (v-s.prevMean)*(v-newMean)
	s.prevSumSq, s.prevMean = sumSq, newMean
	return stddev(sumSq, count)
}

// Value returns the current standard deviation.
func (s *BasicStdDev) Value() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stddev(s.prevSumSq, s.c.Value())
}

// Reset resets owned mean and counter and zeroes the accumulated sums.
func (s *BasicStdDev) Reset() {
	s.mu.Lock()
	s.c.Reset()
	s.m.Reset()
	s.prevSumSq, s.prevMean = 0, 0
	s.mu.Unlock()
}

// ReadOnly returns a view that observes s and never updates it.
func (s *BasicStdDev) ReadOnly() StdDev { return readOnlyStdDev{s: s} }

func stddev(sumSq float64, count int64) float64 {
	if count <= 1 {
		return math.NaN()
	}
	return math.Sqrt(sumSq / float64(count-1))
}

type readOnlyStdDev struct {
	s *BasicStdDev
}

func (r readOnlyStdDev) Sample(float64) float64 { return r.s.Value() }
func (r readOnlyStdDev) Value() float64         { return r.s.Value() }
func (r readOnlyStdDev) Reset()                 {}
func (r readOnlyStdDev) ReadOnly() StdDev       { return r }

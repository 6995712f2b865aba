package probes

import (
	"math"
	"sync"
	"testing"
)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	mu   sync.Mutex
	mark int64
	now  int64
}

func newFakeClock(now int64) *fakeClock { return &fakeClock{now: now} }

func (c *fakeClock) Mark() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mark
}

func (c *fakeClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// advance moves the monotonic mark by micros and the wall clock along with it.
func (c *fakeClock) advance(micros int64) {
	c.mu.Lock()
	c.mark += micros
	c.now += micros / 1000
	c.mu.Unlock()
}

func assertNaN(t *testing.T, what string, v float64) {
	t.Helper()
	if !math.IsNaN(v) {
		t.Fatalf("%s: expected NaN, got %v", what, v)
	}
}

func trunc6(v float64) float64 {
	return math.Trunc(v*1e6) / 1e6
}

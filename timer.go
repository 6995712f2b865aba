package probes

import "sync"

// Timer measures durations from a start mark. It is safe for concurrent
// use, so End may be called from completion callbacks.
type Timer struct {
	clock Clock

	mu        sync.Mutex
	start     int64
	timestamp int64
}

// NewTimer returns a started timer. A nil clock uses SystemClock.
func NewTimer(clock Clock) *Timer {
	if clock == nil {
		clock = SystemClock()
	}
	return (&Timer{clock: clock}).Start()
}

// Start rearms the timer, replacing any previous start mark.
func (t *Timer) Start() *Timer {
	t.mu.Lock()
	t.start = t.clock.Mark()
	t.timestamp = t.clock.Now()
	t.mu.Unlock()
	return t
}

// End returns a new duration from the start mark to now. It may be called
// repeatedly.
func (t *Timer) End() Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return NewAnchoredDuration(t.start, t.clock.Mark(), t.timestamp)
}

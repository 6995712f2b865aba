package probes

import "time"

// Clock supplies the two time sources used by timers: a monotonic mark in
// microseconds and a wall-clock timestamp in milliseconds since the epoch.
type Clock interface {
	// Mark returns microseconds elapsed since an arbitrary, process-local origin.
	Mark() int64
	// Now returns the wall-clock time in Unix milliseconds.
	Now() int64
}

// ClockFunc builds a Clock from two functions, mostly useful in tests.
type ClockFunc struct {
	MarkFunc func() int64
	NowFunc  func() int64
}

func (c ClockFunc) Mark() int64 { return c.MarkFunc() }
func (c ClockFunc) Now() int64  { return c.NowFunc() }

var processOrigin = time.Now()

type systemClock struct{}

// Mark uses the monotonic reading carried by time.Time.
func (systemClock) Mark() int64 { return time.Since(processOrigin).Microseconds() }
func (systemClock) Now() int64  { return time.Now().UnixMilli() }

// SystemClock returns the clock backed by the Go runtime.
func SystemClock() Clock { return systemClock{} }

package probes

import "sync/atomic"

// Counter is a monotonically incrementing count.
// Methods must be safe for concurrent use.
type Counter interface {
	// Inc increments the count and returns the new value.
	Inc() int64
	// Value returns the current count.
	Value() int64
	// Reset sets the count back to zero.
	Reset()
	// ReadOnly returns a view that observes the count but cannot change it.
	ReadOnly() Counter
}

// BasicCounter is a thread-safe monotonic counter.
type BasicCounter struct {
	val atomic.Int64
}

// NewCounter returns a counter starting at zero.
func NewCounter() *BasicCounter {
	return &BasicCounter{}
}

// Inc increments the counter by one and returns the new count.
func (c *BasicCounter) Inc() int64 { return c.val.Add(1) }

// Value returns the current count.
func (c *BasicCounter) Value() int64 { return c.val.Load() }

// Reset sets the count to zero.
func (c *BasicCounter) Reset() { c.val.Store(0) }

// ReadOnly returns a view over c. Inc on the view returns the live count
// without incrementing it; Reset is a no-op.
func (c *BasicCounter) ReadOnly() Counter { return readOnlyCounter{c: c} }

type readOnlyCounter struct {
	c *BasicCounter
}

func (r readOnlyCounter) Inc() int64        { return r.c.Value() }
func (r readOnlyCounter) Value() int64      { return r.c.Value() }
func (r readOnlyCounter) Reset()            {}
func (r readOnlyCounter) ReadOnly() Counter { return r }

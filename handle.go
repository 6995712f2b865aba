package probes

import (
	"context"
	"sync"
)

// Outcome is the state of a completion handle.
type Outcome int

const (
	Pending Outcome = iota
	Resolved
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Rejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Handle is a completion handle for work that finishes after the call that
// started it has returned. It settles once, either resolved or rejected.
type Handle struct {
	mu        sync.Mutex
	outcome   Outcome
	value     any
	callbacks []func(Outcome, any)
	done      chan struct{}
}

// NewHandle returns a pending handle.
func NewHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

// Resolve settles h successfully with v. It reports false if h had already
// settled.
func (h *Handle) Resolve(v any) bool { return h.settle(Resolved, v) }

// Reject settles h with the failure v. It reports false if h had already
// settled.
func (h *Handle) Reject(v any) bool { return h.settle(Rejected, v) }

func (h *Handle) settle(o Outcome, v any) bool {
	h.mu.Lock()
	if h.outcome != Pending {
		h.mu.Unlock()
		return false
	}
	h.outcome, h.value = o, v
	callbacks := h.callbacks
	h.callbacks = nil
	h.mu.Unlock()

	// callbacks run before Done is closed so waiters observe their effects
	for _, fn := range callbacks {
		invoke(fn, o, v)
	}
	close(h.done)
	return true
}

// OnSettle registers fn to run when h settles. If h has already settled,
// fn runs immediately on the calling goroutine. A panicking fn does not
// affect other callbacks.
func (h *Handle) OnSettle(fn func(Outcome, any)) {
	h.mu.Lock()
	if h.outcome == Pending {
		h.callbacks = append(h.callbacks, fn)
		h.mu.Unlock()
		return
	}
	o, v := h.outcome, h.value
	h.mu.Unlock()
	invoke(fn, o, v)
}

// Done is closed after h settles and its callbacks have run.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Result returns the outcome and value. ok is false while h is pending.
func (h *Handle) Result() (outcome Outcome, value any, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outcome, h.value, h.outcome != Pending
}

// Wait blocks until h settles or ctx is done.
func (h *Handle) Wait(ctx context.Context) (Outcome, any, error) {
	select {
	case <-h.done:
		o, v, _ := h.Result()
		return o, v, nil
	case <-ctx.Done():
		return Pending, nil, ctx.Err()
	}
}

func (h *Handle) String() string {
	o, _, _ := h.Result()
	return "Handle(" + o.String() + ")"
}

func invoke(fn func(Outcome, any), o Outcome, v any) {
	defer func() { _ = recover() }()
	fn(o, v)
}

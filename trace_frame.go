package probes

import (
	"encoding/json"
	"sync"
	"sync/atomic"
)

// Frame is one node of a trace: a single operation and the operations it
// started. Its parent is implied by the tree, not stored.
type Frame struct {
	id    int64
	trace *traceState
	done  *Handle

	mu       sync.Mutex
	rng      Duration
	children []*Frame
	lazy     LazyOperation
	augments []func(Operation) Operation

	op atomic.Pointer[Operation]
}

// ID is unique within the frame's trace. The root frame has ID 1.
func (f *Frame) ID() int64 { return f.id }

// Range is the synchronous duration of the operation.
func (f *Frame) Range() Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rng
}

// Operation returns the materialized operation. ok is false until the trace
// is finalized, and stays false for frames that never finished.
//
// A completion handle that settles after finalization replaces the
// operation with a copy carrying Resolved or Rejected; earlier copies are
// never modified.
func (f *Frame) Operation() (op Operation, ok bool) {
	p := f.op.Load()
	if p == nil {
		return Operation{}, false
	}
	return *p, true
}

// Children returns the frames started while f was the current frame, in
// start order.
func (f *Frame) Children() []*Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Frame(nil), f.children...)
}

func (f *Frame) addChild(c *Frame) {
	f.mu.Lock()
	f.children = append(f.children, c)
	f.mu.Unlock()
}

func (f *Frame) setResult(rng Duration, op LazyOperation) {
	f.mu.Lock()
	f.rng, f.lazy = rng, op
	f.mu.Unlock()
}

// materialize builds the operation and applies queued augments. A panicking
// LazyOperation leaves the frame without an operation.
func (f *Frame) materialize(l logger) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lazy == nil {
		return
	}
	lazy, augments := f.lazy, f.augments
	f.lazy, f.augments = nil, nil

	op, ok := buildOperation(lazy, l)
	if !ok {
		return
	}
	for _, fn := range augments {
		op = applyAugment(fn, op, l)
	}
	f.op.Store(&op)
}

// augment applies fn to the operation, now if it is materialized or at
// materialization otherwise.
func (f *Frame) augment(fn func(Operation) Operation, l logger) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lazy != nil {
		f.augments = append(f.augments, fn)
		return
	}
	if p := f.op.Load(); p != nil {
		op := applyAugment(fn, *p, l)
		f.op.Store(&op)
	}
}

func buildOperation(lazy LazyOperation, l logger) (op Operation, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			l.Errorf("[probes] building operation panicked: %v", r)
			ok = false
		}
	}()
	return lazy(), true
}

func applyAugment(fn func(Operation) Operation, op Operation, l logger) (out Operation) {
	defer func() {
		if r := recover(); r != nil {
			l.Errorf("[probes] updating operation panicked: %v", r)
			out = op
		}
	}()
	return fn(op)
}

type frameJSON struct {
	ID        int64      `json:"id"`
	Range     Duration   `json:"range"`
	Operation *Operation `json:"operation,omitempty"`
	Children  []*Frame   `json:"children"`
}

// MarshalJSON renders the frame and its subtree.
func (f *Frame) MarshalJSON() ([]byte, error) {
	out := frameJSON{ID: f.id, Range: f.Range(), Children: f.Children()}
	if op, ok := f.Operation(); ok {
		out.Operation = &op
	}
	return json.Marshal(out)
}

// walk visits f and its descendants depth first.
func (f *Frame) walk(fn func(*Frame)) {
	fn(f)
	for _, c := range f.Children() {
		c.walk(fn)
	}
}

package probes

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrTraceDiscarded is returned for traces dropped by TraceEngine.Reset
	// before they were finalized.
	ErrTraceDiscarded = errors.New("probes: trace discarded by reset")
	// ErrTracePending is returned by PendingTrace.Trace before finalization.
	ErrTracePending = errors.New("probes: trace not finalized yet")
)

// Trace is a finalized tree of frames rooted at one top-level operation.
type Trace struct {
	ID   int64  `json:"id"`
	Root *Frame `json:"root"`
}

// traceState is the in-flight state of one trace. It is guarded by the
// engine mutex.
type traceState struct {
	root         *Frame
	frameIDs     BasicCounter
	open         map[*Frame]struct{}
	handles      []*Handle
	rootFinished bool
	discarded    chan struct{}
	pending      *PendingTrace
}

// TraceEngine assembles frames started and finished by collaborators into
// traces. The current frame of a logical task travels in its
// context.Context, so every task owns its own stack: concurrent call chains
// build separate trees and never nest into each other.
//
// A trace is finalized once its root frame has finished and every completion
// handle registered by its frames has settled, or when the grace period
// elapses, whichever comes first.
type TraceEngine struct {
	cfg    *config
	logger logger
	// ids numbers finalized traces; Reset does not rewind it.
	ids    Counter

	mu     sync.Mutex
	traces map[*traceState]struct{}
	last   *PendingTrace
}

// NewTraceEngine constructs an idle engine.
func NewTraceEngine(opts ...Option) *TraceEngine {
	cfg := newConfig(opts)
	ids := cfg.traceIDs
	if ids == nil {
		ids = NewCounter()
	}
	return &TraceEngine{cfg: cfg, logger: cfg.logger, ids: ids, traces: make(map[*traceState]struct{})}
}

type frameKey struct{ e *TraceEngine }

// Start opens a frame. If ctx carries an open frame of a trace that is not
// finalized, the new frame becomes its last child; otherwise it is the root
// of a new trace. The returned context carries the new frame and
// must be passed to nested operations.
func (e *TraceEngine) Start(ctx context.Context) (context.Context, *Frame) {
	if ctx == nil {
		ctx = context.Background()
	}
	parent, _ := ctx.Value(frameKey{e}).(*Frame)

	e.mu.Lock()
	defer e.mu.Unlock()

	var ts *traceState
	if parent != nil && e.accepts(parent) {
		ts = parent.trace
	} else {
		parent = nil
		ts = &traceState{
			open:      make(map[*Frame]struct{}),
			discarded: make(chan struct{}),
			pending:   newPendingTrace(),
		}
		e.traces[ts] = struct{}{}
	}

	f := &Frame{id: ts.frameIDs.Inc(), trace: ts, done: NewHandle()}
	if parent != nil {
		parent.addChild(f)
	} else {
		ts.root = f
	}
	ts.open[f] = struct{}{}
	return context.WithValue(ctx, frameKey{e}, f), f
}

// accepts reports whether new frames may be nested under parent: the
// parent must still be open and its trace not yet finalized.
// Must be called with e.mu held.
func (e *TraceEngine) accepts(parent *Frame) bool {
	ts := parent.trace
	if _, ok := e.traces[ts]; !ok {
		return false
	}
	_, open := ts.open[parent]
	return open
}

// Finish closes frame with its synchronous duration and operation. h is the
// completion handle produced by the call, if any; it is registered with the
// trace before the frame is closed, and its settlement is attached to the
// operation as Resolved or Rejected.
//
// Finish returns the trace the frame belongs to, shared by every frame of
// that trace. A frame that is unknown, already finished or discarded by
// Reset is ignored and Finish returns nil.
func (e *TraceEngine) Finish(frame *Frame, rng Duration, op LazyOperation, h *Handle) *PendingTrace {
	if frame == nil {
		return nil
	}
	if op == nil {
		op = Eager(Operation{})
	}
	finishMark := e.cfg.clock.Mark()

	e.mu.Lock()
	ts := frame.trace
	_, live := e.traces[ts]
	_, open := ts.open[frame]
	if !live || !open {
		e.mu.Unlock()
		e.logger.Debugf("[probes] discarding stale frame %d", frame.id)
		return nil
	}

	frame.setResult(rng, op)
	if h != nil {
		// register before closing the frame so the trace cannot be
		// finalized without it
		ts.handles = append(ts.handles, h)
	}
	delete(ts.open, frame)
	isRoot := frame == ts.root
	if isRoot {
		ts.rootFinished = true
		e.last = ts.pending
	}
	pending := ts.pending
	e.mu.Unlock()

	frame.done.Resolve(nil)
	if h != nil {
		h.OnSettle(func(o Outcome, v any) {
			e.settle(frame, rng, finishMark, o, v)
		})
	}
	if isRoot {
		go e.await(ts)
	}
	return pending
}

// settle attaches a handle's outcome to frame. The settlement range starts
// where the synchronous range started and extends it by the time elapsed
// since Finish.
func (e *TraceEngine) settle(frame *Frame, rng Duration, finishMark int64, o Outcome, v any) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorf("[probes] applying settlement to frame %d panicked: %v", frame.id, r)
		}
	}()
	s := Settlement{
		Range: rng.extend(e.cfg.clock.Mark() - finishMark),
		Value: Describe(v),
	}
	frame.augment(func(op Operation) Operation { return op.settled(o, s) }, e.logger)
}

// Get returns the most recent trace whose root finished since the last
// Reset, or nil.
func (e *TraceEngine) Get() *PendingTrace {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// InFlight returns the number of traces not yet finalized.
func (e *TraceEngine) InFlight() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.traces)
}

// Reset discards every open frame and every trace awaiting finalization.
// Their pending traces fail with ErrTraceDiscarded and later Finish calls
// for their frames are ignored.
func (e *TraceEngine) Reset() {
	e.mu.Lock()
	traces := e.traces
	e.traces = make(map[*traceState]struct{})
	e.last = nil
	e.mu.Unlock()

	for ts := range traces {
		close(ts.discarded)
		ts.pending.fail(ErrTraceDiscarded)
	}
}

// PendingTrace is a trace that may not be finalized yet.
type PendingTrace struct {
	once  sync.Once
	done  chan struct{}
	trace *Trace
	err   error
}

func newPendingTrace() *PendingTrace {
	return &PendingTrace{done: make(chan struct{})}
}

func (p *PendingTrace) resolve(t *Trace) {
	p.once.Do(func() {
		p.trace = t
		close(p.done)
	})
}

func (p *PendingTrace) fail(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Done is closed once the trace is finalized or discarded.
func (p *PendingTrace) Done() <-chan struct{} { return p.done }

// Trace returns the finalized trace without blocking.
func (p *PendingTrace) Trace() (*Trace, error) {
	select {
	case <-p.done:
		return p.trace, p.err
	default:
		return nil, ErrTracePending
	}
}

// Wait blocks until the trace is finalized or discarded, or ctx is done.
func (p *PendingTrace) Wait(ctx context.Context) (*Trace, error) {
	select {
	case <-p.done:
		return p.trace, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

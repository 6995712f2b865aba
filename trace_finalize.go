package probes

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// await waits for ts to quiesce, racing the grace period against a join of
// everything still outstanding, then finalizes it. Handles registered while
// waiting are joined in a further round within the same grace period.
func (e *TraceEngine) await(ts *traceState) {
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.gracePeriod)
	defer cancel()

	for {
		join, live := e.outstanding(ts)
		if !live {
			return
		}
		if len(join) == 0 {
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, h := range join {
			h := h
			g.Go(func() error {
				select {
				case <-h.Done():
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}

		select {
		case err := <-wait(g):
			if err != nil {
				e.logger.Debugf("[probes] grace period of %s elapsed with pending handles", e.cfg.gracePeriod)
				e.finalize(ts)
				return
			}
		case <-ts.discarded:
			return
		}
	}
	e.finalize(ts)
}

func wait(g *errgroup.Group) <-chan error {
	ch := make(chan error, 1)
	go func() { ch <- g.Wait() }()
	return ch
}

// outstanding returns the unsettled handles of ts plus the completion of
// frames still open under its root. live is false if ts was discarded.
func (e *TraceEngine) outstanding(ts *traceState) (join []*Handle, live bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.traces[ts]; !ok {
		return nil, false
	}
	for _, h := range ts.handles {
		select {
		case <-h.Done():
		default:
			join = append(join, h)
		}
	}
	for f := range ts.open {
		join = append(join, f.done)
	}
	return join, true
}

// finalize materializes every operation of ts, assigns the trace id and
// hands the trace to everyone holding its PendingTrace.
func (e *TraceEngine) finalize(ts *traceState) {
	e.mu.Lock()
	if _, ok := e.traces[ts]; !ok {
		e.mu.Unlock()
		return
	}
	delete(e.traces, ts)
	ts.handles = nil
	e.mu.Unlock()

	ts.root.walk(func(f *Frame) { f.materialize(e.logger) })
	t := &Trace{ID: e.ids.Inc(), Root: ts.root}
	if e.cfg.traceSink != nil {
		e.cfg.traceSink.Publish(e.cfg.traceName, t, e)
	}
	e.logger.Debugf("[probes] trace %d finalized", t.ID)
	ts.pending.resolve(t)
}

package probes

import (
	"context"
	"time"
)

// CapturingProbe publishes a value read from elsewhere, for state that is
// kept in a field rather than returned from calls. capture should return an
// immutable copy, since the result is handed to every manifold reader.
type CapturingProbe struct {
	m       *Manifold
	name    string
	capture func() any
}

// NewCapturingProbe captures once and publishes the result under name.
func NewCapturingProbe(m *Manifold, name string, capture func() any) *CapturingProbe {
	p := &CapturingProbe{m: m, name: name, capture: capture}
	p.Refresh()
	return p
}

// Refresh captures and publishes the current value.
func (p *CapturingProbe) Refresh() any {
	v := p.capture()
	p.m.Publish(p.name, v, p)
	return v
}

// Reset re-captures; a captured value has no state of its own to clear.
func (p *CapturingProbe) Reset() { p.Refresh() }

// Poll refreshes every interval until ctx is done. Non-positive intervals
// return immediately.
func (p *CapturingProbe) Poll(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.Refresh()
		}
	}
}

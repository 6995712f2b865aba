package probes

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type countingSource struct {
	mu      sync.Mutex
	resets  int
	onReset func()
}

func (s *countingSource) Reset() {
	s.mu.Lock()
	s.resets++
	s.mu.Unlock()
	if s.onReset != nil {
		s.onReset()
	}
}

func (s *countingSource) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resets
}

type panickingSource struct{}

func (panickingSource) Reset() { panic("reset failed") }

func TestManifoldPublishLookup(t *testing.T) {
	m := NewManifold()

	_, ok := m.Lookup("missing")
	assert.False(t, ok)

	snap := &GaugeSnapshot{Count: 1}
	m.Publish("p", snap, nil)
	got, ok := m.Lookup("p")
	require.True(t, ok)
	require.Same(t, snap, got)

	m.Publish("p", "replaced", nil)
	got, _ = m.Lookup("p")
	assert.Equal(t, "replaced", got)

	m.Remove("p")
	_, ok = m.Lookup("p")
	assert.False(t, ok)
}

func TestManifoldAllIsACopy(t *testing.T) {
	m := NewManifold()
	m.Publish("a", 1, nil)
	m.Publish("b", 2, nil)

	all := m.All()
	require.Equal(t, map[string]any{"a": 1, "b": 2}, all)

	delete(all, "a")
	all["c"] = 3
	_, ok := m.Lookup("a")
	assert.True(t, ok)
	_, ok = m.Lookup("c")
	assert.False(t, ok)
}

func TestManifoldExports(t *testing.T) {
	clock := newFakeClock(1_700_000_000_000)
	m := NewManifold(WithClock(clock), WithUserAgent("test-agent"))
	m.Publish("a", "x", nil)

	e := m.Exports()
	assert.Equal(t, int64(1_700_000_000_000), e.Timestamp)
	assert.Equal(t, "test-agent", e.UserAgent)
	assert.Equal(t, map[string]any{"a": "x"}, e.Probes)

	assert.Equal(t, UserAgent(), NewManifold().Exports().UserAgent)
}

func TestManifoldFlush(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	m := NewManifold(WithZapLogger(zap.New(core)))

	plain := &countingSource{}
	m.Publish("plain", 1, plain)
	m.Publish("sourceless", 2, nil)
	m.Publish("broken", 3, panickingSource{})

	// a source that republishes from Reset must not deadlock
	republishing := &countingSource{}
	republishing.onReset = func() { m.Publish("republishing", "fresh", republishing) }
	m.Publish("republishing", "stale", republishing)

	m.Flush()

	assert.Equal(t, 1, plain.count())
	assert.Equal(t, 1, republishing.count())
	got, _ := m.Lookup("republishing")
	assert.Equal(t, "fresh", got)
	assert.Equal(t, 1, logs.FilterMessageSnippet(`"broken" panicked`).Len())

	m.Remove("plain")
	m.Flush()
	assert.Equal(t, 1, plain.count(), "removed entries are not flushed")
}

func TestManifoldGaugePublishes(t *testing.T) {
	m := NewManifold()
	g := m.Gauge("latency")

	got, ok := m.Lookup("latency")
	require.True(t, ok, "gauge should publish its empty snapshot on creation")
	assertNaN(t, "mean", got.(GaugeSnapshot).Mean)

	g.Sample(4)
	g.Sample(6)
	got, _ = m.Lookup("latency")
	assert.Equal(t, int64(2), got.(GaugeSnapshot).Count)
	assert.Equal(t, 5.0, got.(GaugeSnapshot).Mean)

	m.Flush()
	got, _ = m.Lookup("latency")
	assert.Equal(t, int64(0), got.(GaugeSnapshot).Count)
	assert.Equal(t, int64(0), g.Snapshot().Count)
}

func TestDefaultManifold(t *testing.T) {
	require.NotNil(t, Default())
	assert.Same(t, Default(), Default())
}

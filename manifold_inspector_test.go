package probes

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectorDescribe(t *testing.T) {
	var _ Inspector = (*Manifold)(nil)
	var _ Provider = (*Manifold)(nil)

	m := NewManifold()
	m.Publish("plain", 1, nil)
	_, ok := m.Describe("plain")
	assert.False(t, ok, "published snapshots have no instrument config")

	m.Gauge("g", WithAttributes(map[string]string{"k": "v"}))
	cfg, ok := m.Describe("g")
	require.True(t, ok)
	cfg.Attributes["k"] = "changed"

	again, _ := m.Describe("g")
	assert.Equal(t, "v", again.Attributes["k"], "Describe must return a defensive copy")
}

func TestInspectorListMetadata(t *testing.T) {
	m := NewManifold()
	assert.Empty(t, m.ListMetadata())

	m.Gauge("a", WithUnit("1"))
	m.ResponseTimeGauge("b", WithUnit("micros"))

	entries := m.ListMetadata()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	require.Len(t, entries, 2)
	assert.Equal(t, InstrumentEntry{Type: InstrumentTypeGauge, Name: "a", Config: InstrumentConfig{Unit: "1"}}, entries[0])
	assert.Equal(t, InstrumentEntry{Type: InstrumentTypeResponseTime, Name: "b", Config: InstrumentConfig{Unit: "micros"}}, entries[1])
}

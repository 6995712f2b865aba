package probes

// copyConfig makes a defensive copy of InstrumentConfig (copies Attributes map).
func copyConfig(in InstrumentConfig) InstrumentConfig {
	out := InstrumentConfig{Description: in.Description, Unit: in.Unit}
	if len(in.Attributes) > 0 {
		out.Attributes = make(map[string]string, len(in.Attributes))
		for k, v := range in.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}

// Describe returns a defensive copy of the config of the instrument created
// under name. Snapshots published directly through Publish have no config.
func (m *Manifold) Describe(name string) (InstrumentConfig, bool) {
	inst, ok := m.load(name)
	if !ok {
		return InstrumentConfig{}, false
	}
	return copyConfig(inst.cfg), true
}

// ListMetadata returns a best-effort snapshot of instrument metadata. It does
// not acquire per-name init mutexes; callers should treat the result as a
// point-in-time snapshot that may race with concurrent creations.
func (m *Manifold) ListMetadata() []InstrumentEntry {
	out := make([]InstrumentEntry, 0)
	m.instruments.Range(func(k, v interface{}) bool {
		name, ok := k.(string)
		inst, ok2 := v.(*instrument)
		if !ok || !ok2 {
			return true // skip invalid entries
		}
		out = append(out, InstrumentEntry{Type: inst.typ, Name: name, Config: copyConfig(inst.cfg)})
		return true
	})
	return out
}

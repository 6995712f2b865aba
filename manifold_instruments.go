package probes

import "sync"

type instrument struct {
	typ   InstrumentType
	value any
	cfg   InstrumentConfig
}

// Gauge returns the gauge registered under name, creating it on first use.
// The gauge publishes its snapshot under name on every sample and reset.
func (m *Manifold) Gauge(name string, opts ...InstrumentOption) *Gauge {
	v := m.getOrCreate(InstrumentTypeGauge, name, opts,
		func() any { return NewGauge() },
		func(v any) {
			g := v.(*Gauge)
			g.publishTo(func(s GaugeSnapshot) { m.Publish(name, s, gaugeResetter{g}) })
		},
	)
	return v.(*Gauge)
}

// ResponseTimeGauge returns the response time gauge registered under name,
// creating it on first use.
func (m *Manifold) ResponseTimeGauge(name string, opts ...InstrumentOption) *ResponseTimeGauge {
	v := m.getOrCreate(InstrumentTypeResponseTime, name, opts,
		func() any { return NewResponseTimeGauge() },
		func(v any) {
			rt := v.(*ResponseTimeGauge)
			rt.publishTo(func(s ResponseTimeSnapshot) { m.Publish(name, s, rt) })
		},
	)
	return v.(*ResponseTimeGauge)
}

// keyMu returns a per-name mutex, creating one if necessary.
func (m *Manifold) keyMu(name string) *sync.Mutex {
	v, _ := m.inits.LoadOrStore(name, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// load returns the instrument registered under name, if any.
func (m *Manifold) load(name string) (*instrument, bool) {
	v, ok := m.instruments.Load(name)
	if !ok {
		return nil, false
	}
	inst, ok := v.(*instrument)
	return inst, ok
}

// getOrCreate implements a fast read path, computes options before taking
// locks and uses a per-name mutex to deduplicate concurrent creation.
//   - create constructs a detached instrument.
//   - attach wires a newly stored instrument to the manifold; it runs under
//     the per-name mutex, before the instrument is visible to other callers
//     of the slow path.
func (m *Manifold) getOrCreate(
	typ InstrumentType,
	name string,
	opts []InstrumentOption,
	create func() any,
	attach func(any),
) any {
	// fast read path
	if inst, ok := m.load(name); ok {
		return m.checked(inst, typ, name, create)
	}

	// compute config off-lock to avoid holding per-name mutex during option application
	cfg := applyOptions(opts)

	km := m.keyMu(name)
	km.Lock()
	defer km.Unlock()

	// re-check after acquiring per-name mutex
	if inst, ok := m.load(name); ok {
		return m.checked(inst, typ, name, create)
	}
	inst := &instrument{typ: typ, value: create(), cfg: cfg}
	attach(inst.value)
	m.instruments.Store(name, inst)
	// optional cleanup: remove the per-name mutex to allow GC of mutexes for
	// ephemeral names. Goroutines already holding the pointer keep using it.
	if !m.cfg.doNotCleanupInits {
		m.inits.Delete(name)
	}
	return inst.value
}

// checked returns inst's value when its type matches typ. Otherwise the
// violation is reported and a detached instrument is returned so callers
// keep working.
func (m *Manifold) checked(inst *instrument, typ InstrumentType, name string, create func() any) any {
	if inst.typ != typ {
		m.reportInvariantViolation(typ.String()+"_registered_as_"+inst.typ.String(), name)
		return create()
	}
	return inst.value
}

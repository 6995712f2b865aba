package probes

// Inspector provides read-only access to published snapshots and the
// metadata of the instruments that produced them.
// Implementations should return defensive copies of configs.
// Snapshot semantics: best-effort at call time.
// Methods must be safe for concurrent use.
type Inspector interface {
	// All returns every published snapshot by name.
	All() map[string]any
	// Describe returns the config of the instrument registered under name.
	Describe(name string) (InstrumentConfig, bool)

	// ListMetadata returns enumeration for admin/debug UIs.
	ListMetadata() []InstrumentEntry
}

type InstrumentEntry struct {
	Type   InstrumentType
	Name   string
	Config InstrumentConfig // defensive copy
}

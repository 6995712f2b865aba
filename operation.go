package probes

import "github.com/google/uuid"

// Operation is the serializable record of one traced call.
type Operation struct {
	Label   string       `json:"label,omitempty"`
	Method  Descriptor   `json:"method"`
	Context Descriptor   `json:"context"`
	Args    []Descriptor `json:"args"`

	// Exactly one of Return and Throw is set for a finished call.
	Return *Descriptor `json:"return,omitempty"`
	Throw  *Descriptor `json:"throw,omitempty"`

	// Resolved or Rejected is attached when the call's completion handle
	// settles.
	Resolved *Settlement `json:"resolved,omitempty"`
	Rejected *Settlement `json:"rejected,omitempty"`
}

// Settlement records how and when a completion handle settled.
type Settlement struct {
	Range Duration   `json:"range"`
	Value Descriptor `json:"value"`
}

// LazyOperation builds an Operation on demand. The trace engine calls it
// once, when the trace is finalized.
type LazyOperation func() Operation

// Eager wraps an already built operation.
func Eager(op Operation) LazyOperation {
	return func() Operation { return op }
}

// NewOperation captures a call's method, receiver and arguments.
func NewOperation(label string, method, context any, args ...any) Operation {
	op := Operation{
		Label:   label,
		Method:  Describe(method),
		Context: Describe(context),
		Args:    make([]Descriptor, 0, len(args)),
	}
	for _, a := range args {
		op.Args = append(op.Args, Describe(a))
	}
	return op
}

// Returned returns a copy of o recording v as the return value.
func (o Operation) Returned(v any) Operation {
	d := Describe(v)
	o.Return, o.Throw = &d, nil
	return o
}

// Threw returns a copy of o recording v as the thrown value.
func (o Operation) Threw(v any) Operation {
	d := Describe(v)
	o.Throw, o.Return = &d, nil
	return o
}

// settled returns a copy of o with the handle outcome attached.
func (o Operation) settled(outcome Outcome, s Settlement) Operation {
	o.Args = append([]Descriptor(nil), o.Args...)
	switch outcome {
	case Resolved:
		o.Resolved = &s
	case Rejected:
		o.Rejected = &s
	}
	return o
}

// NewLabel returns a random label for operations whose collaborator did
// not name them.
func NewLabel() string {
	return uuid.NewString()
}

package probes

import (
	"math"
	"sync"
)

// Range tracks the running min and max of numeric samples.
type Range interface {
	// Sample folds v into the range and returns the range for chaining.
	// NaN and infinite values are ignored.
	Sample(v float64) Range
	Min() float64
	Max() float64
	Reset()
	ReadOnly() Range
}

// BasicRange is a thread-safe Range. Min and Max are NaN until the first
// valid sample.
type BasicRange struct {
	mu  sync.Mutex
	min float64
	max float64
}

// NewRange returns an empty range.
func NewRange() *BasicRange {
	return &BasicRange{min: math.NaN(), max: math.NaN()}
}

// Sample updates the range with v. NaN and ±Inf never replace a prior value.
func (r *BasicRange) Sample(v float64) Range {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return r
	}
	r.mu.Lock()
	if v < r.min || math.IsNaN(r.min) {
		r.min = v
	}
	if v > r.max || math.IsNaN(r.max) {
		r.max = v
	}
	r.mu.Unlock()
	return r
}

// SampleValue samples v if it is a Go numeric value and ignores anything
// else, including nil, booleans, strings and structs.
func (r *BasicRange) SampleValue(v any) {
	if f, ok := Numeric(v); ok {
		r.Sample(f)
	}
}

// Min returns the smallest value seen, or NaN.
func (r *BasicRange) Min() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.min
}

// Max returns the largest value seen, or NaN.
func (r *BasicRange) Max() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.max
}

// Reset sets min and max back to NaN.
func (r *BasicRange) Reset() {
	r.mu.Lock()
	r.min, r.max = math.NaN(), math.NaN()
	r.mu.Unlock()
}

// ReadOnly returns a view that observes r and ignores samples.
func (r *BasicRange) ReadOnly() Range { return readOnlyRange{r: r} }

type readOnlyRange struct {
	r *BasicRange
}

func (v readOnlyRange) Sample(float64) Range { return v }
func (v readOnlyRange) Min() float64         { return v.r.Min() }
func (v readOnlyRange) Max() float64         { return v.r.Max() }
func (v readOnlyRange) Reset()               {}
func (v readOnlyRange) ReadOnly() Range      { return v }

// Numeric converts Go integer and float kinds to float64. It reports false
// for every other type and for NaN.
func Numeric(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

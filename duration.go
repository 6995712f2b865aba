package probes

import "math"

// Duration is an immutable span of time, optionally anchored to the
// wall-clock time at which it began.
type Duration struct {
	Micros  int64 `json:"micros"`
	Millis  int64 `json:"millis"`
	Seconds int64 `json:"seconds"`
	// Start and End are Unix milliseconds; both are zero unless anchored.
	Start int64 `json:"start,omitempty"`
	End   int64 `json:"end,omitempty"`
}

// NewDuration returns the span between two marks in microseconds.
func NewDuration(start, end int64) Duration {
	delta := end - start
	return Duration{
		Micros:  delta,
		Millis:  roundHalfUp(float64(delta) / 1e3),
		Seconds: roundHalfUp(float64(delta) / 1e6),
	}
}

// NewAnchoredDuration is NewDuration anchored at timestamp (Unix millis).
// A zero timestamp leaves the duration unanchored.
func NewAnchoredDuration(start, end, timestamp int64) Duration {
	d := NewDuration(start, end)
	if timestamp != 0 {
		d.Start = timestamp
		d.End = timestamp + d.Millis
	}
	return d
}

// Anchored reports whether d carries wall-clock start and end times.
func (d Duration) Anchored() bool { return d.Start != 0 }

// extend returns d lengthened by micros, keeping its anchor.
func (d Duration) extend(micros int64) Duration {
	return NewAnchoredDuration(0, d.Micros+micros, d.Start)
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(f float64) int64 {
	return int64(math.Floor(f + 0.5))
}

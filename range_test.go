package probes

import (
	"math"
	"testing"
	"time"
)

func TestRange(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		r := NewRange()
		assertNaN(t, "min", r.Min())
		assertNaN(t, "max", r.Max())
	})

	t.Run("tracks_min_and_max", func(t *testing.T) {
		r := NewRange()
		for _, v := range []float64{5, -2, 11, 3} {
			r.Sample(v)
		}
		if r.Min() != -2 || r.Max() != 11 {
			t.Fatalf("unexpected range: min=%v max=%v", r.Min(), r.Max())
		}
	})

	t.Run("chains", func(t *testing.T) {
		r := NewRange()
		r.Sample(1).Sample(2).Sample(0)
		if r.Min() != 0 || r.Max() != 2 {
			t.Fatalf("unexpected range: min=%v max=%v", r.Min(), r.Max())
		}
	})

	t.Run("ignores_non_numeric", func(t *testing.T) {
		r := NewRange()
		var nilPtr *int
		for _, v := range []any{nil, nilPtr, true, false, "foo", struct{}{}, map[string]int{}, time.Now(), math.NaN()} {
			r.SampleValue(v)
		}
		assertNaN(t, "min", r.Min())
		assertNaN(t, "max", r.Max())

		r.Sample(math.Inf(1))
		r.Sample(math.Inf(-1))
		assertNaN(t, "min after inf", r.Min())

		r.SampleValue(int8(4))
		r.SampleValue(uint64(9))
		r.SampleValue(float32(1.5))
		r.SampleValue("10")
		r.SampleValue(math.NaN())
		if r.Min() != 1.5 || r.Max() != 9 {
			t.Fatalf("unexpected range: min=%v max=%v", r.Min(), r.Max())
		}
	})

	t.Run("reset", func(t *testing.T) {
		r := NewRange()
		r.Sample(4)
		r.Reset()
		assertNaN(t, "min", r.Min())
		assertNaN(t, "max", r.Max())
	})

	t.Run("read_only_view", func(t *testing.T) {
		r := NewRange()
		ro := r.ReadOnly()
		if ro.Sample(42) != ro {
			t.Fatalf("view should chain to itself")
		}
		assertNaN(t, "min through view", ro.Min())
		r.Sample(7)
		ro.Reset()
		if ro.Min() != 7 || ro.Max() != 7 {
			t.Fatalf("view must observe the live range; got %v/%v", ro.Min(), ro.Max())
		}
	})
}

func TestNumeric(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{in: 3, want: 3, ok: true},
		{in: int64(-7), want: -7, ok: true},
		{in: uint16(8), want: 8, ok: true},
		{in: 2.25, want: 2.25, ok: true},
		{in: math.NaN(), ok: false},
		{in: "3", ok: false},
		{in: true, ok: false},
		{in: nil, ok: false},
	}
	for _, tc := range cases {
		got, ok := Numeric(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("Numeric(%#v): got %v,%v want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

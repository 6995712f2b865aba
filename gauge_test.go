package probes

import (
	"math"
	"sync"
	"testing"
)

func TestGauge(t *testing.T) {
	t.Run("initial_snapshot", func(t *testing.T) {
		g := NewGauge()
		s := g.Snapshot()
		if s.Count != 0 {
			t.Fatalf("expected count 0; got %d", s.Count)
		}
		assertNaN(t, "mean", s.Mean)
		assertNaN(t, "stddev", s.StdDev)
		assertNaN(t, "max", s.Max)
		assertNaN(t, "min", s.Min)
	})

	t.Run("samples", func(t *testing.T) {
		g := NewGauge()
		var s GaugeSnapshot
		for _, v := range []float64{13, 13, 23, 12, 44, 55} {
			s = g.Sample(v)
		}
		if s.Count != 6 || s.Min != 12 || s.Max != 55 {
			t.Fatalf("unexpected snapshot: %+v", s)
		}
		if math.Abs(s.Mean-160.0/6) > 1e-12 {
			t.Fatalf("mean: got %v", s.Mean)
		}
		if got := trunc6(s.StdDev); math.Abs(got-18.46799) > 1e-9 {
			t.Fatalf("stddev: got %v", got)
		}
		if g.Snapshot() != s {
			t.Fatalf("Snapshot should return the last sampled snapshot")
		}
	})

	t.Run("snapshots_are_values", func(t *testing.T) {
		g := NewGauge()
		first := g.Sample(1)
		g.Sample(100)
		if first.Count != 1 || first.Max != 1 {
			t.Fatalf("earlier snapshot changed: %+v", first)
		}
	})

	t.Run("nan_sample", func(t *testing.T) {
		g := NewGauge()
		g.Sample(2)
		s := g.Sample(math.NaN())
		if s.Count != 2 {
			t.Fatalf("NaN sample must be counted; got %d", s.Count)
		}
		assertNaN(t, "mean", s.Mean)
		assertNaN(t, "stddev", s.StdDev)
		if s.Min != 2 || s.Max != 2 {
			t.Fatalf("range must ignore NaN; got %v/%v", s.Min, s.Max)
		}
		s = g.Sample(4)
		assertNaN(t, "mean after NaN", s.Mean)
		if s.Max != 4 {
			t.Fatalf("expected max 4; got %v", s.Max)
		}
	})

	t.Run("reset", func(t *testing.T) {
		g := NewGauge()
		g.Sample(5)
		g.Sample(math.NaN())
		s := g.Reset()
		if s.Count != 0 {
			t.Fatalf("expected count 0; got %d", s.Count)
		}
		assertNaN(t, "mean", s.Mean)
		assertNaN(t, "min", s.Min)
		s = g.Sample(3)
		if s.Count != 1 || s.Mean != 3 || s.Min != 3 || s.Max != 3 {
			t.Fatalf("unexpected snapshot after reset: %+v", s)
		}
		assertNaN(t, "stddev of one sample", s.StdDev)
	})

	t.Run("concurrent", func(t *testing.T) {
		g := NewGauge()
		var wg sync.WaitGroup
		const n = 50
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				g.Sample(2)
			}()
		}
		wg.Wait()
		s := g.Snapshot()
		if s.Count != n || s.Mean != 2 || s.StdDev != 0 {
			t.Fatalf("unexpected snapshot: %+v", s)
		}
	})
}

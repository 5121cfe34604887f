package trace

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-notemod/internal/testutil"
)

func TestCalculateEmpty(t *testing.T) {
	if got := Calculate(nil); got != (Stats{}) {
		t.Fatalf("Calculate(nil) = %+v", got)
	}
}

func TestCalculateSquare(t *testing.T) {
	s := Calculate([]float64{0.5, -0.5, 0.5, -0.5})

	if s.Length != 4 || math.Abs(s.Mean) > 1e-15 || s.Peak != 0.5 {
		t.Fatalf("Calculate() = %+v", s)
	}
	if s.ZeroCrossings != 3 || s.MaxStep != 1 {
		t.Fatalf("crossings=%d maxStep=%v", s.ZeroCrossings, s.MaxStep)
	}
	testutil.RequireRelativeNear(t, "RMS", s.RMS, 0.5, 1e-12)
	testutil.RequireRelativeNear(t, "StdDev", s.StdDev, 0.5, 1e-12)
}

func TestCalculateSine(t *testing.T) {
	const n = 48000
	sig := testutil.DeterministicSine(5, 48000, 0.25, n)
	s := Calculate(sig)

	testutil.RequireRelativeNear(t, "RMS", s.RMS, 0.25/math.Sqrt2, 1e-3)
	if math.Abs(s.Mean) > 1e-9 {
		t.Fatalf("Mean = %v", s.Mean)
	}
	if s.Peak > 0.25 || s.Peak < 0.2499 {
		t.Fatalf("Peak = %v", s.Peak)
	}
	if s.ZeroCrossings < 9 || s.ZeroCrossings > 10 {
		t.Fatalf("ZeroCrossings = %d, want about 10", s.ZeroCrossings)
	}
	if s.MaxStep > 2*math.Pi*5*0.25/48000*1.01 {
		t.Fatalf("MaxStep = %v too large for a smooth sine", s.MaxStep)
	}
}

func TestStreamingMatchesCalculate(t *testing.T) {
	sig := testutil.DeterministicSine(3, 1000, 0.7, 999)
	for i := range sig {
		sig[i] += 0.1
	}
	want := Calculate(sig)

	for _, block := range []int{1, 7, 64, 1000} {
		var s Streaming
		for start := 0; start < len(sig); start += block {
			s.Update(sig[start:min(start+block, len(sig))])
		}
		got := s.Result()
		if got.Length != want.Length || got.ZeroCrossings != want.ZeroCrossings ||
			got.Min != want.Min || got.Max != want.Max || got.MaxStep != want.MaxStep {
			t.Fatalf("block %d: got %+v, want %+v", block, got, want)
		}
		testutil.RequireRelativeNear(t, "Mean", got.Mean, want.Mean, 1e-12)
		testutil.RequireRelativeNear(t, "StdDev", got.StdDev, want.StdDev, 1e-12)
	}
}

func TestStreamingReset(t *testing.T) {
	var s Streaming
	s.Update([]float64{1, 2, 3})
	s.Reset()
	if s.Len() != 0 || s.Result() != (Stats{}) {
		t.Fatal("Reset() should discard samples")
	}
	s.Update([]float64{-2})
	if r := s.Result(); r.Min != -2 || r.Max != -2 || r.MaxStep != 0 {
		t.Fatalf("after reset: %+v", r)
	}
}

func BenchmarkStreamingUpdate(b *testing.B) {
	block := testutil.DeterministicSine(2, 48000, 0.5, 512)
	var s Streaming
	b.ReportAllocs()
	for b.Loop() {
		s.Update(block)
	}
}

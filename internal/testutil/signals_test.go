package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	RequireWithin(t, s, -1, 1)
}

func TestDC(t *testing.T) {
	for i, v := range DC(0.25, 5) {
		if v != 0.25 {
			t.Fatalf("DC[%d] = %v, want 0.25", i, v)
		}
	}
}

func TestConcat(t *testing.T) {
	got := Concat([]float64{1, 2}, nil, []float64{3})
	RequireSliceNearlyEqual(t, got, []float64{1, 2, 3}, 0)
}

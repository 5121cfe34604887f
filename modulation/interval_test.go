package modulation

import (
	"errors"
	"testing"
)

func TestIntervalWholeNotes(t *testing.T) {
	tests := []struct {
		interval Interval
		want     float64
	}{
		{Interval1n, 1},
		{Interval2n, 0.5},
		{Interval4nd, 0.375},
		{Interval4n, 0.25},
		{Interval4nt, 1.0 / 6},
		{Interval8nd, 0.1875},
		{Interval8n, 0.125},
		{Interval8nt, 1.0 / 12},
		{Interval16nd, 0.09375},
		{Interval16n, 0.0625},
		{Interval16nt, 1.0 / 24},
		{Interval32n, 0.03125},
		{Interval32nt, 1.0 / 48},
	}

	for _, tt := range tests {
		t.Run(tt.interval.String(), func(t *testing.T) {
			got := tt.interval.WholeNotes()
			if diff := got - tt.want; diff > 1e-15 || diff < -1e-15 {
				t.Fatalf("WholeNotes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntervalParseRoundTrip(t *testing.T) {
	for _, iv := range Intervals() {
		got, err := ParseInterval(iv.String())
		if err != nil {
			t.Fatalf("ParseInterval(%q) error = %v", iv.String(), err)
		}
		if got != iv {
			t.Fatalf("ParseInterval(%q) = %v, want %v", iv.String(), got, iv)
		}
	}
	if len(Intervals()) != int(numIntervals) {
		t.Fatalf("Intervals() returned %d entries", len(Intervals()))
	}
}

func TestIntervalInvalid(t *testing.T) {
	if _, err := ParseInterval("3n"); !errors.Is(err, ErrUnknownInterval) {
		t.Fatalf("ParseInterval(3n) error = %v, want ErrUnknownInterval", err)
	}

	bad := Interval(99)
	if bad.Valid() {
		t.Fatal("Interval(99) should be invalid")
	}
	if bad.WholeNotes() != 0.25 {
		t.Fatalf("invalid WholeNotes() = %v, want quarter note", bad.WholeNotes())
	}
	if bad.String() != "Interval(99)" {
		t.Fatalf("invalid String() = %q", bad.String())
	}
}

package modulation

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-notemod/internal/testutil"
	"github.com/cwbudde/algo-notemod/measure/period"
)

const (
	testSampleRate = 48000.0
	testBlockSize  = 512
)

// samplesPerWholeNote at the given tempo, one beat per quarter note.
func samplesPerWholeNote(bpm float64) float64 {
	return 4 * 60 / bpm * testSampleRate
}

// renderBlocks runs the LFO like the transport would: render a block, then
// advance by that block's musical length.
func renderBlocks(l *LFO, spw float64, blocks int) []float64 {
	out := make([]float64, 0, blocks*testBlockSize)
	block := make([]float64, testBlockSize)
	for range blocks {
		l.Render(block)
		out = append(out, block...)
		l.Advance(testBlockSize / spw)
	}
	return out
}

func TestLFOPeriodMatchesInterval(t *testing.T) {
	tests := []struct {
		bpm      float64
		interval Interval
	}{
		{120, Interval4n},
		{120, Interval8n},
		{120, Interval8nt},
		{96, Interval16nd},
		{140, Interval32nt},
		{100, Interval8nd},
	}

	for _, tt := range tests {
		t.Run(tt.interval.String(), func(t *testing.T) {
			spw := samplesPerWholeNote(tt.bpm)
			want := tt.interval.WholeNotes() * spw

			l := NewLFO()
			l.Set(tt.interval, 0.5)
			l.SetSamplesPerWholeNote(spw)
			if !nearlyEqual(l.PeriodSamples(), want) {
				t.Fatalf("PeriodSamples() = %v, want %v", l.PeriodSamples(), want)
			}

			blocks := int(math.Ceil(want*6/testBlockSize)) + 1
			sig := renderBlocks(l, spw, blocks)
			testutil.RequireWithin(t, sig, -0.5, 0.5)

			got, err := period.ZeroCrossingPeriod(sig)
			if err != nil {
				t.Fatalf("ZeroCrossingPeriod() error = %v", err)
			}
			testutil.RequireRelativeNear(t, "measured period", got, want, 1e-6)

			res, err := period.Estimate(sig, period.Config{SampleRate: testSampleRate})
			if err != nil {
				t.Fatalf("Estimate() error = %v", err)
			}
			testutil.RequireRelativeNear(t, "spectral period", res.PeriodSamples, want, 0.02)
		})
	}
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func TestLFOBlocksAreContinuous(t *testing.T) {
	spw := samplesPerWholeNote(120)
	l := NewLFO()
	l.Set(Interval16n, 1)
	l.SetSamplesPerWholeNote(spw)

	sig := renderBlocks(l, spw, 8)
	periodSamples := l.PeriodSamples()
	for i, v := range sig {
		want := math.Sin(2 * math.Pi * float64(i) / periodSamples)
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestLFOValueAtMatchesRender(t *testing.T) {
	l := NewLFO()
	l.Set(Interval8nt, 0.3)
	l.SetSamplesPerWholeNote(samplesPerWholeNote(133))
	l.Advance(0.0371)

	block := make([]float64, 64)
	l.Render(block)
	for i, v := range block {
		if math.Abs(v-l.ValueAt(i)) > 1e-12 {
			t.Fatalf("ValueAt(%d) = %v, Render = %v", i, l.ValueAt(i), v)
		}
	}
}

func TestLFOSilentAndDefaults(t *testing.T) {
	l := NewLFO()
	if l.Interval() != Interval4n || l.Depth() != 0 {
		t.Fatalf("defaults: interval=%v depth=%v", l.Interval(), l.Depth())
	}

	block := []float64{1, 1, 1}
	l.Render(block)
	for i, v := range block {
		if v != 0 {
			t.Fatalf("silent LFO block[%d] = %v", i, v)
		}
	}

	l.Set(Interval(-3), math.NaN())
	if l.Interval() != Interval4n || l.Depth() != 0 {
		t.Fatalf("invalid Set: interval=%v depth=%v", l.Interval(), l.Depth())
	}

	l.SetSamplesPerWholeNote(-5)
	if l.PeriodSamples() != 0 {
		t.Fatalf("PeriodSamples() = %v, want 0 for unknown tempo", l.PeriodSamples())
	}
}

func TestLFOAdvanceWrapsAndResets(t *testing.T) {
	l := NewLFO()
	l.Set(Interval4n, 1)

	l.Advance(0.25 * 2.5)
	if math.Abs(l.Phase()-0.5) > 1e-12 {
		t.Fatalf("Phase() = %v, want 0.5", l.Phase())
	}

	l.Reset()
	if l.Phase() != 0 {
		t.Fatalf("Phase() after Reset = %v", l.Phase())
	}
}

package period

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-notemod/internal/testutil"
)

func TestEstimateSine(t *testing.T) {
	tests := []struct {
		name   string
		freqHz float64
	}{
		{name: "2Hz", freqHz: 2},
		{name: "5.5Hz", freqHz: 5.5},
		{name: "16Hz", freqHz: 16},
	}

	const sampleRate = 8000.0
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := testutil.DeterministicSine(tt.freqHz, sampleRate, 0.5, int(sampleRate*4))

			res, err := Estimate(sig, Config{SampleRate: sampleRate})
			if err != nil {
				t.Fatalf("Estimate() error = %v", err)
			}
			testutil.RequireRelativeNear(t, "FrequencyHz", res.FrequencyHz, tt.freqHz, 0.01)
			testutil.RequireRelativeNear(t, "PeriodSamples", res.PeriodSamples, sampleRate/tt.freqHz, 0.01)
			testutil.RequireRelativeNear(t, "Amplitude", res.Amplitude, 0.5, 0.1)
		})
	}
}

func TestEstimateIgnoresDCOffset(t *testing.T) {
	const sampleRate = 4000.0
	sig := testutil.DeterministicSine(3, sampleRate, 1, 16000)
	for i := range sig {
		sig[i] += 2
	}

	res, err := Estimate(sig, Config{SampleRate: sampleRate})
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	testutil.RequireRelativeNear(t, "FrequencyHz", res.FrequencyHz, 3, 0.01)
}

func TestEstimateErrors(t *testing.T) {
	if _, err := Estimate([]float64{1, 2}, Config{}); !errors.Is(err, ErrShortSignal) {
		t.Fatalf("short signal error = %v, want ErrShortSignal", err)
	}
	if _, err := Estimate(testutil.DC(0, 64), Config{}); !errors.Is(err, ErrNoOscillation) {
		t.Fatalf("silent signal error = %v, want ErrNoOscillation", err)
	}
}

func TestZeroCrossingPeriod(t *testing.T) {
	const sampleRate = 48000.0
	sig := testutil.DeterministicSine(3.7, sampleRate, 1, 48000*3)

	got, err := ZeroCrossingPeriod(sig)
	if err != nil {
		t.Fatalf("ZeroCrossingPeriod() error = %v", err)
	}
	testutil.RequireRelativeNear(t, "period", got, sampleRate/3.7, 1e-6)
}

func TestZeroCrossingPeriodNeedsTwoCrossings(t *testing.T) {
	if _, err := ZeroCrossingPeriod([]float64{-1, 1, 1}); !errors.Is(err, ErrNoOscillation) {
		t.Fatalf("error = %v, want ErrNoOscillation", err)
	}
}

func TestRisingZeroCrossingsInterpolates(t *testing.T) {
	got := RisingZeroCrossings([]float64{-1, 1, -3, 1})
	testutil.RequireSliceNearlyEqual(t, got, []float64{0.5, 2.75}, 1e-12)
}

func TestNextPowerOf2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 1000: 1024, 1024: 1024}
	for in, want := range cases {
		if got := nextPowerOf2(in); got != want {
			t.Fatalf("nextPowerOf2(%d) = %d, want %d", in, got, want)
		}
	}
}

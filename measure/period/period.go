// Package period estimates the oscillation period of rendered modulation
// signals, e.g. to check that a tempo-synced LFO lands on its note interval.
package period

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-notemod/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultSampleRate = 48000.0
	minSignalLength   = 4
	zeroPadding       = 4
)

var (
	// ErrShortSignal is returned when the signal is too short to analyse.
	ErrShortSignal = errors.New("period: signal too short")
	// ErrNoOscillation is returned when no periodic component was found.
	ErrNoOscillation = errors.New("period: no oscillation found")
)

// Config holds analysis parameters.
type Config struct {
	SampleRate float64
	// FFTSize is rounded up to a power of two. Zero selects the next power
	// of two above four times the signal length.
	FFTSize int
	// MinFrequencyHz excludes bins below this frequency from the peak search.
	// Zero keeps everything above DC.
	MinFrequencyHz float64
}

// Result describes the dominant periodic component.
type Result struct {
	FrequencyHz   float64
	PeriodSamples float64
	PeriodSeconds float64
	Amplitude     float64
}

// Estimator performs spectral period estimation.
type Estimator struct {
	cfg Config
}

// NewEstimator creates an estimator with cfg normalised.
func NewEstimator(cfg Config) *Estimator {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaultSampleRate
	}
	if cfg.FFTSize < 0 {
		cfg.FFTSize = 0
	}
	if cfg.MinFrequencyHz < 0 {
		cfg.MinFrequencyHz = 0
	}
	return &Estimator{cfg: cfg}
}

// Estimate is a one-shot spectral estimate.
func Estimate(signal []float64, cfg Config) (Result, error) {
	return NewEstimator(cfg).Estimate(signal)
}

// Estimate removes DC, applies a Hann window, transforms the signal and
// refines the strongest bin with log-parabolic interpolation.
func (e *Estimator) Estimate(signal []float64) (Result, error) {
	n := len(signal)
	if n < minSignalLength {
		return Result{}, fmt.Errorf("%w: %d samples", ErrShortSignal, n)
	}

	fftSize := e.cfg.FFTSize
	if fftSize == 0 {
		fftSize = zeroPadding * n
	}
	if fftSize < n {
		fftSize = n
	}
	fftSize = nextPowerOf2(fftSize)

	windowed := make([]float64, n)
	mean := vecmath.Sum(signal) / float64(n)
	for i, v := range signal {
		windowed[i] = v - mean
	}
	coeffs, err := window.Hann(n)
	if err != nil {
		return Result{}, err
	}
	if err := window.ApplyCoefficientsInPlace(windowed, coeffs); err != nil {
		return Result{}, err
	}
	gain := vecmath.Sum(coeffs)

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("period: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("period: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	binHz := e.cfg.SampleRate / float64(fftSize)
	lower := max(1, int(math.Ceil(e.cfg.MinFrequencyHz/binHz)))
	peak := peakBin(mag, lower, bins-1)
	if peak < 0 || mag[peak] == 0 {
		return Result{}, ErrNoOscillation
	}

	freq := (float64(peak) + interpolate(mag, peak)) * binHz
	if freq <= 0 {
		return Result{}, ErrNoOscillation
	}

	return Result{
		FrequencyHz:   freq,
		PeriodSamples: e.cfg.SampleRate / freq,
		PeriodSeconds: 1 / freq,
		Amplitude:     2 * mag[peak] / gain,
	}, nil
}

// RisingZeroCrossings returns the fractional sample positions where signal
// crosses zero upwards, using linear interpolation between samples.
func RisingZeroCrossings(signal []float64) []float64 {
	var out []float64
	for i := 1; i < len(signal); i++ {
		a, b := signal[i-1], signal[i]
		if a < 0 && b >= 0 {
			out = append(out, float64(i-1)+a/(a-b))
		}
	}
	return out
}

// ZeroCrossingPeriod returns the mean spacing between rising zero crossings
// in samples. It is exact for clean oscillators and needs at least two
// crossings.
func ZeroCrossingPeriod(signal []float64) (float64, error) {
	crossings := RisingZeroCrossings(signal)
	if len(crossings) < 2 {
		return 0, fmt.Errorf("%w: %d rising crossings", ErrNoOscillation, len(crossings))
	}
	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1), nil
}

func peakBin(mag []float64, lower, upper int) int {
	best := -1
	bestVal := -1.0
	for i := lower; i <= upper && i < len(mag); i++ {
		if mag[i] > bestVal {
			bestVal = mag[i]
			best = i
		}
	}
	return best
}

// interpolate returns the sub-bin offset of the peak from a parabola through
// the log magnitudes of the peak and its neighbours.
func interpolate(mag []float64, k int) float64 {
	if k <= 0 || k >= len(mag)-1 {
		return 0
	}
	const floor = 1e-300
	a := math.Log(math.Max(mag[k-1], floor))
	b := math.Log(math.Max(mag[k], floor))
	c := math.Log(math.Max(mag[k+1], floor))
	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	return 0.5 * (a - c) / den
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

package testutil

import "math"

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Concat joins blocks into one signal.
func Concat(blocks ...[]float64) []float64 {
	n := 0
	for _, b := range blocks {
		n += len(b)
	}
	out := make([]float64, 0, n)
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

// Package signal provides the deterministic smooth-noise field that drives
// per-voice pitch instability.
package signal

import (
	"github.com/cwbudde/algo-notemod/dsp/core"
	"github.com/ojrac/opensimplex-go"
)

const (
	// maxWarblePerMs is the field frequency along the slow axis, in lattice
	// cells per millisecond, at warble = 1.
	maxWarblePerMs = 0.02
	// maxNoisePerSecond is the field frequency along the fast axis, in
	// lattice cells per second, at noise = 1.
	maxNoisePerSecond = 400.0
	defaultSeed       = 1
	defaultWarble     = 0.1
	defaultNoise      = 0
)

// NoiseField is a seeded 3-D OpenSimplex field sampled along two time axes.
// The first coordinate is scaled by warble (slow drift), the second by noise
// (fast grain) and the third is a free decorrelation axis, typically the
// voice index.
type NoiseField struct {
	field  opensimplex.Noise
	seed   int64
	warble float64
	noise  float64
}

// NoiseOption configures a NoiseField.
type NoiseOption func(*NoiseField)

// WithSeed selects the permutation table. Fields with equal seeds and
// parameters produce identical values.
func WithSeed(seed int64) NoiseOption {
	return func(f *NoiseField) {
		f.seed = seed
	}
}

// WithWarble sets the initial warble in [0, 1].
func WithWarble(warble float64) NoiseOption {
	return func(f *NoiseField) {
		f.warble = core.Clamp(warble, 0, 1)
	}
}

// WithNoise sets the initial noise in [0, 1].
func WithNoise(noise float64) NoiseOption {
	return func(f *NoiseField) {
		f.noise = core.Clamp(noise, 0, 1)
	}
}

// NewNoiseField returns a field with the given options applied.
func NewNoiseField(opts ...NoiseOption) *NoiseField {
	f := &NoiseField{
		seed:   defaultSeed,
		warble: defaultWarble,
		noise:  defaultNoise,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.field = opensimplex.NewNormalized(f.seed)
	return f
}

// Seed returns the permutation seed.
func (f *NoiseField) Seed() int64 { return f.seed }

// Warble returns the slow-axis scale in [0, 1].
func (f *NoiseField) Warble() float64 { return f.warble }

// Noise returns the fast-axis scale in [0, 1].
func (f *NoiseField) Noise() float64 { return f.noise }

// SetWarble updates the slow-axis scale, clamped to [0, 1].
func (f *NoiseField) SetWarble(warble float64) {
	if !core.IsFinite(warble) {
		return
	}
	f.warble = core.Clamp(warble, 0, 1)
}

// SetNoise updates the fast-axis scale, clamped to [0, 1].
func (f *NoiseField) SetNoise(noise float64) {
	if !core.IsFinite(noise) {
		return
	}
	f.noise = core.Clamp(noise, 0, 1)
}

// Value evaluates the field at (timeMs, timeSec, lane) and returns a value in
// [0, 1]. Both scale parameters use a squared response so small settings
// stay subtle.
func (f *NoiseField) Value(timeMs, timeSec, lane float64) float64 {
	x := timeMs * f.warble * f.warble * maxWarblePerMs
	y := timeSec * f.noise * f.noise * maxNoisePerSecond
	return core.Clamp(f.field.Eval3(x, y, lane), 0, 1)
}

// Bipolar evaluates the field and maps it onto [-amount, amount].
func (f *NoiseField) Bipolar(timeMs, timeSec, lane, amount float64) float64 {
	v := core.MapRange(f.Value(timeMs, timeSec, lane), 0, 1, -amount, amount)
	return core.Clamp(v, -amount, amount)
}

package modulation

import (
	"math"

	"github.com/cwbudde/algo-notemod/dsp/core"
)

// LFO is a tempo-synced sine oscillator. Its phase marks the start of the
// current block; the transport advances it once per block and block samples
// are evaluated on demand from that phase.
type LFO struct {
	interval            Interval
	depth               float64
	phase               float64
	samplesPerWholeNote float64
}

// NewLFO returns a silent quarter-note LFO.
func NewLFO() *LFO {
	return &LFO{interval: Interval4n}
}

// Set changes the interval and depth. The phase is kept so retuning does not
// jump.
func (l *LFO) Set(interval Interval, depth float64) {
	if !interval.Valid() {
		interval = Interval4n
	}
	if !core.IsFinite(depth) {
		depth = 0
	}
	l.interval = interval
	l.depth = depth
}

// Interval returns the configured interval.
func (l *LFO) Interval() Interval { return l.interval }

// Depth returns the peak deviation.
func (l *LFO) Depth() float64 { return l.depth }

// Phase returns the phase in [0, 1) at the start of the current block.
func (l *LFO) Phase() float64 { return l.phase }

// SetSamplesPerWholeNote resolves the interval against the transport tempo.
func (l *LFO) SetSamplesPerWholeNote(samples float64) {
	if !core.IsFinite(samples) || samples < 0 {
		samples = 0
	}
	l.samplesPerWholeNote = samples
}

// PeriodSamples returns the oscillation period in samples, or 0 when the
// tempo is unknown.
func (l *LFO) PeriodSamples() float64 {
	return l.interval.WholeNotes() * l.samplesPerWholeNote
}

// Advance moves the phase forward by the given musical time.
func (l *LFO) Advance(wholeNotes float64) {
	l.phase = core.WrapPhase(l.phase + wholeNotes/l.interval.WholeNotes())
}

// Reset rewinds the phase to zero.
func (l *LFO) Reset() {
	l.phase = 0
}

// ValueAt evaluates the oscillator i samples into the current block.
func (l *LFO) ValueAt(i int) float64 {
	if l.depth == 0 {
		return 0
	}
	phase := l.phase
	if period := l.PeriodSamples(); period > 0 {
		phase += float64(i) / period
	}
	return l.depth * math.Sin(2*math.Pi*phase)
}

// Render writes the current block into dst.
func (l *LFO) Render(dst []float64) {
	if l.depth == 0 {
		clear(dst)
		return
	}
	inc := 0.0
	if period := l.PeriodSamples(); period > 0 {
		inc = 1 / period
	}
	for i := range dst {
		dst[i] = l.depth * math.Sin(2*math.Pi*(l.phase+float64(i)*inc))
	}
}

package notefx

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-notemod/modulation"
	"github.com/cwbudde/algo-notemod/note"
	"github.com/cwbudde/algo-notemod/transport"
	"github.com/cwbudde/algo-notemod/voice"
)

const (
	defaultVibratoDepth = 0.0
	defaultVibratoRange = 1.0
	maxVibratoRange     = 64.0
)

// VibratoOption mutates vibrato construction parameters.
type VibratoOption func(*vibratoConfig) error

type vibratoConfig struct {
	depth    float64
	interval modulation.Interval
	depthMax float64
}

func defaultVibratoConfig() vibratoConfig {
	return vibratoConfig{
		depth:    defaultVibratoDepth,
		interval: modulation.Interval16n,
		depthMax: defaultVibratoRange,
	}
}

// WithVibratoDepth sets the LFO depth in [0, range].
func WithVibratoDepth(depth float64) VibratoOption {
	return func(cfg *vibratoConfig) error {
		if depth < 0 || math.IsNaN(depth) || math.IsInf(depth, 0) {
			return fmt.Errorf("vibrato depth must be >= 0 and finite: %f", depth)
		}
		cfg.depth = depth
		return nil
	}
}

// WithVibratoInterval sets the LFO period as a note length.
func WithVibratoInterval(interval modulation.Interval) VibratoOption {
	return func(cfg *vibratoConfig) error {
		if !interval.Valid() {
			return fmt.Errorf("vibrato interval is unknown: %d", int(interval))
		}
		cfg.interval = interval
		return nil
	}
}

// WithVibratoRange sets the upper bound of the depth, in (0, 64].
func WithVibratoRange(depthMax float64) VibratoOption {
	return func(cfg *vibratoConfig) error {
		if err := validateRange(depthMax); err != nil {
			return err
		}
		cfg.depthMax = depthMax
		return nil
	}
}

// Vibrato adds a tempo-synced sine to the pitch bend of every note. All notes
// share one global track whose oscillator follows the transport, so held
// notes stay in phase with each other and with the beat.
type Vibrato struct {
	router

	depth    float64
	depthMax float64
	interval modulation.Interval
	tracks   *modulation.TrackSet
}

// NewVibrato creates an enabled vibrato module registered with t.
func NewVibrato(t *transport.Transport, opts ...VibratoOption) (*Vibrato, error) {
	if t == nil {
		return nil, ErrNilTransport
	}

	vc := defaultVibratoConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&vc); err != nil {
			return nil, err
		}
	}
	if vc.depth > vc.depthMax {
		return nil, fmt.Errorf("vibrato depth must be in [0, %g]: %f", vc.depthMax, vc.depth)
	}

	m := &Vibrato{
		depth:    vc.depth,
		depthMax: vc.depthMax,
		interval: vc.interval,
		tracks:   modulation.NewTrackSet(t.Config().BlockSize),
	}
	m.enabled = true
	m.clock = t
	m.updateLFO()
	m.tracks.Global().LFO().SetSamplesPerWholeNote(t.SamplesPerWholeNote())
	m.reg = t.AddPoller(m)
	return m, nil
}

// PlayNote composes the shared vibrato track into the note's pitch bend and
// forwards it. The note's voice is left as it arrived.
func (m *Vibrato) PlayNote(msg note.Message) {
	if m.enabled {
		m.tracks.Track(voice.Global).AppendTo(&msg.Modulation.PitchBend)
	}
	m.out.Forward(msg)
}

// OnTransportAdvanced follows tempo changes and moves the oscillator to the
// start of the new block. The phase keeps running while disabled.
func (m *Vibrato) OnTransportAdvanced(measures float64) {
	lfo := m.tracks.Global().LFO()
	lfo.SetSamplesPerWholeNote(m.clock.SamplesPerWholeNote())
	lfo.Advance(measures * m.clock.WholeNotesPerMeasure())
}

// Depth returns the LFO depth.
func (m *Vibrato) Depth() float64 { return m.depth }

// SetDepth sets the LFO depth in [0, range].
func (m *Vibrato) SetDepth(depth float64) error {
	if depth < 0 || depth > m.depthMax || math.IsNaN(depth) {
		return fmt.Errorf("vibrato depth must be in [0, %g]: %f", m.depthMax, depth)
	}
	m.depth = depth
	m.updateLFO()
	return nil
}

// Interval returns the LFO period as a note length.
func (m *Vibrato) Interval() modulation.Interval { return m.interval }

// SetInterval changes the LFO period. The phase is kept.
func (m *Vibrato) SetInterval(interval modulation.Interval) error {
	if !interval.Valid() {
		return fmt.Errorf("vibrato interval is unknown: %d", int(interval))
	}
	m.interval = interval
	m.updateLFO()
	return nil
}

// Range returns the upper bound of the depth.
func (m *Vibrato) Range() float64 { return m.depthMax }

// SetRange changes the upper bound of the depth. A depth above the new range
// is pulled down to it.
func (m *Vibrato) SetRange(depthMax float64) error {
	if err := validateRange(depthMax); err != nil {
		return err
	}
	m.depthMax = depthMax
	if m.depth > depthMax {
		m.depth = depthMax
		m.updateLFO()
	}
	return nil
}

// Track returns the shared vibrato track.
func (m *Vibrato) Track() *modulation.Track { return m.tracks.Global() }

func (m *Vibrato) updateLFO() {
	m.tracks.Global().SetLFO(m.interval, m.depth)
}

func validateRange(depthMax float64) error {
	if depthMax <= 0 || depthMax > maxVibratoRange || math.IsNaN(depthMax) {
		return fmt.Errorf("vibrato range must be in (0, %g]: %f", maxVibratoRange, depthMax)
	}
	return nil
}

package transport

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-notemod/dsp/core"
)

// ErrNotRegistered is returned when removing a poller that is not attached.
var ErrNotRegistered = errors.New("transport: poller not registered")

// Poller is notified once per processing block.
type Poller interface {
	// OnTransportAdvanced receives the musical time, in measures, that
	// elapsed since the previous tick. The first tick reports 0.
	OnTransportAdvanced(measures float64)
}

// PollerFunc adapts a function to Poller.
type PollerFunc func(measures float64)

// OnTransportAdvanced calls f(measures).
func (f PollerFunc) OnTransportAdvanced(measures float64) {
	f(measures)
}

// Registration is a scoped poller attachment. Closing it detaches the poller;
// no tick is delivered afterwards, including later pollers of a tick that is
// already being dispatched.
type Registration struct {
	t      *Transport
	poller Poller
	active bool
}

// Close detaches the poller. Closing twice is a no-op.
func (r *Registration) Close() error {
	if r == nil || !r.active {
		return nil
	}
	r.t.detach(r)
	return nil
}

// Active reports whether the poller still receives ticks.
func (r *Registration) Active() bool {
	return r != nil && r.active
}

// Transport is a block clock with a tempo and a time signature. It is not
// safe for concurrent use; it runs on the processing thread with the modules
// it drives.
type Transport struct {
	cfg      core.ProcessorConfig
	tempo    float64
	beats    int
	beatUnit int

	started  bool
	position int64 // samples at the start of the current block
	measures float64

	pollers     []*Registration
	dispatching bool
}

// New creates a stopped transport at position zero.
func New(cfg core.ProcessorConfig, opts ...Option) (*Transport, error) {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("transport sample rate must be > 0 and finite: %f", cfg.SampleRate)
	}
	if cfg.BlockSize <= 0 {
		return nil, fmt.Errorf("transport block size must be > 0: %d", cfg.BlockSize)
	}

	tc := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&tc); err != nil {
			return nil, err
		}
	}

	return &Transport{
		cfg:      cfg,
		tempo:    tc.tempo,
		beats:    tc.beats,
		beatUnit: tc.beatUnit,
	}, nil
}

// Config returns the processing configuration.
func (t *Transport) Config() core.ProcessorConfig { return t.cfg }

// Tempo returns quarter notes per minute.
func (t *Transport) Tempo() float64 { return t.tempo }

// SetTempo changes the tempo. It takes effect for time elapsed after the
// next tick.
func (t *Transport) SetTempo(bpm float64) error {
	if err := validateTempo(bpm); err != nil {
		return err
	}
	t.tempo = bpm
	return nil
}

// TimeSignature returns beats per measure and the beat unit.
func (t *Transport) TimeSignature() (beats, beatUnit int) {
	return t.beats, t.beatUnit
}

// WholeNotesPerMeasure returns the measure length in whole notes.
func (t *Transport) WholeNotesPerMeasure() float64 {
	return float64(t.beats) / float64(t.beatUnit)
}

// SamplesPerWholeNote returns the length of a whole note at the current
// tempo.
func (t *Transport) SamplesPerWholeNote() float64 {
	return quartersPerWhole * 60 / t.tempo * t.cfg.SampleRate
}

// SamplesPerMeasure returns the length of one measure at the current tempo.
func (t *Transport) SamplesPerMeasure() float64 {
	return t.SamplesPerWholeNote() * t.WholeNotesPerMeasure()
}

// Now returns the start of the current block in milliseconds.
func (t *Transport) Now() float64 {
	return float64(t.position) * 1000 / t.cfg.SampleRate
}

// Position returns the start of the current block in samples.
func (t *Transport) Position() int64 { return t.position }

// MeasurePosition returns the musical position in measures, accumulated
// across tempo changes.
func (t *Transport) MeasurePosition() float64 { return t.measures }

// Tick starts the next processing block and notifies every poller in
// registration order. The first tick starts block zero and reports no
// elapsed time.
func (t *Transport) Tick() {
	elapsed := 0.0
	if t.started {
		elapsed = float64(t.cfg.BlockSize) / t.SamplesPerMeasure()
		t.position += int64(t.cfg.BlockSize)
		t.measures += elapsed
	}
	t.started = true

	// Pollers added during dispatch start with the next tick.
	t.dispatching = true
	n := len(t.pollers)
	for i := 0; i < n; i++ {
		if r := t.pollers[i]; r.active {
			r.poller.OnTransportAdvanced(elapsed)
		}
	}
	t.dispatching = false
	t.compact()
}

// Reset rewinds the clock to zero. Registrations are kept.
func (t *Transport) Reset() {
	t.started = false
	t.position = 0
	t.measures = 0
}

// AddPoller attaches p and returns its registration.
func (t *Transport) AddPoller(p Poller) *Registration {
	r := &Registration{t: t, poller: p, active: p != nil}
	if r.active {
		t.pollers = append(t.pollers, r)
	}
	return r
}

// RemovePoller detaches the earliest active registration of p. p must be
// comparable; pollers added as a PollerFunc are detached through their
// Registration instead.
func (t *Transport) RemovePoller(p Poller) error {
	for _, r := range t.pollers {
		if r.active && r.poller == p {
			t.detach(r)
			return nil
		}
	}
	return ErrNotRegistered
}

// PollerCount returns the number of attached pollers.
func (t *Transport) PollerCount() int {
	n := 0
	for _, r := range t.pollers {
		if r.active {
			n++
		}
	}
	return n
}

func (t *Transport) detach(r *Registration) {
	r.active = false
	if !t.dispatching {
		t.compact()
	}
}

func (t *Transport) compact() {
	t.pollers = slices.DeleteFunc(t.pollers, func(r *Registration) bool {
		return !r.active
	})
}

package notefx

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-notemod/dsp/core"
	"github.com/cwbudde/algo-notemod/dsp/signal"
	"github.com/cwbudde/algo-notemod/modulation"
	"github.com/cwbudde/algo-notemod/note"
	"github.com/cwbudde/algo-notemod/transport"
	"github.com/cwbudde/algo-notemod/voice"
)

const (
	defaultInstabilityAmount = 0.1
	defaultInstabilityWarble = 0.1
	defaultInstabilityNoise  = 0.0
	defaultInstabilitySeed   = 1
)

// InstabilityOption mutates instability construction parameters.
type InstabilityOption func(*instabilityConfig) error

type instabilityConfig struct {
	amount      float64
	warble      float64
	noise       float64
	seed        int64
	destination note.Destination
}

func defaultInstabilityConfig() instabilityConfig {
	return instabilityConfig{
		amount:      defaultInstabilityAmount,
		warble:      defaultInstabilityWarble,
		noise:       defaultInstabilityNoise,
		seed:        defaultInstabilitySeed,
		destination: note.DestPitchBend,
	}
}

// WithInstabilityAmount sets the peak deviation in [0, 1].
func WithInstabilityAmount(amount float64) InstabilityOption {
	return func(cfg *instabilityConfig) error {
		if err := validateUnit("instability amount", amount); err != nil {
			return err
		}
		cfg.amount = amount
		return nil
	}
}

// WithInstabilityWarble sets the slow drift rate in [0, 1].
func WithInstabilityWarble(warble float64) InstabilityOption {
	return func(cfg *instabilityConfig) error {
		if err := validateUnit("instability warble", warble); err != nil {
			return err
		}
		cfg.warble = warble
		return nil
	}
}

// WithInstabilityNoise sets the fast grain rate in [0, 1].
func WithInstabilityNoise(noise float64) InstabilityOption {
	return func(cfg *instabilityConfig) error {
		if err := validateUnit("instability noise", noise); err != nil {
			return err
		}
		cfg.noise = noise
		return nil
	}
}

// WithInstabilitySeed selects the noise field. Modules with equal seeds and
// parameters produce identical modulation for identical input.
func WithInstabilitySeed(seed int64) InstabilityOption {
	return func(cfg *instabilityConfig) error {
		cfg.seed = seed
		return nil
	}
}

// WithInstabilityDestination selects the payload chain the noise is
// composed into.
func WithInstabilityDestination(d note.Destination) InstabilityOption {
	return func(cfg *instabilityConfig) error {
		switch d {
		case note.DestPitchBend, note.DestModWheel, note.DestPressure:
			cfg.destination = d
			return nil
		default:
			return fmt.Errorf("instability destination is unknown: %d", int(d))
		}
	}
}

// Instability adds per-voice smooth noise to notes. It allocates voices for
// incoming notes, refills the tracks of held voices on every transport tick
// and refills a voice's track immediately when a note is routed to it, so a
// note hears its modulation from its own onset.
type Instability struct {
	router

	cfg         core.ProcessorConfig
	amount      float64
	destination note.Destination
	field       *signal.NoiseField
	alloc       *voice.Allocator
	tracks      *modulation.TrackSet
	work        []float64
}

// NewInstability creates an enabled instability module registered with t.
func NewInstability(t *transport.Transport, opts ...InstabilityOption) (*Instability, error) {
	if t == nil {
		return nil, ErrNilTransport
	}

	ic := defaultInstabilityConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&ic); err != nil {
			return nil, err
		}
	}

	cfg := t.Config()
	field := signal.NewNoiseField(
		signal.WithSeed(ic.seed),
		signal.WithWarble(ic.warble),
		signal.WithNoise(ic.noise),
	)
	m := &Instability{
		cfg:         cfg,
		amount:      ic.amount,
		destination: ic.destination,
		field:       field,
		alloc:       voice.NewAllocator(),
		tracks:      modulation.NewTrackSet(cfg.BlockSize),
		work:        make([]float64, cfg.BlockSize),
	}
	m.enabled = true
	m.clock = t
	m.disabled = m.alloc.ReleaseAll
	m.reg = t.AddPoller(m)
	return m, nil
}

// PlayNote resolves the voice, refreshes its track for the note's time,
// composes the track into the note and forwards it.
func (m *Instability) PlayNote(msg note.Message) {
	if !m.enabled {
		m.out.Forward(msg)
		return
	}

	msg.Pitch = core.ClampInt(msg.Pitch, 0, voice.NumPitches-1)
	msg.Voice = m.alloc.Resolve(msg.Pitch, msg.Velocity, msg.Voice)

	m.FillModulationBuffer(msg.Time, msg.Voice)
	m.tracks.Track(msg.Voice).AppendTo(msg.Modulation.Chain(m.destination))

	m.out.Forward(msg)
}

// OnTransportAdvanced refills the tracks of every held voice for the block
// that starts now.
func (m *Instability) OnTransportAdvanced(float64) {
	if !m.enabled {
		return
	}
	now := m.clock.Now()
	for v := range voice.Count {
		if m.alloc.InUse(v) {
			m.FillModulationBuffer(now, v)
		}
	}
}

// FillModulationBuffer writes one block of noise for voice v starting at
// timeMs.
func (m *Instability) FillModulationBuffer(timeMs float64, v int) {
	inv := m.cfg.InvSampleRateMs()
	lane := float64(v)
	for i := range m.work {
		t := timeMs + float64(i)*inv
		m.work[i] = m.field.Bipolar(t, t/1000, lane, m.amount)
	}
	m.tracks.Track(v).FillBuffer(m.work)
}

// Amount returns the peak deviation.
func (m *Instability) Amount() float64 { return m.amount }

// SetAmount sets the peak deviation in [0, 1]. It applies from the next
// refill.
func (m *Instability) SetAmount(amount float64) error {
	if err := validateUnit("instability amount", amount); err != nil {
		return err
	}
	m.amount = amount
	return nil
}

// Warble returns the slow drift rate.
func (m *Instability) Warble() float64 { return m.field.Warble() }

// SetWarble sets the slow drift rate in [0, 1].
func (m *Instability) SetWarble(warble float64) error {
	if err := validateUnit("instability warble", warble); err != nil {
		return err
	}
	m.field.SetWarble(warble)
	return nil
}

// Noise returns the fast grain rate.
func (m *Instability) Noise() float64 { return m.field.Noise() }

// SetNoise sets the fast grain rate in [0, 1].
func (m *Instability) SetNoise(noise float64) error {
	if err := validateUnit("instability noise", noise); err != nil {
		return err
	}
	m.field.SetNoise(noise)
	return nil
}

// Seed returns the noise field seed.
func (m *Instability) Seed() int64 { return m.field.Seed() }

// SetSeed switches to the noise field of seed, keeping warble and noise.
func (m *Instability) SetSeed(seed int64) {
	if seed == m.field.Seed() {
		return
	}
	m.field = signal.NewNoiseField(
		signal.WithSeed(seed),
		signal.WithWarble(m.field.Warble()),
		signal.WithNoise(m.field.Noise()),
	)
}

// Destination returns the payload chain the module writes to.
func (m *Instability) Destination() note.Destination { return m.destination }

// VoiceInUse reports whether voice v is held.
func (m *Instability) VoiceInUse(v int) bool { return m.alloc.InUse(v) }

// ActiveVoices returns the number of held voices.
func (m *Instability) ActiveVoices() int { return m.alloc.ActiveCount() }

// Track returns the track of voice v for inspection.
func (m *Instability) Track(v int) *modulation.Track { return m.tracks.Track(v) }

func validateUnit(name string, v float64) error {
	if v < 0 || v > 1 || math.IsNaN(v) {
		return fmt.Errorf("%s must be in [0, 1]: %f", name, v)
	}
	return nil
}

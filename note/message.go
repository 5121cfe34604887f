package note

import "github.com/cwbudde/algo-notemod/voice"

// Message is one note event. Velocity 0 means note-off. Voice may arrive as
// voice.Unassigned and is resolved by the first module that allocates voices.
type Message struct {
	Pitch      int
	Velocity   float64
	Voice      int
	Time       float64 // milliseconds
	Modulation Modulation
}

// Modulation is the composed control payload attached to a note.
type Modulation struct {
	PitchBend Chain
	ModWheel  Chain
	Pressure  Chain
}

// On returns a note-on with an unassigned voice and an empty payload.
func On(pitch int, velocity, timeMs float64) Message {
	return Message{Pitch: pitch, Velocity: velocity, Voice: voice.Unassigned, Time: timeMs}
}

// Off returns a note-off with an unassigned voice and an empty payload.
func Off(pitch int, timeMs float64) Message {
	return Message{Pitch: pitch, Voice: voice.Unassigned, Time: timeMs}
}

// IsOn reports whether the message starts a note.
func (m Message) IsOn() bool {
	return m.Velocity > 0
}

// Destination selects one of the payload chains.
type Destination int

const (
	DestPitchBend Destination = iota
	DestModWheel
	DestPressure
)

// String returns the patch name of the destination.
func (d Destination) String() string {
	switch d {
	case DestPitchBend:
		return "pitchbend"
	case DestModWheel:
		return "modwheel"
	case DestPressure:
		return "pressure"
	default:
		return "unknown"
	}
}

// Chain returns the payload chain for d. Unknown destinations resolve to
// the pitch-bend chain.
func (p *Modulation) Chain(d Destination) *Chain {
	switch d {
	case DestModWheel:
		return &p.ModWheel
	case DestPressure:
		return &p.Pressure
	default:
		return &p.PitchBend
	}
}

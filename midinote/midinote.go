// Package midinote converts between raw MIDI channel messages and note
// messages.
//
// Note velocities keep the MIDI scale: a decoded note-on carries a velocity
// in [1, 127] and a note-off carries 0. Continuous modulation values are
// bipolar offsets in [-1, 1] and are encoded around the controller centre.
package midinote

import (
	"math"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/cwbudde/algo-notemod/dsp/core"
	"github.com/cwbudde/algo-notemod/note"
)

const (
	// ModWheelController is the MIDI controller number of the mod wheel.
	ModWheelController = 1

	maxDataByte   = 127
	maxChannel    = 15
	pitchBendSpan = 8192
)

// Event is a decoded note with the channel it arrived on.
type Event struct {
	Note    note.Message
	Channel uint8
}

// Decode converts a note-on or note-off message received at timeMs. A
// note-on with velocity 0 decodes as a note-off. ok is false for any other
// message.
func Decode(msg gomidi.Message, timeMs float64) (ev Event, ok bool) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		return Event{Note: note.On(int(key), float64(vel), timeMs), Channel: ch}, true
	case msg.GetNoteEnd(&ch, &key):
		return Event{Note: note.Off(int(key), timeMs), Channel: ch}, true
	default:
		return Event{}, false
	}
}

// Encode converts m into a note-on or note-off message on channel. Pitch and
// channel are clamped to their MIDI ranges; a note-on velocity is rounded
// and kept at least 1 so it never reads back as a note-off.
func Encode(m note.Message, channel uint8) gomidi.Message {
	ch := min(channel, maxChannel)
	key := uint8(core.ClampInt(m.Pitch, 0, maxDataByte))
	if !m.IsOn() {
		return gomidi.NoteOff(ch, key)
	}
	vel := uint8(core.Clamp(math.Round(m.Velocity), 1, maxDataByte))
	return gomidi.NoteOn(ch, key, vel)
}

// EncodeModulation converts one modulation sample for destination d into a
// channel message: pitch bend, mod-wheel control change or channel
// pressure. value is clamped to [-1, 1]; 0 maps to the controller centre.
func EncodeModulation(d note.Destination, channel uint8, value float64) gomidi.Message {
	ch := min(channel, maxChannel)
	if !core.IsFinite(value) {
		value = 0
	}
	value = core.Clamp(value, -1, 1)

	switch d {
	case note.DestModWheel:
		return gomidi.ControlChange(ch, ModWheelController, unipolarByte(value))
	case note.DestPressure:
		return gomidi.AfterTouch(ch, unipolarByte(value))
	default:
		bend := math.Round(value * pitchBendSpan)
		return gomidi.Pitchbend(ch, int16(core.Clamp(bend, -pitchBendSpan, pitchBendSpan-1)))
	}
}

// unipolarByte maps [-1, 1] onto [0, 127].
func unipolarByte(value float64) uint8 {
	return uint8(math.Round(core.MapRange(value, -1, 1, 0, maxDataByte)))
}

package midinote

import (
	"bytes"
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/cwbudde/algo-notemod/note"
	"github.com/cwbudde/algo-notemod/voice"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		msg     gomidi.Message
		wantOK  bool
		pitch   int
		vel     float64
		channel uint8
	}{
		{"note on", gomidi.NoteOn(2, 60, 100), true, 60, 100, 2},
		{"note on zero velocity", gomidi.NoteOn(0, 64, 0), true, 64, 0, 0},
		{"note off", gomidi.NoteOff(9, 36), true, 36, 0, 9},
		{"control change", gomidi.ControlChange(0, 1, 64), false, 0, 0, 0},
		{"pitch bend", gomidi.Pitchbend(0, 100), false, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := Decode(tt.msg, 12.5)
			if ok != tt.wantOK {
				t.Fatalf("Decode() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if ev.Note.Pitch != tt.pitch || ev.Note.Velocity != tt.vel || ev.Channel != tt.channel {
				t.Fatalf("Decode() = %+v", ev)
			}
			if ev.Note.Time != 12.5 || ev.Note.Voice != voice.Unassigned {
				t.Fatalf("Decode() time=%v voice=%d", ev.Note.Time, ev.Note.Voice)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		msg     note.Message
		channel uint8
		want    []byte
	}{
		{"note on", note.On(60, 100, 0), 0, []byte{0x90, 60, 100}},
		{"rounded velocity", note.On(61, 99.6, 0), 3, []byte{0x93, 61, 100}},
		{"tiny velocity stays on", note.On(62, 0.1, 0), 0, []byte{0x90, 62, 1}},
		{"loud velocity", note.On(63, 300, 0), 0, []byte{0x90, 63, 127}},
		{"pitch clamped", note.On(200, 100, 0), 0, []byte{0x90, 127, 100}},
		{"channel clamped", note.On(60, 100, 0), 40, []byte{0x9F, 60, 100}},
		{"note off", note.Off(60, 0), 1, []byte{0x81, 60, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.msg, tt.channel)
			if !bytes.Equal([]byte(got), tt.want) {
				t.Fatalf("Encode() = % X, want % X", []byte(got), tt.want)
			}
		})
	}
}

func TestEncodeDecodeKeepsNote(t *testing.T) {
	for pitch := 0; pitch < voice.NumPitches; pitch += 7 {
		in := note.On(pitch, float64(1+pitch%127), 0)
		ev, ok := Decode(Encode(in, 5), 0)
		if !ok || ev.Note.Pitch != pitch || ev.Note.Velocity != in.Velocity || ev.Channel != 5 {
			t.Fatalf("pitch %d: got %+v", pitch, ev)
		}

		ev, ok = Decode(Encode(note.Off(pitch, 0), 5), 0)
		if !ok || ev.Note.IsOn() || ev.Note.Pitch != pitch {
			t.Fatalf("pitch %d off: got %+v", pitch, ev)
		}
	}
}

func TestEncodeModulation(t *testing.T) {
	tests := []struct {
		name  string
		dest  note.Destination
		value float64
		want  []byte
	}{
		{"bend centre", note.DestPitchBend, 0, []byte{0xE0, 0x00, 0x40}},
		{"bend top", note.DestPitchBend, 1, []byte{0xE0, 0x7F, 0x7F}},
		{"bend bottom", note.DestPitchBend, -1, []byte{0xE0, 0x00, 0x00}},
		{"bend clamped", note.DestPitchBend, -4, []byte{0xE0, 0x00, 0x00}},
		{"mod wheel top", note.DestModWheel, 1, []byte{0xB0, ModWheelController, 127}},
		{"mod wheel bottom", note.DestModWheel, -1, []byte{0xB0, ModWheelController, 0}},
		{"pressure centre", note.DestPressure, 0, []byte{0xD0, 64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeModulation(tt.dest, 0, tt.value)
			if !bytes.Equal([]byte(got), tt.want) {
				t.Fatalf("EncodeModulation() = % X, want % X", []byte(got), tt.want)
			}
		})
	}
}

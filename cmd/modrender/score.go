package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-notemod/midinote"
	"github.com/cwbudde/algo-notemod/note"
)

// Score is the performance rendered through a patch. Notes are expanded to
// MIDI note-on/off pairs; Events are raw MIDI messages.
type Score struct {
	Tempo         float64     `yaml:"tempo"`
	TimeSignature []int       `yaml:"timesig"`
	Duration      float64     `yaml:"duration"`
	Channel       uint8       `yaml:"channel"`
	Notes         []ScoreNote `yaml:"notes"`
	Events        []RawEvent  `yaml:"events"`
}

// ScoreNote is a held note. Times are in milliseconds.
type ScoreNote struct {
	At       float64 `yaml:"at"`
	Pitch    int     `yaml:"pitch"`
	Velocity float64 `yaml:"velocity"`
	Length   float64 `yaml:"length"`
}

// RawEvent is a MIDI message delivered at a time in milliseconds.
type RawEvent struct {
	At   float64 `yaml:"at"`
	MIDI []int   `yaml:"midi"`
}

type timedMessage struct {
	at  float64
	msg gomidi.Message
}

const defaultTail = 500

var errEmptyScore = errors.New("score has no notes or events")

// LoadScore reads a YAML score file.
func LoadScore(path string) (Score, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Score{}, err
	}
	return ParseScore(raw)
}

// ParseScore decodes and validates a YAML score.
func ParseScore(raw []byte) (Score, error) {
	var s Score
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Score{}, fmt.Errorf("invalid score yaml: %w", err)
	}
	if len(s.Notes) == 0 && len(s.Events) == 0 {
		return Score{}, errEmptyScore
	}
	if len(s.TimeSignature) != 0 && len(s.TimeSignature) != 2 {
		return Score{}, fmt.Errorf("timesig needs two values: %v", s.TimeSignature)
	}

	for i, n := range s.Notes {
		if n.At < 0 || n.Length <= 0 {
			return Score{}, fmt.Errorf("note %d: at must be >= 0 and length > 0", i)
		}
		if n.Velocity == 0 {
			s.Notes[i].Velocity = 100
		}
	}
	for i, e := range s.Events {
		if e.At < 0 || len(e.MIDI) == 0 {
			return Score{}, fmt.Errorf("event %d: at must be >= 0 and midi must not be empty", i)
		}
		for _, b := range e.MIDI {
			if b < 0 || b > 0xFF {
				return Score{}, fmt.Errorf("event %d: midi byte out of range: %d", i, b)
			}
		}
	}

	return s, nil
}

// messages returns every MIDI message of the score ordered by time. Note-offs
// sort before note-ons at the same time so a repeated pitch retriggers.
func (s Score) messages() []timedMessage {
	out := make([]timedMessage, 0, 2*len(s.Notes)+len(s.Events))
	for _, n := range s.Notes {
		out = append(out,
			timedMessage{at: n.At, msg: midinote.Encode(note.On(n.Pitch, n.Velocity, n.At), s.Channel)},
			timedMessage{at: n.At + n.Length, msg: midinote.Encode(note.Off(n.Pitch, n.At+n.Length), s.Channel)},
		)
	}
	for _, e := range s.Events {
		raw := make([]byte, len(e.MIDI))
		for i, b := range e.MIDI {
			raw[i] = byte(b)
		}
		out = append(out, timedMessage{at: e.At, msg: gomidi.Message(raw)})
	}

	slices.SortStableFunc(out, func(a, b timedMessage) int {
		if a.at != b.at {
			if a.at < b.at {
				return -1
			}
			return 1
		}
		return offRank(a.msg) - offRank(b.msg)
	})
	return out
}

// length returns the rendered duration in milliseconds.
func (s Score) length() float64 {
	if s.Duration > 0 {
		return s.Duration
	}
	var end float64
	for _, m := range s.messages() {
		end = max(end, m.at)
	}
	return end + defaultTail
}

func offRank(msg gomidi.Message) int {
	if ev, ok := midinote.Decode(msg, 0); ok && !ev.Note.IsOn() {
		return 0
	}
	return 1
}

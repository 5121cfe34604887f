package modulation

import (
	"errors"
	"fmt"
)

// Interval is a musical note length used to sync LFOs to the transport.
type Interval int

const (
	Interval1n Interval = iota
	Interval2n
	Interval4nd
	Interval4n
	Interval4nt
	Interval8nd
	Interval8n
	Interval8nt
	Interval16nd
	Interval16n
	Interval16nt
	Interval32n
	Interval32nt
	numIntervals
)

// ErrUnknownInterval is returned by ParseInterval for unrecognised labels.
var ErrUnknownInterval = errors.New("unknown interval")

var intervalInfo = [numIntervals]struct {
	label      string
	wholeNotes float64
}{
	Interval1n:   {"1n", 1},
	Interval2n:   {"2n", 1.0 / 2},
	Interval4nd:  {"4nd", 1.0 / 4 * 1.5},
	Interval4n:   {"4n", 1.0 / 4},
	Interval4nt:  {"4nt", 1.0 / 4 * 2 / 3},
	Interval8nd:  {"8nd", 1.0 / 8 * 1.5},
	Interval8n:   {"8n", 1.0 / 8},
	Interval8nt:  {"8nt", 1.0 / 8 * 2 / 3},
	Interval16nd: {"16nd", 1.0 / 16 * 1.5},
	Interval16n:  {"16n", 1.0 / 16},
	Interval16nt: {"16nt", 1.0 / 16 * 2 / 3},
	Interval32n:  {"32n", 1.0 / 32},
	Interval32nt: {"32nt", 1.0 / 32 * 2 / 3},
}

// Intervals returns every interval in selector order.
func Intervals() []Interval {
	out := make([]Interval, numIntervals)
	for i := range out {
		out[i] = Interval(i)
	}
	return out
}

// Valid reports whether i is a known interval.
func (i Interval) Valid() bool {
	return i >= 0 && i < numIntervals
}

// WholeNotes returns the interval length in whole notes. Unknown intervals
// report a quarter note.
func (i Interval) WholeNotes() float64 {
	if !i.Valid() {
		return intervalInfo[Interval4n].wholeNotes
	}
	return intervalInfo[i].wholeNotes
}

// String returns the patch label, e.g. "8nt".
func (i Interval) String() string {
	if !i.Valid() {
		return fmt.Sprintf("Interval(%d)", int(i))
	}
	return intervalInfo[i].label
}

// ParseInterval converts a label such as "16n" or "4nt" to an Interval.
func ParseInterval(label string) (Interval, error) {
	for i, info := range intervalInfo {
		if info.label == label {
			return Interval(i), nil
		}
	}
	return Interval4n, fmt.Errorf("%w: %q", ErrUnknownInterval, label)
}

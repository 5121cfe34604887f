// Package voice maps note events onto a fixed pool of polyphonic voices.
package voice

const (
	// Count is the number of polyphonic voice slots.
	Count = 16
	// Unassigned marks a note whose voice has not been chosen yet.
	Unassigned = -1
	// Global addresses the slot shared by all voices in a track set.
	Global = -1
	// NumPitches is the size of the MIDI pitch range.
	NumPitches = 128

	noVoice = -1
)

// Allocator assigns voices round-robin and remembers the last voice used by
// each pitch so that note-offs can find their voice.
//
// Only the most recent voice per pitch is kept. Two overlapping note-ons for
// the same pitch therefore share one table entry: the first note-off releases
// the voice of the second note-on and the second note-off falls back to
// voice 0.
type Allocator struct {
	pitchToVoice [NumPitches]int
	inUse        [Count]bool
	cursor       int
}

// NewAllocator returns an allocator with every voice free.
func NewAllocator() *Allocator {
	a := &Allocator{}
	a.Reset()
	return a
}

// Reset frees every voice, forgets all pitches and rewinds the cursor.
func (a *Allocator) Reset() {
	for i := range a.pitchToVoice {
		a.pitchToVoice[i] = noVoice
	}
	a.inUse = [Count]bool{}
	a.cursor = 0
}

// ReleaseAll marks every voice free without touching the pitch table or the
// cursor.
func (a *Allocator) ReleaseAll() {
	a.inUse = [Count]bool{}
}

// Resolve returns the voice for a note event and updates the allocation
// state. A requested voice in [0, Count) is used unchanged. Otherwise a
// note-on takes the first free voice scanning from the cursor, or steals the
// voice at the cursor when all are busy; a note-off takes the voice recorded
// for its pitch. The cursor advances by one on every allocating note-on.
// Out-of-range pitches and results are clamped rather than reported.
func (a *Allocator) Resolve(pitch int, velocity float64, requested int) int {
	pitch = clampPitch(pitch)
	on := velocity > 0

	v := requested
	if !validVoice(v) {
		if on {
			v = a.allocate()
		} else {
			v = a.pitchToVoice[pitch]
		}
	}

	if !validVoice(v) {
		v = 0
	}

	a.inUse[v] = on
	if on {
		a.pitchToVoice[pitch] = v
	} else {
		a.pitchToVoice[pitch] = noVoice
	}

	return v
}

func (a *Allocator) allocate() int {
	v := a.cursor
	for i := range Count {
		candidate := (a.cursor + i) % Count
		if !a.inUse[candidate] {
			v = candidate
			break
		}
	}
	a.cursor = (a.cursor + 1) % Count
	return v
}

// InUse reports whether voice v is currently held.
func (a *Allocator) InUse(v int) bool {
	if !validVoice(v) {
		return false
	}
	return a.inUse[v]
}

// ActiveCount returns the number of held voices.
func (a *Allocator) ActiveCount() int {
	n := 0
	for _, used := range a.inUse {
		if used {
			n++
		}
	}
	return n
}

// VoiceForPitch returns the voice last assigned to pitch and whether the
// pitch is currently held.
func (a *Allocator) VoiceForPitch(pitch int) (int, bool) {
	v := a.pitchToVoice[clampPitch(pitch)]
	return v, v != noVoice
}

// Cursor returns the voice the next round-robin scan starts from.
func (a *Allocator) Cursor() int {
	return a.cursor
}

func validVoice(v int) bool {
	return v >= 0 && v < Count
}

func clampPitch(p int) int {
	if p < 0 {
		return 0
	}
	if p >= NumPitches {
		return NumPitches - 1
	}
	return p
}

package modulation

import "github.com/cwbudde/algo-notemod/voice"

// TrackSet owns one Track per voice plus the shared global track.
type TrackSet struct {
	global *Track
	voices [voice.Count]*Track
}

// NewTrackSet allocates every track of the set.
func NewTrackSet(blockSize int) *TrackSet {
	s := &TrackSet{global: NewTrack(blockSize)}
	for i := range s.voices {
		s.voices[i] = NewTrack(blockSize)
	}
	return s
}

// Track returns the track for voice v. voice.Global selects the shared
// track; any other out-of-range index resolves to voice 0.
func (s *TrackSet) Track(v int) *Track {
	if v == voice.Global {
		return s.global
	}
	if v < 0 || v >= voice.Count {
		v = 0
	}
	return s.voices[v]
}

// Global returns the shared track.
func (s *TrackSet) Global() *Track {
	return s.global
}

// BlockSize returns the track length.
func (s *TrackSet) BlockSize() int {
	return s.global.Len()
}

// Package notefx contains note modules that attach continuous modulation to
// the notes passing through them.
//
// A module receives a note, optionally resolves its voice, composes one of
// its modulation tracks into the note's payload and forwards the note to a
// single downstream receiver. Modules register with a transport.Transport
// when built and must be closed to stop receiving ticks.
//
// Instability writes decorrelated smooth noise into per-voice tracks once per
// block. Vibrato shares one tempo-synced LFO track between all notes.
package notefx

// Package modulation holds the per-voice control-signal tracks that note
// modules write and note consumers read.
//
// A Track carries one block of samples plus an optional tempo-synced LFO
// evaluated on demand. A TrackSet owns one Track per voice and a shared
// global Track. Tracks are allocated once with their owning module; routing a
// note only appends a Track pointer to the note's composition chain.
package modulation

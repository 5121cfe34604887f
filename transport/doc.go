// Package transport provides the musical clock that drives block-synchronous
// modulation.
//
// A Transport is owned by the audio-processing context. Modules register
// themselves as pollers when they are built and close their Registration on
// teardown; the host calls Tick once at the start of every processing block,
// before any note of that block is routed.
package transport

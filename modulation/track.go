package modulation

import (
	"github.com/cwbudde/algo-notemod/dsp/buffer"
	"github.com/cwbudde/algo-notemod/note"
)

// Track is one continuous control signal for one voice slot. It composes a
// per-sample buffer written by generators with an optional LFO evaluated on
// demand. Track implements note.Contributor.
type Track struct {
	buf *buffer.Buffer
	lfo *LFO
}

// NewTrack returns a zeroed track of blockSize samples.
func NewTrack(blockSize int) *Track {
	return &Track{buf: buffer.New(blockSize)}
}

// Len returns the block size.
func (t *Track) Len() int {
	return t.buf.Len()
}

// Buffer exposes the per-sample part of the track.
func (t *Track) Buffer() *buffer.Buffer {
	return t.buf
}

// FillBuffer overwrites the per-sample part with src.
func (t *Track) FillBuffer(src []float64) {
	t.buf.Fill(src)
}

// FillFunc overwrites the per-sample part with gen(i).
func (t *Track) FillFunc(gen func(i int) float64) {
	t.buf.FillFunc(gen)
}

// SetValue writes a single sample.
func (t *Track) SetValue(i int, v float64) {
	t.buf.Set(i, v)
}

// Clear zeroes the per-sample part. The LFO is left as configured.
func (t *Track) Clear() {
	t.buf.Zero()
}

// SetLFO configures the track oscillator, creating it on first use.
func (t *Track) SetLFO(interval Interval, depth float64) {
	if t.lfo == nil {
		t.lfo = NewLFO()
	}
	t.lfo.Set(interval, depth)
}

// LFO returns the track oscillator, or nil if none was configured.
func (t *Track) LFO() *LFO {
	return t.lfo
}

// ValueAt returns the track value i samples into the block.
func (t *Track) ValueAt(i int) float64 {
	v := t.buf.At(i)
	if t.lfo != nil {
		v += t.lfo.ValueAt(i)
	}
	return v
}

// Render writes the track's block into dst.
func (t *Track) Render(dst []float64) {
	if t.lfo != nil {
		t.lfo.Render(dst)
	} else {
		clear(dst)
	}
	t.buf.AddTo(dst)
}

// Peak returns the largest absolute value in the per-sample part.
func (t *Track) Peak() float64 {
	return t.buf.Peak()
}

// AppendTo composes the track into a note's chain. It reports false when the
// chain is full.
func (t *Track) AppendTo(ch *note.Chain) bool {
	return ch.Append(t)
}

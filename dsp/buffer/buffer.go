package buffer

import "github.com/cwbudde/algo-vecmath"

// Buffer wraps a float64 slice holding one block of a control signal.
// The length is fixed at construction for modulation use; Resize exists for
// pooled scratch space.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]float64, length)}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// At returns sample i, or 0 when i is out of range.
func (b *Buffer) At(i int) float64 {
	if i < 0 || i >= len(b.samples) {
		return 0
	}
	return b.samples[i]
}

// Set writes sample i. Out-of-range writes are ignored.
func (b *Buffer) Set(i int, v float64) {
	if i < 0 || i >= len(b.samples) {
		return
	}
	b.samples[i] = v
}

// Fill overwrites the buffer with src. A shorter src leaves the remaining
// samples at zero; a longer one is truncated.
func (b *Buffer) Fill(src []float64) {
	n := copy(b.samples, src)
	clear(b.samples[n:])
}

// FillFunc overwrites every sample with gen(i).
func (b *Buffer) FillFunc(gen func(i int) float64) {
	for i := range b.samples {
		b.samples[i] = gen(i)
	}
}

// AddTo accumulates the buffer into dst over their common length.
func (b *Buffer) AddTo(dst []float64) {
	n := min(len(dst), len(b.samples))
	if n == 0 {
		return
	}
	vecmath.AddBlockInPlace(dst[:n], b.samples[:n])
}

// Peak returns the largest absolute sample value.
func (b *Buffer) Peak() float64 {
	if len(b.samples) == 0 {
		return 0
	}
	return vecmath.MaxAbs(b.samples)
}

// Resize sets the length to n, reusing existing capacity when possible.
// New elements beyond the previous length are zeroed.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		n = 0
	}
	oldLen := len(b.samples)
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
	} else {
		s := make([]float64, n)
		copy(s, b.samples)
		b.samples = s
	}
	if n > oldLen {
		clear(b.samples[oldLen:n])
	}
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	clear(b.samples)
}

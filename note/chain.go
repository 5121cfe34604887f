package note

import "github.com/cwbudde/algo-vecmath"

// MaxContributors bounds the number of sources one chain can compose.
const MaxContributors = 16

// Contributor is one source's share of a composed control signal for the
// current block.
type Contributor interface {
	// ValueAt returns the contribution at sample offset i within the block.
	ValueAt(i int) float64
	// Render overwrites dst with the contribution for the block.
	Render(dst []float64)
}

// Chain is an ordered, fixed-capacity composition list. It is a value type:
// copying a Message copies its chains, so a downstream append never changes
// what an upstream holder sees.
type Chain struct {
	links [MaxContributors]Contributor
	n     int
}

// Append adds c at the end of the chain. It returns false when c is nil or
// the chain is full; the chain is unchanged in that case.
func (ch *Chain) Append(c Contributor) bool {
	if c == nil || ch.n >= MaxContributors {
		return false
	}
	ch.links[ch.n] = c
	ch.n++
	return true
}

// Len returns the number of contributors.
func (ch *Chain) Len() int {
	return ch.n
}

// At returns contributor i in append order, or nil when out of range.
func (ch *Chain) At(i int) Contributor {
	if i < 0 || i >= ch.n {
		return nil
	}
	return ch.links[i]
}

// Head returns the most recently appended contributor, or nil.
func (ch *Chain) Head() Contributor {
	return ch.At(ch.n - 1)
}

// ValueAt returns the composed value at sample offset i.
func (ch *Chain) ValueAt(i int) float64 {
	sum := 0.0
	for _, c := range ch.links[:ch.n] {
		sum += c.ValueAt(i)
	}
	return sum
}

// Render writes the composed block into dst. scratch must be at least as long
// as dst; when it is not, Render falls back to per-sample evaluation.
func (ch *Chain) Render(dst, scratch []float64) {
	clear(dst)
	if ch.n == 0 || len(dst) == 0 {
		return
	}
	if len(scratch) < len(dst) {
		for i := range dst {
			dst[i] = ch.ValueAt(i)
		}
		return
	}

	scratch = scratch[:len(dst)]
	for _, c := range ch.links[:ch.n] {
		c.Render(scratch)
		vecmath.AddBlockInPlace(dst, scratch)
	}
}

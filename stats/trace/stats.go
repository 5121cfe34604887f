// Package trace summarises rendered modulation signals.
//
// A trace is the sample stream a modulation chain produces for one voice
// over many blocks. The statistics answer the questions that matter when
// tuning a patch: how far the signal wanders, whether it stays centred and
// how abruptly it moves between samples.
package trace

import "math"

// Stats holds the summary of a modulation trace.
type Stats struct {
	Length        int
	Mean          float64
	StdDev        float64
	RMS           float64
	Min           float64
	Max           float64
	Peak          float64 // max(|Min|, |Max|)
	MaxStep       float64 // largest |x[n] - x[n-1]|
	ZeroCrossings int
}

// Calculate summarises a complete trace in one pass.
func Calculate(signal []float64) Stats {
	var s Streaming
	s.Update(signal)
	return s.Result()
}

// Streaming accumulates Stats block by block. Mean and variance use
// Welford's update so long traces keep their precision. The zero value is
// ready to use.
type Streaming struct {
	n             int
	mean          float64
	m2            float64
	sumSq         float64
	minVal        float64
	maxVal        float64
	maxStep       float64
	zeroCrossings int
	last          float64
}

// Update adds a block of samples.
func (s *Streaming) Update(samples []float64) {
	for _, x := range samples {
		s.n++
		delta := x - s.mean
		s.mean += delta / float64(s.n)
		s.m2 += delta * (x - s.mean)
		s.sumSq += x * x

		if s.n == 1 {
			s.minVal, s.maxVal = x, x
			s.last = x
			continue
		}

		s.minVal = math.Min(s.minVal, x)
		s.maxVal = math.Max(s.maxVal, x)
		s.maxStep = math.Max(s.maxStep, math.Abs(x-s.last))
		if s.last*x < 0 {
			s.zeroCrossings++
		}
		s.last = x
	}
}

// Len returns the number of samples seen.
func (s *Streaming) Len() int {
	return s.n
}

// Reset discards all accumulated samples.
func (s *Streaming) Reset() {
	*s = Streaming{}
}

// Result returns the statistics of every sample seen so far.
func (s *Streaming) Result() Stats {
	if s.n == 0 {
		return Stats{}
	}

	nf := float64(s.n)
	return Stats{
		Length:        s.n,
		Mean:          s.mean,
		StdDev:        math.Sqrt(s.m2 / nf),
		RMS:           math.Sqrt(s.sumSq / nf),
		Min:           s.minVal,
		Max:           s.maxVal,
		Peak:          math.Max(math.Abs(s.minVal), math.Abs(s.maxVal)),
		MaxStep:       s.maxStep,
		ZeroCrossings: s.zeroCrossings,
	}
}

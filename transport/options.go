package transport

import (
	"fmt"
	"math"
)

const (
	defaultTempo     = 120.0
	defaultBeats     = 4
	defaultBeatUnit  = 4
	maxTempo         = 999.0
	maxTimeSigValue  = 32
	quartersPerWhole = 4.0
)

// Option mutates transport construction parameters.
type Option func(*config) error

type config struct {
	tempo    float64
	beats    int
	beatUnit int
}

func defaultConfig() config {
	return config{
		tempo:    defaultTempo,
		beats:    defaultBeats,
		beatUnit: defaultBeatUnit,
	}
}

// WithTempo sets the tempo in quarter notes per minute.
func WithTempo(bpm float64) Option {
	return func(cfg *config) error {
		if err := validateTempo(bpm); err != nil {
			return err
		}
		cfg.tempo = bpm
		return nil
	}
}

// WithTimeSignature sets beats per measure and the beat unit, e.g. 6/8.
func WithTimeSignature(beats, beatUnit int) Option {
	return func(cfg *config) error {
		if beats <= 0 || beats > maxTimeSigValue {
			return fmt.Errorf("transport beats per measure must be in [1, %d]: %d", maxTimeSigValue, beats)
		}
		if beatUnit <= 0 || beatUnit > maxTimeSigValue || beatUnit&(beatUnit-1) != 0 {
			return fmt.Errorf("transport beat unit must be a power of two in [1, %d]: %d", maxTimeSigValue, beatUnit)
		}
		cfg.beats = beats
		cfg.beatUnit = beatUnit
		return nil
	}
}

func validateTempo(bpm float64) error {
	if bpm <= 0 || bpm > maxTempo || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return fmt.Errorf("transport tempo must be in (0, %g]: %f", maxTempo, bpm)
	}
	return nil
}

package notechain

import (
	"github.com/cwbudde/algo-notemod/note"
	"github.com/cwbudde/algo-notemod/notefx"
)

// Built-in module types.
const (
	TypeUnstablePitch    = "unstablepitch"
	TypeUnstableModWheel = "unstablemodwheel"
	TypeUnstablePressure = "unstablepressure"
	TypeVibrato          = "vibrato"
)

// DefaultRegistry returns a Registry pre-populated with all built-in modules.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(TypeUnstablePitch, instabilityFactory(note.DestPitchBend))
	r.MustRegister(TypeUnstableModWheel, instabilityFactory(note.DestModWheel))
	r.MustRegister(TypeUnstablePressure, instabilityFactory(note.DestPressure))
	r.MustRegister(TypeVibrato, func(ctx Context) (Module, error) {
		m, err := notefx.NewVibrato(ctx.Transport)
		if err != nil {
			return nil, err
		}

		return &vibratoRuntime{Vibrato: m}, nil
	})

	return r
}

func instabilityFactory(d note.Destination) Factory {
	return func(ctx Context) (Module, error) {
		m, err := notefx.NewInstability(ctx.Transport, notefx.WithInstabilityDestination(d))
		if err != nil {
			return nil, err
		}

		return &instabilityRuntime{Instability: m}, nil
	}
}

package notechain

import (
	"errors"
	"fmt"
)

// Factory builds one Module instance for a node.
type Factory func(ctx Context) (Module, error)

// Registry maps module type names to their factories.
type Registry struct {
	factories map[string]Factory
}

var errDuplicateModule = errors.New("duplicate module type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given module type.
func (r *Registry) Register(moduleType string, factory Factory) error {
	if moduleType == "" {
		return errors.New("empty module type")
	}

	if isReservedNodeType(moduleType) {
		return fmt.Errorf("reserved module type: %s", moduleType)
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[moduleType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateModule, moduleType)
	}

	r.factories[moduleType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(moduleType string, factory Factory) {
	err := r.Register(moduleType, factory)
	if err != nil {
		panic("notechain registry: " + err.Error())
	}
}

// Lookup returns the factory for the given module type, or nil.
func (r *Registry) Lookup(moduleType string) Factory {
	return r.factories[moduleType]
}

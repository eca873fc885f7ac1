package chain

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-sourcechain/pkg/chain/model"
)

type materializeConfig struct {
	name      string
	configure func(model.Step) error
	index     int
	at        bool
}

type MaterializeOption func(cfg *materializeConfig)

// WithName sets the name of the step instead of the generated one.
func WithName(name string) MaterializeOption {
	return func(cfg *materializeConfig) {
		cfg.name = name
	}
}

// WithIndex inserts the step at index instead of appending it.
// The steps from index onwards are then fed by the new step.
func WithIndex(index int) MaterializeOption {
	return func(cfg *materializeConfig) {
		cfg.index = index
		cfg.at = true
	}
}

// WithConfigurator applies fn to the step once it is registered and before it is returned.
func WithConfigurator(fn func(step model.Step) error) MaterializeOption {
	return func(cfg *materializeConfig) {
		cfg.configure = fn
	}
}

// Configure is WithConfigurator for a concrete step type.
func Configure[T model.Step](fn func(step T) error) MaterializeOption {
	return WithConfigurator(func(step model.Step) error {
		typed, ok := step.(T)
		if !ok {
			return errors.Wrapf(ErrUnexpectedStepType, "step %q is %T", step.Name(), step)
		}

		return fn(typed)
	})
}

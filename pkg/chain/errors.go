package chain

import (
	"github.com/pkg/errors"
)

var (
	ErrChainMustBeSet     = errors.New("chain must be set")
	ErrSourceMustBeSet    = errors.New("source must be set")
	ErrFactoryMustBeSet   = errors.New("factory must be set")
	ErrStepTypeMustBeSet  = errors.New("step type must be set")
	ErrNilStep            = errors.New("factory returned a nil step")
	ErrNameMismatch       = errors.New("step name does not match the requested name")
	ErrUnexpectedStepType = errors.New("unexpected step type")

	// ErrDuplicateName is returned when a name is already used by a registered step.
	ErrDuplicateName = errors.New("duplicate step name")
	// ErrIndexOutOfRange is returned when a position does not exist in the registry.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrStepNotFound is returned when a step is not registered.
	ErrStepNotFound = errors.New("step not found")
)

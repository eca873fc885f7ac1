package model

import "time"

// ChainOption defines the interface for chain options.
type ChainOption interface {
	// New initialises the chain option.
	New(source SourceSet) error
	// OnMaterialize runs after a step has been registered and configured.
	OnMaterialize(step *StepInfo) error
	// OnRemove runs after a step has been removed from the chain.
	OnRemove(step *StepInfo) error
	// OnResolve runs everytime the input of a step is resolved.
	// detached is true when the step is no longer part of the chain.
	OnResolve(step *StepInfo, input FileSet, detached bool, elapsed time.Duration)
	// OnStepRun runs after a step has been evaluated by the chain.
	OnStepRun(step *StepInfo, input, output FileSet, elapsed time.Duration) error
	// Finish runs after the chain is evaluated.
	Finish() error
}

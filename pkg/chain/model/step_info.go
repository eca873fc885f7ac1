package model

// StepInfo describes a registered step to the chain options.
type StepInfo struct {
	ID    string
	Name  string
	Type  string
	Index int
}

// SourceStep is the vertex name used by options to represent the source set.
const SourceStep = "source"

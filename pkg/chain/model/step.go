package model

import "context"

// Source is a deferred file set. Resolve is only called when the chain is evaluated.
type Source interface {
	Resolve() FileSet
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() FileSet

// Resolve calls f.
func (f SourceFunc) Resolve() FileSet {
	return f()
}

// Step is one stage of processing. The chain only relies on this contract.
type Step interface {
	// Name returns the unique name of the step. It must not change once assigned.
	Name() string
	// SetInput sets the deferred source feeding the step.
	SetInput(src Source)
	// Output returns the file set produced by the step. It is valid once the step has run.
	Output() FileSet
}

// Runner is implemented by steps that do some work when the chain runs.
// Steps without it are left untouched by the chain.
type Runner interface {
	Run(ctx context.Context) error
}

// SourceSet is the origin of a chain.
type SourceSet interface {
	Name() string
	Files() FileSet
}

// StaticSourceSet is a SourceSet with a fixed list of files.
type StaticSourceSet struct {
	SetName  string
	SetFiles FileSet
}

// NewStaticSourceSet creates a source set named name holding files.
func NewStaticSourceSet(name string, files ...string) *StaticSourceSet {
	return &StaticSourceSet{
		SetName:  name,
		SetFiles: NewFileSet(files...),
	}
}

func (s *StaticSourceSet) Name() string {
	return s.SetName
}

func (s *StaticSourceSet) Files() FileSet {
	return s.SetFiles
}

// Factory constructs steps on behalf of the chain.
type Factory interface {
	// New constructs a step of the given type with the given name.
	New(stepType, name string) (Step, error)
}

// DisplayNamer can be implemented by a Factory to map a step type to the short name
// used when the chain generates step names.
type DisplayNamer interface {
	DisplayName(stepType string) (string, bool)
}

var (
	_ Source    = SourceFunc(nil)
	_ SourceSet = (*StaticSourceSet)(nil)
)

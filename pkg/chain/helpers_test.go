package chain_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-sourcechain/pkg/chain"
	"github.com/askiada/go-sourcechain/pkg/chain/model"
)

type fakeStep struct {
	name   string
	input  model.Source
	output model.FileSet
}

func (s *fakeStep) Name() string {
	return s.name
}

func (s *fakeStep) SetInput(src model.Source) {
	s.input = src
}

func (s *fakeStep) Output() model.FileSet {
	return s.output
}

func (s *fakeStep) Input() model.FileSet {
	return s.input.Resolve()
}

// fakeFactory builds fakeSteps whose output is a single file named after the step.
type fakeFactory struct {
	displayNames map[string]string
	err          error
}

func (f *fakeFactory) New(_, name string) (model.Step, error) {
	if f.err != nil {
		return nil, f.err
	}

	return &fakeStep{name: name, output: model.NewFileSet(name + ".out")}, nil
}

func (f *fakeFactory) DisplayName(stepType string) (string, bool) {
	name, ok := f.displayNames[stepType]

	return name, ok
}

type nilFactory struct{}

func (nilFactory) New(_, _ string) (model.Step, error) {
	return nil, nil
}

type renamingFactory struct{}

func (renamingFactory) New(_, name string) (model.Step, error) {
	return &fakeStep{name: name + "-renamed"}, nil
}

func newTestChain(t *testing.T, name string, files []string, opts ...model.ChainOption) *chain.Chain {
	t.Helper()

	c, err := chain.New(model.NewStaticSourceSet(name, files...), &fakeFactory{}, opts...)
	require.NoError(t, err)

	return c
}

func materialize(t *testing.T, c *chain.Chain, stepType string, opts ...chain.MaterializeOption) *fakeStep {
	t.Helper()

	step, err := chain.MaterializeAs[*fakeStep](c, stepType, opts...)
	require.NoError(t, err)

	return step
}

type resolveEvent struct {
	name     string
	index    int
	input    model.FileSet
	detached bool
}

// recordingOption records the hooks called by the chain.
type recordingOption struct {
	mu           sync.Mutex
	source       string
	materialized []string
	removed      []string
	resolved     []resolveEvent
	ran          []string
	finished     int

	materializeErr error
	removeErr      error
}

func (o *recordingOption) New(source model.SourceSet) error {
	o.source = source.Name()

	return nil
}

func (o *recordingOption) OnMaterialize(step *model.StepInfo) error {
	if o.materializeErr != nil {
		return o.materializeErr
	}

	o.materialized = append(o.materialized, step.Name)

	return nil
}

func (o *recordingOption) OnRemove(step *model.StepInfo) error {
	o.removed = append(o.removed, step.Name)

	return o.removeErr
}

func (o *recordingOption) OnResolve(step *model.StepInfo, input model.FileSet, detached bool, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.resolved = append(o.resolved, resolveEvent{name: step.Name, index: step.Index, input: input, detached: detached})
}

func (o *recordingOption) OnStepRun(step *model.StepInfo, _, _ model.FileSet, _ time.Duration) error {
	o.ran = append(o.ran, step.Name)

	return nil
}

func (o *recordingOption) Finish() error {
	o.finished++

	return nil
}

type failingNewOption struct {
	recordingOption
}

func (o *failingNewOption) New(_ model.SourceSet) error {
	return errNew
}

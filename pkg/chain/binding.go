package chain

import (
	"time"

	"github.com/askiada/go-sourcechain/pkg/chain/model"
)

// Binding is the deferred input of a step.
//
// It is bound to the identity of the step, never to its position: every call to Resolve
// looks the step up again, so steps added, removed or moved after the binding was attached
// are taken into account.
type Binding struct {
	chain    *Chain
	id       ID
	name     string
	stepType string
}

func newBinding(c *Chain, id ID, name, stepType string) *Binding {
	return &Binding{
		chain:    c,
		id:       id,
		name:     name,
		stepType: stepType,
	}
}

// Resolve returns the file set that currently feeds the step:
// the chain source if the step is first, the output of the previous step otherwise.
// A step no longer in the chain resolves to an empty file set.
func (b *Binding) Resolve() model.FileSet {
	start := time.Now()
	input, index := b.resolve()
	elapsed := time.Since(start)

	info := b.info(index)
	for _, opt := range b.chain.opts {
		opt.OnResolve(info, input, index == NotFound, elapsed)
	}

	return input
}

func (b *Binding) resolve() (model.FileSet, int) {
	prev, index, ok := b.chain.registry.previous(b.id)

	switch {
	case index == NotFound:
		return model.FileSet{}, NotFound
	case index == 0:
		return b.chain.source.Files(), index
	case !ok:
		// predecessor missing from an inconsistent registry.
		return model.FileSet{}, NotFound
	}

	return prev.step.Output(), index
}

// Detached reports whether the step has been removed from the chain.
func (b *Binding) Detached() bool {
	return b.chain.registry.IndexOf(b.id) == NotFound
}

// StepName returns the name of the bound step.
func (b *Binding) StepName() string {
	return b.name
}

func (b *Binding) info(index int) *model.StepInfo {
	return &model.StepInfo{
		ID:    b.id.String(),
		Name:  b.name,
		Type:  b.stepType,
		Index: index,
	}
}

var _ model.Source = (*Binding)(nil)

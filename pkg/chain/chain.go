package chain

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/askiada/go-sourcechain/pkg/chain/model"
)

// link is what the chain keeps in its registry for every step.
type link struct {
	step     model.Step
	stepType string
	binding  *Binding
}

func (l *link) Name() string {
	return l.step.Name()
}

// Chain is an ordered chain of steps fed by a source set.
type Chain struct {
	source   model.SourceSet
	factory  model.Factory
	registry *Registry[*link]
	opts     []model.ChainOption
}

// New creates a new chain reading from source. Steps are built by factory.
func New(source model.SourceSet, factory model.Factory, opts ...model.ChainOption) (*Chain, error) {
	if source == nil {
		return nil, ErrSourceMustBeSet
	}

	if factory == nil {
		return nil, ErrFactoryMustBeSet
	}

	c := &Chain{
		source:   source,
		factory:  factory,
		registry: NewRegistry[*link](),
		opts:     opts,
	}

	for _, opt := range opts {
		err := opt.New(source)
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply chain option")
		}
	}

	return c, nil
}

// Source returns the source set of the chain.
func (c *Chain) Source() model.SourceSet {
	return c.source
}

// Name returns the name of the chain, which is the name of its source set.
func (c *Chain) Name() string {
	return c.source.Name()
}

// Materialize builds a step of stepType, appends it to the chain, or inserts it with WithIndex,
// and wires its input.
//
// Unless WithName is given, the step is named after the source set and the display name of
// the type: a "MinifyTask" in a chain named "main" is "mainMinify".
// Nothing is registered if any part of the call fails.
func (c *Chain) Materialize(stepType string, opts ...MaterializeOption) (model.Step, error) {
	if c == nil {
		return nil, ErrChainMustBeSet
	}

	if stepType == "" {
		return nil, ErrStepTypeMustBeSet
	}

	cfg := &materializeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	name := cfg.name
	if name == "" {
		name = c.stepName(stepType)
	}

	if c.registry.Has(name) {
		return nil, errors.Wrapf(ErrDuplicateName, "name %q", name)
	}

	if cfg.at && (cfg.index < 0 || cfg.index > c.registry.Len()) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "insert at %d, size %d", cfg.index, c.registry.Len())
	}

	step, err := c.factory.New(stepType, name)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create step %q of type %s", name, stepType)
	}

	if step == nil {
		return nil, errors.Wrapf(ErrNilStep, "step %q of type %s", name, stepType)
	}

	if step.Name() != name {
		return nil, errors.Wrapf(ErrNameMismatch, "got %q, want %q", step.Name(), name)
	}

	id := NewID()
	lnk := &link{
		step:     step,
		stepType: stepType,
		binding:  newBinding(c, id, name, stepType),
	}
	step.SetInput(lnk.binding)

	if cfg.at {
		err = c.registry.insertWithID(cfg.index, id, lnk)
	} else {
		err = c.registry.addWithID(id, lnk)
	}

	if err != nil {
		return nil, errors.Wrap(err, "unable to register step")
	}

	info := lnk.binding.info(c.registry.IndexOf(id))

	if cfg.configure != nil {
		err = cfg.configure(step)
		if err != nil {
			return nil, c.rollback(id, info, nil, errors.Wrapf(err, "unable to configure step %q", name))
		}
	}

	for i, opt := range c.opts {
		err = opt.OnMaterialize(info)
		if err != nil {
			return nil, c.rollback(id, info, c.opts[:i], errors.Wrap(err, "unable to run materialize option"))
		}
	}

	return step, nil
}

// rollback unregisters a step whose materialization failed. The options in notified already
// accepted the step and get its removal. cause is returned, annotated with a failed removal.
func (c *Chain) rollback(id ID, info *model.StepInfo, notified []model.ChainOption, cause error) error {
	c.registry.Remove(id)

	for _, opt := range notified {
		err := opt.OnRemove(info)
		if err != nil {
			return errors.Wrapf(cause, "unable to notify removal of step %q: %v", info.Name, err)
		}
	}

	return cause
}

// MaterializeAs is Materialize returning the concrete type of the step.
func MaterializeAs[T model.Step](c *Chain, stepType string, opts ...MaterializeOption) (T, error) {
	var zero T

	step, err := c.Materialize(stepType, opts...)
	if err != nil {
		return zero, err
	}

	typed, ok := step.(T)
	if !ok {
		err = errors.Wrapf(ErrUnexpectedStepType, "step %q is %T", step.Name(), step)

		rmErr := c.Remove(step.Name())
		if rmErr != nil {
			return zero, errors.Wrapf(err, "unable to remove step: %v", rmErr)
		}

		return zero, err
	}

	return typed, nil
}

func (c *Chain) stepName(stepType string) string {
	if namer, ok := c.factory.(model.DisplayNamer); ok {
		if displayName, ok := namer.DisplayName(stepType); ok {
			return StepName(c.source.Name(), displayName)
		}
	}

	return StepName(c.source.Name(), DisplayName(stepType))
}

// Remove removes the step named name from the chain.
// The steps after it are fed by whatever now precedes them the next time they are resolved.
func (c *Chain) Remove(name string) error {
	lnk, id, ok := c.registry.Lookup(name)
	if !ok {
		return errors.Wrapf(ErrStepNotFound, "name %q", name)
	}

	return c.remove(id, lnk)
}

// RemoveStep removes step from the chain.
func (c *Chain) RemoveStep(step model.Step) error {
	lnk, id, ok := c.lookup(step)
	if !ok {
		return errors.Wrapf(ErrStepNotFound, "step %q", nameOf(step))
	}

	return c.remove(id, lnk)
}

func (c *Chain) remove(id ID, lnk *link) error {
	index := c.registry.IndexOf(id)
	if !c.registry.Remove(id) {
		return errors.Wrapf(ErrStepNotFound, "name %q", lnk.step.Name())
	}

	info := lnk.binding.info(index)
	for _, opt := range c.opts {
		err := opt.OnRemove(info)
		if err != nil {
			return errors.Wrap(err, "unable to run remove option")
		}
	}

	return nil
}

// Move moves the step named name to index.
func (c *Chain) Move(name string, index int) error {
	_, id, ok := c.registry.Lookup(name)
	if !ok {
		return errors.Wrapf(ErrStepNotFound, "name %q", name)
	}

	return c.registry.Move(id, index)
}

// Get returns the step at index.
func (c *Chain) Get(index int) (model.Step, error) {
	lnk, err := c.registry.Get(index)
	if err != nil {
		return nil, err
	}

	return lnk.step, nil
}

// IndexOf returns the position of step, or NotFound if it is not in the chain.
func (c *Chain) IndexOf(step model.Step) int {
	_, id, ok := c.lookup(step)
	if !ok {
		return NotFound
	}

	return c.registry.IndexOf(id)
}

// Find returns the step named name.
func (c *Chain) Find(name string) (model.Step, bool) {
	lnk, _, ok := c.registry.Lookup(name)
	if !ok {
		return nil, false
	}

	return lnk.step, true
}

// Binding returns the input binding of the step named name.
func (c *Chain) Binding(name string) (*Binding, bool) {
	lnk, _, ok := c.registry.Lookup(name)
	if !ok {
		return nil, false
	}

	return lnk.binding, true
}

// Steps returns the steps in chain order.
func (c *Chain) Steps() []model.Step {
	links := c.registry.Items()

	steps := make([]model.Step, len(links))
	for i, lnk := range links {
		steps[i] = lnk.step
	}

	return steps
}

// Names returns the step names in chain order.
func (c *Chain) Names() []string {
	return c.registry.Names()
}

func (c *Chain) Len() int {
	return c.registry.Len()
}

// Output returns the output of the last step, or the source files of an empty chain.
func (c *Chain) Output() model.FileSet {
	n := c.registry.Len()
	if n == 0 {
		return c.source.Files()
	}

	lnk, err := c.registry.Get(n - 1)
	if err != nil {
		return model.FileSet{}
	}

	return lnk.step.Output()
}

// lookup finds the link holding step through its unique name.
// The registered step must have the same type, and be equal to step when the type is comparable.
func (c *Chain) lookup(step model.Step) (*link, ID, bool) {
	if step == nil {
		return nil, ID{}, false
	}

	lnk, id, ok := c.registry.Lookup(step.Name())
	if !ok {
		return nil, ID{}, false
	}

	typ := reflect.TypeOf(step)
	if typ != reflect.TypeOf(lnk.step) {
		return nil, ID{}, false
	}

	if typ.Comparable() && lnk.step != step {
		return nil, ID{}, false
	}

	return lnk, id, true
}

func nameOf(step model.Step) string {
	if step == nil {
		return "<nil>"
	}

	return step.Name()
}

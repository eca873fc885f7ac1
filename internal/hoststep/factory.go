package hoststep

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/askiada/go-sourcechain/pkg/chain/model"
)

var (
	ErrUnknownStepType = errors.New("unknown step type")
	ErrStepTypeExists  = errors.New("step type already registered")
)

// Step types known by NewFactory.
const (
	PassType    = "PassTask"
	IncludeType = "IncludeTask"
	ExcludeType = "ExcludeTask"
	SortType    = "SortTask"
	PrefixType  = "PrefixTask"
)

// Constructor builds a step named name.
type Constructor func(name string) model.Step

type stepKind struct {
	displayName string
	construct   Constructor
}

// Factory builds steps by type. It is safe for concurrent use.
type Factory struct {
	mu    sync.RWMutex
	kinds map[string]stepKind
}

// NewFactory creates a factory knowing the built-in step types.
func NewFactory() *Factory {
	f := &Factory{kinds: make(map[string]stepKind)}

	builtins := map[string]Constructor{
		PassType:    func(name string) model.Step { return NewPassStep(name) },
		IncludeType: func(name string) model.Step { return NewIncludeStep(name) },
		ExcludeType: func(name string) model.Step { return NewExcludeStep(name) },
		SortType:    func(name string) model.Step { return NewSortStep(name) },
		PrefixType:  func(name string) model.Step { return NewPrefixStep(name) },
	}
	for stepType, construct := range builtins {
		f.kinds[stepType] = stepKind{construct: construct}
	}

	return f
}

// Register adds a step type. An empty displayName lets the chain derive it from stepType.
func (f *Factory) Register(stepType, displayName string, construct Constructor) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.kinds[stepType]; ok {
		return errors.Wrapf(ErrStepTypeExists, "type %s", stepType)
	}

	f.kinds[stepType] = stepKind{displayName: displayName, construct: construct}

	return nil
}

// New builds a step of stepType named name.
func (f *Factory) New(stepType, name string) (model.Step, error) {
	f.mu.RLock()
	kind, ok := f.kinds[stepType]
	f.mu.RUnlock()

	if !ok {
		return nil, errors.Wrapf(ErrUnknownStepType, "type %s", stepType)
	}

	return kind.construct(name), nil
}

// DisplayName returns the display name registered for stepType, if any.
func (f *Factory) DisplayName(stepType string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	kind, ok := f.kinds[stepType]
	if !ok || kind.displayName == "" {
		return "", false
	}

	return kind.displayName, true
}

// Types returns the registered step types, sorted.
func (f *Factory) Types() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	types := make([]string, 0, len(f.kinds))
	for stepType := range f.kinds {
		types = append(types, stepType)
	}

	sort.Strings(types)

	return types
}

var (
	_ model.Factory      = (*Factory)(nil)
	_ model.DisplayNamer = (*Factory)(nil)
)

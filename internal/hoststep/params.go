package hoststep

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-sourcechain/pkg/chain/model"
)

var ErrDirMustBeSet = errors.New("dir must be set")

// Params holds the settings a host can apply to any built-in step.
// Settings that do not concern the step are ignored.
type Params struct {
	Patterns []string
	Dir      string
	Reverse  bool
}

// Apply configures step. It is meant to be used as a chain configurator.
func (p Params) Apply(step model.Step) error {
	switch s := step.(type) {
	case *FilterStep:
		s.Patterns = append([]string(nil), p.Patterns...)
	case *SortStep:
		s.Reverse = p.Reverse
	case *PrefixStep:
		if p.Dir == "" {
			return errors.Wrapf(ErrDirMustBeSet, "step %q", s.Name())
		}

		s.Dir = p.Dir
	}

	return nil
}

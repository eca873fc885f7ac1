package drawer

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-sourcechain/pkg/chain/measure"
	"github.com/askiada/go-sourcechain/pkg/chain/model"
)

type stepRun struct {
	name    string
	index   int
	inputs  int
	outputs int
}

type chainDrawer struct {
	Drawer
	m measure.Measure

	mu     sync.Mutex
	source model.SourceSet
	runs   []stepRun
}

func (cd *chainDrawer) New(source model.SourceSet) error {
	cd.source = source

	return nil
}

func (cd *chainDrawer) OnMaterialize(_ *model.StepInfo) error {
	return nil
}

func (cd *chainDrawer) OnRemove(_ *model.StepInfo) error {
	return nil
}

func (cd *chainDrawer) OnResolve(_ *model.StepInfo, _ model.FileSet, _ bool, _ time.Duration) {}

func (cd *chainDrawer) OnStepRun(step *model.StepInfo, input, output model.FileSet, _ time.Duration) error {
	cd.mu.Lock()
	defer cd.mu.Unlock()

	cd.runs = append(cd.runs, stepRun{
		name:    step.Name,
		index:   step.Index,
		inputs:  input.Len(),
		outputs: output.Len(),
	})

	return nil
}

// Finish draws the steps that ran, in chain order, starting from the source set.
func (cd *chainDrawer) Finish() error {
	cd.mu.Lock()
	defer cd.mu.Unlock()

	err := cd.AddStep(model.SourceStep, cd.source.Files().Len())
	if err != nil {
		return errors.Wrap(err, "unable to add source step to drawer")
	}

	sort.SliceStable(cd.runs, func(i, j int) bool {
		return cd.runs[i].index < cd.runs[j].index
	})

	parent := model.SourceStep
	for _, run := range cd.runs {
		err := cd.AddStep(run.name, run.outputs)
		if err != nil {
			return err
		}

		err = cd.AddLink(parent, run.name, run.inputs)
		if err != nil {
			return err
		}

		parent = run.name
	}

	if cd.m != nil {
		err := cd.AddMeasure(cd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err = cd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw chain")
	}

	cd.runs = nil

	return nil
}

// ChainDrawer returns a chain option drawing the chain once it has run.
// The drawer is meant for a single run.
// msr is optional.
func ChainDrawer(drawer Drawer, msr measure.Measure) model.ChainOption {
	return &chainDrawer{Drawer: drawer, m: msr}
}

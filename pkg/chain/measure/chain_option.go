package measure

import (
	"time"

	"github.com/askiada/go-sourcechain/pkg/chain/model"
)

type chainMeasure struct {
	Measure
}

func (cm *chainMeasure) New(_ model.SourceSet) error {
	return nil
}

func (cm *chainMeasure) OnMaterialize(step *model.StepInfo) error {
	cm.AddMetric(step.Name)

	return nil
}

func (cm *chainMeasure) OnRemove(_ *model.StepInfo) error {
	return nil
}

func (cm *chainMeasure) OnResolve(step *model.StepInfo, _ model.FileSet, detached bool, elapsed time.Duration) {
	cm.AddMetric(step.Name).AddResolution(elapsed, detached)
}

func (cm *chainMeasure) OnStepRun(step *model.StepInfo, input, output model.FileSet, elapsed time.Duration) error {
	cm.AddMetric(step.Name).AddRun(elapsed, input.Len(), output.Len())

	return nil
}

func (cm *chainMeasure) Finish() error {
	return nil
}

// ChainMeasure returns a chain option recording the metrics of every step into measure.
func ChainMeasure(measure Measure) model.ChainOption {
	return &chainMeasure{measure}
}

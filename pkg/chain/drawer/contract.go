package drawer

import (
	"github.com/askiada/go-sourcechain/pkg/chain/measure"
)

// Drawer is an interface that defines the methods for drawing a chain.
type Drawer interface {
	// AddStep adds a step to the chain drawer.
	AddStep(stepName string, files int) error
	// AddLink adds a link between a step and the step it feeds.
	AddLink(parentStepName, childStepName string, files int) error
	// AddMeasure adds a measure to the chain drawer.
	AddMeasure(measure measure.Measure) error
	// Draw creates a file with the chain graph.
	Draw() error
}

package measure

import (
	"sync"
	"time"
)

type DefaultMetric struct {
	mu             sync.Mutex
	resolveElapsed time.Duration
	runElapsed     time.Duration
	resolutions    int64
	detached       int64
	runs           int64
	lastInput      int
	lastOutput     int
}

func (mt *DefaultMetric) AddResolution(elapsed time.Duration, detached bool) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.resolutions++
	mt.resolveElapsed += elapsed

	if detached {
		mt.detached++
	}
}

func (mt *DefaultMetric) AddRun(elapsed time.Duration, inputSize, outputSize int) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.runs++
	mt.runElapsed += elapsed
	mt.lastInput = inputSize
	mt.lastOutput = outputSize
}

func (mt *DefaultMetric) AVGResolution() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.resolutions == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.resolveElapsed) / float64(mt.resolutions)))
}

func (mt *DefaultMetric) AVGRun() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.runs == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.runElapsed) / float64(mt.runs)))
}

func (mt *DefaultMetric) Resolutions() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.resolutions
}

func (mt *DefaultMetric) DetachedResolutions() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.detached
}

func (mt *DefaultMetric) Runs() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.runs
}

// LastSizes returns the number of input and output files of the last run.
func (mt *DefaultMetric) LastSizes() (int, int) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.lastInput, mt.lastOutput
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Hour)
	case d > time.Minute:
		d = d.Round(time.Minute)
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}

var _ Metric = (*DefaultMetric)(nil)

package measure

import "time"

// Measure keeps one metric per step name.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric collects the timings of a single step.
type Metric interface {
	AddResolution(elapsed time.Duration, detached bool)
	AddRun(elapsed time.Duration, inputSize, outputSize int)
	AVGResolution() time.Duration
	AVGRun() time.Duration
	Resolutions() int64
	DetachedResolutions() int64
	Runs() int64
	LastSizes() (input, output int)
}

// Package logging provides a chain option writing structured logs with log/slog.
//
// Materialization and removal are logged at debug level, step runs at info level.
// A step whose input is resolved after it was removed from the chain is logged as a warning:
// it is the only place where a detached step shows up, as resolving it is not an error.
package logging

import (
	"log/slog"
	"time"

	"github.com/askiada/go-sourcechain/pkg/chain/model"
)

type chainLogger struct {
	base   *slog.Logger
	logger *slog.Logger
}

func (cl *chainLogger) New(source model.SourceSet) error {
	cl.logger = cl.base.With(slog.String("chain", source.Name()))
	cl.logger.Debug("chain created", slog.Int("source_files", source.Files().Len()))

	return nil
}

func (cl *chainLogger) OnMaterialize(step *model.StepInfo) error {
	cl.logger.Debug("step materialized",
		slog.String("step", step.Name),
		slog.String("type", step.Type),
		slog.Int("index", step.Index),
	)

	return nil
}

func (cl *chainLogger) OnRemove(step *model.StepInfo) error {
	cl.logger.Debug("step removed",
		slog.String("step", step.Name),
		slog.Int("index", step.Index),
	)

	return nil
}

func (cl *chainLogger) OnResolve(step *model.StepInfo, input model.FileSet, detached bool, elapsed time.Duration) {
	if detached {
		cl.logger.Warn("detached step resolved to an empty input",
			slog.String("step", step.Name),
			slog.String("type", step.Type),
		)

		return
	}

	cl.logger.Debug("step input resolved",
		slog.String("step", step.Name),
		slog.Int("index", step.Index),
		slog.Int("files", input.Len()),
		slog.Duration("elapsed", elapsed),
	)
}

func (cl *chainLogger) OnStepRun(step *model.StepInfo, input, output model.FileSet, elapsed time.Duration) error {
	cl.logger.Info("step run",
		slog.String("step", step.Name),
		slog.Int("index", step.Index),
		slog.Int("input_files", input.Len()),
		slog.Int("output_files", output.Len()),
		slog.Duration("elapsed", elapsed),
	)

	return nil
}

func (cl *chainLogger) Finish() error {
	cl.logger.Debug("chain finished")

	return nil
}

// ChainLogger returns a chain option logging to logger, or to slog.Default when logger is nil.
func ChainLogger(logger *slog.Logger) model.ChainOption {
	if logger == nil {
		logger = slog.Default()
	}

	return &chainLogger{base: logger, logger: logger}
}

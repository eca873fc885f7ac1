package chain

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-sourcechain/pkg/chain/model"
)

// Run evaluates the chain, one step after the other in chain order.
//
// Steps implementing model.Runner are run, the others only expose their output.
// A step removed while the chain is running is skipped.
func (c *Chain) Run(ctx context.Context) error {
	if c == nil {
		return ErrChainMustBeSet
	}

	for _, lnk := range c.registry.Items() {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "chain interrupted")
		}

		err := c.runStep(ctx, lnk)
		if err != nil {
			return errors.Wrap(err, lnk.step.Name())
		}
	}

	return c.finishRun()
}

func (c *Chain) runStep(ctx context.Context, lnk *link) error {
	input, index := lnk.binding.resolve()
	if index == NotFound {
		return nil
	}

	start := time.Now()

	if runner, ok := lnk.step.(model.Runner); ok {
		err := runner.Run(ctx)
		if err != nil {
			return err
		}
	}

	elapsed := time.Since(start)

	info := lnk.binding.info(index)
	for _, opt := range c.opts {
		err := opt.OnStepRun(info, input, lnk.step.Output(), elapsed)
		if err != nil {
			return errors.Wrap(err, "unable to run step option")
		}
	}

	return nil
}

func (c *Chain) finishRun() error {
	for _, opt := range c.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish chain option")
		}
	}

	return nil
}

// Resolve resolves the input of every step concurrently and returns them by step name.
// It does not run anything and must not overlap a mutation of the chain.
func (c *Chain) Resolve(ctx context.Context) (map[string]model.FileSet, error) {
	if c == nil {
		return nil, ErrChainMustBeSet
	}

	links := c.registry.Items()

	var mu sync.Mutex

	inputs := make(map[string]model.FileSet, len(links))

	errGrp, dCtx := errgroup.WithContext(ctx)
	for _, lnk := range links {
		lnk := lnk

		errGrp.Go(func() error {
			if err := dCtx.Err(); err != nil {
				return errors.Wrapf(err, "resolve %s", lnk.step.Name())
			}

			input := lnk.binding.Resolve()

			mu.Lock()
			defer mu.Unlock()
			inputs[lnk.step.Name()] = input

			return nil
		})
	}

	err := errGrp.Wait()
	if err != nil {
		return nil, err
	}

	return inputs, nil
}

package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-lens/pkg/pipeline/model"
)

func sequentialOneToOne[I any, O any](ctx context.Context, opts []model.PipelineOption, goIdx int, input *model.Step[I], output *model.Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
	parent := model.DetailsOf(input)

	for {
		startIter := time.Now()
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}

			startFn := time.Now()
			out, err := oneToOneFn(ctx, in)
			if err != nil {
				return errors.Wrapf(err, "go routine %d", goIdx)
			}
			endFn := time.Since(startFn)

			// check the context again so that no worker pushes once the pipeline is cancelled
			select {
			case <-ctx.Done():
				return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
			case output.Output <- out:
			}

			endIter := time.Since(startIter) - endFn
			for _, opt := range opts {
				err := opt.OnStepOutput(parent, output.Details, endIter, endFn)
				if err != nil {
					return errors.Wrap(err, "unable to run step output option")
				}
			}
		}
	}
}

func runOneToOne[I any, O any](ctx context.Context, opts []model.PipelineOption, input *model.Step[I], output *model.Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
	concurrent := output.Details.Concurrent
	if concurrent <= 1 {
		return sequentialOneToOne(ctx, opts, 0, input, output, oneToOneFn)
	}

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(concurrent)
	// each worker stops as soon as one of them fails
	for goIdx := range concurrent {
		errGrp.Go(func() error {
			return sequentialOneToOne(dCtx, opts, goIdx, input, output, oneToOneFn)
		})
	}

	return errGrp.Wait()
}

// AddStepOneToOne adds a step producing exactly one output per input.
func AddStepOneToOne[I any, O any](pipe *Pipeline, name string, input *model.Step[I], oneToOneFn func(context.Context, I) (O, error), opts ...StepOption) (*model.Step[O], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}
	if input == nil {
		return nil, ErrInputMustBeSet
	}

	step := &model.Step[O]{
		Output: make(chan O),
		Details: &model.StepInfo{
			Type: model.NormalStepType,
			Name: name,
		},
	}
	applyStepOptions(step.Details, opts)

	for _, opt := range pipe.opts {
		err := opt.PrepareStep(model.DetailsOf(input), step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run prepare step option")
		}
	}

	errC := make(chan error, 1)

	go func() {
		defer close(errC)
		defer close(step.Output)

		err := runOneToOne(pipe.ctx, pipe.opts, input, step, oneToOneFn)
		if err != nil {
			errC <- err
		}
	}()
	pipe.errcList.add(newErrorChan(name, errC))

	return step, nil
}

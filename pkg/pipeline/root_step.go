package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-lens/pkg/pipeline/model"
)

// AddRootStep adds a step feeding the pipeline. stepFn must stop sending once ctx is done.
// The output channel is closed when stepFn returns.
func AddRootStep[O any](pipe *Pipeline, name string, stepFn func(ctx context.Context, rootChan chan<- O) error, opts ...StepOption) (*model.Step[O], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}

	step := &model.Step[O]{
		Output: make(chan O),
		Details: &model.StepInfo{
			Type: model.RootStepType,
			Name: name,
		},
	}
	applyStepOptions(step.Details, opts)

	for _, opt := range pipe.opts {
		err := opt.PrepareStep(model.StartStep, step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run prepare step option")
		}
	}

	errC := make(chan error, 1)

	go func() {
		defer close(errC)
		defer close(step.Output)

		start := time.Now()
		err := stepFn(pipe.ctx, step.Output)
		if err != nil {
			errC <- err

			return
		}

		for _, opt := range pipe.opts {
			err := opt.OnStepOutput(model.StartStep, step.Details, 0, time.Since(start))
			if err != nil {
				errC <- errors.Wrap(err, "unable to run step output option")

				return
			}
		}
	}()
	pipe.errcList.add(newErrorChan(name, errC))

	return step, nil
}

package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-lens/pkg/pipeline/model"
)

func runSink[I any](ctx context.Context, pipe *Pipeline, input *model.Step[I], step *model.Step[I], sinkFn func(ctx context.Context, input I) error) error {
	parent := model.DetailsOf(input)

	for {
		startIter := time.Now()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-input.Output:
			if !ok {
				for _, opt := range pipe.opts {
					err := opt.AfterSink(step.Details, time.Since(pipe.startTime))
					if err != nil {
						return errors.Wrap(err, "unable to run after sink option")
					}
				}

				return nil
			}
			endIter := time.Since(startIter)

			startFn := time.Now()
			err := sinkFn(ctx, in)
			if err != nil {
				return err
			}
			endFn := time.Since(startFn)

			for _, opt := range pipe.opts {
				err := opt.OnSinkOutput(parent, step.Details, endIter, endFn)
				if err != nil {
					return errors.Wrap(err, "unable to run sink output option")
				}
			}
		}
	}
}

// AddSink adds the final stage of the pipeline. sinkFn is called sequentially for every input.
func AddSink[I any](pipe *Pipeline, name string, input *model.Step[I], sinkFn func(ctx context.Context, input I) error) error {
	if pipe == nil {
		return ErrPipelineMustBeSet
	}
	if input == nil {
		return ErrInputMustBeSet
	}

	step := &model.Step[I]{
		Details: &model.StepInfo{
			Type:       model.SinkStepType,
			Name:       name,
			Concurrent: 1,
		},
	}

	for _, opt := range pipe.opts {
		err := opt.PrepareSink(model.DetailsOf(input), step.Details)
		if err != nil {
			return errors.Wrap(err, "unable to run prepare sink option")
		}
	}

	errC := make(chan error, 1)

	go func() {
		defer close(errC)

		err := runSink(pipe.ctx, pipe, input, step, sinkFn)
		if err != nil {
			errC <- err
		}
	}()
	pipe.errcList.add(newErrorChan(name, errC))

	return nil
}

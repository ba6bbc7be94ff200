package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-lens/pkg/pipeline"
	"github.com/askiada/go-lens/pkg/pipeline/model"
)

// addCounter adds a root step sending 0 to total-1.
func addCounter(t *testing.T, pipe *pipeline.Pipeline, total int) *model.Step[int] {
	t.Helper()

	step, err := pipeline.AddRootStep(pipe, "counter", func(ctx context.Context, rootChan chan<- int) error {
		for i := range total {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case rootChan <- i:
			}
		}

		return nil
	})
	require.NoError(t, err)

	return step
}

// addCollector adds a sink appending every value to the returned slice. The slice is complete once
// Run returns without error.
func addCollector[I any](t *testing.T, pipe *pipeline.Pipeline, input *model.Step[I]) *[]I {
	t.Helper()

	got := &[]I{}
	err := pipeline.AddSink(pipe, "collector", input, func(_ context.Context, in I) error {
		*got = append(*got, in)

		return nil
	})
	require.NoError(t, err)

	return got
}

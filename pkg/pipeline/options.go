package pipeline

import "github.com/askiada/go-lens/pkg/pipeline/model"

// StepOption configures a step.
type StepOption func(details *model.StepInfo)

// StepConcurrency sets how many workers run the step function. Values below 1 mean 1.
func StepConcurrency(concurrent int) StepOption {
	return func(details *model.StepInfo) {
		details.Concurrent = concurrent
	}
}

func applyStepOptions(details *model.StepInfo, opts []StepOption) {
	for _, opt := range opts {
		opt(details)
	}

	if details.Concurrent < 1 {
		details.Concurrent = 1
	}
}

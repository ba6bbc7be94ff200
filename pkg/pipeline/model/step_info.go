package model

// StepType tells how a step consumes and produces values.
type StepType string

const (
	RootStepType   StepType = "root"
	NormalStepType StepType = "step"
	SinkStepType   StepType = "sink"
)

// StepInfo describes a step to the pipeline options.
type StepInfo struct {
	Type       StepType
	Name       string
	Concurrent int
}

// StartStep and EndStep are virtual steps framing every pipeline. Root steps hang off StartStep and
// sinks lead to EndStep.
var (
	StartStep = &StepInfo{Type: RootStepType, Name: "start", Concurrent: 1}
	EndStep   = &StepInfo{Type: SinkStepType, Name: "end", Concurrent: 1}
)

// Step is the output side of a pipeline stage.
type Step[O any] struct {
	Output  chan O
	Details *StepInfo
}

// DetailsOf returns the details of a step, StartStep when the step was built by hand without any.
func DetailsOf[O any](step *Step[O]) *StepInfo {
	if step == nil || step.Details == nil {
		return StartStep
	}

	return step.Details
}

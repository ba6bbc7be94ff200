package measure

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-lens/pkg/pipeline/model"
)

var ErrUnknownStep = errors.New("no metric for step")

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	pm.AddMetric(model.StartStep.Name, 1)
	pm.AddMetric(model.EndStep.Name, 1)

	return nil
}

func (pm *pipelineMeasure) metric(name string) (Metric, error) {
	mt := pm.GetMetric(name)
	if mt == nil {
		return nil, errors.Wrap(ErrUnknownStep, name)
	}

	return mt, nil
}

func (pm *pipelineMeasure) PrepareStep(_, step *model.StepInfo) error {
	pm.AddMetric(step.Name, step.Concurrent)

	return nil
}

func (pm *pipelineMeasure) PrepareSink(_, step *model.StepInfo) error {
	pm.AddMetric(step.Name, step.Concurrent)

	return nil
}

func (pm *pipelineMeasure) Finish() error {
	return nil
}

func (pm *pipelineMeasure) OnStepOutput(parentStep, step *model.StepInfo, iterationDuration, computationDuration time.Duration) error {
	mt, err := pm.metric(step.Name)
	if err != nil {
		return err
	}
	mt.AddDuration(computationDuration)
	mt.AddTransportDuration(parentStep.Name, iterationDuration)

	return nil
}

func (pm *pipelineMeasure) OnSinkOutput(parentStep, step *model.StepInfo, iterationDuration, computationDuration time.Duration) error {
	mt, err := pm.metric(step.Name)
	if err != nil {
		return err
	}
	mt.AddDuration(computationDuration)
	mt.AddTransportDuration(parentStep.Name, iterationDuration)

	return nil
}

func (pm *pipelineMeasure) AfterSink(step *model.StepInfo, totalDuration time.Duration) error {
	mt, err := pm.metric(step.Name)
	if err != nil {
		return err
	}
	mt.SetTotalDuration(totalDuration)

	return nil
}

// PipelineMeasure returns an option recording step and channel timings into measure.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}

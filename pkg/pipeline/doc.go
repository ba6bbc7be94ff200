// Package pipeline provides a pipeline for processing data.
//
// A pipeline is a chain of stages connected by channels. A root step produces values, steps transform
// them and a sink consumes them. Every stage runs in its own goroutines as soon as it is added, and a
// step can run several workers concurrently with StepConcurrency.
//
// The pipeline stops on the first error: Run returns it and cancels the context shared by every stage,
// so the remaining stages drain and exit. Nothing a sink collected should be trusted when Run fails.
//
// Options implementing model.PipelineOption observe the stages, see the measure and drawer packages.
package pipeline

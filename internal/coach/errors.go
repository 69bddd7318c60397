package coach

import (
	"errors"
	"fmt"
)

// Stage identifies where in the pipeline a cycle failed.
type Stage string

const (
	StageInput      Stage = "input"
	StageConvert    Stage = "convert"
	StageTranscribe Stage = "transcribe"
	StageAnalyze    Stage = "analyze"
	StageGenerate   Stage = "generate"
)

// PipelineError wraps a failure with the stage that produced it so the
// transport can pick a localized user message.
type PipelineError struct {
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

func stageErr(stage Stage, err error) error {
	return &PipelineError{Stage: stage, Err: err}
}

// StageOf extracts the pipeline stage from err, or empty when err did not
// come from the pipeline.
func StageOf(err error) Stage {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Stage
	}
	return ""
}

package processor

import (
	"errors"
	"fmt"
)

var (
	ErrInput         = errors.New("input error")
	ErrConfig        = errors.New("configuration error")
	ErrSummarization = errors.New("summarization error")
	ErrOutput        = errors.New("output error")
)

// Stage names the pipeline step that failed.
type Stage string

const (
	StageRead      Stage = "reading"
	StageNormalize Stage = "normalizing"
	StageSummarize Stage = "summarizing"
	StageAssemble  Stage = "assembling"
	StageWrite     Stage = "writing"
	StageConfigure Stage = "configuring"
)

// RunError is returned by a failed run. It matches both its Kind and its cause
// under errors.Is.
type RunError struct {
	Stage Stage
	Kind  error
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
}

func (e *RunError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func runError(stage Stage, kind, err error) error {
	return &RunError{Stage: stage, Kind: kind, Err: err}
}

// ConfigError reports a non-fatal settings problem in the same shape as run failures.
func ConfigError(err error) error {
	return runError(StageConfigure, ErrConfig, err)
}

package pipeline

import (
	"errors"
	"fmt"
)

// ErrAlreadyRun is returned when an Initializer is run a second time.
var ErrAlreadyRun = errors.New("initialization already run")

// StepError identifies the step that aborted a run.
type StepError struct {
	// Index is the zero-based position of the step in the run.
	Index int

	// Step is the step name.
	Step string

	// Err is the error the step returned.
	Err error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

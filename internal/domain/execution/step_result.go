// Package execution runs an ordered list of steps against persisted progress.
package execution

import (
	"time"
)

// StepResult captures the outcome of visiting a single step.
type StepResult struct {
	ordinal  int
	title    string
	status   Status
	err      error
	duration time.Duration
}

// NewStepResult creates a new StepResult.
func NewStepResult(step Step, status Status, err error) StepResult {
	return StepResult{
		ordinal: step.Ordinal,
		title:   step.Title,
		status:  status,
		err:     err,
	}
}

// Ordinal returns the ordinal of the step.
func (r StepResult) Ordinal() int {
	return r.ordinal
}

// Title returns the title of the step.
func (r StepResult) Title() string {
	return r.title
}

// Status returns the final lifecycle state of the step.
func (r StepResult) Status() Status {
	return r.status
}

// Error returns any error that occurred during execution.
func (r StepResult) Error() error {
	return r.err
}

// Duration returns how long the action took.
func (r StepResult) Duration() time.Duration {
	return r.duration
}

// Success returns true if the action completed and the checkpoint was recorded.
func (r StepResult) Success() bool {
	return r.status == StatusDone
}

// Skipped returns true if the step was already complete.
func (r StepResult) Skipped() bool {
	return r.status == StatusSkipped
}

// Failed returns true if the action or its checkpoint failed.
func (r StepResult) Failed() bool {
	return r.status == StatusFailed
}

// WithDuration returns a new StepResult with duration set.
func (r StepResult) WithDuration(d time.Duration) StepResult {
	r.duration = d
	return r
}

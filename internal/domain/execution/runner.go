package execution

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/waypoint/internal/domain/checkpoint"
	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// ResumeHint is logged after a failure.
const ResumeHint = "Re-run the program to continue from this point"

// StepError reports the step that halted a run.
type StepError struct {
	Ordinal       int
	Title         string
	LastCompleted int
	Err           error
}

// Error returns the formatted error message.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %v", e.Ordinal, e.Title, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Outcome summarizes a run.
type Outcome struct {
	Results       []StepResult
	LastCompleted int
	// Err is the error that halted the run, including a rejected plan.
	Err error
}

// Completed returns the number of steps whose action ran successfully.
func (o Outcome) Completed() int {
	return o.count(StatusDone)
}

// Skipped returns the number of steps skipped as already complete.
func (o Outcome) Skipped() int {
	return o.count(StatusSkipped)
}

// Failed returns the failed step result, if any.
func (o Outcome) Failed() (StepResult, bool) {
	for _, r := range o.Results {
		if r.Failed() {
			return r, true
		}
	}
	return StepResult{}, false
}

// ExitCode returns the process exit code for the run: 1 when a step
// failed or the run was halted before any step, 0 otherwise.
func (o Outcome) ExitCode() int {
	if _, failed := o.Failed(); failed || o.Err != nil {
		return 1
	}
	return 0
}

func (o Outcome) count(status Status) int {
	n := 0
	for _, r := range o.Results {
		if r.Status() == status {
			n++
		}
	}
	return n
}

// Runner executes steps in ascending ordinal order against persisted state.
// Completed steps are skipped, the checkpoint is saved after every
// successful step, and the first failure halts the run.
type Runner struct {
	store  checkpoint.Store
	logger ports.Logger
}

// NewRunner creates a Runner saving checkpoints to store.
func NewRunner(store checkpoint.Store, logger ports.Logger) *Runner {
	return &Runner{store: store, logger: logger}
}

// Run executes steps. The returned error is a *StepError when a step fails,
// or wraps ErrInvalidPlan when the list is malformed (nothing runs then).
// The same error is recorded on the Outcome.
func (r *Runner) Run(ctx context.Context, steps []Step, state *checkpoint.State) (Outcome, error) {
	outcome := Outcome{
		Results:       make([]StepResult, 0, len(steps)),
		LastCompleted: state.DoneStep,
	}

	if err := ValidatePlan(steps); err != nil {
		outcome.Err = err
		return outcome, err
	}

	for _, step := range steps {
		result, err := r.runStep(ctx, step, state)
		outcome.Results = append(outcome.Results, result)
		outcome.LastCompleted = state.DoneStep

		if err != nil {
			r.reportFailure(ctx, step, state.DoneStep, err)
			r.reportTimings(ctx, outcome)
			outcome.Err = &StepError{
				Ordinal:       step.Ordinal,
				Title:         step.Title,
				LastCompleted: state.DoneStep,
				Err:           err,
			}
			return outcome, outcome.Err
		}
	}

	r.reportTimings(ctx, outcome)

	if outcome.Completed() == 0 {
		r.logger.Success(ctx, "All steps already complete")
	} else {
		r.logger.Success(ctx, fmt.Sprintf("Finished: %d completed, %d skipped", outcome.Completed(), outcome.Skipped()))
	}

	return outcome, nil
}

func (r *Runner) runStep(ctx context.Context, step Step, state *checkpoint.State) (StepResult, error) {
	lc, err := newLifecycle(step.Ordinal)
	if err != nil {
		return NewStepResult(step, StatusFailed, err), err
	}
	defer lc.stop()

	if state.IsDone(step.Ordinal) {
		status := lc.send(EventSkip)
		r.logger.Info(ctx, fmt.Sprintf("%s already completed, skipping", step))
		return NewStepResult(step, status, nil), nil
	}

	lc.send(EventStart)
	r.logger.Info(ctx, fmt.Sprintf("Step %d: %s", step.Ordinal, step.Title))

	// An interrupted run must not start the next step.
	if err := ctx.Err(); err != nil {
		status := lc.send(EventFail)
		return NewStepResult(step, status, err), fmt.Errorf("run interrupted: %w", err)
	}

	start := time.Now()
	err = step.Action.Run(ctx)
	duration := time.Since(start)

	if err == nil {
		err = r.checkpoint(ctx, step.Ordinal, state)
	}

	if err != nil {
		status := lc.send(EventFail)
		return NewStepResult(step, status, err).WithDuration(duration), err
	}

	status := lc.send(EventSucceed)
	r.logger.Success(ctx, fmt.Sprintf("%s completed", step), ports.F("duration", duration.Round(time.Millisecond)))
	return NewStepResult(step, status, nil).WithDuration(duration), nil
}

// checkpoint records ordinal and persists it. On a failed write the
// in-memory checkpoint is reverted so it never runs ahead of the file.
func (r *Runner) checkpoint(ctx context.Context, ordinal int, state *checkpoint.State) error {
	previous := state.DoneStep
	state.Complete(ordinal)

	if err := r.store.Save(ctx, state); err != nil {
		state.DoneStep = previous
		return fmt.Errorf("action completed but checkpoint was not recorded: %w", err)
	}
	return nil
}

// reportTimings logs one debug line per step whose action was attempted.
func (r *Runner) reportTimings(ctx context.Context, outcome Outcome) {
	for _, res := range outcome.Results {
		if res.Skipped() {
			continue
		}
		r.logger.Debug(ctx, fmt.Sprintf("Timing: %s", res.Title()),
			ports.F("step", res.Ordinal()),
			ports.F("status", string(res.Status())),
			ports.F("duration", res.Duration().Round(time.Millisecond)),
		)
	}
}

func (r *Runner) reportFailure(ctx context.Context, step Step, lastCompleted int, err error) {
	r.logger.Error(ctx, fmt.Sprintf("%s failed: %v", step, err))
	r.logger.Error(ctx, fmt.Sprintf("Last completed step: %d", lastCompleted))
	r.logger.Warn(ctx, ResumeHint)
}

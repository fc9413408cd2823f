package execution

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Status is the lifecycle state of a step within a run.
type Status string

// Step lifecycle states.
const (
	StatusPending Status = statePending
	StatusSkipped Status = stateSkipped
	StatusRunning Status = stateRunning
	StatusDone    Status = stateDone
	StatusFailed  Status = stateFailed
)

const (
	statePending = "pending"
	stateSkipped = "skipped"
	stateRunning = "running"
	stateDone    = "done"
	stateFailed  = "failed"
)

// Events for the step lifecycle machine.
const (
	EventSkip    = "SKIP"
	EventStart   = "START"
	EventSucceed = "SUCCEED"
	EventFail    = "FAIL"
)

// lifecycleContext is the statekit context of one step machine.
type lifecycleContext struct {
	Ordinal int
}

// lifecycle tracks one step through pending, skipped, running, done and failed.
type lifecycle struct {
	interp *statekit.Interpreter[lifecycleContext]
}

func newLifecycle(ordinal int) (*lifecycle, error) {
	machine, err := statekit.NewMachine[lifecycleContext](fmt.Sprintf("step-%d", ordinal)).
		WithInitial(statePending).
		WithContext(lifecycleContext{Ordinal: ordinal}).
		State(statePending).
		On(EventSkip).Target(stateSkipped).
		On(EventStart).Target(stateRunning).Done().
		State(stateRunning).
		On(EventSucceed).Target(stateDone).
		On(EventFail).Target(stateFailed).Done().
		State(stateSkipped).Final().Done().
		State(stateDone).Final().Done().
		State(stateFailed).Final().Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build lifecycle for step %d: %w", ordinal, err)
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return &lifecycle{interp: interp}, nil
}

// send fires an event; events with no transition from the current state are ignored.
func (l *lifecycle) send(event string) Status {
	l.interp.Send(statekit.Event{Type: statekit.EventType(event)})
	return l.Status()
}

// Status returns the current lifecycle state.
func (l *lifecycle) Status() Status {
	return Status(l.interp.State().Value)
}

func (l *lifecycle) stop() {
	l.interp.Stop()
}

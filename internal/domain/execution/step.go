package execution

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidPlan is returned when a step list cannot be executed as given.
var ErrInvalidPlan = errors.New("invalid step list")

// Action is one opaque unit of provisioning work.
type Action interface {
	Run(ctx context.Context) error
}

// ActionFunc adapts a function to Action.
type ActionFunc func(ctx context.Context) error

// Run calls f(ctx).
func (f ActionFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Step is an ordered, named unit of work. The ordinal doubles as the
// checkpoint value, so ordinals must stay stable across releases; gaps
// leave room to insert steps without invalidating saved checkpoints.
type Step struct {
	Ordinal int
	Title   string
	Action  Action
}

// String returns "Step <ordinal> (<title>)".
func (s Step) String() string {
	return fmt.Sprintf("Step %d (%s)", s.Ordinal, s.Title)
}

// ValidatePlan checks that ordinals are positive and strictly ascending and
// that every step has an action.
func ValidatePlan(steps []Step) error {
	prev := 0
	for i, s := range steps {
		if s.Ordinal <= 0 {
			return fmt.Errorf("%w: step %d has non-positive ordinal %d", ErrInvalidPlan, i, s.Ordinal)
		}
		if s.Ordinal <= prev {
			return fmt.Errorf("%w: ordinal %d does not follow %d", ErrInvalidPlan, s.Ordinal, prev)
		}
		if s.Action == nil {
			return fmt.Errorf("%w: %s has no action", ErrInvalidPlan, s)
		}
		prev = s.Ordinal
	}
	return nil
}

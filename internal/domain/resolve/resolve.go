// Package resolve decides the effective value of a configuration item from
// its persisted value, a one-shot override and an interactive prompt.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// ErrEmptyInput is returned when no source yields a non-blank value.
var ErrEmptyInput = errors.New("value must not be empty")

// Resolution is the outcome of resolving one configuration item.
type Resolution struct {
	// Value is the effective value; never blank.
	Value string
	// Changed reports that the persisted value must be rewritten.
	Changed bool
	// Conflict reports that a non-blank override replaced a different persisted value.
	Conflict bool
}

// PromptFunc asks the operator for a value.
type PromptFunc func() (string, error)

// Resolve applies the precedence rules:
//
//   - nothing persisted: the override if non-blank, else the trimmed prompt answer
//   - persisted value: kept unless a non-blank override differs from it
//
// A blank prompt answer fails with ErrEmptyInput.
func Resolve(persisted, override string, prompt PromptFunc) (Resolution, error) {
	persisted = strings.TrimSpace(persisted)
	override = strings.TrimSpace(override)

	if persisted == "" {
		if override != "" {
			return Resolution{Value: override, Changed: true}, nil
		}
		if prompt == nil {
			return Resolution{}, ErrEmptyInput
		}

		answer, err := prompt()
		if err != nil {
			return Resolution{}, fmt.Errorf("prompt failed: %w", err)
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return Resolution{}, ErrEmptyInput
		}
		return Resolution{Value: answer, Changed: true}, nil
	}

	if override != "" && override != persisted {
		return Resolution{Value: override, Changed: true, Conflict: true}, nil
	}

	return Resolution{Value: persisted}, nil
}

// Resolver resolves a named item and reports overrides through a logger.
type Resolver struct {
	logger ports.Logger
}

// NewResolver creates a Resolver.
func NewResolver(logger ports.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve resolves name and logs a warning when an override replaces the saved value.
func (r *Resolver) Resolve(ctx context.Context, name, persisted, override string, prompt PromptFunc) (Resolution, error) {
	res, err := Resolve(persisted, override, prompt)
	if err != nil {
		return res, fmt.Errorf("%s: %w", name, err)
	}

	if res.Conflict {
		r.logger.Warn(ctx, "override differs from saved value, updating",
			ports.F("name", name),
			ports.F("saved", strings.TrimSpace(persisted)),
			ports.F("override", res.Value),
		)
	}

	return res, nil
}

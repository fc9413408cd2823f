package checkpoint

import (
	"context"
	"errors"
)

// Repository errors.
var (
	ErrLoadFailed      = errors.New("failed to read state file")
	ErrSaveFailed      = errors.New("failed to save state file")
	ErrInvalidVariable = errors.New("invalid saved variable")
)

// Store is the port for state persistence.
type Store interface {
	// Load reads the state. A missing file yields the zero state and no error.
	// An unreadable file yields the zero state and an error wrapping ErrLoadFailed.
	Load(ctx context.Context) (*State, error)

	// Save rewrites the whole state file. Errors wrap ErrSaveFailed.
	Save(ctx context.Context, state *State) error

	// Exists reports whether a state file is present.
	Exists(ctx context.Context) bool
}

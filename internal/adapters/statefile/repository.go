// Package statefile persists checkpoint state as a KEY=VALUE text file.
package statefile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/waypoint/internal/domain/checkpoint"
)

// Repository implements checkpoint.Store on a single file.
type Repository struct {
	path string
}

// NewRepository creates a repository for the state file at path.
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Path returns the state file location.
func (r *Repository) Path() string {
	return r.path
}

// Load reads the state file.
func (r *Repository) Load(_ context.Context) (*checkpoint.State, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return checkpoint.NewState(), nil
		}
		return checkpoint.NewState(), fmt.Errorf("%w: %w", checkpoint.ErrLoadFailed, err)
	}

	return checkpoint.Parse(data), nil
}

// Save rewrites the state file with a complete snapshot of state.
func (r *Repository) Save(_ context.Context, state *checkpoint.State) error {
	data, err := state.MarshalText()
	if err != nil {
		return fmt.Errorf("%w: %w", checkpoint.ErrSaveFailed, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %w", checkpoint.ErrSaveFailed, err)
	}

	if err := atomicWriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", checkpoint.ErrSaveFailed, err)
	}

	return nil
}

// Exists returns true if a state file is present.
func (r *Repository) Exists(_ context.Context) bool {
	_, err := os.Stat(r.path)
	return err == nil
}

// Ensure Repository implements checkpoint.Store.
var _ checkpoint.Store = (*Repository)(nil)

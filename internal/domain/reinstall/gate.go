// Package reinstall offers a destructive reset when a workspace is found
// without any recorded progress.
package reinstall

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/waypoint/internal/domain/checkpoint"
	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// ConfirmFunc asks whether the destructive reset should happen.
type ConfirmFunc func() (bool, error)

// ResetFunc removes the existing workspace.
type ResetFunc func() error

// Gate decides whether a first run starts from a clean workspace.
type Gate struct {
	store  checkpoint.Store
	logger ports.Logger
}

// NewGate creates a Gate that persists resets to store.
func NewGate(store checkpoint.Store, logger ports.Logger) *Gate {
	return &Gate{store: store, logger: logger}
}

// ShouldAsk reports whether the gate applies: no state file, but a workspace
// left over from an untracked run.
func ShouldAsk(stateFilePresent, workspaceExists bool) bool {
	return !stateFilePresent && workspaceExists
}

// MaybeReset asks for and performs the reset when the gate applies.
// On confirmation reset runs exactly once, then state is zeroed and saved.
// On decline nothing changes and the existing workspace is reused.
func (g *Gate) MaybeReset(
	ctx context.Context,
	state *checkpoint.State,
	stateFilePresent, workspaceExists bool,
	confirm ConfirmFunc,
	reset ResetFunc,
) (bool, error) {
	if !ShouldAsk(stateFilePresent, workspaceExists) {
		return false, nil
	}

	ok, err := confirm()
	if err != nil {
		return false, fmt.Errorf("reinstall confirmation failed: %w", err)
	}
	if !ok {
		g.logger.Info(ctx, "Keeping existing workspace")
		return false, nil
	}

	if err := reset(); err != nil {
		return false, fmt.Errorf("failed to remove existing workspace: %w", err)
	}

	state.Reset()
	if err := g.store.Save(ctx, state); err != nil {
		return true, err
	}

	g.logger.Success(ctx, "Existing workspace removed, starting from a clean state")
	return true, nil
}

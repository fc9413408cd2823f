package mocks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/waypoint/internal/ports"
)

func TestCommandRunner_AddResult(t *testing.T) {
	runner := NewCommandRunner()
	runner.AddResult("git", []string{"--version"}, ports.CommandResult{Stdout: "git version 2.43.0"})

	result, err := runner.Run(context.Background(), "git", "--version")

	require.NoError(t, err)
	assert.Equal(t, "git version 2.43.0", result.Stdout)
}

func TestCommandRunner_QueuedResults(t *testing.T) {
	runner := NewCommandRunner()
	runner.AddResult("python3", []string{"--version"}, ports.CommandResult{ExitCode: 127})
	runner.AddResult("python3", []string{"--version"}, ports.CommandResult{Stdout: "Python 3.12.1"})
	ctx := context.Background()

	first, _ := runner.Run(ctx, "python3", "--version")
	second, _ := runner.Run(ctx, "python3", "--version")
	third, _ := runner.Run(ctx, "python3", "--version")

	assert.Equal(t, 127, first.ExitCode)
	assert.Equal(t, "Python 3.12.1", second.Stdout)
	assert.Equal(t, "Python 3.12.1", third.Stdout)
}

func TestCommandRunner_NotFound(t *testing.T) {
	runner := NewCommandRunner()

	_, err := runner.Run(context.Background(), "unknown", "command")
	assert.Error(t, err)

	err = runner.RunAttached(context.Background(), "/w", "unknown")
	assert.Error(t, err)
}

func TestCommandRunner_AddError(t *testing.T) {
	runner := NewCommandRunner()
	want := errors.New("boom")
	runner.AddError("git", []string{"pull"}, want)

	_, err := runner.Run(context.Background(), "git", "pull")
	assert.ErrorIs(t, err, want)
}

func TestCommandRunner_RecordsCalls(t *testing.T) {
	runner := NewCommandRunner()
	runner.AddResult("git", []string{"clone", "u", "w"}, ports.CommandResult{})
	runner.AddAttached("python", []string{"main.py"}, nil)
	ctx := context.Background()

	_, _ = runner.Run(ctx, "git", "clone", "u", "w")
	require.NoError(t, runner.RunAttached(ctx, "/w", "python", "main.py"))

	calls := runner.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "/w", calls[1].Dir)
	assert.Equal(t, []string{"git clone u w", "python main.py"}, runner.CallLines())

	runner.Reset()
	assert.Empty(t, runner.Calls())
}

// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
)

// CommandResult represents the result of executing a shell command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandCall records a command invocation.
type CommandCall struct {
	Dir     string
	Command string
	Args    []string
}

// CommandRunner executes external commands.
type CommandRunner interface {
	// Run executes a command and captures its output.
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)

	// RunAttached executes a command in dir with the caller's stdio attached
	// and blocks until it exits. A non-zero exit is returned as an error.
	RunAttached(ctx context.Context, dir, command string, args ...string) error
}

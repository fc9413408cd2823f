// Package command provides command execution adapters.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// waitDelay bounds how long a cancelled command may keep its pipes open.
const waitDelay = 5 * time.Second

// RealRunner executes actual commands.
type RealRunner struct {
	stdin  func() io.Reader
	stdout io.Writer
	stderr io.Writer
}

// RunnerOption configures a RealRunner.
type RunnerOption func(*RealRunner)

// WithStdio sets the streams attached commands inherit.
func WithStdio(in io.Reader, out, errOut io.Writer) RunnerOption {
	return func(r *RealRunner) {
		r.stdin = func() io.Reader { return in }
		r.stdout = out
		r.stderr = errOut
	}
}

// WithInput sets where attached commands read stdin from. input is called
// once per command, so a reader shared with a prompt is picked up in its
// current state.
func WithInput(input func() io.Reader) RunnerOption {
	return func(r *RealRunner) {
		r.stdin = input
	}
}

// NewRealRunner creates a new RealRunner attached to the process stdio.
func NewRealRunner(opts ...RunnerOption) *RealRunner {
	r := &RealRunner{
		stdin:  func() io.Reader { return os.Stdin },
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes a command and returns the result.
func (r *RealRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := ports.CommandResult{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, fmt.Errorf("%s interrupted: %w", command, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}

// RunAttached executes a command in dir with the runner's stdio attached.
func (r *RealRunner) RunAttached(ctx context.Context, dir, command string, args ...string) error {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	cmd.Stdin = r.stdin()
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s interrupted: %w", command, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%s exited with code %d: %w", command, exitErr.ExitCode(), err)
	}
	return err
}

// Ensure RealRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*RealRunner)(nil)

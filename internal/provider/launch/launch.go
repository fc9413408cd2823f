// Package launch runs the application in the foreground.
package launch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// ErrNoCommand is returned when there is nothing to run.
var ErrNoCommand = errors.New("launch command is empty")

// Launcher runs the launch command from the workspace with the terminal
// attached and waits for it to exit.
type Launcher struct {
	workspace string
	command   []string
	runner    ports.CommandRunner
	logger    ports.Logger
}

// NewLauncher creates a new Launcher.
func NewLauncher(workspace string, command []string, runner ports.CommandRunner, logger ports.Logger) *Launcher {
	return &Launcher{
		workspace: workspace,
		command:   command,
		runner:    runner,
		logger:    logger,
	}
}

// Run starts the application and blocks until it exits.
func (l *Launcher) Run(ctx context.Context) error {
	if len(l.command) == 0 {
		return ErrNoCommand
	}

	l.logger.Info(ctx, "Starting application",
		ports.F("command", strings.Join(l.command, " ")),
		ports.F("dir", l.workspace),
	)
	if err := l.runner.RunAttached(ctx, l.workspace, l.command[0], l.command[1:]...); err != nil {
		return fmt.Errorf("application exited with an error: %w", err)
	}
	l.logger.Info(ctx, "Application exited")
	return nil
}

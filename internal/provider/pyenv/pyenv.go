// Package pyenv creates the project's virtual environment and installs
// its dependencies into it.
package pyenv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/felixgeelhaar/waypoint/internal/ports"
	"github.com/felixgeelhaar/waypoint/internal/provider/commandutil"
)

// ErrRequirementsMissing is returned when the requirements file does not exist.
var ErrRequirementsMissing = errors.New("requirements file not found")

// VenvPython returns the interpreter path inside a virtual environment.
func VenvPython(venvDir, goos string) string {
	if goos == "windows" {
		return filepath.Join(venvDir, "Scripts", "python.exe")
	}
	return filepath.Join(venvDir, "bin", "python")
}

// Options configures an Installer.
type Options struct {
	Python       string // base interpreter used to create the environment
	VenvDir      string
	Requirements string // empty skips the install
}

// Installer creates a venv when needed and installs requirements into it.
type Installer struct {
	opts   Options
	goos   string
	runner ports.CommandRunner
	fs     ports.FileSystem
	logger ports.Logger
}

// NewInstaller creates a new Installer for the current platform.
func NewInstaller(opts Options, runner ports.CommandRunner, fs ports.FileSystem, logger ports.Logger) *Installer {
	return &Installer{
		opts:   opts,
		goos:   runtime.GOOS,
		runner: runner,
		fs:     fs,
		logger: logger,
	}
}

// Python returns the interpreter the environment provides.
func (i *Installer) Python() string {
	return VenvPython(i.opts.VenvDir, i.goos)
}

// Run creates the environment if its interpreter is missing, then installs
// the requirements.
func (i *Installer) Run(ctx context.Context) error {
	python := i.Python()

	if i.fs.Exists(python) {
		i.logger.Info(ctx, "Virtual environment already exists", ports.F("path", i.opts.VenvDir))
	} else {
		i.logger.Info(ctx, "Creating virtual environment", ports.F("path", i.opts.VenvDir))
		if err := i.run(ctx, "create virtual environment", i.opts.Python, "-m", "venv", i.opts.VenvDir); err != nil {
			return err
		}
	}

	if i.opts.Requirements == "" {
		i.logger.Info(ctx, "No requirements file configured")
		return nil
	}
	if !i.fs.Exists(i.opts.Requirements) {
		return fmt.Errorf("%w: %s", ErrRequirementsMissing, i.opts.Requirements)
	}

	i.logger.Info(ctx, "Installing dependencies", ports.F("requirements", i.opts.Requirements))
	return i.run(ctx, "install dependencies", python, "-m", "pip", "install", "--disable-pip-version-check", "-r", i.opts.Requirements)
}

func (i *Installer) run(ctx context.Context, what, command string, args ...string) error {
	result, err := i.runner.Run(ctx, command, args...)
	if err != nil {
		if commandutil.IsCommandNotFound(err) {
			return fmt.Errorf("failed to %s: %s not found: %w", what, command, err)
		}
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	if !result.Success() {
		return fmt.Errorf("failed to %s (exit %d): %s", what, result.ExitCode, commandutil.Summary(result))
	}
	return nil
}

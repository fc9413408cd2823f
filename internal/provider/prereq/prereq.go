// Package prereq makes sure the tools the project needs are installed
// in a usable version, installing them when they are not.
package prereq

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/felixgeelhaar/waypoint/internal/domain/config"
	"github.com/felixgeelhaar/waypoint/internal/ports"
	"github.com/felixgeelhaar/waypoint/internal/provider/commandutil"
)

// Errors returned when a tool cannot be made available.
var (
	ErrNotInstalled   = errors.New("not installed")
	ErrTooOld         = errors.New("installed version is too old")
	ErrUnknownVersion = errors.New("could not determine installed version")
	ErrNoInstaller    = errors.New("no install command configured")
	ErrInstallFailed  = errors.New("install command failed")
)

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// ExtractVersion finds the first dotted version in tool output and returns it
// in canonical semver form, e.g. "git version 2.39.3 (Apple Git-146)" gives
// "v2.39.3". It returns "" when no version is present.
func ExtractVersion(output string) string {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return ""
	}
	patch := m[3]
	if patch == "" {
		patch = "0"
	}
	return semver.Canonical(fmt.Sprintf("v%s.%s.%s", trimZeros(m[1]), trimZeros(m[2]), trimZeros(patch)))
}

func trimZeros(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}

// Installer checks and installs a list of prerequisites.
type Installer struct {
	tools  []config.Prerequisite
	runner ports.CommandRunner
	logger ports.Logger
}

// NewInstaller creates a new Installer.
func NewInstaller(tools []config.Prerequisite, runner ports.CommandRunner, logger ports.Logger) *Installer {
	return &Installer{
		tools:  tools,
		runner: runner,
		logger: logger,
	}
}

// Run ensures every configured tool is available, in order.
func (i *Installer) Run(ctx context.Context) error {
	for _, tool := range i.tools {
		if err := i.ensure(ctx, tool); err != nil {
			return fmt.Errorf("%s: %w", tool.Name, err)
		}
	}
	return nil
}

func (i *Installer) ensure(ctx context.Context, tool config.Prerequisite) error {
	version, err := i.check(ctx, tool)
	if err == nil {
		i.logger.Info(ctx, fmt.Sprintf("%s is available", tool.Name), ports.F("version", version))
		return nil
	}
	if !errors.Is(err, ErrNotInstalled) && !errors.Is(err, ErrTooOld) && !errors.Is(err, ErrUnknownVersion) {
		return err
	}

	if len(tool.Install) == 0 {
		return fmt.Errorf("%w: %w", err, ErrNoInstaller)
	}

	i.logger.Warn(ctx, fmt.Sprintf("%s needs to be installed", tool.Name), ports.F("reason", err.Error()))
	if err := i.install(ctx, tool); err != nil {
		return err
	}

	version, err = i.check(ctx, tool)
	if err != nil {
		return fmt.Errorf("still unavailable after install: %w", err)
	}
	i.logger.Success(ctx, fmt.Sprintf("Installed %s", tool.Name), ports.F("version", version))
	return nil
}

// check runs the version command and compares the result with MinVersion.
func (i *Installer) check(ctx context.Context, tool config.Prerequisite) (string, error) {
	result, err := i.runner.Run(ctx, tool.Command, tool.VersionArgs...)
	if err != nil {
		if commandutil.IsCommandNotFound(err) {
			return "", fmt.Errorf("%w: %s not found on PATH", ErrNotInstalled, tool.Command)
		}
		return "", fmt.Errorf("failed to run %s: %w", tool.Command, err)
	}
	if !result.Success() {
		return "", fmt.Errorf("%w: %s exited with code %d", ErrNotInstalled, tool.Command, result.ExitCode)
	}

	// Some interpreters print their version on stderr.
	version := ExtractVersion(result.Stdout + "\n" + result.Stderr)
	minimum := config.CanonicalVersion(tool.MinVersion)
	if minimum == "" {
		if version == "" {
			return "unknown", nil
		}
		return version, nil
	}

	if version == "" {
		return "", ErrUnknownVersion
	}
	if semver.Compare(version, minimum) < 0 {
		return version, fmt.Errorf("%w: have %s, need %s", ErrTooOld, version, minimum)
	}
	return version, nil
}

func (i *Installer) install(ctx context.Context, tool config.Prerequisite) error {
	i.logger.Info(ctx, "Running install command", ports.F("command", strings.Join(tool.Install, " ")))

	result, err := i.runner.Run(ctx, tool.Install[0], tool.Install[1:]...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInstallFailed, err)
	}
	if !result.Success() {
		return fmt.Errorf("%w: exit code %d: %s", ErrInstallFailed, result.ExitCode, commandutil.Summary(result))
	}
	return nil
}

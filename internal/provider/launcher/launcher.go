// Package launcher writes a start script that runs the application from
// its workspace, so it can be started again without the orchestrator.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// ErrNoCommand is returned when there is nothing to launch.
var ErrNoCommand = errors.New("launch command is empty")

// Options configures a Writer.
type Options struct {
	Name      string
	Path      string
	Workspace string
	Command   []string
}

// Writer renders and writes the start script.
type Writer struct {
	opts   Options
	goos   string
	fs     ports.FileSystem
	logger ports.Logger
}

// NewWriter creates a new Writer for the current platform.
func NewWriter(opts Options, fs ports.FileSystem, logger ports.Logger) *Writer {
	return &Writer{
		opts:   opts,
		goos:   runtime.GOOS,
		fs:     fs,
		logger: logger,
	}
}

// Title returns the display name used in the script header.
func Title(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(strings.Join(strings.Fields(name), " "))
}

// Render returns the script text for goos.
func Render(opts Options, goos string) (string, error) {
	if len(opts.Command) == 0 {
		return "", ErrNoCommand
	}

	var b strings.Builder
	if goos == "windows" {
		b.WriteString("@echo off\r\n")
		fmt.Fprintf(&b, "rem %s launcher, generated by waypoint\r\n", Title(opts.Name))
		fmt.Fprintf(&b, "cd /d %s || exit /b 1\r\n", cmdQuote(opts.Workspace))
		quoted := make([]string, len(opts.Command))
		for i, arg := range opts.Command {
			quoted[i] = cmdQuote(arg)
		}
		fmt.Fprintf(&b, "%s %%*\r\n", strings.Join(quoted, " "))
		return b.String(), nil
	}

	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "# %s launcher, generated by waypoint\n", Title(opts.Name))
	fmt.Fprintf(&b, "cd %s || exit 1\n", shQuote(opts.Workspace))
	quoted := make([]string, len(opts.Command))
	for i, arg := range opts.Command {
		quoted[i] = shQuote(arg)
	}
	fmt.Fprintf(&b, "exec %s \"$@\"\n", strings.Join(quoted, " "))
	return b.String(), nil
}

// Run writes the script, replacing any previous version.
func (w *Writer) Run(ctx context.Context) error {
	script, err := Render(w.opts, w.goos)
	if err != nil {
		return err
	}

	if err := w.fs.MkdirAll(filepath.Dir(w.opts.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create launcher directory: %w", err)
	}
	if err := w.fs.WriteFile(w.opts.Path, []byte(script), 0o755); err != nil {
		return fmt.Errorf("failed to write launcher: %w", err)
	}

	w.logger.Info(ctx, fmt.Sprintf("Launcher for %s written", Title(w.opts.Name)), ports.F("path", w.opts.Path))
	return nil
}

func shQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("@%_+=:,./-", r))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func cmdQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

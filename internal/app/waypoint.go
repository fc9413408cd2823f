// Package app wires configuration, persisted progress, and the provisioning
// steps into a single resumable run.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/waypoint/internal/adapters/command"
	"github.com/felixgeelhaar/waypoint/internal/adapters/filesystem"
	"github.com/felixgeelhaar/waypoint/internal/adapters/logging"
	"github.com/felixgeelhaar/waypoint/internal/adapters/prompt"
	"github.com/felixgeelhaar/waypoint/internal/adapters/statefile"
	"github.com/felixgeelhaar/waypoint/internal/domain/checkpoint"
	"github.com/felixgeelhaar/waypoint/internal/domain/config"
	"github.com/felixgeelhaar/waypoint/internal/domain/execution"
	"github.com/felixgeelhaar/waypoint/internal/domain/reinstall"
	"github.com/felixgeelhaar/waypoint/internal/domain/resolve"
	"github.com/felixgeelhaar/waypoint/internal/ports"
	"github.com/felixgeelhaar/waypoint/internal/validation"
)

// Waypoint is the main application orchestrator.
type Waypoint struct {
	runner   ports.CommandRunner
	fs       ports.FileSystem
	prompter ports.Prompter
	out      io.Writer
	logger   ports.Logger
	newStore func(path string) checkpoint.Store
	goos     string
}

// New creates a Waypoint talking to the real system: commands run on this
// machine, questions are asked on in, and progress is reported on out.
func New(in io.Reader, out io.Writer) *Waypoint {
	if out == nil {
		out = os.Stdout
	}
	// Attached commands continue reading where the last prompt stopped.
	term := prompt.NewTerminal(in, out)
	return &Waypoint{
		runner:   command.NewRealRunner(command.WithStdio(in, out, out), command.WithInput(term.Input)),
		fs:       filesystem.NewRealFileSystem(),
		prompter: term,
		out:      out,
		newStore: func(path string) checkpoint.Store { return statefile.NewRepository(path) },
		goos:     runtime.GOOS,
	}
}

// WithCommandRunner replaces the command runner.
func (w *Waypoint) WithCommandRunner(r ports.CommandRunner) *Waypoint {
	w.runner = r
	return w
}

// WithFileSystem replaces the file system.
func (w *Waypoint) WithFileSystem(fs ports.FileSystem) *Waypoint {
	w.fs = fs
	return w
}

// WithPrompter replaces the prompter.
func (w *Waypoint) WithPrompter(p ports.Prompter) *Waypoint {
	w.prompter = p
	return w
}

// WithLogger replaces the console and file loggers built from the config.
func (w *Waypoint) WithLogger(l ports.Logger) *Waypoint {
	w.logger = l
	return w
}

// WithStore replaces the state file repository.
func (w *Waypoint) WithStore(s checkpoint.Store) *Waypoint {
	w.newStore = func(string) checkpoint.Store { return s }
	return w
}

// RunOptions are the per-invocation inputs.
type RunOptions struct {
	// ProjectID overrides the saved project id when non-blank.
	ProjectID string
	Verbose   bool
}

// Run performs one orchestrator run: reconcile a leftover workspace, resolve
// the project id, then execute every step not yet recorded as complete.
func (w *Waypoint) Run(ctx context.Context, cfg *config.Config, opts RunOptions) (execution.Outcome, error) {
	logger := w.logger
	if logger == nil {
		logger = NewLogger(w.out, cfg.LogFile, opts.Verbose)
	}
	store := w.newStore(cfg.StateFile)

	logger.Info(ctx, "Starting waypoint",
		ports.F("run_id", uuid.NewString()),
		ports.F("workspace", cfg.Workspace),
	)

	present := store.Exists(ctx)
	state, err := store.Load(ctx)
	if err != nil {
		logger.Warn(ctx, "State file could not be read, starting from scratch", ports.F("error", err.Error()))
		state = checkpoint.NewState()
	}

	workspaceExists := w.fs.IsDir(cfg.Workspace)
	if present && !workspaceExists && state.DoneStep > 0 {
		logger.Warn(ctx, "Workspace is missing but progress is recorded; completed steps will still be skipped",
			ports.F("workspace", cfg.Workspace),
			ports.F("state_file", cfg.StateFile),
		)
	}

	if err := w.reconcileWorkspace(ctx, cfg, store, logger, state, present, workspaceExists); err != nil {
		return execution.Outcome{LastCompleted: state.DoneStep, Err: err}, err
	}

	if err := w.resolveProjectID(ctx, cfg, store, logger, state, opts.ProjectID); err != nil {
		return execution.Outcome{LastCompleted: state.DoneStep, Err: err}, err
	}

	steps := BuildSteps(cfg, state, Deps{
		Runner: w.runner,
		FS:     w.fs,
		Logger: logger,
		GOOS:   w.goos,
	})

	outcome, err := execution.NewRunner(store, logger).Run(ctx, steps, state)
	if err != nil {
		var stepErr *execution.StepError
		if errors.As(err, &stepErr) {
			step := execution.Step{Ordinal: stepErr.Ordinal, Title: stepErr.Title}
			return outcome, config.NewStepFailedError(step.String(), stepErr.LastCompleted, err)
		}
		return outcome, err
	}
	return outcome, nil
}

func (w *Waypoint) reconcileWorkspace(
	ctx context.Context,
	cfg *config.Config,
	store checkpoint.Store,
	logger ports.Logger,
	state *checkpoint.State,
	present, workspaceExists bool,
) error {
	gate := reinstall.NewGate(store, logger)
	question := fmt.Sprintf("Found an existing installation at %s. Delete it and reinstall from scratch?", cfg.Workspace)

	_, err := gate.MaybeReset(ctx, state, present, workspaceExists,
		func() (bool, error) { return w.prompter.Confirm(question) },
		func() error { return w.fs.RemoveAll(cfg.Workspace) },
	)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, checkpoint.ErrSaveFailed):
		return config.NewStateWriteError(cfg.StateFile, err)
	case errors.Is(err, prompt.ErrNoInput):
		return config.NewUserError(config.ErrCodeEmptyInput, "no answer to the reinstall question").
			WithSuggestion("Run waypoint from an interactive terminal, or remove " + cfg.Workspace + " yourself.").
			WithUnderlying(err)
	default:
		return err
	}
}

func (w *Waypoint) resolveProjectID(
	ctx context.Context,
	cfg *config.Config,
	store checkpoint.Store,
	logger ports.Logger,
	state *checkpoint.State,
	override string,
) error {
	saved, _ := state.Get(checkpoint.VarProjectID)
	ask := func() (string, error) { return w.prompter.Line("Project ID") }

	res, err := resolve.NewResolver(logger).Resolve(ctx, "project id", saved, override, ask)
	if err != nil {
		if errors.Is(err, resolve.ErrEmptyInput) || errors.Is(err, prompt.ErrNoInput) {
			return config.NewEmptyInputError("project id", err)
		}
		return err
	}
	if err := validation.ValidateProjectID(res.Value); err != nil {
		return config.NewUserError(config.ErrCodeValidationFailed, "invalid project id").
			WithSuggestion("Project ids must fit on one line and contain no double quotes.").
			WithUnderlying(err)
	}

	if !res.Changed {
		logger.Info(ctx, "Using saved project id", ports.F("project_id", res.Value))
		return nil
	}

	state.Set(checkpoint.VarProjectID, res.Value)
	if err := store.Save(ctx, state); err != nil {
		return config.NewStateWriteError(cfg.StateFile, err)
	}
	logger.Info(ctx, "Project id saved", ports.F("project_id", res.Value))
	return nil
}

// NewLogger builds the run logger: console output on out plus the
// append-only log file. verbose adds timestamped debug lines on the
// console only.
func NewLogger(out io.Writer, logFile string, verbose bool) ports.Logger {
	level := ports.LevelInfo
	if verbose {
		level = ports.LevelDebug
	}
	return logging.NewTeeLogger(
		logging.NewConsoleLogger(
			logging.WithOutput(out),
			logging.WithLevel(level),
			logging.WithTimestamp(verbose),
		),
		logging.NewFileLogger(logFile),
	)
}

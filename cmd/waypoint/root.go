package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/waypoint/internal/app"
	"github.com/felixgeelhaar/waypoint/internal/domain/config"
)

// Version information set by build flags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type rootOptions struct {
	cfgFile string
	verbose bool
}

// newRootCmd builds the waypoint command. Commands read from in and write
// their progress and output to out.
func newRootCmd(in io.Reader, out io.Writer) (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "waypoint [project-id]",
		Short: "Resumable, checkpointed project provisioning",
		Long: `Waypoint installs prerequisites, fetches a project, configures it, installs
its dependencies and launches it. Progress is checkpointed after every step,
so a failed or interrupted run continues where it stopped.

The optional project-id argument overrides the id saved by an earlier run.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceErrors: true, // We handle error formatting ourselves
		SilenceUsage:  true, // Don't show usage on error
		RunE: func(cmd *cobra.Command, args []string) error {
			var projectID string
			if len(args) == 1 {
				projectID = args[0]
			}
			return run(cmd.Context(), opts, projectID, in, out)
		},
	}

	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetVersionTemplate(fmt.Sprintf("waypoint %s\n  commit: %s\n  built:  %s\n", version, commit, date))

	cmd.Flags().StringVar(&opts.cfgFile, "config", "", "config file (default: $"+config.EnvConfig+" or "+config.DefaultFileName+")")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	// Complete --config with YAML files
	_ = cmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	return cmd, opts
}

func run(ctx context.Context, opts *rootOptions, projectID string, in io.Reader, out io.Writer) error {
	path, explicit := opts.cfgFile, opts.cfgFile != ""
	if !explicit {
		path, explicit = config.NewFinder().Find()
	}

	cfg, err := config.NewLoader().Load(path, explicit)
	if err != nil {
		return err
	}

	_, err = app.New(in, out).Run(ctx, cfg, app.RunOptions{
		ProjectID: projectID,
		Verbose:   opts.verbose,
	})
	return err
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd, opts := newRootCmd(in, out)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		printErrorTo(errOut, err, opts.verbose)
		return 1
	}
	return 0
}

// formatError returns a user-friendly error message.
// With verbose=false: shows the user message, the cause of a failed step, and
// the suggestion.
// With verbose=true: shows the full error report plus the underlying error.
func formatError(err error, verbose bool) string {
	userErr := config.GetUserError(err)
	if userErr == nil {
		return err.Error()
	}

	if verbose {
		msg := userErr.Format()
		if userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}

	msg := userErr.Error()
	if config.IsUserError(err, config.ErrCodeStepFailed) && userErr.Underlying != nil {
		msg += fmt.Sprintf("\nCause: %v", userErr.Underlying)
	}
	if userErr.Suggestion != "" {
		msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
	}
	return msg
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error, verbose bool) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err, verbose))
}

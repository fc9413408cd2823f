// Package git fetches the project repository into the workspace.
package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/waypoint/internal/domain/config"
	"github.com/felixgeelhaar/waypoint/internal/ports"
	"github.com/felixgeelhaar/waypoint/internal/provider/commandutil"
	"github.com/felixgeelhaar/waypoint/internal/validation"
)

// Fetcher clones the repository, or fast-forwards an existing checkout.
type Fetcher struct {
	repo      config.Repository
	workspace string
	runner    ports.CommandRunner
	fs        ports.FileSystem
	logger    ports.Logger
}

// NewFetcher creates a new Fetcher.
func NewFetcher(repo config.Repository, workspace string, runner ports.CommandRunner, fs ports.FileSystem, logger ports.Logger) *Fetcher {
	return &Fetcher{
		repo:      repo,
		workspace: workspace,
		runner:    runner,
		fs:        fs,
		logger:    logger,
	}
}

// Run brings the workspace up to date with the remote.
func (f *Fetcher) Run(ctx context.Context) error {
	if err := validation.ValidateGitRemoteURL(f.repo.URL); err != nil {
		return fmt.Errorf("invalid repository url: %w", err)
	}
	if err := validation.ValidateGitBranch(f.repo.Branch); err != nil {
		return fmt.Errorf("invalid branch: %w", err)
	}

	if f.fs.IsDir(filepath.Join(f.workspace, ".git")) {
		return f.pull(ctx)
	}
	return f.clone(ctx)
}

func (f *Fetcher) clone(ctx context.Context) error {
	if err := f.fs.MkdirAll(filepath.Dir(f.workspace), 0o755); err != nil {
		return fmt.Errorf("failed to create workspace parent: %w", err)
	}

	args := []string{"clone"}
	if f.repo.Branch != "" {
		args = append(args, "--branch", f.repo.Branch)
	}
	args = append(args, "--", f.repo.URL, f.workspace)

	f.logger.Info(ctx, "Cloning repository", ports.F("url", f.repo.URL), ports.F("into", f.workspace))
	return f.git(ctx, "clone", args)
}

func (f *Fetcher) pull(ctx context.Context) error {
	f.logger.Info(ctx, "Repository already present, pulling latest changes", ports.F("path", f.workspace))

	if f.repo.Branch != "" {
		if err := f.git(ctx, "checkout", []string{"-C", f.workspace, "checkout", f.repo.Branch}); err != nil {
			return err
		}
	}
	return f.git(ctx, "pull", []string{"-C", f.workspace, "pull", "--ff-only"})
}

func (f *Fetcher) git(ctx context.Context, op string, args []string) error {
	result, err := f.runner.Run(ctx, "git", args...)
	if err != nil {
		if commandutil.IsCommandNotFound(err) {
			return fmt.Errorf("git %s: git is not installed: %w", op, os.ErrNotExist)
		}
		return fmt.Errorf("git %s: %w", op, err)
	}
	if !result.Success() {
		return fmt.Errorf("git %s failed (exit %d): %s", op, result.ExitCode, commandutil.Summary(result))
	}
	return nil
}

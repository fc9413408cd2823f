package git

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/waypoint/internal/domain/config"
	"github.com/felixgeelhaar/waypoint/internal/ports"
	"github.com/felixgeelhaar/waypoint/internal/testutil/mocks"
)

const repoURL = "https://github.com/acme/reporting.git"

var workspace = filepath.Join("/srv", "waypoint", "workspace")

func TestFetcher_Run_ClonesFreshWorkspace(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("git", []string{"clone", "--", repoURL, workspace}, ports.CommandResult{})
	fs := mocks.NewFileSystem()

	err := NewFetcher(config.Repository{URL: repoURL}, workspace, runner, fs, mocks.NewLogger()).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"git clone -- " + repoURL + " " + workspace}, runner.CallLines())
	assert.True(t, fs.IsDir(filepath.Dir(workspace)))
}

func TestFetcher_Run_ClonesBranch(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("git", []string{"clone", "--branch", "release/2.x", "--", repoURL, workspace}, ports.CommandResult{})

	repo := config.Repository{URL: repoURL, Branch: "release/2.x"}
	err := NewFetcher(repo, workspace, runner, mocks.NewFileSystem(), mocks.NewLogger()).Run(context.Background())

	require.NoError(t, err)
}

func TestFetcher_Run_PullsExistingCheckout(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("git", []string{"-C", workspace, "pull", "--ff-only"}, ports.CommandResult{})
	fs := mocks.NewFileSystem()
	fs.AddDir(filepath.Join(workspace, ".git"))

	err := NewFetcher(config.Repository{URL: repoURL}, workspace, runner, fs, mocks.NewLogger()).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"git -C " + workspace + " pull --ff-only"}, runner.CallLines())
}

func TestFetcher_Run_ChecksOutBranchBeforePull(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("git", []string{"-C", workspace, "checkout", "main"}, ports.CommandResult{})
	runner.AddResult("git", []string{"-C", workspace, "pull", "--ff-only"}, ports.CommandResult{})
	fs := mocks.NewFileSystem()
	fs.AddDir(filepath.Join(workspace, ".git"))

	repo := config.Repository{URL: repoURL, Branch: "main"}
	err := NewFetcher(repo, workspace, runner, fs, mocks.NewLogger()).Run(context.Background())

	require.NoError(t, err)
	assert.Len(t, runner.Calls(), 2)
}

func TestFetcher_Run_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		repo    config.Repository
		setup   func(*mocks.CommandRunner)
		wantMsg string
	}{
		{
			name: "clone exits non-zero",
			repo: config.Repository{URL: repoURL},
			setup: func(r *mocks.CommandRunner) {
				r.AddResult("git", []string{"clone", "--", repoURL, workspace},
					ports.CommandResult{ExitCode: 128, Stderr: "Cloning into...\nfatal: repository not found\n"})
			},
			wantMsg: "git clone failed (exit 128): fatal: repository not found",
		},
		{
			name: "git missing",
			repo: config.Repository{URL: repoURL},
			setup: func(r *mocks.CommandRunner) {
				r.AddError("git", []string{"clone", "--", repoURL, workspace}, exec.ErrNotFound)
			},
			wantMsg: "git is not installed",
		},
		{
			name:    "invalid url",
			repo:    config.Repository{URL: "https://evil.com/x;rm -rf"},
			setup:   func(*mocks.CommandRunner) {},
			wantMsg: "invalid repository url",
		},
		{
			name:    "invalid branch",
			repo:    config.Repository{URL: repoURL, Branch: "--upload-pack=x"},
			setup:   func(*mocks.CommandRunner) {},
			wantMsg: "invalid branch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runner := mocks.NewCommandRunner()
			tt.setup(runner)

			err := NewFetcher(tt.repo, workspace, runner, mocks.NewFileSystem(), mocks.NewLogger()).Run(context.Background())

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

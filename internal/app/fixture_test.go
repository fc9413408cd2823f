package app

import (
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/waypoint/internal/domain/config"
	"github.com/felixgeelhaar/waypoint/internal/ports"
	"github.com/felixgeelhaar/waypoint/internal/testutil/mocks"
)

const (
	testWorkspace = "/srv/demo"
	testRepoURL   = "https://example.com/acme/demo.git"
)

// testConfig returns a minimal configuration whose state and log files live
// in a temporary directory while everything else goes through the mocks.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	return &config.Config{
		Workspace: testWorkspace,
		StateFile: filepath.Join(dir, "waypoint.state"),
		LogFile:   filepath.Join(dir, "waypoint.log"),
		Prerequisites: []config.Prerequisite{
			{Name: "git", Command: "git", VersionArgs: []string{"--version"}, MinVersion: "2.0.0"},
		},
		Repository:  config.Repository{URL: testRepoURL},
		Manifest:    config.Manifest{Path: "requirements.txt"},
		Environment: config.Environment{Python: "python3", Dir: ".venv"},
		Launcher:    config.Launcher{Name: "demo", Path: "/srv/launch-demo.sh"},
		Launch:      config.Launch{Command: []string{"${VENV_PYTHON}", "main.py", "--project", "${PROJECT_ID}"}},
	}
}

// expectPrerequisites registers a passing version check.
func expectPrerequisites(r *mocks.CommandRunner) {
	r.AddResult("git", []string{"--version"}, ports.CommandResult{Stdout: "git version 2.43.0\n"})
}

// expectClone registers a successful fresh clone of the test repository.
func expectClone(r *mocks.CommandRunner) {
	r.AddResult("git", []string{"clone", "--", testRepoURL, testWorkspace}, ports.CommandResult{})
}

// expectVenv registers creation of the virtual environment.
func expectVenv(r *mocks.CommandRunner) {
	r.AddResult("python3", []string{"-m", "venv", testWorkspace + "/.venv"}, ports.CommandResult{})
}

// expectLaunch registers the application launch for projectID.
func expectLaunch(r *mocks.CommandRunner, projectID string, err error) {
	r.AddAttached(testWorkspace+"/.venv/bin/python", []string{"main.py", "--project", projectID}, err)
}

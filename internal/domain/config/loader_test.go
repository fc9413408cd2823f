package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoader_Load_AppliesFileOverDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `
workspace: apps/reporting
repository:
  url: https://github.com/acme/reporting.git
  branch: main
manifest:
  remove:
    - tensorflow
  append:
    - tensorflow-cpu==2.16.1
`)

	cfg, err := (&Loader{goos: "linux"}).Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "apps", "reporting"), cfg.Workspace)
	assert.Equal(t, filepath.Join(dir, "apps", "waypoint.state"), cfg.StateFile)
	assert.Equal(t, filepath.Join(dir, "apps", "waypoint.log"), cfg.LogFile)
	assert.Equal(t, "main", cfg.Repository.Branch)
	assert.Equal(t, []string{"tensorflow"}, cfg.Manifest.Remove)
	assert.Equal(t, "requirements.txt", cfg.Manifest.Path)

	// Sections absent from the file keep their defaults.
	assert.Equal(t, "python3", cfg.Environment.Python)
	assert.Len(t, cfg.Prerequisites, 2)
	assert.Equal(t, "reporting", cfg.Launcher.Name)
	assert.Equal(t, filepath.Join(dir, "apps", "launch-reporting.sh"), cfg.Launcher.Path)
}

func TestLoader_Load_ExplicitStateAndLauncherPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere", "run.state")
	path := writeConfig(t, dir, `
workspace: ws
state_file: `+abs+`
log_file: logs/run.log
repository:
  url: git@github.com:acme/reporting.git
launcher:
  name: Reporting Suite
  path: start.sh
`)

	cfg, err := (&Loader{goos: "linux"}).Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, abs, cfg.StateFile)
	assert.Equal(t, filepath.Join(dir, "logs", "run.log"), cfg.LogFile)
	assert.Equal(t, "Reporting Suite", cfg.Launcher.Name)
	assert.Equal(t, filepath.Join(dir, "start.sh"), cfg.Launcher.Path)
}

func TestLoader_Load_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"), true)

	require.Error(t, err)
	assert.True(t, IsUserError(err, ErrCodeConfigNotFound))
}

func TestLoader_Load_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Parallel()

	// Defaults carry no repository, so validation is what fails.
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), DefaultFileName), false)

	require.Error(t, err)
	assert.True(t, IsUserError(err, ErrCodeConfigInvalid))
	assert.Contains(t, err.Error(), "repository.url")
}

func TestLoader_Load_ParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"bad indentation", "workspace: ws\n  repository: x\n"},
		{"unknown key", "workspace: ws\nrepo:\n  url: https://github.com/a/b\n"},
		{"wrong type", "prerequisites: git\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, t.TempDir(), tt.body)

			_, err := NewLoader().Load(path, true)

			require.Error(t, err)
			assert.True(t, IsUserError(err, ErrCodeConfigParse))
		})
	}
}

func TestLoader_Load_EmptyFileUsesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "")

	_, err := NewLoader().Load(path, true)

	require.Error(t, err)
	assert.True(t, IsUserError(err, ErrCodeConfigInvalid))
}

func TestDefaultFor_Platforms(t *testing.T) {
	t.Parallel()

	win := defaultFor("windows")
	assert.Equal(t, "python", win.Environment.Python)
	assert.Equal(t, "winget", win.Prerequisites[0].Install[0])

	mac := defaultFor("darwin")
	assert.Equal(t, []string{"brew", "install", "git"}, mac.Prerequisites[0].Install)

	linux := defaultFor("linux")
	assert.Equal(t, "apt-get", linux.Prerequisites[1].Install[1])
	assert.Equal(t, "3.10.0", linux.Prerequisites[1].MinVersion)
}

func TestProjectName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "reporting", projectName("https://github.com/acme/reporting.git", "/ws"))
	assert.Equal(t, "reporting", projectName("git@github.com:acme/reporting.git/", "/ws"))
	assert.Equal(t, "ws", projectName("", "/tmp/ws"))
}

func TestSlug(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "reporting-suite", slug("Reporting Suite"))
	assert.Equal(t, "a-b", slug("--A__B--"))
	assert.Equal(t, "app", slug("!!!"))
}

func TestConfig_InWorkspace(t *testing.T) {
	t.Parallel()

	cfg := &Config{Workspace: filepath.Join("/srv", "ws")}

	assert.Equal(t, filepath.Join("/srv", "ws", "requirements.txt"), cfg.InWorkspace("requirements.txt"))
	abs := filepath.Join(t.TempDir(), "reqs.txt")
	assert.Equal(t, abs, cfg.InWorkspace(abs))
}

// Package config holds the run configuration: where the workspace lives,
// what each provisioning step does, and the user-facing error types.
package config

import "runtime"

// DefaultFileName is the configuration file looked up in the working directory.
const DefaultFileName = "waypoint.yaml"

// Config is the complete run configuration.
type Config struct {
	Workspace     string         `yaml:"workspace"`
	StateFile     string         `yaml:"state_file"`
	LogFile       string         `yaml:"log_file"`
	Prerequisites []Prerequisite `yaml:"prerequisites"`
	Repository    Repository     `yaml:"repository"`
	Manifest      Manifest       `yaml:"manifest"`
	AppConfig     AppConfig      `yaml:"app_config"`
	Environment   Environment    `yaml:"environment"`
	Launcher      Launcher       `yaml:"launcher"`
	Launch        Launch         `yaml:"launch"`
}

// Prerequisite is a tool that must be installed before the project is fetched.
type Prerequisite struct {
	Name        string   `yaml:"name"`
	Command     string   `yaml:"command"`
	VersionArgs []string `yaml:"version_args"`
	MinVersion  string   `yaml:"min_version"`
	Install     []string `yaml:"install"`
}

// Repository is the git remote the project is fetched from.
type Repository struct {
	URL    string `yaml:"url"`
	Branch string `yaml:"branch"`
}

// Manifest describes edits to the project's requirements file.
// Replace maps a distribution name to the line that supersedes it.
type Manifest struct {
	Path    string            `yaml:"path"`
	Remove  []string          `yaml:"remove"`
	Replace map[string]string `yaml:"replace"`
	Append  []string          `yaml:"append"`
}

// HasRules reports whether any edit is configured.
func (m Manifest) HasRules() bool {
	return len(m.Remove) > 0 || len(m.Replace) > 0 || len(m.Append) > 0
}

// AppConfig names the application settings file and the key that receives
// the project id.
type AppConfig struct {
	Path string `yaml:"path"`
	Key  string `yaml:"key"`
}

// Environment describes the project's virtual environment.
type Environment struct {
	Python       string `yaml:"python"`
	Dir          string `yaml:"dir"`
	Requirements string `yaml:"requirements"`
}

// Launcher describes the generated start script.
type Launcher struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Launch is the argv of the application, run from the workspace.
type Launch struct {
	Command []string `yaml:"command"`
}

// Default returns the built-in configuration for the current platform.
func Default() *Config {
	return defaultFor(runtime.GOOS)
}

func defaultFor(goos string) *Config {
	python := "python3"
	if goos == "windows" {
		python = "python"
	}

	return &Config{
		Workspace:     "~/waypoint/workspace",
		StateFile:     "waypoint.state",
		LogFile:       "waypoint.log",
		Prerequisites: defaultPrerequisites(goos, python),
		Manifest: Manifest{
			Path: "requirements.txt",
		},
		AppConfig: AppConfig{
			Path: "config.toml",
			Key:  "project.id",
		},
		Environment: Environment{
			Python:       python,
			Dir:          ".venv",
			Requirements: "requirements.txt",
		},
		Launch: Launch{
			Command: []string{"${VENV_PYTHON}", "main.py", "--project", "${PROJECT_ID}"},
		},
	}
}

func defaultPrerequisites(goos, python string) []Prerequisite {
	git := Prerequisite{
		Name:        "git",
		Command:     "git",
		VersionArgs: []string{"--version"},
		MinVersion:  "2.0.0",
	}
	py := Prerequisite{
		Name:        "python",
		Command:     python,
		VersionArgs: []string{"--version"},
		MinVersion:  "3.10.0",
	}

	switch goos {
	case "darwin":
		git.Install = []string{"brew", "install", "git"}
		py.Install = []string{"brew", "install", "python@3.12"}
	case "windows":
		git.Install = []string{"winget", "install", "--id", "Git.Git", "-e", "--source", "winget"}
		py.Install = []string{"winget", "install", "--id", "Python.Python.3.12", "-e", "--source", "winget"}
	default:
		git.Install = []string{"sudo", "apt-get", "install", "-y", "git"}
		py.Install = []string{"sudo", "apt-get", "install", "-y", "python3", "python3-venv"}
	}

	return []Prerequisite{git, py}
}

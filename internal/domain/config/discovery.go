package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// EnvConfig names the environment variable that points at a config file.
const EnvConfig = "WAYPOINT_CONFIG"

// Finder locates the configuration file when --config is not given.
type Finder struct {
	homeDir string
	goos    string
}

// NewFinder creates a Finder for the current user and platform.
func NewFinder() *Finder {
	home, _ := os.UserHomeDir()
	return &Finder{homeDir: home, goos: runtime.GOOS}
}

// NewFinderWithHome creates a Finder with a custom home directory (for testing).
func NewFinderWithHome(home, goos string) *Finder {
	return &Finder{homeDir: home, goos: goos}
}

// CandidatePaths returns every location searched, in priority order:
// $WAYPOINT_CONFIG, ./waypoint.yaml, then the per-user config directory.
func (f *Finder) CandidatePaths() []string {
	paths := make([]string, 0, 4)

	if env := os.Getenv(EnvConfig); env != "" {
		paths = append(paths, env)
	}
	paths = append(paths, DefaultFileName)

	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		xdg = filepath.Join(f.homeDir, ".config")
	}
	paths = append(paths, filepath.Join(xdg, "waypoint", DefaultFileName))

	if f.goos == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			paths = append(paths, filepath.Join(appData, "waypoint", DefaultFileName))
		}
	}

	return paths
}

// Find returns the config path to load and whether it must exist.
// $WAYPOINT_CONFIG is explicit; otherwise the first existing candidate is
// used, falling back to ./waypoint.yaml so built-in defaults apply.
func (f *Finder) Find() (string, bool) {
	if env := os.Getenv(EnvConfig); env != "" {
		return env, true
	}
	for _, path := range f.CandidatePaths() {
		if fileExists(path) {
			return path, false
		}
	}
	return DefaultFileName, false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

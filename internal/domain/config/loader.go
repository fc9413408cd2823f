package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// Loader loads configuration from the filesystem.
type Loader struct {
	goos string
}

// NewLoader creates a new Loader for the current platform.
func NewLoader() *Loader {
	return &Loader{goos: runtime.GOOS}
}

// Load reads the configuration at path on top of the built-in defaults,
// then normalizes and validates it. When explicit is false a missing file
// is not an error and the defaults are used as-is.
func (l *Loader) Load(path string, explicit bool) (*Config, error) {
	cfg := defaultFor(l.goos)
	baseDir := filepath.Dir(path)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := Parse(data, cfg); err != nil {
			return nil, NewConfigParseError(path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		baseDir = "."
	case errors.Is(err, os.ErrNotExist):
		return nil, NewConfigNotFoundError(path)
	default:
		return nil, NewUserError(ErrCodeConfigInvalid, "failed to read configuration file").
			WithContext(path).
			WithUnderlying(err)
	}

	if err := cfg.normalize(baseDir, l.goos); err != nil {
		return nil, NewUserError(ErrCodeConfigInvalid, "failed to resolve workspace path").
			WithContext(path).
			WithUnderlying(err)
	}

	if problems := Validate(cfg); problems.HasErrors() {
		return nil, NewInvalidConfigError(path, problems)
	}

	return cfg, nil
}

// Parse decodes YAML onto cfg. Unknown keys are rejected so typos surface
// instead of silently falling back to defaults.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) normalize(baseDir, goos string) error {
	workspace := ports.ExpandPath(strings.TrimSpace(c.Workspace))
	if workspace == "" {
		return nil
	}
	if !filepath.IsAbs(workspace) {
		workspace = filepath.Join(baseDir, workspace)
	}
	abs, err := filepath.Abs(workspace)
	if err != nil {
		return err
	}
	c.Workspace = abs

	parent := filepath.Dir(c.Workspace)
	c.StateFile = resolveBeside(parent, c.StateFile, "waypoint.state")
	c.LogFile = resolveBeside(parent, c.LogFile, "waypoint.log")

	if c.Launcher.Name == "" {
		c.Launcher.Name = projectName(c.Repository.URL, c.Workspace)
	}
	if c.Launcher.Path == "" {
		c.Launcher.Path = filepath.Join(parent, "launch-"+slug(c.Launcher.Name)+scriptExt(goos))
	} else {
		c.Launcher.Path = resolveBeside(parent, c.Launcher.Path, "")
	}

	return nil
}

// InWorkspace resolves a workspace-relative path.
func (c *Config) InWorkspace(path string) string {
	path = ports.ExpandPath(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Workspace, path)
}

func resolveBeside(dir, path, fallback string) string {
	path = ports.ExpandPath(strings.TrimSpace(path))
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// projectName derives a display name from the repository URL, falling back
// to the workspace directory name.
func projectName(url, workspace string) string {
	url = strings.TrimRight(url, "/")
	if url != "" {
		base := url
		if i := strings.LastIndexAny(base, "/:\\"); i >= 0 {
			base = base[i+1:]
		}
		base = strings.TrimSuffix(base, ".git")
		if base != "" {
			return base
		}
	}
	return filepath.Base(workspace)
}

func slug(name string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "app"
	}
	return s
}

func scriptExt(goos string) string {
	if goos == "windows" {
		return ".cmd"
	}
	return ".sh"
}

package app

import (
	"context"
	"runtime"

	"github.com/felixgeelhaar/waypoint/internal/domain/checkpoint"
	"github.com/felixgeelhaar/waypoint/internal/domain/config"
	"github.com/felixgeelhaar/waypoint/internal/domain/execution"
	"github.com/felixgeelhaar/waypoint/internal/ports"
	"github.com/felixgeelhaar/waypoint/internal/provider/appconfig"
	"github.com/felixgeelhaar/waypoint/internal/provider/git"
	"github.com/felixgeelhaar/waypoint/internal/provider/launch"
	"github.com/felixgeelhaar/waypoint/internal/provider/launcher"
	"github.com/felixgeelhaar/waypoint/internal/provider/manifest"
	"github.com/felixgeelhaar/waypoint/internal/provider/prereq"
	"github.com/felixgeelhaar/waypoint/internal/provider/pyenv"
)

// Step ordinals. The gap before StepLaunch leaves room for steps added
// later without renumbering checkpoints already on disk.
const (
	StepPrerequisites = 10
	StepFetch         = 20
	StepManifest      = 30
	StepConfigure     = 40
	StepDependencies  = 50
	StepLauncher      = 55
	StepLaunch        = 60
)

// Deps are the collaborators step actions reach the outside world through.
type Deps struct {
	Runner ports.CommandRunner
	FS     ports.FileSystem
	Logger ports.Logger
	GOOS   string
}

// Variables returns the values available to ${NAME} references: every saved
// variable upper-cased, plus WORKSPACE and VENV_PYTHON.
func Variables(cfg *config.Config, state *checkpoint.State, goos string) map[string]string {
	vars := map[string]string{
		"WORKSPACE":   cfg.Workspace,
		"VENV_PYTHON": pyenv.VenvPython(cfg.InWorkspace(cfg.Environment.Dir), goos),
	}
	for _, name := range state.Names() {
		value, _ := state.Get(name)
		vars[config.VariableName(name)] = value
	}
	return vars
}

// BuildSteps returns the provisioning steps in run order.
func BuildSteps(cfg *config.Config, state *checkpoint.State, d Deps) []execution.Step {
	if d.GOOS == "" {
		d.GOOS = runtime.GOOS
	}
	projectID, _ := state.Get(checkpoint.VarProjectID)
	command := config.Expand(cfg.Launch.Command, Variables(cfg, state, d.GOOS))

	env := pyenv.NewInstaller(pyenv.Options{
		Python:       cfg.Environment.Python,
		VenvDir:      cfg.InWorkspace(cfg.Environment.Dir),
		Requirements: optionalPath(cfg, cfg.Environment.Requirements),
	}, d.Runner, d.FS, d.Logger)

	script := launcher.NewWriter(launcher.Options{
		Name:      cfg.Launcher.Name,
		Path:      cfg.Launcher.Path,
		Workspace: cfg.Workspace,
		Command:   command,
	}, d.FS, d.Logger)

	return []execution.Step{
		{
			Ordinal: StepPrerequisites,
			Title:   "Install prerequisites",
			Action:  prereq.NewInstaller(cfg.Prerequisites, d.Runner, d.Logger),
		},
		{
			Ordinal: StepFetch,
			Title:   "Fetch project",
			Action:  git.NewFetcher(cfg.Repository, cfg.Workspace, d.Runner, d.FS, d.Logger),
		},
		{
			Ordinal: StepManifest,
			Title:   "Rewrite dependency manifest",
			Action: manifest.NewRewriter(optionalPath(cfg, cfg.Manifest.Path), manifest.Rules{
				Remove:  cfg.Manifest.Remove,
				Replace: cfg.Manifest.Replace,
				Append:  cfg.Manifest.Append,
			}, d.FS, d.Logger),
		},
		{
			Ordinal: StepConfigure,
			Title:   "Configure project",
			Action:  configureAction(cfg, projectID, d),
		},
		{
			Ordinal: StepDependencies,
			Title:   "Install dependencies",
			Action:  env,
		},
		{
			Ordinal: StepLauncher,
			Title:   "Write launcher",
			Action:  script,
		},
		{
			Ordinal: StepLaunch,
			Title:   "Launch application",
			Action:  launch.NewLauncher(cfg.Workspace, command, d.Runner, d.Logger),
		},
	}
}

func configureAction(cfg *config.Config, projectID string, d Deps) execution.Action {
	if cfg.AppConfig.Path == "" {
		return execution.ActionFunc(func(ctx context.Context) error {
			d.Logger.Info(ctx, "No application config configured")
			return nil
		})
	}
	return appconfig.NewWriter(cfg.InWorkspace(cfg.AppConfig.Path), cfg.AppConfig.Key, projectID, d.FS, d.Logger)
}

func optionalPath(cfg *config.Config, path string) string {
	if path == "" {
		return ""
	}
	return cfg.InWorkspace(path)
}

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/felixgeelhaar/waypoint/internal/validation"
)

// AppConfigExtensions lists the settings file formats the configure step can edit.
var AppConfigExtensions = []string{".toml", ".ini", ".cfg", ".env", ".yaml", ".yml"}

// CanonicalVersion turns "3.10" or "v3.10.0" into the "v"-prefixed form
// semver expects. It returns "" when the input is not a version.
func CanonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

// Validate checks the configuration and reports every problem at once.
func Validate(cfg *Config) *ErrorList {
	problems := NewErrorList()

	if strings.TrimSpace(cfg.Workspace) == "" {
		problems.AddValidation("workspace", "workspace is required",
			"Set workspace to the directory the project is checked out into.")
	}

	validatePrerequisites(cfg.Prerequisites, problems)
	validateRepository(cfg.Repository, problems)
	validateManifest(cfg.Manifest, problems)
	validateAppConfig(cfg.AppConfig, problems)
	validateEnvironment(cfg.Environment, problems)
	validateLaunch(cfg.Launch, problems)

	return problems
}

func validatePrerequisites(prereqs []Prerequisite, problems *ErrorList) {
	seen := make(map[string]bool, len(prereqs))
	for i, p := range prereqs {
		field := fmt.Sprintf("prerequisites[%d]", i)
		if p.Name == "" {
			problems.AddValidation(field+".name", "name is required", "")
		} else if seen[p.Name] {
			problems.AddValidation(field+".name", fmt.Sprintf("duplicate prerequisite %q", p.Name), "")
		}
		seen[p.Name] = true

		if err := validation.ValidateCommand(p.Command); err != nil {
			problems.AddValidation(field+".command", err.Error(), commandSuggestion(err))
		}
		if p.MinVersion != "" && CanonicalVersion(p.MinVersion) == "" {
			problems.AddValidation(field+".min_version", fmt.Sprintf("%q is not a version", p.MinVersion),
				"Use a dotted version such as 3.10 or 2.40.1.")
		}
		if len(p.Install) > 0 {
			if err := validation.ValidateCommand(p.Install[0]); err != nil {
				problems.AddValidation(field+".install", err.Error(), commandSuggestion(err))
			}
		}
	}
}

func validateRepository(repo Repository, problems *ErrorList) {
	if err := validation.ValidateGitRemoteURL(repo.URL); err != nil {
		problems.AddValidation("repository.url", err.Error(),
			"Set repository.url to an https:// or git@ URL of the project.")
	}
	if err := validation.ValidateGitBranch(repo.Branch); err != nil {
		problems.AddValidation("repository.branch", err.Error(), "")
	}
}

func validateManifest(m Manifest, problems *ErrorList) {
	if m.HasRules() && strings.TrimSpace(m.Path) == "" {
		problems.AddValidation("manifest.path", "path is required when rules are configured", "")
	}
	for i, name := range m.Remove {
		if err := validation.ValidateRequirementName(name); err != nil {
			problems.AddValidation(fmt.Sprintf("manifest.remove[%d]", i), err.Error(), requirementSuggestion(err))
		}
	}
	for name, line := range m.Replace {
		if err := validation.ValidateRequirementName(name); err != nil {
			problems.AddValidation("manifest.replace."+name, err.Error(), requirementSuggestion(err))
		}
		if err := validation.ValidateRequirement(line); err != nil {
			problems.AddValidation("manifest.replace."+name, err.Error(), requirementSuggestion(err))
		}
	}
	for i, line := range m.Append {
		if err := validation.ValidateRequirement(line); err != nil {
			problems.AddValidation(fmt.Sprintf("manifest.append[%d]", i), err.Error(), requirementSuggestion(err))
		}
	}
}

func validateAppConfig(a AppConfig, problems *ErrorList) {
	if a.Path == "" {
		return
	}
	ext := strings.ToLower(filepath.Ext(a.Path))
	if filepath.Base(a.Path) == ".env" {
		ext = ".env"
	}
	supported := false
	for _, e := range AppConfigExtensions {
		if e == ext {
			supported = true
			break
		}
	}
	if !supported {
		problems.AddValidation("app_config.path", fmt.Sprintf("unsupported file type %q", ext),
			"Use one of: "+strings.Join(AppConfigExtensions, ", "))
	}
	if err := validation.ValidateConfigKey(a.Key); err != nil {
		problems.AddValidation("app_config.key", err.Error(), "Use a dotted key such as project.id.")
	}
}

func validateEnvironment(env Environment, problems *ErrorList) {
	if err := validation.ValidateCommand(env.Python); err != nil {
		problems.AddValidation("environment.python", err.Error(), commandSuggestion(err))
	}
	if strings.TrimSpace(env.Dir) == "" {
		problems.AddValidation("environment.dir", "dir is required", "")
	}
}

func validateLaunch(l Launch, problems *ErrorList) {
	if len(l.Command) == 0 {
		problems.AddValidation("launch.command", "command is required",
			"Set launch.command to the argv that starts the application.")
		return
	}
	if strings.HasPrefix(l.Command[0], "${") {
		return
	}
	if err := validation.ValidateCommand(l.Command[0]); err != nil {
		problems.AddValidation("launch.command[0]", err.Error(), commandSuggestion(err))
	}
}

// commandSuggestion explains how to fix a rejected executable.
func commandSuggestion(err error) string {
	switch {
	case errors.Is(err, validation.ErrCommandInjection):
		return "Commands run without a shell; put each argument in its own list item."
	case errors.Is(err, validation.ErrInvalidCommand):
		return "Use the executable name as found on PATH, e.g. git, or its full path."
	}
	return ""
}

// requirementSuggestion explains how to fix a rejected manifest entry.
func requirementSuggestion(err error) string {
	switch {
	case errors.Is(err, validation.ErrNewlineInjection):
		return "Write one requirement per list item."
	case errors.Is(err, validation.ErrInvalidPackageName):
		return "Use the distribution name as published, e.g. google-cloud-storage."
	}
	return ""
}

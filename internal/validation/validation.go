package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput         = errors.New("input cannot be empty")
	ErrInvalidProjectID   = errors.New("invalid project id")
	ErrInvalidRequirement = errors.New("invalid requirement")
	ErrInvalidConfigKey   = errors.New("invalid config key")
	ErrInvalidCommand     = errors.New("invalid command name")
	ErrCommandInjection   = errors.New("potential command injection detected")
	ErrNewlineInjection   = errors.New("newline injection detected")
	ErrInvalidPackageName = errors.New("invalid package name")
)

// Compiled regex patterns for validation.
var (
	// controlCharRegex matches any ASCII control character.
	controlCharRegex = regexp.MustCompile(`[\x00-\x1f\x7f]`)

	// requirementNameRegex matches a PEP 508 distribution name.
	// Examples: "requests", "google-cloud-storage", "zope.interface"
	requirementNameRegex = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

	// requirementLineRegex matches a name, optional extras, then anything else
	// pip accepts after it (specifiers, markers, URLs).
	// Examples: "black==23.1.0", "uvicorn[standard]>=0.30", "numpy>=1.26,<2"
	requirementLineRegex = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)(\[[A-Za-z0-9._, -]*\])?\s*([=<>!~;@ ].*)?$`)

	// configKeySegmentRegex matches one segment of a dotted config key.
	// Examples: "project", "gcp_project", "project-id"
	configKeySegmentRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

	// commandRegex matches executable names or paths.
	// Examples: "git", "python3", "/usr/bin/python3", `C:\Python312\python.exe`
	commandRegex = regexp.MustCompile(`^[A-Za-z0-9_./:\\ +-]+$`)

	// shellMetaChars contains shell metacharacters that could enable injection.
	shellMetaChars = []string{";", "|", "&", "$", "`", "(", ")", "{", "}", "<", ">", "\n", "\r"}
)

// ValidateProjectID validates a project identifier before it is persisted.
// Identifiers end up in the state file and in generated configuration, so
// line breaks and other control characters are rejected.
func ValidateProjectID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyInput
	}

	if len(id) > 256 {
		return fmt.Errorf("%w: longer than 256 characters", ErrInvalidProjectID)
	}

	if controlCharRegex.MatchString(id) {
		return fmt.Errorf("%w: %q contains control characters", ErrNewlineInjection, id)
	}

	if strings.Contains(id, `"`) {
		return fmt.Errorf("%w: %q contains a double quote", ErrInvalidProjectID, id)
	}

	return nil
}

// ValidateRequirementName validates a bare distribution name such as "requests".
func ValidateRequirementName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}

	if len(name) > 256 {
		return fmt.Errorf("%w: name too long", ErrInvalidPackageName)
	}

	if !requirementNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q is not a valid distribution name", ErrInvalidPackageName, name)
	}

	return nil
}

// ValidateRequirement validates a single requirements-file line.
// Examples: "requests", "black==23.1.0", "uvicorn[standard]>=0.30"
func ValidateRequirement(line string) error {
	if strings.TrimSpace(line) == "" {
		return ErrEmptyInput
	}

	if len(line) > 1024 {
		return fmt.Errorf("%w: line too long", ErrInvalidRequirement)
	}

	if controlCharRegex.MatchString(line) {
		return fmt.Errorf("%w: %q contains control characters", ErrNewlineInjection, line)
	}

	if strings.HasPrefix(strings.TrimSpace(line), "-") {
		return fmt.Errorf("%w: %q is a pip option, not a requirement", ErrInvalidRequirement, line)
	}

	if !requirementLineRegex.MatchString(strings.TrimSpace(line)) {
		return fmt.Errorf("%w: %q does not start with a distribution name", ErrInvalidRequirement, line)
	}

	return nil
}

// ValidateConfigKey validates a dotted key such as "gcp.project".
func ValidateConfigKey(key string) error {
	if key == "" {
		return ErrEmptyInput
	}

	for _, segment := range strings.Split(key, ".") {
		if !configKeySegmentRegex.MatchString(segment) {
			return fmt.Errorf("%w: %q has an invalid segment %q", ErrInvalidConfigKey, key, segment)
		}
	}

	return nil
}

// ValidateCommand validates the executable part of an argv.
func ValidateCommand(command string) error {
	if command == "" {
		return ErrEmptyInput
	}

	if containsShellMeta(command) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, command)
	}

	if !commandRegex.MatchString(command) {
		return fmt.Errorf("%w: %q", ErrInvalidCommand, command)
	}

	return nil
}

// containsShellMeta checks if a string contains shell metacharacters.
func containsShellMeta(s string) bool {
	for _, char := range shellMetaChars {
		if strings.Contains(s, char) {
			return true
		}
	}
	return false
}

// Package validation checks operator-supplied values before they reach a
// command line or a file on disk.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Git input validation patterns.
var (
	// gitBranchPattern allows alphanumeric, hyphens, underscores, slashes, and dots.
	gitBranchPattern = regexp.MustCompile(`^[a-zA-Z0-9/_.-]+$`)

	// gitRemoteURLPatterns for valid git remote URLs and local paths.
	gitRemoteURLPatterns = []*regexp.Regexp{
		// HTTPS URLs: https://github.com/user/repo.git or https://github.com/user/repo
		regexp.MustCompile(`^https://[a-zA-Z0-9.-]+(:[0-9]+)?/[a-zA-Z0-9_./~-]+(?:\.git)?$`),
		// SSH URLs: git@github.com:user/repo.git
		regexp.MustCompile(`^git@[a-zA-Z0-9.-]+:[a-zA-Z0-9_./~-]+(?:\.git)?$`),
		// SSH protocol: ssh://git@github.com/user/repo.git
		regexp.MustCompile(`^ssh://[a-zA-Z0-9@.-]+(:[0-9]+)?/[a-zA-Z0-9_./~-]+(?:\.git)?$`),
		// file:// URLs: file:///path/to/repo
		regexp.MustCompile(`^file:///[a-zA-Z0-9_./-]+$`),
		// Unix absolute paths: /path/to/repo
		regexp.MustCompile(`^/[a-zA-Z0-9_./-]+$`),
		// Windows paths: C:\path\to\repo or C:/path/to/repo
		regexp.MustCompile(`^[a-zA-Z]:[/\\][a-zA-Z0-9_./\\-]+$`),
	}

	// Characters that should never appear in git inputs.
	// The null byte is checked separately for a more specific message.
	dangerousChars = []string{";", "&", "|", "$", "`", "(", ")", "{", "}", "<", ">", "!", "\n", "\r"}
)

// ValidateGitBranch validates a git branch name. Empty means the remote default.
func ValidateGitBranch(branch string) error {
	if branch == "" {
		return nil
	}

	if len(branch) > 255 {
		return fmt.Errorf("branch name too long (max 255 characters)")
	}

	if strings.ContainsRune(branch, '\x00') {
		return fmt.Errorf("branch name contains null byte")
	}

	for _, char := range dangerousChars {
		if strings.Contains(branch, char) {
			return fmt.Errorf("branch name contains invalid character: %q", char)
		}
	}

	if strings.HasPrefix(branch, "-") {
		return fmt.Errorf("branch name cannot start with '-'")
	}

	if !gitBranchPattern.MatchString(branch) {
		return fmt.Errorf("invalid branch name format: must contain only alphanumeric characters, hyphens, underscores, slashes, and dots")
	}

	if strings.Contains(branch, "..") {
		return fmt.Errorf("branch name cannot contain '..'")
	}

	return nil
}

// ValidateGitRemoteURL validates the URL a project is cloned from.
func ValidateGitRemoteURL(url string) error {
	if url == "" {
		return ErrEmptyInput
	}

	if len(url) > 2048 {
		return fmt.Errorf("remote URL too long (max 2048 characters)")
	}

	if strings.ContainsRune(url, '\x00') {
		return fmt.Errorf("remote URL contains null byte")
	}

	for _, char := range dangerousChars {
		if strings.Contains(url, char) {
			return fmt.Errorf("remote URL contains invalid character: %q", char)
		}
	}

	for _, pattern := range gitRemoteURLPatterns {
		if pattern.MatchString(url) {
			return nil
		}
	}

	return fmt.Errorf("invalid git remote URL format: must be HTTPS, SSH URL, or local path")
}

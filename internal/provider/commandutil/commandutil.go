// Package commandutil holds helpers shared by providers that shell out.
package commandutil

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// IsCommandNotFound reports whether an error indicates a missing executable.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
		return true
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, os.ErrNotExist) {
		return true
	}
	return false
}

// Summary returns the last non-empty line of a failed command's stderr,
// falling back to stdout. Tools print the actual reason last.
func Summary(result ports.CommandResult) string {
	for _, out := range []string{result.Stderr, result.Stdout} {
		out = strings.TrimSpace(out)
		if out == "" {
			continue
		}
		lines := strings.Split(out, "\n")
		return strings.TrimSpace(lines[len(lines)-1])
	}
	return "no output"
}

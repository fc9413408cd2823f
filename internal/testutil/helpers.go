// Package testutil provides test helpers shared by waypoint tests.
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTempFile writes content to a file in dir, creating parent
// directories, and returns its path.
func WriteTempFile(t testing.TB, dir, filename, content string) string {
	t.Helper()

	path := filepath.Join(dir, filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "failed to create parent of %s", filename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "failed to write temp file: %s", filename)

	return path
}

// WriteStateFile writes a state file with the given checkpoint and project id.
// An empty projectID omits the variable line.
func WriteStateFile(t testing.TB, path string, doneStep int, projectID string) {
	t.Helper()

	content := "DONE_STEP=" + strconv.Itoa(doneStep) + "\n"
	if projectID != "" {
		content += `PROJECT_ID_SAVED="` + projectID + "\"\n"
	}
	WriteTempFile(t, filepath.Dir(path), filepath.Base(path), content)
}

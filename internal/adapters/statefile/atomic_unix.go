//go:build !windows

package statefile

import (
	"os"

	"github.com/google/renameio/v2"
)

// atomicWriteFile replaces path so readers only ever see a complete file.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}

// Package filesystem provides file system adapters.
package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// ErrUnsafeRemove is returned when RemoveAll is asked to delete a path that
// can never be a workspace, such as the file system root or the home directory.
var ErrUnsafeRemove = errors.New("refusing to remove protected path")

// RealFileSystem implements ports.FileSystem using actual file system operations.
type RealFileSystem struct{}

// NewRealFileSystem creates a new RealFileSystem.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// ReadFile reads a file and returns its contents.
func (fs *RealFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a file. perm is applied to existing files too,
// so a rewritten launcher stays executable.
func (fs *RealFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		return err
	}
	return os.Chmod(path, perm)
}

// Exists checks if a file or directory exists.
func (fs *RealFileSystem) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir checks if a path is a directory.
func (fs *RealFileSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// MkdirAll creates a directory and all necessary parents.
func (fs *RealFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// RemoveAll deletes path and everything below it.
func (fs *RealFileSystem) RemoveAll(path string) error {
	if err := checkRemovable(path); err != nil {
		return err
	}
	return os.RemoveAll(path)
}

func checkRemovable(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if abs == filepath.Dir(abs) || filepath.Dir(abs) == filepath.VolumeName(abs) {
		return fmt.Errorf("%w: %s", ErrUnsafeRemove, abs)
	}
	if home, err := os.UserHomeDir(); err == nil && filepath.Clean(home) == abs {
		return fmt.Errorf("%w: %s", ErrUnsafeRemove, abs)
	}
	return nil
}

// Ensure RealFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*RealFileSystem)(nil)

package appconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// Writer stores one value in a settings file, creating the file when absent.
type Writer struct {
	path   string
	key    string
	value  string
	fs     ports.FileSystem
	logger ports.Logger
}

// NewWriter creates a new Writer.
func NewWriter(path, key, value string, fs ports.FileSystem, logger ports.Logger) *Writer {
	return &Writer{
		path:   path,
		key:    key,
		value:  value,
		fs:     fs,
		logger: logger,
	}
}

// Run sets the key. An existing file keeps its other settings.
func (w *Writer) Run(ctx context.Context) error {
	format, err := DetectFormat(w.path)
	if err != nil {
		return err
	}

	data, err := w.fs.ReadFile(w.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", w.path, err)
	}

	updated, changed, err := Set(format, data, w.key, w.value)
	if err != nil {
		return fmt.Errorf("%s: %w", w.path, err)
	}
	if !changed {
		w.logger.Info(ctx, "Application config already up to date", ports.F("path", w.path), ports.F("key", w.key))
		return nil
	}

	if err := w.fs.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := w.fs.WriteFile(w.path, updated, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.path, err)
	}

	w.logger.Info(ctx, "Updated application config",
		ports.F("path", w.path),
		ports.F("key", w.key),
		ports.F("format", string(format)),
	)
	return nil
}

package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// ErrManifestMissing is returned when the manifest to edit does not exist.
var ErrManifestMissing = errors.New("dependency manifest not found")

// Rewriter applies Rules to a manifest file.
type Rewriter struct {
	path   string
	rules  Rules
	fs     ports.FileSystem
	logger ports.Logger
}

// NewRewriter creates a new Rewriter for the file at path.
func NewRewriter(path string, rules Rules, fs ports.FileSystem, logger ports.Logger) *Rewriter {
	return &Rewriter{
		path:   path,
		rules:  rules,
		fs:     fs,
		logger: logger,
	}
}

// Run rewrites the manifest when the rules change it.
func (r *Rewriter) Run(ctx context.Context) error {
	if r.rules.Empty() {
		r.logger.Info(ctx, "No manifest changes configured")
		return nil
	}

	data, err := r.fs.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrManifestMissing, r.path)
		}
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	updated, changes := Rewrite(string(data), r.rules)
	if len(changes) == 0 {
		r.logger.Info(ctx, "Manifest already up to date", ports.F("path", r.path))
		return nil
	}

	for _, c := range changes {
		r.logger.Debug(ctx, "Manifest edit", ports.F("kind", c.Kind), ports.F("line", c.Line))
	}

	if err := r.fs.WriteFile(r.path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	r.logger.Info(ctx, fmt.Sprintf("Rewrote manifest with %d change(s)", len(changes)), ports.F("path", r.path))
	return nil
}

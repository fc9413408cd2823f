package logging

import (
	"context"

	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// TeeLogger forwards every record to each of its loggers in order.
// Each sink applies its own level filter.
type TeeLogger struct {
	sinks []ports.Logger
}

// NewTeeLogger creates a logger fanning out to sinks.
func NewTeeLogger(sinks ...ports.Logger) *TeeLogger {
	return &TeeLogger{sinks: sinks}
}

// Debug logs a debug message to every sink.
func (t *TeeLogger) Debug(ctx context.Context, msg string, fields ...ports.Field) {
	for _, s := range t.sinks {
		s.Debug(ctx, msg, fields...)
	}
}

// Info logs an informational message to every sink.
func (t *TeeLogger) Info(ctx context.Context, msg string, fields ...ports.Field) {
	for _, s := range t.sinks {
		s.Info(ctx, msg, fields...)
	}
}

// Success logs a completion message to every sink.
func (t *TeeLogger) Success(ctx context.Context, msg string, fields ...ports.Field) {
	for _, s := range t.sinks {
		s.Success(ctx, msg, fields...)
	}
}

// Warn logs a warning to every sink.
func (t *TeeLogger) Warn(ctx context.Context, msg string, fields ...ports.Field) {
	for _, s := range t.sinks {
		s.Warn(ctx, msg, fields...)
	}
}

// Error logs an error to every sink.
func (t *TeeLogger) Error(ctx context.Context, msg string, fields ...ports.Field) {
	for _, s := range t.sinks {
		s.Error(ctx, msg, fields...)
	}
}

// With derives every sink.
func (t *TeeLogger) With(fields ...ports.Field) ports.Logger {
	derived := make([]ports.Logger, len(t.sinks))
	for i, s := range t.sinks {
		derived[i] = s.With(fields...)
	}
	return &TeeLogger{sinks: derived}
}

// Level returns the most verbose level among the sinks.
func (t *TeeLogger) Level() ports.Level {
	if len(t.sinks) == 0 {
		return ports.LevelInfo
	}
	lowest := t.sinks[0].Level()
	for _, s := range t.sinks[1:] {
		if lvl := s.Level(); lvl < lowest {
			lowest = lvl
		}
	}
	return lowest
}

// SetLevel sets the level on every sink.
func (t *TeeLogger) SetLevel(level ports.Level) {
	for _, s := range t.sinks {
		s.SetLevel(level)
	}
}

// Ensure TeeLogger implements Logger.
var _ ports.Logger = (*TeeLogger)(nil)

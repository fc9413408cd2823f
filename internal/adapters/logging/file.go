package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// FileTimeLayout is the timestamp layout of every log file line.
const FileTimeLayout = "2006-01-02 15:04:05"

// FileLogger appends one line per event to a log file:
//
//	[LEVEL] [2006-01-02 15:04:05] message key=value
//
// The file is opened and closed for every line, so no handle is held
// between events and a crash never leaves a truncated buffer behind.
type FileLogger struct {
	mu     *sync.Mutex
	path   string
	level  ports.Level
	fields []ports.Field
	now    func() time.Time
}

// FileLoggerOption configures the file logger.
type FileLoggerOption func(*FileLogger)

// WithFileLevel sets the minimum log level (default: Info).
func WithFileLevel(level ports.Level) FileLoggerOption {
	return func(l *FileLogger) {
		l.level = level
	}
}

// WithClock replaces the time source used for timestamps.
func WithClock(now func() time.Time) FileLoggerOption {
	return func(l *FileLogger) {
		l.now = now
	}
}

// NewFileLogger creates a logger appending to path.
func NewFileLogger(path string, opts ...FileLoggerOption) *FileLogger {
	l := &FileLogger{
		mu:    &sync.Mutex{},
		path:  path,
		level: ports.LevelInfo,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Path returns the log file location.
func (l *FileLogger) Path() string {
	return l.path
}

// Debug logs a debug message.
func (l *FileLogger) Debug(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelDebug, msg, fields)
}

// Info logs an informational message.
func (l *FileLogger) Info(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelInfo, msg, fields)
}

// Success logs a completion message.
func (l *FileLogger) Success(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelSuccess, msg, fields)
}

// Warn logs a warning message.
func (l *FileLogger) Warn(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelWarn, msg, fields)
}

// Error logs an error message.
func (l *FileLogger) Error(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelError, msg, fields)
}

// With returns a new logger with additional fields.
func (l *FileLogger) With(fields ...ports.Field) ports.Logger {
	return &FileLogger{
		mu:     l.mu,
		path:   l.path,
		level:  l.level,
		fields: appendFields(l.fields, fields),
		now:    l.now,
	}
}

// Level returns the minimum log level.
func (l *FileLogger) Level() ports.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel sets the minimum log level.
func (l *FileLogger) SetLevel(level ports.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *FileLogger) log(_ context.Context, level ports.Level, msg string, fields []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] %s", level.String(), l.now().Format(FileTimeLayout), msg)
	writeFields(&b, appendFields(l.fields, fields))
	b.WriteByte('\n')

	// A diagnostic sink must never take the run down with it.
	_ = l.appendLine(b.String())
}

func (l *FileLogger) appendLine(line string) error {
	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Ensure FileLogger implements Logger.
var _ ports.Logger = (*FileLogger)(nil)

package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cnoize/winget-monitor/internal/common/output"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// timestampLayout is local time, second precision, no zone suffix
const timestampLayout = "2006-01-02T15:04:05"

// Logger writes run log lines to the console and appends them to a log file.
// The file is opened and closed on every call; a failed append never stops the run.
type Logger struct {
	level     Level
	output    io.Writer
	errOutput io.Writer
	path      string
	nowFunc   func() time.Time
	mu        sync.Mutex
}

// Option is a functional option for configuring Logger
type Option func(*Logger)

// WithOutput sets the console writer (stdout by default)
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.output = w
	}
}

// WithErrorOutput sets the writer used when the log file cannot be written (stderr by default)
func WithErrorOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.errOutput = w
	}
}

// WithNowFunc sets a custom time function for testing
func WithNowFunc(fn func() time.Time) Option {
	return func(l *Logger) {
		l.nowFunc = fn
	}
}

// New creates a logger appending to the file at path.
// An empty path disables file output.
func New(path string, opts ...Option) *Logger {
	l := &Logger{
		level:     LevelInfo,
		output:    os.Stdout,
		errOutput: os.Stderr,
		path:      path,
		nowFunc:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the log file path
func (l *Logger) Path() string {
	return l.path
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetVerbose enables debug output
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.SetLevel(LevelDebug)
	}
}

// Format renders a log line without the trailing newline
func Format(t time.Time, msg string) string {
	return fmt.Sprintf("[%s] %s", t.Format(timestampLayout), msg)
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	logLine := Format(l.nowFunc(), fmt.Sprintf(format, args...)) + "\n"

	switch level {
	case LevelError:
		output.Error.Fprint(l.output, logLine)
	case LevelWarn:
		output.Warning.Fprint(l.output, logLine)
	default:
		fmt.Fprint(l.output, logLine)
	}

	if err := l.appendToFile(logLine); err != nil {
		fmt.Fprintf(l.errOutput, "Failed to write to log file: %v\n", err)
		fmt.Fprint(l.errOutput, logLine)
	}
}

// appendToFile appends a single line, creating the file if needed
func (l *Logger) appendToFile(line string) error {
	if l.path == "" {
		return nil
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	_, err = f.WriteString(line)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Log records an informational run message
func (l *Logger) Log(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

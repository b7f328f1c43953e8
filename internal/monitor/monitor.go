// Package monitor runs one winget upgrade check and writes its snapshot.
//
// A run moves through RunCommand, Parse, Serialize and WriteOutput. An
// unavailable winget degrades to an empty snapshot and a clean exit; any other
// failure is logged with a stack trace and exits with ExitInternalError.
package monitor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/cnoize/winget-monitor/internal/common/logger"
	"github.com/cnoize/winget-monitor/internal/winget"
)

// Process exit codes
const (
	ExitOK            = 0
	ExitInternalError = 1
)

// Monitor sequences the runner, parser and report writer for a single run
type Monitor struct {
	runner      winget.CommandRunner
	log         *logger.Logger
	outputPath  string
	nowFunc     func() time.Time
	traceOutput io.Writer
}

// Option is a functional option for configuring Monitor
type Option func(*Monitor)

// WithNowFunc sets a custom time function for testing
func WithNowFunc(fn func() time.Time) Option {
	return func(m *Monitor) {
		m.nowFunc = fn
	}
}

// WithTraceOutput sets where diagnostic traces go (stderr by default)
func WithTraceOutput(w io.Writer) Option {
	return func(m *Monitor) {
		m.traceOutput = w
	}
}

// New creates a Monitor writing its report to outputPath
func New(runner winget.CommandRunner, log *logger.Logger, outputPath string, opts ...Option) *Monitor {
	m := &Monitor{
		runner:      runner,
		log:         log,
		outputPath:  outputPath,
		nowFunc:     time.Now,
		traceOutput: os.Stderr,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run performs one check and returns the process exit code
func (m *Monitor) Run() (code int) {
	timestamp := winget.FormatTimestamp(m.nowFunc())
	m.log.Log("Starting Winget Update Monitor at %s", timestamp)

	defer func() {
		if r := recover(); r != nil {
			m.fail(fmt.Errorf("panic: %v", r))
			code = ExitInternalError
		}
	}()

	count, err := m.check(timestamp)
	switch {
	case errors.Is(err, winget.ErrCommandUnavailable):
		m.log.Error("Error: Winget is not installed or failed to run: %v", err)
		if err := m.writeReport(timestamp, nil); err != nil {
			m.fail(err)
			return ExitInternalError
		}
		return ExitOK
	case err != nil:
		m.fail(err)
		return ExitInternalError
	}

	m.log.Log("Found %d updates", count)
	m.log.Log("Finished Winget Update Monitor")
	return ExitOK
}

// check runs the command, parses its output and writes the report
func (m *Monitor) check(timestamp string) (int, error) {
	if cl, ok := m.runner.(interface{ CommandLine() string }); ok {
		m.log.Log("Executing command: %s", cl.CommandLine())
	}

	raw, err := m.runner.Run()
	if err != nil {
		return 0, err
	}
	m.log.Debug("Captured %d bytes of winget output", len(raw))

	updates := winget.ParseUpgradeOutput(raw)
	for _, u := range updates {
		m.log.Debug("  %s: %s (%s)", u.Name, u.Version, u.Source)
	}

	if err := m.writeReport(timestamp, updates); err != nil {
		return 0, err
	}
	return len(updates), nil
}

func (m *Monitor) writeReport(timestamp string, updates []winget.Update) error {
	data, err := winget.NewReport(timestamp, updates).Serialize()
	if err != nil {
		return err
	}
	return winget.WriteReport(m.outputPath, data)
}

// fail records an unexpected error and a stack trace
func (m *Monitor) fail(err error) {
	m.log.Error("Internal error: %v", err)
	fmt.Fprintf(m.traceOutput, "%v\n%s", err, debug.Stack())
}

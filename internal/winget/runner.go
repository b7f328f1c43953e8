package winget

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrCommandUnavailable covers every way the upgrade listing can fail to
// produce output: missing executable, start failure, or non-zero exit.
var ErrCommandUnavailable = errors.New("winget command unavailable")

// CommandUnavailableError carries the human-readable cause of an unavailable command.
type CommandUnavailableError struct {
	Cause string
}

func (e *CommandUnavailableError) Error() string {
	return e.Cause
}

// Is makes errors.Is(err, ErrCommandUnavailable) match
func (e *CommandUnavailableError) Is(target error) bool {
	return target == ErrCommandUnavailable
}

// CommandRunner produces the raw upgrade listing
type CommandRunner interface {
	Run() (string, error)
}

// ShellRunner runs a command line through a shell and captures stdout and stderr together
type ShellRunner struct {
	shell   []string
	command string
}

// NewShellRunner creates a runner executing command via shell, e.g.
// shell = ["powershell.exe", "-Command"]. For PowerShell the command is
// wrapped in a script block so its native exit code is preserved.
func NewShellRunner(shell []string, command string) *ShellRunner {
	return &ShellRunner{
		shell:   append([]string(nil), shell...),
		command: command,
	}
}

// CommandLine returns the command passed to the shell
func (r *ShellRunner) CommandLine() string {
	return r.command
}

// args builds the argv for exec
func (r *ShellRunner) args() []string {
	if len(r.shell) == 0 {
		return nil
	}
	args := append([]string(nil), r.shell...)
	if isPowerShell(r.shell[0]) {
		return append(args, "&{"+r.command+"}")
	}
	return append(args, r.command)
}

func isPowerShell(shell string) bool {
	base := strings.ToLower(filepath.Base(shell))
	return strings.HasPrefix(base, "powershell") || strings.HasPrefix(base, "pwsh")
}

// Run executes the command once. Output is fully drained before the exit
// status is checked. Any failure is reported as *CommandUnavailableError.
func (r *ShellRunner) Run() (string, error) {
	argv := r.args()
	if len(argv) < 2 {
		return "", &CommandUnavailableError{Cause: "Failed to run winget: no shell configured"}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &CommandUnavailableError{
				Cause: fmt.Sprintf("Winget command failed with exit code %d", exitErr.ExitCode()),
			}
		}
		return "", &CommandUnavailableError{Cause: fmt.Sprintf("Failed to run winget: %v", err)}
	}

	return string(out), nil
}

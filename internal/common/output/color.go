package output

import (
	"github.com/fatih/color"
)

var (
	// Message colors used by the console echo of the run log
	Warning = color.New(color.FgYellow)
	Error   = color.New(color.FgRed)
)

// NoColor disables color output
func NoColor() {
	color.NoColor = true
}

// ForceColor enables color output even when not a TTY
func ForceColor() {
	color.NoColor = false
}

// Enabled reports whether color output is currently active
func Enabled() bool {
	return !color.NoColor
}

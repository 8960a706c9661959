package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// UI provides the diagnostics output of tedge-write. Everything goes to
// stderr: standard input carries the file payload, and standard output stays
// clean so the tool composes in pipelines and under sudo.
type UI struct {
	output io.Writer
	debug  bool
	// Color functions
	colorDebug *color.Color
	colorError *color.Color
}

// New creates a new UI instance writing to stderr
func New() *UI {
	return &UI{
		output:     os.Stderr,
		colorDebug: color.New(color.FgCyan),
		colorError: color.New(color.FgRed),
	}
}

// NewWithWriter creates a UI with custom output writer (useful for testing)
func NewWithWriter(w io.Writer) *UI {
	ui := New()
	ui.output = w
	return ui
}

// SetDebug enables or disables debug output
func (u *UI) SetDebug(enabled bool) {
	u.debug = enabled
}

// Debugf prints a formatted debug message when debug output is enabled
func (u *UI) Debugf(format string, args ...interface{}) {
	if !u.debug {
		return
	}
	u.colorDebug.Fprintf(u.output, "[DEBUG] %s\n", fmt.Sprintf(format, args...))
}

// Errorf prints a formatted error message
func (u *UI) Errorf(format string, args ...interface{}) {
	u.colorError.Fprintf(u.output, "[ERROR] %s\n", fmt.Sprintf(format, args...))
}

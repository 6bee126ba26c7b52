// Package logger provides verbose logging for the getlicense CLI.
// A Logger is built once from the --verbose flag and passed to the
// services that need it; there is no package-level verbosity state.
// Debug, Info and Section lines are printed only in verbose mode.
// Warnings are always printed so stale-cache fallbacks stay visible.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger writes prefixed diagnostic lines. A nil *Logger discards everything.
type Logger struct {
	mu      sync.Mutex
	verbose bool
	output  io.Writer
}

// New creates a logger writing to w. A nil writer defaults to os.Stderr.
func New(w io.Writer, verbose bool) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{verbose: verbose, output: w}
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return New(io.Discard, false)
}

// IsVerbose returns true if verbose mode is enabled.
func (l *Logger) IsVerbose() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.verbose
}

// Debug prints a message if verbose mode is enabled.
func (l *Logger) Debug(format string, args ...any) {
	l.printVerbose("[DEBUG] "+format+"\n", args...)
}

// Info prints an informational message if verbose mode is enabled.
func (l *Logger) Info(format string, args ...any) {
	l.printVerbose("[INFO] "+format+"\n", args...)
}

// Section prints a section header if verbose mode is enabled.
func (l *Logger) Section(name string) {
	l.printVerbose("\n=== %s ===\n", name)
}

// Warn prints a warning message regardless of verbosity.
func (l *Logger) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.output, "[WARN] "+format+"\n", args...)
}

func (l *Logger) printVerbose(format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.verbose {
		fmt.Fprintf(l.output, format, args...)
	}
}

// Package logger provides leveled stderr logging for the chatpack CLI.
// Debug output appears only with --verbose; --quiet silences everything
// except errors, which callers print themselves.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

var (
	mu       sync.RWMutex
	verbose  bool
	quiet    bool
	output   io.Writer = os.Stderr

	// progress is set while a carriage-return progress line is open.
	progress bool
)

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetQuiet suppresses informational output, warnings and progress.
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// IsQuiet returns true if quiet mode is enabled.
func IsQuiet() bool {
	mu.RLock()
	defer mu.RUnlock()
	return quiet
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	progress = false
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbose && !quiet {
		printf("[DEBUG] "+format+"\n", args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose && !quiet {
		printf("\n=== %s ===\n", name)
	}
}

// Info prints an informational message unless quiet.
func Info(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !quiet {
		printf(format+"\n", args...)
	}
}

// Warn prints a warning unless quiet.
func Warn(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !quiet {
		printf("[WARN] "+format+"\n", args...)
	}
}

// Progress reports a running count. On a terminal the line is redrawn in
// place; elsewhere each update is its own line.
func Progress(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if quiet {
		return
	}
	if isTerminal(output) {
		fmt.Fprintf(output, "\r"+format, args...)
		progress = true
		return
	}
	fmt.Fprintf(output, format+"\n", args...)
}

// EndProgress terminates an in-place progress line, if one is open.
func EndProgress() {
	mu.Lock()
	defer mu.Unlock()
	endProgress()
}

// printf writes one line, first closing any open progress line.
// Callers hold mu.
func printf(format string, args ...any) {
	endProgress()
	fmt.Fprintf(output, format, args...)
}

func endProgress() {
	if progress {
		fmt.Fprintln(output)
		progress = false
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

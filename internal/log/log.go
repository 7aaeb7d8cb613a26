// ABOUTME: Leveled diagnostic logging for the CLI and store internals
// ABOUTME: Quiet (warnings only) by default; -verbose opens the debug level

package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level orders message severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var tags = map[Level]string{
	LevelDebug: "[DEBUG]",
	LevelInfo:  "[INFO]",
	LevelWarn:  "[WARN]",
	LevelError: "[ERROR]",
}

var (
	mu        sync.Mutex
	threshold = LevelWarn
	// Diagnostics go to stderr so they never mix with command output
	// or the TUI's alternate screen.
	output io.Writer = os.Stderr
)

// SetVerbose opens the debug level (true) or restores the default
// warnings-only threshold (false).
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	if v {
		threshold = LevelDebug
	} else {
		threshold = LevelWarn
	}
}

// SetOutput redirects diagnostics, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < threshold {
		return
	}
	fmt.Fprintf(output, tags[l]+" "+format+"\n", args...)
}

// Debug logs a debug message when verbose mode is on.
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

// Info logs an informational message.
func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warn logs a warning.
func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Error logs an error message. Errors always pass the threshold.
func Error(format string, args ...any) { logf(LevelError, format, args...) }

// ABOUTME: Cross-platform clipboard write via pbcopy, xclip, xsel, or clip
// ABOUTME: Tries each platform backend in order, piping text over stdin

package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Write copies text to the system clipboard, trying each backend for
// the current OS in order.
func Write(text string) error {
	backends := platformBackends()
	if len(backends) == 0 {
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}

	var lastErr error
	for _, b := range backends {
		if _, err := exec.LookPath(b[0]); err != nil {
			lastErr = err
			continue
		}
		c := exec.Command(b[0], b[1:]...)
		c.Stdin = strings.NewReader(text)
		if err := c.Run(); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("no clipboard backend succeeded: %w", lastErr)
}

// Available reports whether some clipboard backend exists on this
// system.
func Available() bool {
	for _, b := range platformBackends() {
		if _, err := exec.LookPath(b[0]); err == nil {
			return true
		}
	}
	return false
}

// platformBackends returns candidate clipboard commands for the
// current OS, most preferred first.
func platformBackends() [][]string {
	switch runtime.GOOS {
	case "darwin":
		return [][]string{{"pbcopy"}}
	case "linux":
		return [][]string{
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
			{"wl-copy"},
		}
	case "windows":
		return [][]string{{"clip"}}
	default:
		return nil
	}
}

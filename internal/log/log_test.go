// ABOUTME: Tests for the diagnostic logger's threshold and verbose toggle

package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestThresholdAndVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetVerbose(false)

	Debug("hidden %d", 1)
	Warn("shown %d", 2)
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "[WARN] shown 2") {
		t.Errorf("default threshold: %q", out)
	}

	buf.Reset()
	SetVerbose(true)
	Debug("now visible")
	if !strings.Contains(buf.String(), "[DEBUG] now visible") {
		t.Errorf("verbose: %q", buf.String())
	}

	buf.Reset()
	SetVerbose(false)
	Info("quiet again")
	Error("always %s", "logged")
	if out := buf.String(); strings.Contains(out, "quiet") || !strings.Contains(out, "[ERROR] always logged") {
		t.Errorf("after reset: %q", out)
	}
}

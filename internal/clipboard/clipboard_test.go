// ABOUTME: Tests for clipboard backend selection
// ABOUTME: Actual copying depends on the host, so only shape is asserted

package clipboard

import (
	"runtime"
	"testing"
)

func TestPlatformBackends(t *testing.T) {
	t.Parallel()
	backends := platformBackends()
	switch runtime.GOOS {
	case "darwin", "linux", "windows":
		if len(backends) == 0 {
			t.Fatalf("expected backends on %s", runtime.GOOS)
		}
		for _, b := range backends {
			if len(b) == 0 || b[0] == "" {
				t.Errorf("malformed backend: %v", b)
			}
		}
	default:
		if backends != nil {
			t.Errorf("unexpected backends on %s: %v", runtime.GOOS, backends)
		}
	}
}

func TestWrite_NoBackend(t *testing.T) {
	t.Parallel()
	if Available() {
		t.Skip("a real clipboard backend is installed")
	}
	if err := Write("hello"); err == nil {
		t.Error("write without a backend should fail")
	}
}

// ABOUTME: Scans shell rc files and the live shell for alias definitions
// ABOUTME: File scans run concurrently; active aliases come from a pty shell

package scanner

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sync/errgroup"

	"github.com/alix-sh/alix/internal/alias"
	"github.com/alix-sh/alix/internal/log"
	"github.com/alix-sh/alix/internal/shell"
)

// aliasPattern matches `alias name=value` lines with optional quoting.
var aliasPattern = regexp.MustCompile(`^\s*alias\s+([a-zA-Z_][a-zA-Z0-9_\-]*)\s*=\s*['"]?(.+?)['"]?\s*$`)

// activeShellTimeout bounds the interactive-shell probe.
const activeShellTimeout = 5 * time.Second

// Scanner discovers alias definitions outside the store.
type Scanner struct {
	detector *shell.Detector
}

// New creates a scanner using the given detector. A nil detector uses
// the current user's home directory.
func New(detector *shell.Detector) *Scanner {
	if detector == nil {
		detector = shell.NewDetector("")
	}
	return &Scanner{detector: detector}
}

// ScanFile extracts alias definitions from one file. A missing or
// unreadable file yields no aliases.
func (s *Scanner) ScanFile(path string) []*alias.Alias {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var out []*alias.Alias
	base := filepath.Base(path)
	for _, line := range strings.Split(string(data), "\n") {
		m := aliasPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		a := alias.New(m[1], strings.Trim(m[2], `'"`))
		a.Description = "Imported from " + base
		out = append(out, a)
	}
	return out
}

// ScanSystem scans every config file of the detected shell
// concurrently, keyed by file basename. Files with no aliases are
// omitted.
func (s *Scanner) ScanSystem() map[string][]*alias.Alias {
	files := s.detector.ConfigFiles(s.detector.Detect())

	found := make([][]*alias.Alias, len(files))
	var g errgroup.Group
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			found[i] = s.ScanFile(path)
			return nil
		})
	}
	g.Wait()

	results := map[string][]*alias.Alias{}
	for i, path := range files {
		if len(found[i]) > 0 {
			results[filepath.Base(path)] = found[i]
		}
	}
	return results
}

// ActiveAliases lists the aliases defined in a live interactive shell
// by running `<shell> -i -c alias` under a pty. Interactive shells
// expect a terminal; without one zsh and fish skip their rc files.
func (s *Scanner) ActiveAliases() []*alias.Alias {
	shellType := s.detector.Detect()
	if shellType == shell.Unknown {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), activeShellTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, string(shellType), "-i", "-c", "alias")
	f, err := pty.Start(cmd)
	if err != nil {
		log.Warn("starting %s for alias scan: %v", shellType, err)
		return nil
	}
	defer f.Close()

	var out []*alias.Alias
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := aliasPattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		a := alias.New(m[1], strings.Trim(m[2], `'"`))
		a.Description = "Active system alias"
		out = append(out, a)
	}
	cmd.Wait()
	return out
}

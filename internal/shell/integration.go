// ABOUTME: Usage-tracking shell integration: per-alias wrapper functions
// ABOUTME: Generates bash/zsh/fish scripts and installs them into rc files

package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alix-sh/alix/internal/alias"
)

// Lister is the slice of the store the integrator needs.
type Lister interface {
	ListAll() []*alias.Alias
	Get(name string) (*alias.Alias, bool)
}

// Integrator generates shell code that routes alias invocations through
// `alix track` before running the underlying command.
type Integrator struct {
	store Lister
}

// NewIntegrator creates an integrator over the given store view.
func NewIntegrator(store Lister) *Integrator {
	return &Integrator{store: store}
}

// TrackingFunction generates a wrapper function for one alias. Returns
// the empty string for unknown names.
func (g *Integrator) TrackingFunction(name string) string {
	a, ok := g.store.Get(name)
	if !ok {
		return ""
	}
	cwd, _ := os.Getwd()
	return fmt.Sprintf(`
%s() {
    alix track %s --context "cwd:%s" >/dev/null 2>&1 &

    %s "$@"
}`, a.Name, a.Name, cwd, a.Command)
}

// AllTrackingFunctions generates wrapper functions for every alias.
func (g *Integrator) AllTrackingFunctions() string {
	var funcs []string
	for _, a := range g.store.ListAll() {
		if f := g.TrackingFunction(a.Name); f != "" {
			funcs = append(funcs, f)
		}
	}
	return strings.Join(funcs, "\n\n")
}

// IntegrationScript generates a complete tracking script in the given
// shell's dialect. Unknown shells get the bash form.
func (g *Integrator) IntegrationScript(t Type) string {
	switch t {
	case Fish:
		return g.fishScript()
	case Zsh:
		return g.posixScript("#!/bin/zsh", "Zsh")
	default:
		return g.posixScript("#!/bin/bash", "Bash")
	}
}

func (g *Integrator) posixScript(shebang, label string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `%s
# alix usage tracking integration for %s

track_alias_usage() {
    local alias_name="$1"
    local context="$2"

    alix track "$alias_name" --context "$context" >/dev/null 2>&1 &
}

%s

export ALIX_AUTO_TRACK=true

echo "alix usage tracking enabled for %d aliases"
`, shebang, label, g.AllTrackingFunctions(), len(g.store.ListAll()))
	return b.String()
}

func (g *Integrator) fishScript() string {
	cwd, _ := os.Getwd()
	var funcs []string
	for _, a := range g.store.ListAll() {
		funcs = append(funcs, fmt.Sprintf(`function %s
    alix track %s --context "cwd:%s" >/dev/null 2>&1 &

    %s $argv
end`, a.Name, a.Name, cwd, a.Command))
	}
	return fmt.Sprintf(`# alix usage tracking integration for fish

%s

echo "alix usage tracking enabled for %d aliases"
`, strings.Join(funcs, "\n\n"), len(g.store.ListAll()))
}

// InstallIntegration appends the tracking script to an rc file with a
// dated marker comment.
func (g *Integrator) InstallIntegration(configPath string, t Type) error {
	f, err := os.OpenFile(configPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening shell config: %w", err)
	}
	defer f.Close()

	header := fmt.Sprintf("\n\n# alix usage tracking integration\n# Added on %s\n",
		time.Now().Format("2006-01-02 15:04:05"))
	if _, err := f.WriteString(header + g.IntegrationScript(t)); err != nil {
		return fmt.Errorf("writing integration: %w", err)
	}
	return nil
}

// WriteStandaloneScript writes the tracking script as an executable
// file at path, creating parent directories as needed.
func (g *Integrator) WriteStandaloneScript(path string, t Type) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating script directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(g.IntegrationScript(t)), 0o755); err != nil {
		return fmt.Errorf("writing tracking script: %w", err)
	}
	return nil
}

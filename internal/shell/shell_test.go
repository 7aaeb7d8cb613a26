// ABOUTME: Tests for shell detection, the managed alias block, and the
// ABOUTME: usage-tracking integration scripts

package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alix-sh/alix/internal/alias"
)

func TestDetect_FromShellEnv(t *testing.T) {
	cases := map[string]Type{
		"/bin/zsh":          Zsh,
		"/bin/bash":         Bash,
		"/usr/bin/fish":     Fish,
		"/bin/sh":           Sh,
		"/usr/local/bin/sh": Sh,
	}
	for env, want := range cases {
		t.Setenv("SHELL", env)
		d := NewDetector(t.TempDir())
		if got := d.Detect(); got != want {
			t.Errorf("SHELL=%s: got %s, want %s", env, got, want)
		}
	}
}

func TestDetect_VersionEnvFallback(t *testing.T) {
	t.Setenv("SHELL", "")
	t.Setenv("ZSH_VERSION", "5.9")
	t.Setenv("BASH_VERSION", "")

	// Empty home so passwd and rc hints cannot interfere with the
	// version-variable path.
	d := NewDetector(t.TempDir())
	if loginShell() == "" {
		if got := d.Detect(); got != Zsh {
			t.Errorf("got %s, want zsh", got)
		}
	}
}

func TestDetect_ConfigHint(t *testing.T) {
	t.Setenv("SHELL", "")
	t.Setenv("ZSH_VERSION", "")
	t.Setenv("ZSH_NAME", "")
	t.Setenv("BASH_VERSION", "")

	home := t.TempDir()
	if err := os.WriteFile(filepath.Join(home, ".zshrc"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	d := NewDetector(home)
	if loginShell() == "" {
		if got := d.Detect(); got != Zsh {
			t.Errorf("got %s, want zsh", got)
		}
	}
}

func TestConfigFiles(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	for _, rel := range []string{".bashrc", ".profile"} {
		if err := os.WriteFile(filepath.Join(home, rel), nil, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	d := NewDetector(home)
	got := d.ConfigFiles(Bash)
	if len(got) != 2 {
		t.Errorf("bash config files: %v", got)
	}
	if files := d.ConfigFiles(Fish); len(files) != 0 {
		t.Errorf("fish config files should be absent: %v", files)
	}

	all := d.AllConfigFiles()
	// .profile is shared between bash and sh but must appear once.
	if len(all) != 2 {
		t.Errorf("all config files: %v", all)
	}
}

func TestApply_FreshAndReplace(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".bashrc")
	if err := os.WriteFile(path, []byte("export PATH=$PATH:/opt/bin\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	aliases := []*alias.Alias{
		alias.New("gs", "git status"),
		alias.New("ll", "ls -la"),
	}
	n, err := Apply(path, aliases)
	if err != nil || n != 2 {
		t.Fatalf("apply: n=%d err=%v", n, err)
	}

	data, _ := os.ReadFile(path)
	out := string(data)
	if !strings.Contains(out, "export PATH") {
		t.Error("existing content should be preserved")
	}
	if !strings.Contains(out, "alias gs='git status'") {
		t.Errorf("missing alias line:\n%s", out)
	}

	// Second apply replaces the block instead of appending another.
	if _, err := Apply(path, []*alias.Alias{alias.New("gl", "git log")}); err != nil {
		t.Fatalf("reapply: %v", err)
	}
	data, _ = os.ReadFile(path)
	out = string(data)
	if strings.Count(out, blockStart) != 1 {
		t.Errorf("expected one managed block:\n%s", out)
	}
	if strings.Contains(out, "alias gs=") {
		t.Error("old aliases should be gone after replace")
	}
	if !strings.Contains(out, "alias gl='git log'") {
		t.Error("new alias missing after replace")
	}
}

func TestApply_EscapesSingleQuotes(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".bashrc")

	_, err := Apply(path, []*alias.Alias{alias.New("say", "echo 'hi'")})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `alias say='echo '\''hi'\'''`) {
		t.Errorf("quote escaping:\n%s", data)
	}
}

type fakeLister struct {
	aliases []*alias.Alias
}

func (f *fakeLister) ListAll() []*alias.Alias { return f.aliases }

func (f *fakeLister) Get(name string) (*alias.Alias, bool) {
	for _, a := range f.aliases {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

func TestIntegrationScript(t *testing.T) {
	t.Parallel()
	g := NewIntegrator(&fakeLister{aliases: []*alias.Alias{
		alias.New("gs", "git status"),
	}})

	for _, tc := range []struct {
		shell Type
		want  []string
	}{
		{Bash, []string{"#!/bin/bash", "track_alias_usage", "gs() {", `git status "$@"`}},
		{Zsh, []string{"#!/bin/zsh", "gs() {"}},
		{Fish, []string{"function gs", "git status $argv", "end"}},
	} {
		script := g.IntegrationScript(tc.shell)
		for _, want := range tc.want {
			if !strings.Contains(script, want) {
				t.Errorf("%s script missing %q", tc.shell, want)
			}
		}
	}

	if f := g.TrackingFunction("nope"); f != "" {
		t.Errorf("unknown alias should produce no function, got %q", f)
	}
}

func TestInstallIntegration_AppendsWithMarker(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".bashrc")
	if err := os.WriteFile(path, []byte("# existing\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	g := NewIntegrator(&fakeLister{})
	if err := g.InstallIntegration(path, Bash); err != nil {
		t.Fatalf("install: %v", err)
	}

	data, _ := os.ReadFile(path)
	out := string(data)
	if !strings.HasPrefix(out, "# existing") {
		t.Error("install must append, not overwrite")
	}
	if !strings.Contains(out, "# alix usage tracking integration") ||
		!strings.Contains(out, "# Added on ") {
		t.Errorf("missing marker comment:\n%s", out)
	}
}

func TestWriteStandaloneScript(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "scripts", "track.sh")

	g := NewIntegrator(&fakeLister{})
	if err := g.WriteStandaloneScript(path, Bash); err != nil {
		t.Fatalf("write: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("mode: %v", info.Mode())
	}
}

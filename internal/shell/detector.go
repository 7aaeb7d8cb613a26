// ABOUTME: Shell type detection from environment, /etc/passwd, and rc files
// ABOUTME: Also locates the existing config files for a detected shell

package shell

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// Type identifies a supported shell dialect.
type Type string

const (
	Bash    Type = "bash"
	Zsh     Type = "zsh"
	Fish    Type = "fish"
	Sh      Type = "sh"
	Unknown Type = "unknown"
)

// configFiles maps each shell to the rc files it conventionally reads,
// relative to the home directory and in lookup order.
var configFiles = map[Type][]string{
	Bash: {".bashrc", ".bash_profile", ".bash_aliases", ".profile"},
	Zsh:  {".zshrc", ".zshenv", ".zprofile", ".zsh_aliases"},
	Fish: {".config/fish/config.fish"},
	Sh:   {".profile", ".shinit"},
}

// Detector resolves the user's shell and its config files.
type Detector struct {
	home string
}

// NewDetector creates a detector rooted at home. An empty home falls
// back to the current user's home directory.
func NewDetector(home string) *Detector {
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return &Detector{home: home}
}

// Detect identifies the current shell. Checks run from most to least
// reliable: $SHELL, the login shell in /etc/passwd, shell version
// environment variables, then rc-file hints.
func (d *Detector) Detect() Type {
	if t := classify(os.Getenv("SHELL")); t != Unknown {
		return t
	}
	if t := classify(loginShell()); t != Unknown {
		return t
	}
	if os.Getenv("ZSH_VERSION") != "" || os.Getenv("ZSH_NAME") != "" {
		return Zsh
	}
	if os.Getenv("BASH_VERSION") != "" {
		return Bash
	}
	return d.configHint()
}

// ConfigFiles returns the shell's rc files that exist under home,
// as absolute paths.
func (d *Detector) ConfigFiles(t Type) []string {
	var out []string
	for _, rel := range configFiles[t] {
		path := filepath.Join(d.home, rel)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			out = append(out, path)
		}
	}
	return out
}

// AllConfigFiles returns every known rc file that exists, across all
// shells, deduplicated.
func (d *Detector) AllConfigFiles() []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range []Type{Bash, Zsh, Fish, Sh} {
		for _, path := range d.ConfigFiles(t) {
			if !seen[path] {
				seen[path] = true
				out = append(out, path)
			}
		}
	}
	return out
}

// classify maps a shell binary path to its Type.
func classify(path string) Type {
	path = strings.ToLower(path)
	switch {
	case path == "":
		return Unknown
	case strings.Contains(path, "zsh"):
		return Zsh
	case strings.Contains(path, "bash"):
		return Bash
	case strings.Contains(path, "fish"):
		return Fish
	case strings.HasSuffix(path, "/sh"), path == "sh":
		return Sh
	default:
		return Unknown
	}
}

// loginShell reads the current user's shell from /etc/passwd.
func loginShell() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile("/etc/passwd")
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Split(line, ":")
		if len(fields) >= 7 && fields[0] == u.Username {
			return fields[6]
		}
	}
	return ""
}

// configHint guesses the shell from which rc files exist.
func (d *Detector) configHint() Type {
	hints := []struct {
		t     Type
		files []string
	}{
		{Zsh, []string{".zshrc", ".zshenv", ".zprofile"}},
		{Bash, []string{".bashrc", ".bash_profile", ".bash_aliases"}},
		{Fish, []string{".config/fish/config.fish"}},
	}
	for _, h := range hints {
		for _, rel := range h.files {
			if _, err := os.Stat(filepath.Join(d.home, rel)); err == nil {
				return h.t
			}
		}
	}
	return Unknown
}

// ABOUTME: Standard filesystem paths for alix data under ~/.alix/
// ABOUTME: Aliases, history, settings, backups, usage tracking and user templates

package config

import (
	"os"
	"path/filepath"
)

const dirName = ".alix"

// Dir returns the alix data directory (~/.alix/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", dirName)
	}
	return filepath.Join(home, dirName)
}

// AliasesFile returns the path to the alias store file.
func AliasesFile() string {
	return filepath.Join(Dir(), "aliases.json")
}

// HistoryFile returns the path to the undo/redo history file.
func HistoryFile() string {
	return filepath.Join(Dir(), "history.json")
}

// SettingsFile returns the path to the settings file.
func SettingsFile() string {
	return filepath.Join(Dir(), "config.json")
}

// BackupsDir returns the directory holding timestamped alias backups.
func BackupsDir() string {
	return filepath.Join(Dir(), "backups")
}

// TrackingFile returns the path to the usage tracking file.
func TrackingFile() string {
	return filepath.Join(Dir(), "usage_tracking.json")
}

// TemplatesDir returns the directory for user-provided alias templates.
func TemplatesDir() string {
	return filepath.Join(Dir(), "templates")
}

// EnsureDir creates dir (and parents) if missing.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

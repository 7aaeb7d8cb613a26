// ABOUTME: User settings with defaults merge, JSON-based using encoding/json
// ABOUTME: Unknown or unreadable settings files fall back to defaults

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds user-tunable behavior.
type Settings struct {
	Theme            string `json:"theme"`
	AutoBackup       bool   `json:"auto_backup"`
	ConfirmDelete    bool   `json:"confirm_delete"`
	ShowDescriptions bool   `json:"show_descriptions"`
	MaxBackups       int    `json:"max_backups"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Theme:            "default",
		AutoBackup:       true,
		ConfirmDelete:    true,
		ShowDescriptions: true,
		MaxBackups:       10,
	}
}

// LoadSettings reads settings from path, merging over the defaults.
// A missing or unreadable file yields the defaults.
func LoadSettings(path string) Settings {
	s := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Defaults()
	}
	if s.Theme == "" {
		s.Theme = "default"
	}
	if s.MaxBackups <= 0 {
		s.MaxBackups = Defaults().MaxBackups
	}
	return s
}

// SaveSettings writes settings as indented JSON to path.
func SaveSettings(path string, s Settings) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

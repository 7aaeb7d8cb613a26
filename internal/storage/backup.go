// ABOUTME: Timestamped backups of the alias file before each mutation
// ABOUTME: Retains the newest maxBackups copies; restore picks the latest

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/alix-sh/alix/internal/log"
)

// CreateBackup copies the current alias file into the backups directory
// with a timestamped name. Returns the backup path, or "" when there is
// nothing to back up or the copy failed (backups are best-effort).
func (s *Store) CreateBackup() string {
	if len(s.aliases) == 0 {
		return ""
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}

	if err := os.MkdirAll(s.backupsDir, 0o755); err != nil {
		log.Debug("creating backups dir: %v", err)
		return ""
	}

	name := fmt.Sprintf("aliases_%s.json", time.Now().Format("20060102_150405"))
	dest := filepath.Join(s.backupsDir, name)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		log.Debug("writing backup: %v", err)
		return ""
	}

	s.cleanupOldBackups()
	return dest
}

// cleanupOldBackups removes backups beyond the retention cap, oldest first.
func (s *Store) cleanupOldBackups() {
	backups := s.listBackups()
	for len(backups) > s.maxBackups {
		if err := os.Remove(backups[0]); err != nil {
			log.Debug("removing old backup: %v", err)
			return
		}
		backups = backups[1:]
	}
}

// RestoreLatestBackup replaces the alias file with the newest backup
// and reloads. Returns false when no backup exists.
func (s *Store) RestoreLatestBackup() bool {
	backups := s.listBackups()
	if len(backups) == 0 {
		return false
	}

	data, err := os.ReadFile(backups[len(backups)-1])
	if err != nil {
		return false
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return false
	}
	s.Load()
	return true
}

// listBackups returns backup paths sorted oldest first. Timestamped
// names sort chronologically.
func (s *Store) listBackups() []string {
	matches, err := filepath.Glob(filepath.Join(s.backupsDir, "aliases_*.json"))
	if err != nil {
		return nil
	}
	sort.Strings(matches)
	return matches
}

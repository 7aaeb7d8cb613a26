// ABOUTME: Alias store persisted as a JSON object keyed by name
// ABOUTME: Mutations record undo history unless made through the replay view

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/alix-sh/alix/internal/alias"
	"github.com/alix-sh/alix/internal/history"
	"github.com/alix-sh/alix/internal/log"
	"github.com/alix-sh/alix/internal/usage"
)

// Store owns the alias collection, its persistence file, backups, the
// undo/redo history, and the usage tracker.
type Store struct {
	path       string
	backupsDir string
	maxBackups int

	aliases map[string]*alias.Alias
	history *history.History
	tracker *usage.Tracker
}

// Option configures a Store.
type Option func(*Store)

// WithBackupsDir sets the backup directory (default: backups/ next to path).
func WithBackupsDir(dir string) Option {
	return func(s *Store) { s.backupsDir = dir }
}

// WithMaxBackups caps the number of retained backups.
func WithMaxBackups(n int) Option {
	return func(s *Store) { s.maxBackups = n }
}

// WithTracker attaches a usage tracker.
func WithTracker(t *usage.Tracker) Option {
	return func(s *Store) { s.tracker = t }
}

// New creates a Store backed by path with history hist and loads any
// existing aliases. hist may be nil for history-free use (tests,
// read-only commands).
func New(path string, hist *history.History, opts ...Option) *Store {
	s := &Store{
		path:       path,
		backupsDir: filepath.Join(filepath.Dir(path), "backups"),
		maxBackups: 10,
		aliases:    make(map[string]*alias.Alias),
		history:    hist,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load()
	return s
}

// History returns the attached undo/redo history (may be nil).
func (s *Store) History() *history.History { return s.history }

// Tracker returns the attached usage tracker (may be nil).
func (s *Store) Tracker() *usage.Tracker { return s.tracker }

// Load reads the alias file. A corrupt file is renamed to .corrupted
// and the store starts fresh, so one bad write never bricks the tool.
func (s *Store) Load() {
	s.aliases = make(map[string]*alias.Alias)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var raw map[string]*alias.Alias
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn("alias store unreadable, starting fresh: %v", err)
		_ = os.Rename(s.path, s.path+".corrupted")
		return
	}
	for name, a := range raw {
		if a.Tags == nil {
			a.Tags = []string{}
		}
		s.aliases[name] = a
	}
}

// Save writes the alias file as indented JSON.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating store dir: %w", err)
	}
	data, err := json.MarshalIndent(s.aliases, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling aliases: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing aliases: %w", err)
	}
	return nil
}

// Add inserts a new alias and records an undoable operation.
// Returns false (and records nothing) if the name is taken.
func (s *Store) Add(a *alias.Alias) bool {
	if !s.addQuiet(a) {
		return false
	}
	s.push(history.NewAdd(a))
	return true
}

// Remove deletes an alias by name and records an undoable operation.
// Returns false if the name is absent.
func (s *Store) Remove(name string) bool {
	snapshot, ok := s.aliases[name]
	if !ok {
		return false
	}
	snap := snapshot.Clone()
	if !s.removeQuiet(name) {
		return false
	}
	s.push(history.NewRemove([]*alias.Alias{snap}))
	return true
}

// Get returns the alias with the given name.
func (s *Store) Get(name string) (*alias.Alias, bool) {
	a, ok := s.aliases[name]
	return a, ok
}

// ListAll returns every alias sorted by name.
func (s *Store) ListAll() []*alias.Alias {
	out := make([]*alias.Alias, 0, len(s.aliases))
	for _, a := range s.aliases {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of stored aliases.
func (s *Store) Len() int { return len(s.aliases) }

// GetByGroup returns the aliases assigned to group, sorted by name.
func (s *Store) GetByGroup(group string) []*alias.Alias {
	var out []*alias.Alias
	for _, a := range s.ListAll() {
		if a.Group != nil && *a.Group == group {
			out = append(out, a)
		}
	}
	return out
}

// Groups returns the sorted set of group names in use.
func (s *Store) Groups() []string {
	seen := map[string]bool{}
	for _, a := range s.aliases {
		if a.Group != nil && *a.Group != "" {
			seen[*a.Group] = true
		}
	}
	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// RemoveGroup deletes every alias in group as one undoable bulk
// operation. Returns the number of aliases removed.
func (s *Store) RemoveGroup(group string) int {
	members := s.GetByGroup(group)
	if len(members) == 0 {
		return 0
	}

	removed := make([]*alias.Alias, 0, len(members))
	for _, a := range members {
		snap := a.Clone()
		if s.removeQuiet(a.Name) {
			removed = append(removed, snap)
		}
	}
	if len(removed) > 0 {
		s.push(history.NewRemoveGroup(removed))
	}
	return len(removed)
}

// TrackUsage records one use of an alias on both the alias itself and
// the usage tracker.
func (s *Store) TrackUsage(name, context string) bool {
	a, ok := s.aliases[name]
	if !ok {
		return false
	}
	a.RecordUsage(context)
	if err := s.Save(); err != nil {
		log.Warn("saving usage update: %v", err)
	}
	if s.tracker != nil {
		if err := s.tracker.Track(name, context); err != nil {
			log.Warn("usage tracking: %v", err)
		}
	}
	return true
}

// Push records a caller-assembled operation (edits, group and tag
// mutations) on the history.
func (s *Store) Push(rec history.Record) error {
	if s.history == nil {
		return nil
	}
	return s.history.Push(rec)
}

// push records a built-in operation, tolerating a nil history.
func (s *Store) push(rec history.Record) {
	if s.history == nil {
		return
	}
	if err := s.history.Push(rec); err != nil {
		log.Warn("recording history: %v", err)
	}
}

// addQuiet inserts without recording history. Backs up first, saves after.
func (s *Store) addQuiet(a *alias.Alias) bool {
	if _, exists := s.aliases[a.Name]; exists {
		return false
	}
	s.CreateBackup()
	s.aliases[a.Name] = a
	if err := s.Save(); err != nil {
		log.Warn("saving alias store: %v", err)
	}
	return true
}

// removeQuiet deletes without recording history.
func (s *Store) removeQuiet(name string) bool {
	if _, exists := s.aliases[name]; !exists {
		return false
	}
	s.CreateBackup()
	delete(s.aliases, name)
	if err := s.Save(); err != nil {
		log.Warn("saving alias store: %v", err)
	}
	return true
}

// replayStore is the non-recording view handed to the history executor.
type replayStore struct {
	s *Store
}

func (r replayStore) Add(a *alias.Alias) bool          { return r.s.addQuiet(a) }
func (r replayStore) Remove(name string) bool          { return r.s.removeQuiet(name) }
func (r replayStore) Get(name string) (*alias.Alias, bool) { return r.s.Get(name) }
func (r replayStore) ListAll() []*alias.Alias          { return r.s.ListAll() }
func (r replayStore) Save() error                      { return r.s.Save() }

// Replay returns the view of this store that undo/redo handlers mutate.
// Its operations never record history, so replay cannot feed back into
// the stacks it is draining.
func (s *Store) Replay() history.Store {
	return replayStore{s: s}
}

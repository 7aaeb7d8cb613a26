// ABOUTME: Bounded undo/redo stacks persisted to a single JSON file
// ABOUTME: Missing file means empty stacks; a corrupt file resets both rather than crash

package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alix-sh/alix/internal/log"
)

// MaxHistory bounds each stack. Pushing past the bound drops the oldest
// record; a new push also clears the redo stack entirely.
const MaxHistory = 20

var (
	// ErrInvalidRecord rejects a push whose record lacks a kind or an
	// entries list. An empty (non-nil) entries list is valid.
	ErrInvalidRecord = errors.New("invalid operation record")

	// ErrInvalidID rejects selective undo/redo with an out-of-range id.
	// The wrapped message carries the valid range; no stack mutation
	// happens on this error.
	ErrInvalidID = errors.New("invalid operation id")
)

// fileLayout is the persistence format: two ordered arrays in one file.
type fileLayout struct {
	Undo []Record `json:"undo"`
	Redo []Record `json:"redo"`
}

// History owns the undo and redo stacks. Both are chronological,
// oldest first; the top of a stack is its last element.
//
// Persistence is best-effort: save failures are reported through the
// error hook (default: a warning log) and never propagate, so a
// read-only home directory degrades history instead of breaking alias
// operations.
type History struct {
	path        string
	undo        []Record
	redo        []Record
	onSaveError func(error)
}

// New creates a History backed by path and loads any existing state.
func New(path string) *History {
	h := &History{
		path:        path,
		onSaveError: func(err error) { log.Warn("history save failed: %v", err) },
	}
	h.Load()
	return h
}

// SetSaveErrorHook replaces the handler invoked when a save fails.
// A nil hook silences save failures entirely.
func (h *History) SetSaveErrorHook(fn func(error)) {
	h.onSaveError = fn
}

// Load reads both stacks from disk. A missing file yields empty stacks.
// Any parse or read error also resets both stacks to empty: losing
// history is recoverable, crashing every subsequent command on a
// half-written file is not.
func (h *History) Load() {
	h.undo = nil
	h.redo = nil

	data, err := os.ReadFile(h.path)
	if err != nil {
		return
	}

	var layout fileLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		log.Debug("history file unreadable, resetting stacks: %v", err)
		return
	}
	h.undo = layout.Undo
	h.redo = layout.Redo
}

// Save writes both stacks (trimmed to MaxHistory) to disk, best-effort.
func (h *History) Save() {
	layout := fileLayout{
		Undo: tail(h.undo, MaxHistory),
		Redo: tail(h.redo, MaxHistory),
	}
	if layout.Undo == nil {
		layout.Undo = []Record{}
	}
	if layout.Redo == nil {
		layout.Redo = []Record{}
	}

	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		h.reportSaveError(fmt.Errorf("marshaling history: %w", err))
		return
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		h.reportSaveError(fmt.Errorf("creating history dir: %w", err))
		return
	}
	if err := os.WriteFile(h.path, data, 0o644); err != nil {
		h.reportSaveError(fmt.Errorf("writing history: %w", err))
	}
}

func (h *History) reportSaveError(err error) {
	if h.onSaveError != nil {
		h.onSaveError(err)
	}
}

// Push appends a completed operation to the undo stack, trims it to
// MaxHistory, clears the redo stack (a new mutation invalidates the
// redo branch), and persists.
func (h *History) Push(rec Record) error {
	if rec.Kind == "" || rec.Entries == nil {
		return fmt.Errorf("%w: kind and entries are required", ErrInvalidRecord)
	}
	if rec.Timestamp == "" {
		rec.Timestamp = time.Now().Format(time.RFC3339)
	}

	h.undo = append(h.undo, rec)
	h.undo = tail(h.undo, MaxHistory)
	h.redo = nil
	h.Save()
	return nil
}

// ListUndo returns a copy of the undo stack, oldest first.
func (h *History) ListUndo() []Record {
	return append([]Record(nil), h.undo...)
}

// ListRedo returns a copy of the redo stack, oldest first.
func (h *History) ListRedo() []Record {
	return append([]Record(nil), h.redo...)
}

// UndoLen returns the number of undoable operations.
func (h *History) UndoLen() int { return len(h.undo) }

// RedoLen returns the number of redoable operations.
func (h *History) RedoLen() int { return len(h.redo) }

// tail returns the last n elements of recs.
func tail(recs []Record, n int) []Record {
	if len(recs) > n {
		return recs[len(recs)-n:]
	}
	return recs
}

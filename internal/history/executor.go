// ABOUTME: Per-kind inverse and replay logic driving undo/redo against the alias store
// ABOUTME: Entries are processed independently; a bad snapshot is counted and skipped, never fatal

package history

import (
	"encoding/json"
	"fmt"

	"github.com/alix-sh/alix/internal/alias"
)

// Store is the collaborator mutated during undo/redo. Implementations
// must not record history for these calls; the storage package exposes
// a replay view for exactly this purpose.
type Store interface {
	Add(a *alias.Alias) bool
	Remove(name string) bool
	Get(name string) (*alias.Alias, bool)
	ListAll() []*alias.Alias
	Save() error
}

// Result reports the outcome of an undo or redo.
type Result struct {
	Message   string
	Kind      Kind
	Performed int
	Skipped   int
	Total     int
}

// Undo reverses the most recent operation. On an empty stack it returns
// a "nothing to undo" result and leaves both stacks untouched.
func (h *History) Undo(store Store) Result {
	if len(h.undo) == 0 {
		return Result{Message: "Nothing to undo - history is empty."}
	}

	rec := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	res := h.applyInverse(store, rec)

	h.redo = append(h.redo, rec)
	h.redo = tail(h.redo, MaxHistory)
	h.Save()
	return res
}

// Redo re-applies the most recently undone operation.
func (h *History) Redo(store Store) Result {
	if len(h.redo) == 0 {
		return Result{Message: "Nothing to redo - already at the latest state."}
	}

	rec := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	res := h.applyForward(store, rec)

	h.undo = append(h.undo, rec)
	h.undo = tail(h.undo, MaxHistory)
	h.Save()
	return res
}

// UndoByID reverses the operation with the given 1-based id, where id 1
// is the most recent undoable operation. The record may come from the
// middle of the stack; it still lands on top of the redo stack.
func (h *History) UndoByID(store Store, id int) (Result, error) {
	if id < 1 || id > len(h.undo) {
		return Result{}, fmt.Errorf("%w: %d (valid range 1-%d)", ErrInvalidID, id, len(h.undo))
	}

	idx := len(h.undo) - id
	rec := h.undo[idx]
	h.undo = append(h.undo[:idx], h.undo[idx+1:]...)

	res := h.applyInverse(store, rec)

	h.redo = append(h.redo, rec)
	h.redo = tail(h.redo, MaxHistory)
	h.Save()
	return res, nil
}

// RedoByID re-applies the undone operation with the given 1-based id,
// most recent first, symmetric to UndoByID.
func (h *History) RedoByID(store Store, id int) (Result, error) {
	if id < 1 || id > len(h.redo) {
		return Result{}, fmt.Errorf("%w: %d (valid range 1-%d)", ErrInvalidID, id, len(h.redo))
	}

	idx := len(h.redo) - id
	rec := h.redo[idx]
	h.redo = append(h.redo[:idx], h.redo[idx+1:]...)

	res := h.applyForward(store, rec)

	h.undo = append(h.undo, rec)
	h.undo = tail(h.undo, MaxHistory)
	h.Save()
	return res, nil
}

// applyInverse runs the undo handler for rec's kind.
func (h *History) applyInverse(store Store, rec Record) Result {
	var performed, skipped int

	switch rec.Kind {
	case KindAdd, KindImport:
		// Inverse of insert: delete by name.
		performed, skipped = removeByName(store, rec.Entries)

	case KindRemove, KindRemoveGroup:
		// Inverse of delete: re-insert the snapshots.
		performed, skipped = insertSnapshots(store, rec.Entries)

	case KindEdit:
		// A renaming edit leaves the post-edit name behind; drop it
		// before restoring the pre-edit snapshots.
		removeByName(store, rec.NewEntries)
		performed, skipped = replaceSnapshots(store, rec.Entries)

	case KindRename:
		performed, skipped = renameEntries(store, rec.Entries, rec.NewName, rec.OldName)

	case KindGroupAdd:
		performed, skipped = setGroup(store, rec.Entries, nil)

	case KindGroupRemove:
		group := rec.GroupName
		performed, skipped = setGroup(store, rec.Entries, &group)

	case KindGroupDelete:
		// Members went to ReassignTo (or nowhere); bring them back to
		// the reassignment target if one was set, else the deleted group.
		restore := rec.GroupName
		if rec.ReassignTo != nil {
			restore = *rec.ReassignTo
		}
		performed, skipped = setGroup(store, rec.Entries, &restore)

	case KindGroupImport:
		performed, skipped = clearGroupIf(store, rec.Entries, rec.GroupName)

	case KindTagAdd:
		performed, skipped = stripTags(store, rec.Entries, rec.AddedTags)

	case KindTagRemove:
		performed, skipped = appendTags(store, rec.Entries, rec.RemovedTags)

	case KindTagRename:
		performed, skipped = swapTag(store, rec.Entries, rec.NewTag, rec.OldTag)

	case KindTagDelete:
		performed, skipped = appendTags(store, rec.Entries, []string{rec.DeletedTag})

	default:
		// Unknown kind: nothing can be applied; every entry is skipped.
		skipped = len(rec.Entries)
	}

	return Result{
		Message:   formatMessage("Undid", rec.Kind, performed, len(rec.Entries), skipped),
		Kind:      rec.Kind,
		Performed: performed,
		Skipped:   skipped,
		Total:     len(rec.Entries),
	}
}

// applyForward runs the redo handler for rec's kind, replaying the
// original mutation from the stored snapshots.
func (h *History) applyForward(store Store, rec Record) Result {
	var performed, skipped int

	switch rec.Kind {
	case KindAdd, KindImport:
		performed, skipped = insertSnapshots(store, rec.Entries)

	case KindRemove, KindRemoveGroup:
		performed, skipped = removeByName(store, rec.Entries)

	case KindEdit:
		// Symmetric to undo: clear the pre-edit names, then apply the
		// post-edit snapshots.
		removeByName(store, rec.Entries)
		performed, skipped = replaceSnapshots(store, rec.NewEntries)

	case KindRename:
		performed, skipped = renameEntries(store, rec.Entries, rec.OldName, rec.NewName)

	case KindGroupAdd:
		group := rec.GroupName
		performed, skipped = setGroup(store, rec.Entries, &group)

	case KindGroupRemove:
		performed, skipped = setGroup(store, rec.Entries, nil)

	case KindGroupDelete:
		performed, skipped = setGroup(store, rec.Entries, rec.ReassignTo)

	case KindGroupImport:
		group := rec.GroupName
		performed, skipped = setGroup(store, rec.Entries, &group)

	case KindTagAdd:
		performed, skipped = appendTags(store, rec.Entries, rec.AddedTags)

	case KindTagRemove:
		performed, skipped = stripTags(store, rec.Entries, rec.RemovedTags)

	case KindTagRename:
		performed, skipped = swapTag(store, rec.Entries, rec.OldTag, rec.NewTag)

	case KindTagDelete:
		performed, skipped = stripTags(store, rec.Entries, []string{rec.DeletedTag})

	default:
		skipped = len(rec.Entries)
	}

	total := len(rec.Entries)
	if rec.Kind == KindEdit {
		total = len(rec.NewEntries)
	}

	return Result{
		Message:   formatMessage("Redid", rec.Kind, performed, total, skipped),
		Kind:      rec.Kind,
		Performed: performed,
		Skipped:   skipped,
		Total:     total,
	}
}

// removeByName deletes each snapshot's alias by name. A snapshot whose
// name cannot be parsed is skipped; a name already absent from the
// store counts as neither performed nor skipped.
func removeByName(store Store, entries []json.RawMessage) (performed, skipped int) {
	for _, raw := range entries {
		name, err := entryName(raw)
		if err != nil {
			skipped++
			continue
		}
		if store.Remove(name) {
			performed++
		}
	}
	return performed, skipped
}

// insertSnapshots re-adds each snapshot to the store.
func insertSnapshots(store Store, entries []json.RawMessage) (performed, skipped int) {
	for _, raw := range entries {
		a, err := decodeAlias(raw)
		if err != nil {
			skipped++
			continue
		}
		if store.Add(a) {
			performed++
		}
	}
	return performed, skipped
}

// replaceSnapshots removes any live version of each snapshot's alias
// and inserts the snapshot in its place.
func replaceSnapshots(store Store, entries []json.RawMessage) (performed, skipped int) {
	for _, raw := range entries {
		a, err := decodeAlias(raw)
		if err != nil {
			skipped++
			continue
		}
		store.Remove(a.Name)
		if store.Add(a) {
			performed++
		}
	}
	return performed, skipped
}

// renameEntries moves each snapshot from fromName to toName.
func renameEntries(store Store, entries []json.RawMessage, fromName, toName string) (performed, skipped int) {
	for _, raw := range entries {
		a, err := decodeAlias(raw)
		if err != nil {
			skipped++
			continue
		}
		store.Remove(fromName)
		a.Name = toName
		store.Add(a)
		performed++
	}
	return performed, skipped
}

// setGroup upserts each snapshot with its group set to group (nil
// clears it), then flushes the store once.
func setGroup(store Store, entries []json.RawMessage, group *string) (performed, skipped int) {
	for _, raw := range entries {
		a, err := decodeAlias(raw)
		if err != nil {
			skipped++
			continue
		}
		a.Group = nil
		if group != nil {
			g := *group
			a.Group = &g
		}
		upsert(store, a)
		performed++
	}
	flush(store)
	return performed, skipped
}

// clearGroupIf removes the group assignment from snapshots still in
// the named group. Entries in other groups are left alone but still
// count as processed, matching the forward operation's batch size.
func clearGroupIf(store Store, entries []json.RawMessage, group string) (performed, skipped int) {
	for _, raw := range entries {
		a, err := decodeAlias(raw)
		if err != nil {
			skipped++
			continue
		}
		if a.Group != nil && *a.Group == group {
			a.Group = nil
			upsert(store, a)
		}
		performed++
	}
	flush(store)
	return performed, skipped
}

// appendTags upserts each snapshot with tags added (deduplicated).
func appendTags(store Store, entries []json.RawMessage, tags []string) (performed, skipped int) {
	for _, raw := range entries {
		a, err := decodeAlias(raw)
		if err != nil {
			skipped++
			continue
		}
		for _, tag := range tags {
			a.AddTag(tag)
		}
		upsert(store, a)
		performed++
	}
	flush(store)
	return performed, skipped
}

// stripTags upserts each snapshot with tags removed.
func stripTags(store Store, entries []json.RawMessage, tags []string) (performed, skipped int) {
	for _, raw := range entries {
		a, err := decodeAlias(raw)
		if err != nil {
			skipped++
			continue
		}
		for _, tag := range tags {
			a.RemoveTag(tag)
		}
		upsert(store, a)
		performed++
	}
	flush(store)
	return performed, skipped
}

// swapTag replaces fromTag with toTag on the live store entry named by
// each snapshot. Snapshots hold the post-rename state, so the swap must
// read the store rather than the snapshot: on undo the live entries
// carry the new tag, on redo the old one. Entries whose live alias is
// missing or never carried fromTag are neither performed nor skipped.
func swapTag(store Store, entries []json.RawMessage, fromTag, toTag string) (performed, skipped int) {
	for _, raw := range entries {
		name, err := entryName(raw)
		if err != nil {
			skipped++
			continue
		}
		live, ok := store.Get(name)
		if !ok || !live.HasTag(fromTag) {
			continue
		}
		a := live.Clone()
		for i, tag := range a.Tags {
			if tag == fromTag {
				a.Tags[i] = toTag
			}
		}
		upsert(store, a)
		performed++
	}
	flush(store)
	return performed, skipped
}

// upsert writes a snapshot into the store regardless of whether the
// alias currently exists.
func upsert(store Store, a *alias.Alias) {
	store.Remove(a.Name)
	store.Add(a)
}

// flush persists the store after a batch of in-place mutations.
func flush(store Store) {
	_ = store.Save()
}

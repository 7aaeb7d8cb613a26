// ABOUTME: Tests for per-kind undo/redo semantics against an in-memory store
// ABOUTME: Covers round-trips, selective undo by id, and per-entry skip counting

package history

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alix-sh/alix/internal/alias"
)

// memStore is a minimal in-memory Store for executor tests.
type memStore struct {
	aliases map[string]*alias.Alias
	saves   int
}

func newMemStore(seed ...*alias.Alias) *memStore {
	m := &memStore{aliases: make(map[string]*alias.Alias)}
	for _, a := range seed {
		m.aliases[a.Name] = a.Clone()
	}
	return m
}

func (m *memStore) Add(a *alias.Alias) bool {
	if _, ok := m.aliases[a.Name]; ok {
		return false
	}
	m.aliases[a.Name] = a
	return true
}

func (m *memStore) Remove(name string) bool {
	if _, ok := m.aliases[name]; !ok {
		return false
	}
	delete(m.aliases, name)
	return true
}

func (m *memStore) Get(name string) (*alias.Alias, bool) {
	a, ok := m.aliases[name]
	return a, ok
}

func (m *memStore) ListAll() []*alias.Alias {
	out := make([]*alias.Alias, 0, len(m.aliases))
	for _, a := range m.aliases {
		out = append(out, a)
	}
	return out
}

func (m *memStore) Save() error {
	m.saves++
	return nil
}

func TestUndo_EmptyStack(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)
	store := newMemStore()

	res := h.Undo(store)
	if !strings.Contains(res.Message, "Nothing to undo") {
		t.Errorf("unexpected message: %q", res.Message)
	}
	if h.UndoLen() != 0 || h.RedoLen() != 0 {
		t.Error("empty-stack undo must not touch the stacks")
	}
}

func TestRedo_EmptyStack(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)

	res := h.Redo(newMemStore())
	if !strings.Contains(res.Message, "Nothing to redo") {
		t.Errorf("unexpected message: %q", res.Message)
	}
}

func TestAdd_UndoRedoRoundTrip(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)

	foo := alias.New("foo", "echo foo")
	store := newMemStore(foo)
	mustPush(t, h, NewAdd(foo))

	res := h.Undo(store)
	if _, ok := store.Get("foo"); ok {
		t.Error("undo of add should remove the alias")
	}
	if res.Performed != 1 || res.Skipped != 0 {
		t.Errorf("performed=%d skipped=%d", res.Performed, res.Skipped)
	}
	if h.RedoLen() != 1 {
		t.Fatalf("redo stack should hold the record, got %d", h.RedoLen())
	}

	res = h.Redo(store)
	if _, ok := store.Get("foo"); !ok {
		t.Error("redo of add should re-insert the alias")
	}
	if res.Performed != 1 {
		t.Errorf("redo performed=%d", res.Performed)
	}
	if h.UndoLen() != 1 || h.RedoLen() != 0 {
		t.Errorf("stacks after redo: undo=%d redo=%d", h.UndoLen(), h.RedoLen())
	}
}

func TestRemove_UndoRestoresSnapshots(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)

	a := alias.New("a", "echo a")
	b := alias.New("b", "echo b")
	store := newMemStore() // forward removal already applied
	mustPush(t, h, NewRemove([]*alias.Alias{a, b}))

	res := h.Undo(store)
	if res.Performed != 2 {
		t.Errorf("performed=%d", res.Performed)
	}
	if _, ok := store.Get("a"); !ok {
		t.Error("a not restored")
	}
	if _, ok := store.Get("b"); !ok {
		t.Error("b not restored")
	}

	res = h.Redo(store)
	if res.Performed != 2 || len(store.aliases) != 0 {
		t.Errorf("redo should delete both again: performed=%d left=%d", res.Performed, len(store.aliases))
	}
}

func TestRemove_MalformedSnapshotSkipped(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)

	a := alias.New("a", "echo a")
	b := alias.New("b", "echo b")
	rec := NewRemove([]*alias.Alias{a, b})
	rec.Entries = append(rec.Entries, json.RawMessage(`{"name":""}`))
	mustPush(t, h, rec)

	store := newMemStore()
	res := h.Undo(store)
	if res.Performed != 2 || res.Skipped != 1 || res.Total != 3 {
		t.Errorf("performed=%d skipped=%d total=%d", res.Performed, res.Skipped, res.Total)
	}
	if !strings.Contains(res.Message, "skipped") {
		t.Errorf("message should mention skips: %q", res.Message)
	}
	if len(store.aliases) != 2 {
		t.Errorf("valid snapshots should be restored: %d", len(store.aliases))
	}
	// The record migrates despite the partial failure.
	if h.RedoLen() != 1 {
		t.Errorf("record should still migrate to redo: %d", h.RedoLen())
	}
}

func TestEdit_UndoRestoresOldRedoAppliesNew(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)

	before := alias.New("gs", "git status")
	after := alias.New("gs", "git status -sb")
	store := newMemStore(after)
	mustPush(t, h, NewEdit(before, after))

	h.Undo(store)
	if a, _ := store.Get("gs"); a == nil || a.Command != "git status" {
		t.Errorf("undo should restore the pre-edit command, got %+v", a)
	}

	h.Redo(store)
	if a, _ := store.Get("gs"); a == nil || a.Command != "git status -sb" {
		t.Errorf("redo should apply the post-edit command, got %+v", a)
	}
}

func TestEdit_RenamingEditRoundTrip(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)

	before := alias.New("gs", "git status")
	after := alias.New("st", "git status -sb")
	store := newMemStore(after)
	mustPush(t, h, NewEdit(before, after))

	h.Undo(store)
	if _, ok := store.Get("st"); ok {
		t.Error("undo should drop the post-edit name")
	}
	if a, _ := store.Get("gs"); a == nil || a.Command != "git status" {
		t.Errorf("undo should restore the pre-edit alias, got %+v", a)
	}

	h.Redo(store)
	if _, ok := store.Get("gs"); ok {
		t.Error("redo should drop the pre-edit name")
	}
	if a, _ := store.Get("st"); a == nil || a.Command != "git status -sb" {
		t.Errorf("redo should restore the post-edit alias, got %+v", a)
	}
}

func TestRename_RoundTrip(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)

	renamed := alias.New("new", "echo hi")
	store := newMemStore(renamed)
	mustPush(t, h, NewRename(renamed, "old", "new"))

	h.Undo(store)
	if _, ok := store.Get("new"); ok {
		t.Error("undo should drop the new name")
	}
	if a, _ := store.Get("old"); a == nil || a.Command != "echo hi" {
		t.Errorf("undo should restore the old name, got %+v", a)
	}

	h.Redo(store)
	if _, ok := store.Get("old"); ok {
		t.Error("redo should drop the old name")
	}
	if _, ok := store.Get("new"); !ok {
		t.Error("redo should restore the new name")
	}
}

func TestGroupAdd_UndoClearsGroup(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)

	g := "git"
	a := alias.New("gs", "git status")
	a.Group = &g
	store := newMemStore(a)
	mustPush(t, h, NewGroupAdd([]*alias.Alias{a}, g))

	h.Undo(store)
	if got, _ := store.Get("gs"); got == nil || got.Group != nil {
		t.Errorf("undo should clear the group, got %+v", got)
	}
	if store.saves == 0 {
		t.Error("in-place group mutation should flush the store")
	}

	h.Redo(store)
	if got, _ := store.Get("gs"); got == nil || got.Group == nil || *got.Group != "git" {
		t.Errorf("redo should restore the group, got %+v", got)
	}
}

func TestGroupDelete_ReassignSemantics(t *testing.T) {
	t.Parallel()

	t.Run("no reassignment restores original group", func(t *testing.T) {
		t.Parallel()
		h := newTestHistory(t)

		old := "work"
		a := alias.New("gs", "git status")
		a.Group = &old
		store := newMemStore(alias.New("gs", "git status")) // forward already ungrouped
		mustPush(t, h, NewGroupDelete([]*alias.Alias{a}, "work", nil))

		h.Undo(store)
		if got, _ := store.Get("gs"); got == nil || got.Group == nil || *got.Group != "work" {
			t.Errorf("undo should restore the deleted group, got %+v", got)
		}

		h.Redo(store)
		if got, _ := store.Get("gs"); got == nil || got.Group != nil {
			t.Errorf("redo should clear the group again, got %+v", got)
		}
	})

	t.Run("reassignment restores target group", func(t *testing.T) {
		t.Parallel()
		h := newTestHistory(t)

		old, target := "work", "misc"
		a := alias.New("gs", "git status")
		a.Group = &old
		store := newMemStore(a)
		mustPush(t, h, NewGroupDelete([]*alias.Alias{a}, "work", &target))

		h.Undo(store)
		if got, _ := store.Get("gs"); got == nil || got.Group == nil || *got.Group != "misc" {
			t.Errorf("undo with reassignment should restore the target group, got %+v", got)
		}
	})
}

func TestTagRename_RoundTrip(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)

	a := alias.New("gs", "git status")
	a.Tags = []string{"b", "x"} // forward state: a renamed to b
	store := newMemStore(a)
	mustPush(t, h, NewTagRename([]*alias.Alias{a}, "a", "b"))

	h.Undo(store)
	if got, _ := store.Get("gs"); got == nil || got.Tags[0] != "a" || got.Tags[1] != "x" {
		t.Errorf("undo should restore [a x], got %+v", got.Tags)
	}

	h.Redo(store)
	if got, _ := store.Get("gs"); got == nil || got.Tags[0] != "b" || got.Tags[1] != "x" {
		t.Errorf("redo should restore [b x], got %+v", got.Tags)
	}
}

func TestTagRename_LiveEntryWithoutTagUntouched(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)

	a := alias.New("gs", "git status")
	a.Tags = []string{"b"}
	store := newMemStore(a)
	mustPush(t, h, NewTagRename([]*alias.Alias{a}, "a", "b"))

	h.Undo(store)

	// The tag was stripped out of band; redo finds nothing to swap.
	live, _ := store.Get("gs")
	live.Tags = []string{}
	res := h.Redo(store)
	if res.Performed != 0 || res.Skipped != 0 {
		t.Errorf("entry without the tag should be neither performed nor skipped: %+v", res)
	}
	if got, _ := store.Get("gs"); got.HasTag("b") {
		t.Errorf("redo should not invent the tag: %v", got.Tags)
	}
}

func TestTagAddRemoveDelete(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)

	a := alias.New("gs", "git status")
	a.Tags = []string{"vcs", "new"}
	store := newMemStore(a)

	mustPush(t, h, NewTagAdd([]*alias.Alias{a}, []string{"new"}))
	h.Undo(store)
	if got, _ := store.Get("gs"); got.HasTag("new") {
		t.Errorf("undo tag_add should strip the tag: %v", got.Tags)
	}
	h.Redo(store)
	if got, _ := store.Get("gs"); !got.HasTag("new") {
		t.Errorf("redo tag_add should restore the tag: %v", got.Tags)
	}

	mustPush(t, h, NewTagDelete([]*alias.Alias{a}, "vcs"))
	h.Undo(store)
	if got, _ := store.Get("gs"); !got.HasTag("vcs") {
		t.Errorf("undo tag_delete should re-append the tag: %v", got.Tags)
	}
}

func TestGroupImport_UndoOnlyClearsMatchingGroup(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)

	imported, other := "pack", "other"
	a := alias.New("a", "echo a")
	a.Group = &imported
	b := alias.New("b", "echo b")
	b.Group = &other
	store := newMemStore(a, b)
	mustPush(t, h, NewGroupImport([]*alias.Alias{a, b}, "pack"))

	res := h.Undo(store)
	if got, _ := store.Get("a"); got.Group != nil {
		t.Errorf("alias in imported group should be ungrouped: %+v", got)
	}
	if got, _ := store.Get("b"); got.Group == nil || *got.Group != "other" {
		t.Errorf("alias in another group should keep it: %+v", got)
	}
	// Both entries count as processed even though only one changed.
	if res.Performed != 2 {
		t.Errorf("performed=%d", res.Performed)
	}
}

func TestUndoByID_InvalidID(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)
	store := newMemStore()
	mustPush(t, h, testRecord("a"))

	for _, id := range []int{0, -1, 2} {
		if _, err := h.UndoByID(store, id); !errors.Is(err, ErrInvalidID) {
			t.Errorf("id %d: expected ErrInvalidID, got %v", id, err)
		}
	}
	if h.UndoLen() != 1 || h.RedoLen() != 0 {
		t.Error("invalid id must not mutate the stacks")
	}
}

func TestUndoByID_OneEqualsChronologicalUndo(t *testing.T) {
	t.Parallel()

	build := func(t *testing.T) (*History, *memStore) {
		h := newTestHistory(t)
		store := newMemStore(alias.New("a", "1"), alias.New("b", "2"))
		mustPush(t, h, NewAdd(alias.New("a", "1")))
		mustPush(t, h, NewAdd(alias.New("b", "2")))
		return h, store
	}

	h1, s1 := build(t)
	h1.Undo(s1)

	h2, s2 := build(t)
	if _, err := h2.UndoByID(s2, 1); err != nil {
		t.Fatalf("UndoByID: %v", err)
	}

	if len(s1.aliases) != len(s2.aliases) {
		t.Errorf("store divergence: %d vs %d", len(s1.aliases), len(s2.aliases))
	}
	if h1.UndoLen() != h2.UndoLen() || h1.RedoLen() != h2.RedoLen() {
		t.Errorf("stack divergence: %d/%d vs %d/%d",
			h1.UndoLen(), h1.RedoLen(), h2.UndoLen(), h2.RedoLen())
	}
}

func TestUndoByID_RemovesFromMiddlePreservingOrder(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)
	store := newMemStore(
		alias.New("a", "1"), alias.New("b", "2"), alias.New("c", "3"))

	mustPush(t, h, NewAdd(alias.New("a", "1")))
	mustPush(t, h, NewAdd(alias.New("b", "2")))
	mustPush(t, h, NewAdd(alias.New("c", "3")))

	// id 2 is the middle record (b).
	if _, err := h.UndoByID(store, 2); err != nil {
		t.Fatalf("UndoByID: %v", err)
	}

	if _, ok := store.Get("b"); ok {
		t.Error("selective undo should have removed b")
	}
	undo := h.ListUndo()
	if len(undo) != 2 {
		t.Fatalf("expected 2 undo records, got %d", len(undo))
	}
	first, _ := entryName(undo[0].Entries[0])
	second, _ := entryName(undo[1].Entries[0])
	if first != "a" || second != "c" {
		t.Errorf("relative order broken: %s, %s", first, second)
	}
	// The undone record sits on top of redo regardless of origin.
	if h.RedoLen() != 1 {
		t.Fatalf("redo len: %d", h.RedoLen())
	}
	top, _ := entryName(h.ListRedo()[0].Entries[0])
	if top != "b" {
		t.Errorf("redo top should be b, got %s", top)
	}
}

func TestRedoByID_Symmetric(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)
	store := newMemStore(alias.New("a", "1"), alias.New("b", "2"))

	mustPush(t, h, NewAdd(alias.New("a", "1")))
	mustPush(t, h, NewAdd(alias.New("b", "2")))
	h.Undo(store) // b undone
	h.Undo(store) // a undone; redo = [b, a]

	if _, err := h.RedoByID(store, 2); err != nil { // redo b
		t.Fatalf("RedoByID: %v", err)
	}
	if _, ok := store.Get("b"); !ok {
		t.Error("selective redo should re-add b")
	}
	if _, ok := store.Get("a"); ok {
		t.Error("a should remain undone")
	}
	if h.UndoLen() != 1 || h.RedoLen() != 1 {
		t.Errorf("stacks: undo=%d redo=%d", h.UndoLen(), h.RedoLen())
	}

	if _, err := h.RedoByID(store, 5); !errors.Is(err, ErrInvalidID) {
		t.Error("out-of-range redo id should fail")
	}
}

func TestUnknownKind_AllEntriesSkipped(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)
	store := newMemStore()

	rec := Record{Kind: Kind("future_op"), Entries: Snapshots([]*alias.Alias{alias.New("a", "1")})}
	mustPush(t, h, rec)

	res := h.Undo(store)
	if res.Performed != 0 || res.Skipped != 1 {
		t.Errorf("unknown kind: performed=%d skipped=%d", res.Performed, res.Skipped)
	}
	// Still migrates: the stacks stay consistent even for records this
	// build cannot interpret.
	if h.RedoLen() != 1 {
		t.Errorf("record should migrate, redo=%d", h.RedoLen())
	}
}

func TestZeroEntryRecord_UndoesAsNoOp(t *testing.T) {
	t.Parallel()
	h := newTestHistory(t)
	store := newMemStore()

	mustPush(t, h, Record{Kind: KindAdd, Entries: []json.RawMessage{}})
	res := h.Undo(store)
	if res.Performed != 0 || res.Skipped != 0 || res.Total != 0 {
		t.Errorf("zero-entry record: %+v", res)
	}
	if h.RedoLen() != 1 {
		t.Error("zero-entry record should still migrate")
	}
}

func TestPersistedStacks_SurviveProcessRestart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.json")
	h := New(path)
	store := newMemStore(alias.New("foo", "bar"))
	mustPush(t, h, NewAdd(alias.New("foo", "bar")))

	// New process: reload and undo.
	h2 := New(path)
	res := h2.Undo(store)
	if res.Performed != 1 {
		t.Errorf("undo after reload: %+v", res)
	}
	if _, ok := store.Get("foo"); ok {
		t.Error("foo should be removed after reloaded undo")
	}
}

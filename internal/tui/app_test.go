// ABOUTME: Tests for the alias browser model: navigation, filtering,
// ABOUTME: form add/edit flow, delete confirm, and undo from the list

package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alix-sh/alix/internal/alias"
	"github.com/alix-sh/alix/internal/history"
	"github.com/alix-sh/alix/internal/storage"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	hist := history.New(filepath.Join(dir, "history.json"))
	store := storage.New(filepath.Join(dir, "aliases.json"), hist)
	store.Add(alias.New("gl", "git log"))
	store.Add(alias.New("gs", "git status"))
	store.Add(alias.New("kp", "kubectl get pods"))
	return New(store, "default")
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// drive sends a message and resolves any returned command once.
func drive(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		m = next.(Model)
		if cmd != nil {
			if out := cmd(); out != nil {
				next, _ = m.Update(out)
				m = next.(Model)
			}
		}
	}
	return m
}

func typeString(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = drive(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestNavigation(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	if m.selected().Name != "gl" {
		t.Fatalf("initial selection: %s", m.selected().Name)
	}
	m = drive(t, m, key("down"), key("down"))
	if m.selected().Name != "kp" {
		t.Errorf("after down down: %s", m.selected().Name)
	}
	// Bottom of the list does not wrap.
	m = drive(t, m, key("down"))
	if m.selected().Name != "kp" {
		t.Errorf("cursor should clamp: %s", m.selected().Name)
	}
	m = drive(t, m, key("up"))
	if m.selected().Name != "gs" {
		t.Errorf("after up: %s", m.selected().Name)
	}
}

func TestFuzzyFilter(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	m = drive(t, m, key("/"))
	if !m.filtering {
		t.Fatal("slash should start filtering")
	}
	m = typeString(t, m, "kub")
	if len(m.visible) != 1 || m.visible[0].Name != "kp" {
		t.Errorf("filtered: %v", m.visible)
	}

	m = drive(t, m, key("esc"))
	if m.filtering || m.filter != "" || len(m.visible) != 3 {
		t.Errorf("esc should clear the filter: %q %d", m.filter, len(m.visible))
	}
}

func TestAddForm(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	m = drive(t, m, key("a"))
	if m.mode != modeForm {
		t.Fatal("a should open the add form")
	}

	m = typeString(t, m, "ll")
	m = drive(t, m, key("tab"))
	m = typeString(t, m, "ls -la")
	m = drive(t, m, key("enter"))

	if m.mode != modeList {
		t.Fatal("submit should return to the list")
	}
	got, ok := m.store.Get("ll")
	if !ok || got.Command != "ls -la" {
		t.Errorf("added alias: %+v ok=%v", got, ok)
	}
	if !strings.Contains(m.status, "Added 'll'") {
		t.Errorf("status: %q", m.status)
	}
}

func TestEditForm_RecordsHistory(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	before := m.store.History().UndoLen()

	m = drive(t, m, key("e"))
	if m.mode != modeForm || m.form.original != "gl" {
		t.Fatalf("edit form: mode=%d original=%q", m.mode, m.form.original)
	}

	// Move to the command field and replace it.
	m = drive(t, m, key("tab"))
	for range "git log" {
		m = drive(t, m, key("backspace"))
	}
	m = typeString(t, m, "git log --oneline")
	m = drive(t, m, key("enter"))

	got, _ := m.store.Get("gl")
	if got.Command != "git log --oneline" {
		t.Errorf("command: %q", got.Command)
	}
	undo := m.store.History().ListUndo()
	if len(undo) != before+1 || undo[len(undo)-1].Kind != history.KindEdit {
		t.Errorf("history: len=%d", len(undo))
	}
}

func TestEditForm_RenameUndoDropsNewName(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	// Rename gl to gx through the edit form.
	m = drive(t, m, key("e"))
	for range "gl" {
		m = drive(t, m, key("backspace"))
	}
	m = typeString(t, m, "gx")
	m = drive(t, m, key("enter"))

	if _, ok := m.store.Get("gl"); ok {
		t.Fatal("rename should drop the old name")
	}
	if _, ok := m.store.Get("gx"); !ok {
		t.Fatal("rename should create the new name")
	}

	m = drive(t, m, key("u"))
	if _, ok := m.store.Get("gx"); ok {
		t.Error("undo should drop the new name")
	}
	if got, _ := m.store.Get("gl"); got == nil || got.Command != "git log" {
		t.Errorf("undo should restore the original alias, got %+v", got)
	}
}

func TestDeleteConfirm(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	m = drive(t, m, key("d"))
	if m.mode != modeConfirm || m.confirmName != "gl" {
		t.Fatalf("confirm state: mode=%d name=%q", m.mode, m.confirmName)
	}

	// Cancel keeps the alias.
	m = drive(t, m, key("n"))
	if _, ok := m.store.Get("gl"); !ok {
		t.Fatal("cancel should keep the alias")
	}

	m = drive(t, m, key("d"), key("y"))
	if _, ok := m.store.Get("gl"); ok {
		t.Error("confirm should delete the alias")
	}
}

func TestUndoKey(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	m = drive(t, m, key("d"), key("y"))
	if _, ok := m.store.Get("gl"); ok {
		t.Fatal("precondition: gl deleted")
	}

	m = drive(t, m, key("u"))
	if _, ok := m.store.Get("gl"); !ok {
		t.Error("undo should restore the alias")
	}
	if m.status == "" {
		t.Error("undo should set a status message")
	}
}

func TestView_SmokeTest(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m = drive(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	out := m.View()
	for _, want := range []string{"alix", "gs", "git status"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

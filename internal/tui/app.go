// ABOUTME: Bubble Tea alias browser: filterable list, detail pane, forms
// ABOUTME: Undo/redo, delete confirm, and clipboard copy from the list view

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/alix-sh/alix/internal/alias"
	"github.com/alix-sh/alix/internal/clipboard"
	"github.com/alix-sh/alix/internal/history"
	"github.com/alix-sh/alix/internal/storage"
	"github.com/alix-sh/alix/internal/tui/width"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirm
)

// Model is the root browser model. Implements tea.Model with value
// semantics.
type Model struct {
	store  *storage.Store
	styles Styles

	mode      mode
	filter    string
	filtering bool
	visible   []*alias.Alias
	cursor    int
	status    string

	form        formModel
	confirmName string

	width  int
	height int
}

// New creates the browser over the given store, styled by theme.
func New(store *storage.Store, theme string) Model {
	m := Model{store: store, styles: ThemeStyles(theme)}
	m.refresh()
	return m
}

// Run starts the browser in the alternate screen.
func Run(store *storage.Store, theme string) error {
	_, err := tea.NewProgram(New(store, theme), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case formSubmitMsg:
		m.mode = modeList
		m.status = m.applyForm(msg)
		m.refresh()
		return m, nil

	case formCancelMsg:
		m.mode = modeList
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

// updateList handles keys in the main list view.
func (m Model) updateList(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch key.Type {
		case tea.KeyEsc:
			m.filtering = false
			m.filter = ""
			m.refresh()
		case tea.KeyEnter:
			m.filtering = false
		case tea.KeyBackspace:
			if m.filter != "" {
				m.filter = m.filter[:len(m.filter)-1]
				m.refresh()
			}
		case tea.KeyRunes:
			m.filter += string(key.Runes)
			m.refresh()
		}
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "/":
		m.filtering = true
	case "a":
		m.form = newAddForm(m.styles)
		m.mode = modeForm
	case "e":
		if a := m.selected(); a != nil {
			m.form = newEditForm(m.styles, a.Name, a.Command, a.Description, a.Tags)
			m.mode = modeForm
		}
	case "d":
		if a := m.selected(); a != nil {
			m.confirmName = a.Name
			m.mode = modeConfirm
		}
	case "y":
		if a := m.selected(); a != nil {
			if err := clipboard.Write(a.Command); err != nil {
				m.status = "Unable to copy. Command: " + a.Command
			} else {
				m.status = fmt.Sprintf("Copied '%s' to clipboard", a.Name)
			}
		}
	case "u":
		res := m.store.History().Undo(m.store.Replay())
		m.status = res.Message
		m.refresh()
	case "r":
		res := m.store.History().Redo(m.store.Replay())
		m.status = res.Message
		m.refresh()
	case "esc":
		if m.filter != "" {
			m.filter = ""
			m.refresh()
		}
	}
	return m, nil
}

// updateConfirm handles the delete confirmation prompt.
func (m Model) updateConfirm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "y", "enter":
		if m.store.Remove(m.confirmName) {
			m.status = fmt.Sprintf("Deleted '%s'", m.confirmName)
		}
		m.mode = modeList
		m.refresh()
	case "n", "esc", "q":
		m.mode = modeList
	}
	return m, nil
}

// applyForm commits an add or edit submission to the store.
func (m *Model) applyForm(f formSubmitMsg) string {
	a := alias.New(f.name, f.command)
	a.Description = f.description
	if len(f.tags) > 0 {
		a.Tags = f.tags
	}

	if f.original == "" {
		if !m.store.Add(a) {
			return fmt.Sprintf("Alias '%s' already exists", f.name)
		}
		return fmt.Sprintf("Added '%s'", f.name)
	}

	before, ok := m.store.Get(f.original)
	if !ok {
		return fmt.Sprintf("Alias '%s' no longer exists", f.original)
	}
	// Keep metadata the form does not surface.
	a.CreatedAt = before.CreatedAt
	a.UsedCount = before.UsedCount
	a.LastUsed = before.LastUsed
	a.UsageHistory = before.UsageHistory
	a.Group = before.Group

	if f.name != f.original {
		if _, taken := m.store.Get(f.name); taken {
			return fmt.Sprintf("Alias '%s' already exists", f.name)
		}
	}

	replay := m.store.Replay()
	replay.Remove(f.original)
	replay.Add(a)
	if err := m.store.Push(history.NewEdit(before, a)); err != nil {
		return fmt.Sprintf("Updated '%s' (history not recorded)", f.name)
	}
	return fmt.Sprintf("Updated '%s'", f.name)
}

// refresh recomputes the visible list from the store and filter.
func (m *Model) refresh() {
	all := m.store.ListAll()
	if m.filter == "" {
		m.visible = all
	} else {
		names := make([]string, len(all))
		for i, a := range all {
			names[i] = a.Name + " " + a.Command + " " + a.Description
		}
		matches := fuzzy.Find(m.filter, names)
		m.visible = make([]*alias.Alias, 0, len(matches))
		for _, match := range matches {
			m.visible = append(m.visible, all[match.Index])
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() *alias.Alias {
	if len(m.visible) == 0 {
		return nil
	}
	return m.visible[m.cursor]
}

func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return m.form.View()
	case modeConfirm:
		return m.styles.Border.Render(
			m.styles.Error.Render(fmt.Sprintf("Delete '%s'?", m.confirmName)) +
				"\n\n" + m.styles.Help.Render("y confirm · n cancel"))
	}
	return m.listView()
}

func (m Model) listView() string {
	s := m.styles
	cols := m.width
	if cols <= 0 {
		cols = 80
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("alix") + "  " +
		s.Dim.Render(fmt.Sprintf("%d aliases", m.store.Len())) + "\n")

	if m.filtering || m.filter != "" {
		prompt := "/" + m.filter
		if m.filtering {
			prompt += "_"
		}
		b.WriteString(s.Accent.Render(prompt) + "\n")
	}

	rows := m.height - 10
	if rows < 5 {
		rows = 5
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := start + rows
	if end > len(m.visible) {
		end = len(m.visible)
	}

	nameW := 16
	for i := start; i < end; i++ {
		a := m.visible[i]
		line := "  " + width.Pad(a.Name, nameW) + " " + a.Command
		line = width.Truncate(line, cols-2)
		if i == m.cursor {
			b.WriteString(s.Selected.Render(line))
		} else {
			b.WriteString(s.Normal.Render(line))
		}
		b.WriteByte('\n')
	}
	if len(m.visible) == 0 {
		b.WriteString(s.Dim.Render("  no aliases match") + "\n")
	}

	if a := m.selected(); a != nil {
		b.WriteString("\n" + m.detailView(a) + "\n")
	}

	if m.status != "" {
		b.WriteString(s.Status.Render(m.status) + "\n")
	}
	b.WriteString(s.Help.Render("a add · e edit · d delete · y copy · u undo · r redo · / filter · q quit"))
	return b.String()
}

func (m Model) detailView(a *alias.Alias) string {
	s := m.styles
	var lines []string
	lines = append(lines, s.Accent.Render(a.Name)+" "+s.Dim.Render("=")+" "+s.Normal.Render(a.Command))
	if a.Description != "" {
		lines = append(lines, s.Dim.Render(a.Description))
	}
	if len(a.Tags) > 0 {
		lines = append(lines, s.Tag.Render("#"+strings.Join(a.Tags, " #")))
	}
	meta := fmt.Sprintf("used %d times", a.UsedCount)
	if a.Group != nil && *a.Group != "" {
		meta += " · group " + *a.Group
	}
	lines = append(lines, s.Dim.Render(meta))
	return s.Border.Render(strings.Join(lines, "\n"))
}

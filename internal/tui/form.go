// ABOUTME: Minimal add/edit form for the alias browser
// ABOUTME: Tab cycles fields, enter submits, esc cancels; value semantics

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// formField indexes into the form's inputs.
type formField int

const (
	fieldName formField = iota
	fieldCommand
	fieldDescription
	fieldTags
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Command", "Description", "Tags"}

// formSubmitMsg carries the completed form back to the app.
type formSubmitMsg struct {
	original    string // empty for add
	name        string
	command     string
	description string
	tags        []string
}

// formCancelMsg is emitted when the user presses esc.
type formCancelMsg struct{}

// formModel is a fixed four-field input form.
type formModel struct {
	values   [fieldCount]string
	focus    formField
	original string
	styles   Styles
}

// newAddForm creates an empty form.
func newAddForm(styles Styles) formModel {
	return formModel{styles: styles}
}

// newEditForm creates a form pre-filled from an existing alias.
func newEditForm(styles Styles, name, command, description string, tags []string) formModel {
	m := formModel{styles: styles, original: name}
	m.values[fieldName] = name
	m.values[fieldCommand] = command
	m.values[fieldDescription] = description
	m.values[fieldTags] = strings.Join(tags, ", ")
	return m
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyEsc:
		return m, func() tea.Msg { return formCancelMsg{} }
	case tea.KeyEnter:
		if m.values[fieldName] == "" || m.values[fieldCommand] == "" {
			return m, nil
		}
		sub := formSubmitMsg{
			original:    m.original,
			name:        strings.TrimSpace(m.values[fieldName]),
			command:     strings.TrimSpace(m.values[fieldCommand]),
			description: strings.TrimSpace(m.values[fieldDescription]),
			tags:        splitTags(m.values[fieldTags]),
		}
		return m, func() tea.Msg { return sub }
	case tea.KeyTab, tea.KeyDown:
		m.focus = (m.focus + 1) % fieldCount
	case tea.KeyShiftTab, tea.KeyUp:
		m.focus = (m.focus - 1 + fieldCount) % fieldCount
	case tea.KeyBackspace:
		v := m.values[m.focus]
		if v != "" {
			m.values[m.focus] = v[:len(v)-1]
		}
	case tea.KeySpace:
		m.values[m.focus] += " "
	case tea.KeyRunes:
		m.values[m.focus] += string(key.Runes)
	}
	return m, nil
}

func (m formModel) View() string {
	s := m.styles
	title := "Add alias"
	if m.original != "" {
		title = "Edit alias"
	}

	var b strings.Builder
	b.WriteString(s.Title.Render(title) + "\n\n")
	for f := formField(0); f < fieldCount; f++ {
		label := fieldLabels[f]
		line := label + ": " + m.values[f]
		if f == m.focus {
			line += "_"
			b.WriteString(s.Selected.Render(line))
		} else {
			b.WriteString(s.Normal.Render(line))
		}
		b.WriteByte('\n')
	}
	b.WriteString("\n" + s.Help.Render("tab next field · enter save · esc cancel"))
	return s.Border.Render(b.String())
}

// splitTags parses a comma-separated tag list.
func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

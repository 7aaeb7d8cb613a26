// ABOUTME: Starter alias packs loaded from embedded and user YAML files
// ABOUTME: Invalid templates are skipped; imports flow through the store

package template

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alix-sh/alix/internal/alias"
	"github.com/alix-sh/alix/internal/log"
)

//go:embed templates/*.yaml
var builtinFS embed.FS

// Template is a named pack of starter aliases.
type Template struct {
	Name        string
	Category    string
	Description string
	Version     string
	Aliases     []*alias.Alias
}

// templateFile is the YAML layout of a template pack.
type templateFile struct {
	Version     string       `yaml:"version"`
	Category    string       `yaml:"category"`
	Description string       `yaml:"description"`
	Aliases     []aliasEntry `yaml:"aliases"`
}

type aliasEntry struct {
	Name        string   `yaml:"name"`
	Command     string   `yaml:"command"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

// Adder is the slice of the store that template import needs. Each add
// goes through the store's normal path so history records it.
type Adder interface {
	Add(a *alias.Alias) bool
}

// Manager holds the loaded template packs.
type Manager struct {
	templates map[string]Template
}

// NewManager loads the built-in templates plus any *.yaml files in
// userDir (user packs shadow built-ins of the same name). An empty
// userDir loads built-ins only.
func NewManager(userDir string) *Manager {
	m := &Manager{templates: map[string]Template{}}

	entries, _ := fs.ReadDir(builtinFS, "templates")
	for _, e := range entries {
		data, err := builtinFS.ReadFile("templates/" + e.Name())
		if err != nil {
			continue
		}
		m.loadOne(e.Name(), data)
	}

	if userDir != "" {
		paths, _ := filepath.Glob(filepath.Join(userDir, "*.yaml"))
		for _, path := range paths {
			data, err := os.ReadFile(path)
			if err != nil {
				log.Warn("reading template %s: %v", path, err)
				continue
			}
			m.loadOne(filepath.Base(path), data)
		}
	}
	return m
}

// loadOne parses and validates a single template file; invalid files
// are skipped.
func (m *Manager) loadOne(filename string, data []byte) {
	var tf templateFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		log.Warn("parsing template %s: %v", filename, err)
		return
	}
	if !validate(tf) {
		log.Warn("skipping invalid template %s", filename)
		return
	}

	name := strings.TrimSuffix(filename, ".yaml")
	tmpl := Template{
		Name:        name,
		Category:    tf.Category,
		Description: tf.Description,
		Version:     tf.Version,
	}
	for _, e := range tf.Aliases {
		a := alias.New(e.Name, e.Command)
		a.Description = e.Description
		if len(e.Tags) > 0 {
			a.Tags = e.Tags
		}
		tmpl.Aliases = append(tmpl.Aliases, a)
	}
	m.templates[name] = tmpl
}

// validate checks the required fields of a template file.
func validate(tf templateFile) bool {
	if tf.Version == "" || tf.Category == "" || tf.Description == "" || len(tf.Aliases) == 0 {
		return false
	}
	for _, e := range tf.Aliases {
		if e.Name == "" || e.Command == "" {
			return false
		}
	}
	return true
}

// List returns templates sorted by name, optionally filtered by
// category.
func (m *Manager) List(category string) []Template {
	var out []Template
	for _, t := range m.templates {
		if category == "" || t.Category == category {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns a template by name.
func (m *Manager) Get(name string) (Template, bool) {
	t, ok := m.templates[name]
	return t, ok
}

// Categories returns the sorted set of template categories.
func (m *Manager) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range m.templates {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Import adds a template's aliases to the store, optionally filtered
// to the given names. Existing names are skipped by the store.
func (m *Manager) Import(store Adder, name string, names []string) (string, error) {
	t, ok := m.Get(name)
	if !ok {
		return "", fmt.Errorf("template '%s' not found", name)
	}

	toImport := filterNames(t.Aliases, names)
	if len(names) > 0 && len(toImport) == 0 {
		return "", fmt.Errorf("no matching aliases found in template '%s'", name)
	}

	imported, skipped := addAll(store, toImport)
	msg := fmt.Sprintf("Imported %d aliases from '%s'", imported, name)
	if skipped > 0 {
		msg += fmt.Sprintf(" (skipped %d existing)", skipped)
	}
	return msg, nil
}

// ImportCategory imports every template in a category.
func (m *Manager) ImportCategory(store Adder, category string, names []string) (string, error) {
	templates := m.List(category)
	if len(templates) == 0 {
		return "", fmt.Errorf("no templates found in category '%s'", category)
	}

	var imported, skipped int
	for _, t := range templates {
		i, s := addAll(store, filterNames(t.Aliases, names))
		imported += i
		skipped += s
	}

	msg := fmt.Sprintf("Imported %d aliases from category '%s'", imported, category)
	if skipped > 0 {
		msg += fmt.Sprintf(" (skipped %d existing)", skipped)
	}
	return msg, nil
}

func filterNames(aliases []*alias.Alias, names []string) []*alias.Alias {
	if len(names) == 0 {
		return aliases
	}
	keep := map[string]bool{}
	for _, n := range names {
		keep[n] = true
	}
	var out []*alias.Alias
	for _, a := range aliases {
		if keep[a.Name] {
			out = append(out, a)
		}
	}
	return out
}

func addAll(store Adder, aliases []*alias.Alias) (imported, skipped int) {
	for _, a := range aliases {
		// Clone so repeated imports never share mutable state.
		if store.Add(a.Clone()) {
			imported++
		} else {
			skipped++
		}
	}
	return imported, skipped
}

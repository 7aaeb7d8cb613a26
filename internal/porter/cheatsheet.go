// ABOUTME: Markdown cheatsheet of the alias collection, grouped by group
// ABOUTME: Raw markdown output; the CLI renders it with glamour on a TTY

package porter

import (
	"fmt"
	"strings"

	"github.com/alix-sh/alix/internal/alias"
)

// Cheatsheet builds a markdown document listing every alias grouped by
// its group, ungrouped aliases last.
func (p *Porter) Cheatsheet() string {
	var b strings.Builder
	b.WriteString("# Alias cheatsheet\n")

	for _, group := range p.store.Groups() {
		fmt.Fprintf(&b, "\n## %s\n\n", group)
		writeRows(&b, p.store.GetByGroup(group))
	}

	var ungrouped []*alias.Alias
	for _, a := range p.store.ListAll() {
		if a.Group == nil || *a.Group == "" {
			ungrouped = append(ungrouped, a)
		}
	}
	if len(ungrouped) > 0 {
		b.WriteString("\n## Ungrouped\n\n")
		writeRows(&b, ungrouped)
	}
	return b.String()
}

func writeRows(b *strings.Builder, aliases []*alias.Alias) {
	b.WriteString("| Alias | Command | Description |\n")
	b.WriteString("|-------|---------|-------------|\n")
	for _, a := range aliases {
		fmt.Fprintf(b, "| `%s` | `%s` | %s |\n",
			escapeCell(a.Name), escapeCell(a.Command), escapeCell(a.Description))
	}
}

// escapeCell keeps pipes from breaking the markdown table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

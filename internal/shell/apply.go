// ABOUTME: Writes the managed alias block into a shell rc file
// ABOUTME: The block sits between marker comments and is replaced in place

package shell

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alix-sh/alix/internal/alias"
)

const (
	blockStart = "# >>> alix managed aliases >>>"
	blockEnd   = "# <<< alix managed aliases <<<"
)

// Apply writes every alias as an `alias name='command'` line between
// marker comments in the rc file at configPath. An existing managed
// block is replaced; otherwise the block is appended. Returns the
// number of aliases written.
func Apply(configPath string, aliases []*alias.Alias) (int, error) {
	sorted := append([]*alias.Alias(nil), aliases...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var block strings.Builder
	block.WriteString(blockStart + "\n")
	block.WriteString("# Managed by alix. Do not edit this block by hand.\n")
	for _, a := range sorted {
		fmt.Fprintf(&block, "alias %s='%s'\n", a.Name, escapeSingle(a.Command))
	}
	block.WriteString(blockEnd + "\n")

	existing, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("reading shell config: %w", err)
	}

	content := replaceBlock(string(existing), block.String())
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return 0, fmt.Errorf("writing shell config: %w", err)
	}
	return len(sorted), nil
}

// replaceBlock swaps the managed block inside content, or appends it.
func replaceBlock(content, block string) string {
	start := strings.Index(content, blockStart)
	end := strings.Index(content, blockEnd)
	if start >= 0 && end > start {
		end += len(blockEnd)
		if end < len(content) && content[end] == '\n' {
			end++
		}
		return content[:start] + block + content[end:]
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if content != "" {
		content += "\n"
	}
	return content + block
}

// escapeSingle makes a command safe inside single quotes.
func escapeSingle(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}

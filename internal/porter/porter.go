// ABOUTME: Import and export of the alias collection as JSON or YAML
// ABOUTME: Exports carry an envelope with version, timestamp, and filter metadata

package porter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alix-sh/alix/internal/alias"
	"github.com/alix-sh/alix/internal/history"
	"github.com/alix-sh/alix/internal/log"
	"github.com/alix-sh/alix/internal/storage"
)

const formatVersion = "1.0"

// Envelope is the export file layout. The alias payload uses the same
// field names as the store file so exports are portable between both.
type Envelope struct {
	Version    string         `json:"version" yaml:"version"`
	ExportedAt string         `json:"exported_at" yaml:"exported_at"`
	Count      int            `json:"count" yaml:"count"`
	Aliases    []*alias.Alias `json:"aliases" yaml:"aliases"`
	TagFilter  string         `json:"tag_filter,omitempty" yaml:"tag_filter,omitempty"`
	Tags       []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	MatchAll   bool           `json:"match_all,omitempty" yaml:"match_all,omitempty"`
}

// Porter moves aliases between the store and files.
type Porter struct {
	store *storage.Store
}

// New creates a Porter over the given store.
func New(store *storage.Store) *Porter {
	return &Porter{store: store}
}

// buildEnvelope snapshots the given aliases into an export envelope.
func buildEnvelope(aliases []*alias.Alias) Envelope {
	return Envelope{
		Version:    formatVersion,
		ExportedAt: time.Now().Format(time.RFC3339),
		Count:      len(aliases),
		Aliases:    aliases,
	}
}

// Export writes the collection to path. Format is chosen by extension
// (.yaml/.yml for YAML, JSON otherwise). An optional tagFilter keeps
// only aliases carrying that tag.
func (p *Porter) Export(path, tagFilter string) (string, error) {
	aliases := p.store.ListAll()
	if tagFilter != "" {
		aliases = filterByTag(aliases, tagFilter)
	}

	env := buildEnvelope(aliases)
	env.TagFilter = tagFilter
	if err := writeEnvelope(path, env); err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Exported %d aliases to %s", env.Count, filepath.Base(path))
	if tagFilter != "" {
		msg += fmt.Sprintf(" (filtered by tag: %s)", tagFilter)
	}
	return msg, nil
}

// ExportByTags writes aliases matching any (or, with matchAll, all) of
// the given tags.
func (p *Porter) ExportByTags(path string, tags []string, matchAll bool) (string, error) {
	var matched []*alias.Alias
	for _, a := range p.store.ListAll() {
		if matchesTags(a, tags, matchAll) {
			matched = append(matched, a)
		}
	}
	if len(matched) == 0 {
		return "", fmt.Errorf("no aliases found matching tags: %s", strings.Join(tags, ", "))
	}

	env := buildEnvelope(matched)
	env.Tags = tags
	env.MatchAll = matchAll
	if err := writeEnvelope(path, env); err != nil {
		return "", err
	}

	matchType := "any"
	if matchAll {
		matchType = "all"
	}
	return fmt.Sprintf("Exported %d aliases matching %s of tags: %s",
		len(matched), matchType, strings.Join(tags, ", ")), nil
}

// Import reads aliases from path into the store. Existing names are
// skipped unless merge is set; an optional tagFilter drops aliases not
// carrying that tag. One import history record covers every alias that
// actually landed.
func (p *Porter) Import(path string, merge bool, tagFilter string) (string, error) {
	env, err := readEnvelope(path)
	if err != nil {
		return "", err
	}

	var imported, skipped, tagFiltered int
	var landed []*alias.Alias

	for _, a := range env.Aliases {
		if a == nil || a.Name == "" || a.Command == "" {
			skipped++
			continue
		}
		if a.Tags == nil {
			a.Tags = []string{}
		}
		if tagFilter != "" && !a.HasTag(tagFilter) {
			tagFiltered++
			continue
		}

		if _, exists := p.store.Get(a.Name); exists {
			if !merge {
				skipped++
				continue
			}
			p.store.Replay().Remove(a.Name)
		}
		if p.store.Replay().Add(a) {
			imported++
			landed = append(landed, a)
		}
	}

	if len(landed) > 0 {
		if err := p.store.Push(history.NewImport(landed)); err != nil {
			log.Warn("recording import history: %v", err)
		}
	}

	msg := fmt.Sprintf("Imported %d aliases", imported)
	if skipped > 0 {
		msg += fmt.Sprintf(" (skipped %d existing)", skipped)
	}
	if tagFiltered > 0 {
		msg += fmt.Sprintf(" (filtered out %d by tag)", tagFiltered)
	}
	return msg, nil
}

// TagStats summarizes tag usage across the collection.
type TagStats struct {
	TotalTags       int
	TotalAliases    int
	TaggedAliases   int
	UntaggedAliases int
	Counts          map[string]int
	Pairs           map[string]int
}

// Stats computes tag statistics including co-occurring pairs.
func (p *Porter) Stats() TagStats {
	aliases := p.store.ListAll()
	stats := TagStats{
		TotalAliases: len(aliases),
		Counts:       map[string]int{},
		Pairs:        map[string]int{},
	}

	for _, a := range aliases {
		if len(a.Tags) == 0 {
			stats.UntaggedAliases++
			continue
		}
		stats.TaggedAliases++
		for _, tag := range a.Tags {
			stats.Counts[tag]++
		}
		for i := 0; i < len(a.Tags); i++ {
			for j := i + 1; j < len(a.Tags); j++ {
				pair := []string{a.Tags[i], a.Tags[j]}
				sort.Strings(pair)
				stats.Pairs[pair[0]+"+"+pair[1]]++
			}
		}
	}
	stats.TotalTags = len(stats.Counts)
	return stats
}

// writeEnvelope serializes env to path in the extension's format.
func writeEnvelope(path string, env Envelope) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(env)
	} else {
		data, err = json.MarshalIndent(env, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// readEnvelope parses path in the extension's format and validates the
// aliases field is present.
func readEnvelope(path string) (Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Envelope{}, fmt.Errorf("reading import file: %w", err)
	}

	var env Envelope
	if isYAML(path) {
		err = yaml.Unmarshal(data, &env)
	} else {
		err = json.Unmarshal(data, &env)
	}
	if err != nil {
		return Envelope{}, fmt.Errorf("parsing import file: %w", err)
	}
	if env.Aliases == nil {
		return Envelope{}, fmt.Errorf("invalid format: missing aliases field")
	}
	return env, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func filterByTag(aliases []*alias.Alias, tag string) []*alias.Alias {
	var out []*alias.Alias
	for _, a := range aliases {
		if a.HasTag(tag) {
			out = append(out, a)
		}
	}
	return out
}

func matchesTags(a *alias.Alias, tags []string, matchAll bool) bool {
	if matchAll {
		for _, tag := range tags {
			if !a.HasTag(tag) {
				return false
			}
		}
		return true
	}
	for _, tag := range tags {
		if a.HasTag(tag) {
			return true
		}
	}
	return false
}

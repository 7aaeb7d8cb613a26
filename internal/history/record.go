// ABOUTME: Operation record envelope with kind tag and opaque alias snapshots
// ABOUTME: Snapshots are json.RawMessage so one malformed entry never poisons the stacks

package history

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alix-sh/alix/internal/alias"
)

// Kind identifies one mutation type. The set is closed; the executor
// rejects unknown kinds at replay time.
type Kind string

const (
	KindAdd         Kind = "add"
	KindRemove      Kind = "remove"
	KindRemoveGroup Kind = "remove_group"
	KindEdit        Kind = "edit"
	KindImport      Kind = "import"
	KindRename      Kind = "rename"
	KindGroupAdd    Kind = "group_add"
	KindGroupRemove Kind = "group_remove"
	KindGroupDelete Kind = "group_delete"
	KindGroupImport Kind = "group_import"
	KindTagAdd      Kind = "tag_add"
	KindTagRemove   Kind = "tag_remove"
	KindTagRename   Kind = "tag_rename"
	KindTagDelete   Kind = "tag_delete"
)

// Record describes one completed mutation: its kind, the full snapshots
// of every alias it touched (insertion order), kind-specific metadata,
// and a creation timestamp stamped by Push when absent.
//
// Entries stay raw JSON end to end. The stacks treat them as opaque
// payload; only the executor decodes them, one entry at a time.
type Record struct {
	Kind      Kind              `json:"type"`
	Entries   []json.RawMessage `json:"aliases"`
	Timestamp string            `json:"timestamp,omitempty"`

	// Rename
	OldName string `json:"old_name,omitempty"`
	NewName string `json:"new_name,omitempty"`

	// Group operations
	GroupName  string  `json:"group_name,omitempty"`
	ReassignTo *string `json:"reassign_to,omitempty"`

	// Tag operations
	AddedTags   []string `json:"added_tags,omitempty"`
	RemovedTags []string `json:"removed_tags,omitempty"`
	OldTag      string   `json:"old_tag,omitempty"`
	NewTag      string   `json:"new_tag,omitempty"`
	DeletedTag  string   `json:"deleted_tag,omitempty"`

	// Edit: post-edit snapshots (Entries holds the pre-edit state)
	NewEntries []json.RawMessage `json:"new_aliases,omitempty"`
}

// Snapshot serializes a full copy of an alias for embedding in a Record.
func Snapshot(a *alias.Alias) json.RawMessage {
	data, err := json.Marshal(a)
	if err != nil {
		// Alias has no unmarshalable fields; this cannot happen with
		// well-formed values. Preserve the entry as an empty object so
		// replay skips it rather than dropping the whole record.
		return json.RawMessage("{}")
	}
	return data
}

// Snapshots serializes a batch of aliases in order.
func Snapshots(aliases []*alias.Alias) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(aliases))
	for _, a := range aliases {
		out = append(out, Snapshot(a))
	}
	return out
}

// decodeAlias parses one snapshot back into an Alias. A snapshot
// without a name or command is malformed and skipped by the executor.
func decodeAlias(raw json.RawMessage) (*alias.Alias, error) {
	var a alias.Alias
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if a.Name == "" || a.Command == "" {
		return nil, errors.New("snapshot missing name or command")
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	return &a, nil
}

// entryName extracts just the name field from a snapshot, for kinds
// whose inverse only needs the key.
func entryName(raw json.RawMessage) (string, error) {
	var probe struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", fmt.Errorf("parsing snapshot: %w", err)
	}
	if probe.Name == "" {
		return "", errors.New("snapshot missing name")
	}
	return probe.Name, nil
}

// NewAdd records a single inserted alias.
func NewAdd(a *alias.Alias) Record {
	return Record{Kind: KindAdd, Entries: Snapshots([]*alias.Alias{a})}
}

// NewRemove records removed aliases.
func NewRemove(aliases []*alias.Alias) Record {
	return Record{Kind: KindRemove, Entries: Snapshots(aliases)}
}

// NewRemoveGroup records a bulk removal of one group's aliases.
func NewRemoveGroup(aliases []*alias.Alias) Record {
	return Record{Kind: KindRemoveGroup, Entries: Snapshots(aliases)}
}

// NewEdit records an in-place edit: before in Entries, after in NewEntries.
func NewEdit(before, after *alias.Alias) Record {
	return Record{
		Kind:       KindEdit,
		Entries:    Snapshots([]*alias.Alias{before}),
		NewEntries: Snapshots([]*alias.Alias{after}),
	}
}

// NewImport records a bulk insert of imported aliases.
func NewImport(aliases []*alias.Alias) Record {
	return Record{Kind: KindImport, Entries: Snapshots(aliases)}
}

// NewRename records a rename. The snapshot carries the post-rename state.
func NewRename(a *alias.Alias, oldName, newName string) Record {
	return Record{
		Kind:    KindRename,
		Entries: Snapshots([]*alias.Alias{a}),
		OldName: oldName,
		NewName: newName,
	}
}

// NewGroupAdd records assigning aliases to a group. Snapshots carry the
// post-assignment state.
func NewGroupAdd(aliases []*alias.Alias, group string) Record {
	return Record{Kind: KindGroupAdd, Entries: Snapshots(aliases), GroupName: group}
}

// NewGroupRemove records clearing the group of aliases that belonged to group.
func NewGroupRemove(aliases []*alias.Alias, group string) Record {
	return Record{Kind: KindGroupRemove, Entries: Snapshots(aliases), GroupName: group}
}

// NewGroupDelete records deleting a group, optionally reassigning its
// members to another group (nil means members become ungrouped).
func NewGroupDelete(aliases []*alias.Alias, group string, reassignTo *string) Record {
	return Record{
		Kind:       KindGroupDelete,
		Entries:    Snapshots(aliases),
		GroupName:  group,
		ReassignTo: reassignTo,
	}
}

// NewGroupImport records a bulk import that assigned every alias to group.
func NewGroupImport(aliases []*alias.Alias, group string) Record {
	return Record{Kind: KindGroupImport, Entries: Snapshots(aliases), GroupName: group}
}

// NewTagAdd records appending tags to each alias.
func NewTagAdd(aliases []*alias.Alias, tags []string) Record {
	return Record{Kind: KindTagAdd, Entries: Snapshots(aliases), AddedTags: tags}
}

// NewTagRemove records stripping tags from each alias.
func NewTagRemove(aliases []*alias.Alias, tags []string) Record {
	return Record{Kind: KindTagRemove, Entries: Snapshots(aliases), RemovedTags: tags}
}

// NewTagRename records replacing oldTag with newTag across aliases.
func NewTagRename(aliases []*alias.Alias, oldTag, newTag string) Record {
	return Record{Kind: KindTagRename, Entries: Snapshots(aliases), OldTag: oldTag, NewTag: newTag}
}

// NewTagDelete records removing one tag from every alias that carried it.
func NewTagDelete(aliases []*alias.Alias, tag string) Record {
	return Record{Kind: KindTagDelete, Entries: Snapshots(aliases), DeletedTag: tag}
}

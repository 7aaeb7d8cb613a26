// ABOUTME: Tag subcommands: add, remove, rename, delete, list
// ABOUTME: Batch tag mutations land as a single history record

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/alix-sh/alix/internal/alias"
	"github.com/alix-sh/alix/internal/history"
	"github.com/alix-sh/alix/internal/porter"
)

func (a *App) runTag(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: alix tag <add|remove|rename|delete|list> ...")
	}
	switch args[0] {
	case "add":
		return a.runTagAdd(args[1:])
	case "remove":
		return a.runTagRemove(args[1:])
	case "rename":
		return a.runTagRename(args[1:])
	case "delete":
		return a.runTagDelete(args[1:])
	case "list":
		return a.runTagList()
	default:
		return fmt.Errorf("unknown tag subcommand %q: expected add, remove, rename, delete, or list", args[0])
	}
}

func (a *App) runTagAdd(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: alix tag add <tags> <name...>")
	}
	tags := splitCSV(args[0])
	if len(tags) == 0 {
		return fmt.Errorf("no tags given")
	}

	changed := a.retag(args[1:], func(al *alias.Alias) {
		for _, t := range tags {
			al.AddTag(t)
		}
	})
	if len(changed) == 0 {
		return fmt.Errorf("no matching aliases")
	}
	if err := a.store.Push(history.NewTagAdd(changed, tags)); err != nil {
		return fmt.Errorf("recording tag add: %w", err)
	}
	fmt.Fprintf(a.out, "Tagged %d aliases\n", len(changed))
	return nil
}

func (a *App) runTagRemove(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: alix tag remove <tags> <name...>")
	}
	tags := splitCSV(args[0])
	if len(tags) == 0 {
		return fmt.Errorf("no tags given")
	}

	changed := a.retag(args[1:], func(al *alias.Alias) {
		for _, t := range tags {
			al.RemoveTag(t)
		}
	})
	if len(changed) == 0 {
		return fmt.Errorf("no matching aliases")
	}
	if err := a.store.Push(history.NewTagRemove(changed, tags)); err != nil {
		return fmt.Errorf("recording tag remove: %w", err)
	}
	fmt.Fprintf(a.out, "Untagged %d aliases\n", len(changed))
	return nil
}

func (a *App) runTagRename(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: alix tag rename <old> <new>")
	}
	oldTag, newTag := args[0], args[1]

	var names []string
	for _, al := range a.store.ListAll() {
		if al.HasTag(oldTag) {
			names = append(names, al.Name)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no aliases carry tag '%s'", oldTag)
	}

	changed := a.retag(names, func(al *alias.Alias) {
		for i, t := range al.Tags {
			if t == oldTag {
				al.Tags[i] = newTag
			}
		}
	})
	if err := a.store.Push(history.NewTagRename(changed, oldTag, newTag)); err != nil {
		return fmt.Errorf("recording tag rename: %w", err)
	}
	fmt.Fprintf(a.out, "Renamed tag '%s' to '%s' on %d aliases\n", oldTag, newTag, len(changed))
	return nil
}

func (a *App) runTagDelete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: alix tag delete <tag>")
	}
	tag := args[0]

	var names []string
	for _, al := range a.store.ListAll() {
		if al.HasTag(tag) {
			names = append(names, al.Name)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no aliases carry tag '%s'", tag)
	}

	changed := a.retag(names, func(al *alias.Alias) {
		al.RemoveTag(tag)
	})
	if err := a.store.Push(history.NewTagDelete(changed, tag)); err != nil {
		return fmt.Errorf("recording tag delete: %w", err)
	}
	fmt.Fprintf(a.out, "Deleted tag '%s' from %d aliases\n", tag, len(changed))
	return nil
}

func (a *App) runTagList() error {
	stats := porter.New(a.store).Stats()
	if stats.TotalTags == 0 {
		fmt.Fprintln(a.out, "No tags in use.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tALIASES")
	for _, tag := range sortedKeys(stats.Counts) {
		fmt.Fprintf(w, "%s\t%d\n", tag, stats.Counts[tag])
	}
	return w.Flush()
}

// retag applies mutate to each named alias through the replay view and
// returns the post-change snapshots.
func (a *App) retag(names []string, mutate func(*alias.Alias)) []*alias.Alias {
	replay := a.store.Replay()
	var changed []*alias.Alias
	for _, name := range names {
		current, ok := a.store.Get(name)
		if !ok {
			fmt.Fprintf(a.errw, "warning: alias '%s' not found\n", name)
			continue
		}
		after := current.Clone()
		mutate(after)
		replay.Remove(name)
		replay.Add(after)
		changed = append(changed, after)
	}
	return changed
}

// ABOUTME: Group subcommands: add, remove, delete, list
// ABOUTME: Each batch mutation lands as a single history record

package cli

import (
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/alix-sh/alix/internal/alias"
	"github.com/alix-sh/alix/internal/history"
)

func (a *App) runGroup(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: alix group <add|remove|delete|list> ...")
	}
	switch args[0] {
	case "add":
		return a.runGroupAdd(args[1:])
	case "remove":
		return a.runGroupRemove(args[1:])
	case "delete":
		return a.runGroupDelete(args[1:])
	case "list":
		return a.runGroupList()
	default:
		return fmt.Errorf("unknown group subcommand %q: expected add, remove, delete, or list", args[0])
	}
}

func (a *App) runGroupAdd(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: alix group add <group> <name...>")
	}
	group := args[0]

	changed := a.assignGroup(args[1:], &group)
	if len(changed) == 0 {
		return fmt.Errorf("no matching aliases")
	}
	if err := a.store.Push(history.NewGroupAdd(changed, group)); err != nil {
		return fmt.Errorf("recording group add: %w", err)
	}
	fmt.Fprintf(a.out, "Added %d aliases to group '%s'\n", len(changed), group)
	return nil
}

func (a *App) runGroupRemove(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: alix group remove <group> <name...>")
	}
	group := args[0]

	// Only members of the named group are touched.
	var members []string
	for _, name := range args[1:] {
		if al, ok := a.store.Get(name); ok && al.Group != nil && *al.Group == group {
			members = append(members, name)
		}
	}
	changed := a.assignGroup(members, nil)
	if len(changed) == 0 {
		return fmt.Errorf("no aliases in group '%s' match", group)
	}
	if err := a.store.Push(history.NewGroupRemove(changed, group)); err != nil {
		return fmt.Errorf("recording group remove: %w", err)
	}
	fmt.Fprintf(a.out, "Removed %d aliases from group '%s'\n", len(changed), group)
	return nil
}

func (a *App) runGroupDelete(args []string) error {
	fs := flag.NewFlagSet("group delete", flag.ContinueOnError)
	reassign := fs.String("reassign-to", "", "Move members to this group instead of ungrouping them")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: alix group delete [-reassign-to g] <group>")
	}
	group := fs.Arg(0)

	members := a.store.GetByGroup(group)
	if len(members) == 0 {
		return fmt.Errorf("no aliases in group '%s'", group)
	}

	var reassignTo *string
	if *reassign != "" {
		reassignTo = reassign
	}

	names := make([]string, len(members))
	for i, al := range members {
		names[i] = al.Name
	}
	changed := a.assignGroup(names, reassignTo)
	if err := a.store.Push(history.NewGroupDelete(changed, group, reassignTo)); err != nil {
		return fmt.Errorf("recording group delete: %w", err)
	}

	if reassignTo != nil {
		fmt.Fprintf(a.out, "Deleted group '%s', moved %d aliases to '%s'\n", group, len(changed), *reassignTo)
	} else {
		fmt.Fprintf(a.out, "Deleted group '%s', ungrouped %d aliases\n", group, len(changed))
	}
	return nil
}

func (a *App) runGroupList() error {
	groups := a.store.Groups()
	if len(groups) == 0 {
		fmt.Fprintln(a.out, "No groups defined.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tALIASES")
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%d\n", g, len(a.store.GetByGroup(g)))
	}
	return w.Flush()
}

// assignGroup sets (or clears) the group on each named alias through
// the replay view and returns the post-change snapshots. Unknown names
// are skipped with a warning.
func (a *App) assignGroup(names []string, group *string) []*alias.Alias {
	replay := a.store.Replay()
	var changed []*alias.Alias
	for _, name := range names {
		current, ok := a.store.Get(name)
		if !ok {
			fmt.Fprintf(a.errw, "warning: alias '%s' not found\n", name)
			continue
		}
		after := current.Clone()
		after.Group = nil
		if group != nil {
			g := *group
			after.Group = &g
		}
		replay.Remove(name)
		replay.Add(after)
		changed = append(changed, after)
	}
	return changed
}

// ABOUTME: Alias-level subcommands: add, remove, edit, rename, list,
// ABOUTME: search, get, copy, and usage tracking

package cli

import (
	"flag"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/alix-sh/alix/internal/alias"
	"github.com/alix-sh/alix/internal/clipboard"
	"github.com/alix-sh/alix/internal/history"
	"github.com/alix-sh/alix/internal/params"
)

func (a *App) runAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	desc := fs.String("description", "", "What the alias does")
	tags := fs.String("tags", "", "Comma-separated tags")
	group := fs.String("group", "", "Group to file the alias under")
	shellName := fs.String("shell", "", "Shell the alias targets")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: alix add [flags] <name> <command...>")
	}

	name := fs.Arg(0)
	command := strings.Join(fs.Args()[1:], " ")

	if err := params.Validate(command); err != nil {
		fmt.Fprintf(a.errw, "warning: %v\n", err)
	}

	al := alias.New(name, command)
	al.Description = *desc
	al.Shell = *shellName
	if *tags != "" {
		al.Tags = splitCSV(*tags)
	}
	if *group != "" {
		al.Group = group
	}

	if !a.store.Add(al) {
		return fmt.Errorf("alias '%s' already exists", name)
	}

	fmt.Fprintf(a.out, "Added: %s\n", al)
	if params.HasParameters(command) {
		fmt.Fprintf(a.out, "Usage: %s\n", params.UsageExample(name, command, nil))
	}
	return nil
}

func (a *App) runRemove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	group := fs.String("group", "", "Remove every alias in this group")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *group != "" {
		n := a.store.RemoveGroup(*group)
		if n == 0 {
			return fmt.Errorf("no aliases in group '%s'", *group)
		}
		fmt.Fprintf(a.out, "Removed %d aliases from group '%s'\n", n, *group)
		return nil
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: alix remove <name> | alix remove -group <group>")
	}
	name := fs.Arg(0)
	if !a.store.Remove(name) {
		return fmt.Errorf("alias '%s' not found", name)
	}
	fmt.Fprintf(a.out, "Removed alias '%s'\n", name)
	return nil
}

func (a *App) runEdit(args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	command := fs.String("command", "", "New command")
	desc := fs.String("description", "", "New description")
	tags := fs.String("tags", "", "New comma-separated tag list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: alix edit [flags] <name>")
	}
	if *command == "" && *desc == "" && *tags == "" {
		return fmt.Errorf("nothing to change: pass -command, -description, or -tags")
	}

	name := fs.Arg(0)
	current, ok := a.store.Get(name)
	if !ok {
		return fmt.Errorf("alias '%s' not found", name)
	}

	before := current.Clone()
	after := current.Clone()
	if *command != "" {
		if err := params.Validate(*command); err != nil {
			fmt.Fprintf(a.errw, "warning: %v\n", err)
		}
		after.Command = *command
	}
	if *desc != "" {
		after.Description = *desc
	}
	if *tags != "" {
		after.Tags = splitCSV(*tags)
	}

	replay := a.store.Replay()
	replay.Remove(name)
	replay.Add(after)
	if err := a.store.Push(history.NewEdit(before, after)); err != nil {
		return fmt.Errorf("recording edit: %w", err)
	}

	fmt.Fprintf(a.out, "Updated: %s\n", after)
	return nil
}

func (a *App) runRename(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: alix rename <old> <new>")
	}
	oldName, newName := args[0], args[1]

	current, ok := a.store.Get(oldName)
	if !ok {
		return fmt.Errorf("alias '%s' not found", oldName)
	}
	if _, taken := a.store.Get(newName); taken {
		return fmt.Errorf("alias '%s' already exists", newName)
	}

	after := current.Clone()
	after.Name = newName

	replay := a.store.Replay()
	replay.Remove(oldName)
	replay.Add(after)
	if err := a.store.Push(history.NewRename(after, oldName, newName)); err != nil {
		return fmt.Errorf("recording rename: %w", err)
	}

	fmt.Fprintf(a.out, "Renamed '%s' to '%s'\n", oldName, newName)
	return nil
}

func (a *App) runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	group := fs.String("group", "", "Only aliases in this group")
	tag := fs.String("tag", "", "Only aliases carrying this tag")
	if err := fs.Parse(args); err != nil {
		return err
	}

	aliases := a.store.ListAll()
	if *group != "" {
		aliases = a.store.GetByGroup(*group)
	}
	if *tag != "" {
		var kept []*alias.Alias
		for _, al := range aliases {
			if al.HasTag(*tag) {
				kept = append(kept, al)
			}
		}
		aliases = kept
	}
	if len(aliases) == 0 {
		fmt.Fprintln(a.out, "No aliases found.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	header := "NAME\tCOMMAND\tTAGS\tGROUP"
	if a.settings.ShowDescriptions {
		header = "NAME\tCOMMAND\tDESCRIPTION\tTAGS\tGROUP"
	}
	fmt.Fprintln(w, header)
	for _, al := range aliases {
		groupName := ""
		if al.Group != nil {
			groupName = *al.Group
		}
		if a.settings.ShowDescriptions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				al.Name, al.Command, al.Description, strings.Join(al.Tags, ","), groupName)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				al.Name, al.Command, strings.Join(al.Tags, ","), groupName)
		}
	}
	return w.Flush()
}

func (a *App) runSearch(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: alix search <pattern>")
	}
	pattern := strings.ToLower(args[0])

	var matched []*alias.Alias
	for _, al := range a.store.ListAll() {
		haystack := strings.ToLower(al.Name + " " + al.Command + " " + al.Description)
		if strings.Contains(haystack, pattern) {
			matched = append(matched, al)
		}
	}
	if len(matched) == 0 {
		fmt.Fprintf(a.out, "No aliases match '%s'.\n", args[0])
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOMMAND\tDESCRIPTION")
	for _, al := range matched {
		fmt.Fprintf(w, "%s\t%s\t%s\n", al.Name, al.Command, al.Description)
	}
	return w.Flush()
}

func (a *App) runGet(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: alix get <name>")
	}
	al, ok := a.store.Get(args[0])
	if !ok {
		return fmt.Errorf("alias '%s' not found", args[0])
	}

	fmt.Fprintf(a.out, "Name:        %s\n", al.Name)
	fmt.Fprintf(a.out, "Command:     %s\n", al.Command)
	if al.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", al.Description)
	}
	if len(al.Tags) > 0 {
		fmt.Fprintf(a.out, "Tags:        %s\n", strings.Join(al.Tags, ", "))
	}
	if al.Group != nil && *al.Group != "" {
		fmt.Fprintf(a.out, "Group:       %s\n", *al.Group)
	}
	fmt.Fprintf(a.out, "Created:     %s\n", al.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(a.out, "Used:        %d times\n", al.UsedCount)
	if al.LastUsed != nil {
		fmt.Fprintf(a.out, "Last used:   %s\n", al.LastUsed.Format("2006-01-02 15:04"))
	}
	if params.HasParameters(al.Command) {
		fmt.Fprintf(a.out, "Usage:       %s\n", params.UsageExample(al.Name, al.Command, nil))
	}
	return nil
}

func (a *App) runCopy(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: alix copy <name>")
	}
	al, ok := a.store.Get(args[0])
	if !ok {
		return fmt.Errorf("alias '%s' not found", args[0])
	}
	if err := clipboard.Write(al.Command); err != nil {
		return fmt.Errorf("unable to copy (command is: %s): %w", al.Command, err)
	}
	fmt.Fprintf(a.out, "Copied '%s' to clipboard\n", al.Name)
	return nil
}

func (a *App) runTrack(args []string) error {
	fs := flag.NewFlagSet("track", flag.ContinueOnError)
	context := fs.String("context", "", "Usage context, e.g. cwd:/home/me")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: alix track [-context c] <name>")
	}

	if !a.store.TrackUsage(fs.Arg(0), *context) {
		return fmt.Errorf("alias '%s' not found", fs.Arg(0))
	}
	return nil
}

// splitCSV parses a comma-separated list, dropping empty items.
func splitCSV(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// sortedKeys returns map keys in sorted order.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

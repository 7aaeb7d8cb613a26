// ABOUTME: Stats and config subcommands
// ABOUTME: Usage analytics come from the tracker; settings are JSON-backed

package cli

import (
	"flag"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alix-sh/alix/internal/config"
	"github.com/alix-sh/alix/internal/porter"
	"github.com/alix-sh/alix/internal/tui"
)

func (a *App) runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	tags := fs.Bool("tags", false, "Show tag statistics instead of usage analytics")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *tags {
		return a.printTagStats()
	}
	return a.printUsageStats()
}

func (a *App) printUsageStats() error {
	tracker := a.store.Tracker()
	if tracker == nil {
		return fmt.Errorf("usage tracking is not available")
	}
	an := tracker.Compute(a.store.ListAll())

	if an.TotalAliases == 0 {
		fmt.Fprintln(a.out, "No aliases to analyze.")
		return nil
	}

	fmt.Fprintf(a.out, "Aliases:        %d\n", an.TotalAliases)
	fmt.Fprintf(a.out, "Total uses:     %d\n", an.TotalUses)
	fmt.Fprintf(a.out, "Average/alias:  %.1f\n", an.AveragePerAlias)
	fmt.Fprintf(a.out, "Most used:      %s\n", an.MostUsed)
	fmt.Fprintf(a.out, "Least used:     %s\n", an.LeastUsed)
	if len(an.Unused) > 0 {
		fmt.Fprintf(a.out, "Unused:         %s\n", strings.Join(an.Unused, ", "))
	}
	if len(an.RecentlyUsed) > 0 {
		fmt.Fprintf(a.out, "Used this week: %s\n", strings.Join(an.RecentlyUsed, ", "))
	}

	if len(an.MostProductive) > 0 {
		fmt.Fprintln(a.out, "\nMost productive (characters saved per use):")
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		for _, p := range an.MostProductive {
			fmt.Fprintf(w, "  %s\t%d\n", p.Name, p.CharsSaved)
		}
		return w.Flush()
	}
	return nil
}

func (a *App) printTagStats() error {
	stats := porter.New(a.store).Stats()

	fmt.Fprintf(a.out, "Tags:     %d\n", stats.TotalTags)
	fmt.Fprintf(a.out, "Tagged:   %d of %d aliases\n", stats.TaggedAliases, stats.TotalAliases)
	fmt.Fprintf(a.out, "Untagged: %d\n", stats.UntaggedAliases)

	if len(stats.Counts) > 0 {
		fmt.Fprintln(a.out, "\nPer tag:")
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		for _, tag := range sortedKeys(stats.Counts) {
			fmt.Fprintf(w, "  %s\t%d\n", tag, stats.Counts[tag])
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	if len(stats.Pairs) > 0 {
		fmt.Fprintln(a.out, "\nCommon combinations:")
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		for _, pair := range sortedKeys(stats.Pairs) {
			fmt.Fprintf(w, "  %s\t%d\n", pair, stats.Pairs[pair])
		}
		return w.Flush()
	}
	return nil
}

func (a *App) runConfig(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: alix config <get|set|list> ...")
	}
	path := filepath.Join(a.dir, "config.json")

	switch args[0] {
	case "list":
		s := a.settings
		fmt.Fprintf(a.out, "theme             %s\n", s.Theme)
		fmt.Fprintf(a.out, "auto_backup       %t\n", s.AutoBackup)
		fmt.Fprintf(a.out, "confirm_delete    %t\n", s.ConfirmDelete)
		fmt.Fprintf(a.out, "show_descriptions %t\n", s.ShowDescriptions)
		fmt.Fprintf(a.out, "max_backups       %d\n", s.MaxBackups)
		return nil

	case "get":
		if len(args) != 2 {
			return fmt.Errorf("usage: alix config get <key>")
		}
		val, err := settingValue(a.settings, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, val)
		return nil

	case "set":
		if len(args) != 3 {
			return fmt.Errorf("usage: alix config set <key> <value>")
		}
		s, err := applySetting(a.settings, args[1], args[2])
		if err != nil {
			return err
		}
		if err := config.SaveSettings(path, s); err != nil {
			return err
		}
		a.settings = s
		fmt.Fprintf(a.out, "Set %s = %s\n", args[1], args[2])
		return nil

	default:
		return fmt.Errorf("unknown config subcommand %q: expected get, set, or list", args[0])
	}
}

func settingValue(s config.Settings, key string) (string, error) {
	switch key {
	case "theme":
		return s.Theme, nil
	case "auto_backup":
		return strconv.FormatBool(s.AutoBackup), nil
	case "confirm_delete":
		return strconv.FormatBool(s.ConfirmDelete), nil
	case "show_descriptions":
		return strconv.FormatBool(s.ShowDescriptions), nil
	case "max_backups":
		return strconv.Itoa(s.MaxBackups), nil
	default:
		return "", fmt.Errorf("unknown setting %q", key)
	}
}

func applySetting(s config.Settings, key, value string) (config.Settings, error) {
	switch key {
	case "theme":
		valid := false
		for _, name := range tui.ThemeNames() {
			if name == value {
				valid = true
			}
		}
		if !valid {
			return s, fmt.Errorf("unknown theme %q (themes: %s)", value, strings.Join(tui.ThemeNames(), ", "))
		}
		s.Theme = value
	case "auto_backup", "confirm_delete", "show_descriptions":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s, fmt.Errorf("%s expects true or false", key)
		}
		switch key {
		case "auto_backup":
			s.AutoBackup = b
		case "confirm_delete":
			s.ConfirmDelete = b
		case "show_descriptions":
			s.ShowDescriptions = b
		}
	case "max_backups":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return s, fmt.Errorf("max_backups expects a positive number")
		}
		s.MaxBackups = n
	default:
		return s, fmt.Errorf("unknown setting %q", key)
	}
	return s, nil
}

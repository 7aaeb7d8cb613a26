// ABOUTME: Transfer subcommands: export, import, scan, apply, integrate,
// ABOUTME: cheatsheet, and template packs

package cli

import (
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"

	"github.com/alix-sh/alix/internal/alias"
	"github.com/alix-sh/alix/internal/history"
	"github.com/alix-sh/alix/internal/porter"
	"github.com/alix-sh/alix/internal/scanner"
	"github.com/alix-sh/alix/internal/shell"
)

func (a *App) runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	tag := fs.String("tag", "", "Only aliases carrying this tag")
	tags := fs.String("tags", "", "Only aliases matching these comma-separated tags")
	matchAll := fs.Bool("all", false, "With -tags, require every tag instead of any")
	html := fs.Bool("html", false, "Write a styled HTML page instead of JSON/YAML")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: alix export [flags] <file>")
	}
	path := fs.Arg(0)

	p := porter.New(a.store)
	var msg string
	var err error
	switch {
	case *html:
		msg, err = p.ExportHTMLFile(path)
	case *tags != "":
		msg, err = p.ExportByTags(path, splitCSV(*tags), *matchAll)
	default:
		msg, err = p.Export(path, *tag)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	merge := fs.Bool("merge", false, "Overwrite existing aliases of the same name")
	tag := fs.String("tag", "", "Only import aliases carrying this tag")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: alix import [flags] <file>")
	}

	msg, err := porter.New(a.store).Import(fs.Arg(0), *merge, *tag)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) runScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	doImport := fs.Bool("import", false, "Import the found aliases")
	group := fs.String("group", "", "With -import, file imports under this group")
	active := fs.Bool("active", false, "Scan the live shell instead of rc files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sc := scanner.New(a.detector)

	if *active {
		found := sc.ActiveAliases()
		if len(found) == 0 {
			fmt.Fprintln(a.out, "No active aliases found.")
			return nil
		}
		if *doImport {
			return a.importScanned(found, *group)
		}
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCOMMAND")
		for _, al := range found {
			fmt.Fprintf(w, "%s\t%s\n", al.Name, al.Command)
		}
		return w.Flush()
	}

	results := sc.ScanSystem()
	if len(results) == 0 {
		fmt.Fprintln(a.out, "No aliases found in shell config files.")
		return nil
	}

	if *doImport {
		var found []*alias.Alias
		for _, aliases := range results {
			found = append(found, aliases...)
		}
		return a.importScanned(found, *group)
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tNAME\tCOMMAND")
	for file, aliases := range results {
		for _, al := range aliases {
			fmt.Fprintf(w, "%s\t%s\t%s\n", file, al.Name, al.Command)
		}
	}
	return w.Flush()
}

// importScanned adds scanned aliases through the replay view and
// records one import (or group_import) record for those that landed.
func (a *App) importScanned(found []*alias.Alias, group string) error {
	replay := a.store.Replay()
	var landed []*alias.Alias
	skipped := 0
	for _, al := range found {
		if _, exists := a.store.Get(al.Name); exists {
			skipped++
			continue
		}
		if group != "" {
			g := group
			al.Group = &g
		}
		if replay.Add(al) {
			landed = append(landed, al)
		}
	}

	if len(landed) > 0 {
		rec := history.NewImport(landed)
		if group != "" {
			rec = history.NewGroupImport(landed, group)
		}
		if err := a.store.Push(rec); err != nil {
			return fmt.Errorf("recording scan import: %w", err)
		}
	}

	msg := fmt.Sprintf("Imported %d aliases", len(landed))
	if skipped > 0 {
		msg += fmt.Sprintf(" (skipped %d existing)", skipped)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) runApply(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	file := fs.String("file", "", "Shell rc file to write (default: first config of the detected shell)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := *file
	if path == "" {
		files := a.detector.ConfigFiles(a.detector.Detect())
		if len(files) == 0 {
			return fmt.Errorf("no shell config file found; pass -file")
		}
		path = files[0]
	}

	n, err := shell.Apply(path, a.store.ListAll())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote %d aliases to %s\n", n, path)
	fmt.Fprintf(a.out, "Run 'source %s' or open a new shell to activate them.\n", path)
	return nil
}

func (a *App) runIntegrate(args []string) error {
	fs := flag.NewFlagSet("integrate", flag.ContinueOnError)
	file := fs.String("file", "", "Shell rc file to install into")
	standalone := fs.String("standalone", "", "Write a standalone tracking script here instead")
	shellName := fs.String("shell", "", "Shell dialect (bash, zsh, fish)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	shellType := shell.Type(*shellName)
	if *shellName == "" {
		shellType = a.detector.Detect()
	}

	g := shell.NewIntegrator(a.store)
	if *standalone != "" {
		if err := g.WriteStandaloneScript(*standalone, shellType); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Wrote tracking script to %s\n", *standalone)
		return nil
	}

	path := *file
	if path == "" {
		files := a.detector.ConfigFiles(shellType)
		if len(files) == 0 {
			return fmt.Errorf("no shell config file found; pass -file or -standalone")
		}
		path = files[0]
	}
	if err := g.InstallIntegration(path, shellType); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Installed usage tracking into %s\n", path)
	return nil
}

func (a *App) runCheatsheet(args []string) error {
	fs := flag.NewFlagSet("cheatsheet", flag.ContinueOnError)
	raw := fs.Bool("raw", false, "Print raw markdown even on a terminal")
	if err := fs.Parse(args); err != nil {
		return err
	}

	md := porter.New(a.store).Cheatsheet()
	if !a.isTTY || *raw {
		fmt.Fprint(a.out, md)
		return nil
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(a.out, md)
		return nil
	}
	rendered, err := r.Render(md)
	if err != nil {
		fmt.Fprint(a.out, md)
		return nil
	}
	fmt.Fprint(a.out, rendered)
	return nil
}

func (a *App) runTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: alix template <list|show|import|categories> ...")
	}
	m := a.templates()

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("template list", flag.ContinueOnError)
		category := fs.String("category", "", "Only templates in this category")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		templates := m.List(*category)
		if len(templates) == 0 {
			fmt.Fprintln(a.out, "No templates found.")
			return nil
		}
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCATEGORY\tALIASES\tDESCRIPTION")
		for _, t := range templates {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", t.Name, t.Category, len(t.Aliases), t.Description)
		}
		return w.Flush()

	case "show":
		if len(args) != 2 {
			return fmt.Errorf("usage: alix template show <name>")
		}
		t, ok := m.Get(args[1])
		if !ok {
			return fmt.Errorf("template '%s' not found", args[1])
		}
		fmt.Fprintf(a.out, "%s (%s) - %s\n\n", t.Name, t.Category, t.Description)
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCOMMAND\tTAGS")
		for _, al := range t.Aliases {
			fmt.Fprintf(w, "%s\t%s\t%s\n", al.Name, al.Command, strings.Join(al.Tags, ","))
		}
		return w.Flush()

	case "import":
		fs := flag.NewFlagSet("template import", flag.ContinueOnError)
		category := fs.String("category", "", "Import every template in this category")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		var msg string
		var err error
		if *category != "" {
			msg, err = m.ImportCategory(a.store, *category, fs.Args())
		} else {
			if fs.NArg() < 1 {
				return fmt.Errorf("usage: alix template import <name> [alias...]")
			}
			msg, err = m.Import(a.store, fs.Arg(0), fs.Args()[1:])
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, msg)
		return nil

	case "categories":
		for _, c := range m.Categories() {
			fmt.Fprintln(a.out, c)
		}
		return nil

	default:
		return fmt.Errorf("unknown template subcommand %q", args[0])
	}
}

// ABOUTME: CLI dispatch for alias subcommands over the store and history
// ABOUTME: No subcommand starts the interactive browser

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/alix-sh/alix/internal/config"
	"github.com/alix-sh/alix/internal/history"
	"github.com/alix-sh/alix/internal/shell"
	"github.com/alix-sh/alix/internal/storage"
	"github.com/alix-sh/alix/internal/template"
	"github.com/alix-sh/alix/internal/tui"
	"github.com/alix-sh/alix/internal/usage"
)

// App wires the store, history, settings, and templates for one run.
type App struct {
	dir      string
	store    *storage.Store
	settings config.Settings
	detector *shell.Detector

	out   io.Writer
	errw  io.Writer
	isTTY bool

	version string
}

// Option customizes an App.
type Option func(*App)

// WithOutput redirects command output, marking it as non-interactive.
func WithOutput(out, errw io.Writer) Option {
	return func(a *App) {
		a.out = out
		a.errw = errw
		a.isTTY = false
	}
}

// WithVersion sets the string the version subcommand prints.
func WithVersion(v string) Option {
	return func(a *App) { a.version = v }
}

// WithDetector overrides shell detection, mainly for tests.
func WithDetector(d *shell.Detector) Option {
	return func(a *App) { a.detector = d }
}

// NewApp builds an App rooted at dir (the alix data directory). An
// empty dir uses ~/.alix.
func NewApp(dir string, opts ...Option) (*App, error) {
	if dir == "" {
		dir = config.Dir()
	}
	if err := config.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	settings := config.LoadSettings(filepath.Join(dir, "config.json"))
	hist := history.New(filepath.Join(dir, "history.json"))
	tracker := usage.NewTracker(filepath.Join(dir, "usage_tracking.json"))

	store := storage.New(filepath.Join(dir, "aliases.json"), hist,
		storage.WithBackupsDir(filepath.Join(dir, "backups")),
		storage.WithMaxBackups(settings.MaxBackups),
		storage.WithTracker(tracker))

	a := &App{
		dir:      dir,
		store:    store,
		settings: settings,
		detector: shell.NewDetector(""),
		out:      os.Stdout,
		errw:     os.Stderr,
		isTTY:    term.IsTerminal(int(os.Stdout.Fd())),
		version:  "dev",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Run dispatches args. With no subcommand the interactive browser
// starts.
func (a *App) Run(args []string) error {
	if len(args) == 0 {
		return tui.Run(a.store, a.settings.Theme)
	}

	subcmd := args[0]
	rest := args[1:]

	switch subcmd {
	case "add":
		return a.runAdd(rest)
	case "remove", "rm":
		return a.runRemove(rest)
	case "edit":
		return a.runEdit(rest)
	case "rename":
		return a.runRename(rest)
	case "list", "ls":
		return a.runList(rest)
	case "search":
		return a.runSearch(rest)
	case "get":
		return a.runGet(rest)
	case "copy":
		return a.runCopy(rest)
	case "group":
		return a.runGroup(rest)
	case "tag":
		return a.runTag(rest)
	case "undo":
		return a.runUndo(rest)
	case "redo":
		return a.runRedo(rest)
	case "history":
		return a.runHistory(rest)
	case "export":
		return a.runExport(rest)
	case "import":
		return a.runImport(rest)
	case "scan":
		return a.runScan(rest)
	case "apply":
		return a.runApply(rest)
	case "integrate":
		return a.runIntegrate(rest)
	case "track":
		return a.runTrack(rest)
	case "stats":
		return a.runStats(rest)
	case "cheatsheet":
		return a.runCheatsheet(rest)
	case "template":
		return a.runTemplate(rest)
	case "config":
		return a.runConfig(rest)
	case "version":
		fmt.Fprintf(a.out, "alix %s\n", a.version)
		return nil
	case "help", "-h", "--help":
		a.printUsage()
		return nil
	default:
		return fmt.Errorf("unknown subcommand %q: run 'alix help' for usage", subcmd)
	}
}

// templates lazily loads the template manager.
func (a *App) templates() *template.Manager {
	return template.NewManager(filepath.Join(a.dir, "templates"))
}

func (a *App) printUsage() {
	fmt.Fprint(a.out, `alix - shell alias manager

Usage: alix [command] [flags]

Running alix with no command opens the interactive browser.

Aliases:
  add <name> <command...>     Create an alias
  remove <name>               Delete an alias (or -group <name> for a whole group)
  edit <name>                 Change an alias's command, description, or tags
  rename <old> <new>          Rename an alias
  list                        List aliases
  search <pattern>            Search names, commands, and descriptions
  get <name>                  Show one alias in detail
  copy <name>                 Copy an alias's command to the clipboard

Organization:
  group <add|remove|delete|list>
  tag <add|remove|rename|delete|list>

History:
  undo [-id N]                Undo the last (or Nth most recent) operation
  redo [-id N]                Redo the last (or Nth most recent) undone operation
  history                     Show the undo and redo stacks

Transfer:
  export <file>               Export aliases (JSON, YAML, or -html)
  import <file>               Import aliases
  scan                        Find aliases in shell config files
  apply                       Write aliases into a shell rc file
  integrate                   Install usage-tracking shell functions
  template <list|show|import> Starter alias packs
  cheatsheet                  Grouped markdown cheatsheet

Other:
  track <name>                Record one usage of an alias
  stats                       Usage analytics (-tags for tag statistics)
  config <get|set|list>       Settings
  version                     Print the version
`)
}

// ABOUTME: CLI entry point for alix
// ABOUTME: Parses flags, builds the app, and dispatches to the subcommand

package main

import (
	"fmt"
	"os"

	"github.com/alix-sh/alix/internal/cli"
	alixlog "github.com/alix-sh/alix/internal/log"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("alix %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args cliArgs) error {
	if args.verbose {
		alixlog.SetVerbose(true)
	}

	app, err := cli.NewApp(args.dataDir,
		cli.WithVersion(fmt.Sprintf("%s (%s)", version, commit)))
	if err != nil {
		return err
	}
	return app.Run(args.remaining())
}

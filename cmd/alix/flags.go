// ABOUTME: Global flag parsing using stdlib flag package
// ABOUTME: Subcommands and their flags are handled by the cli package

package main

import "flag"

type cliArgs struct {
	version bool
	verbose bool
	dataDir string
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.BoolVar(&args.version, "version", false, "Show version and exit")
	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	flag.StringVar(&args.dataDir, "data-dir", "", "Data directory (default ~/.alix)")

	flag.Parse()
	return args
}

// remaining returns the non-flag command-line arguments.
func (a cliArgs) remaining() []string {
	return flag.Args()
}

// ABOUTME: Undo, redo, and history subcommands
// ABOUTME: -id selects an operation by 1-based most-recent-first position

package cli

import (
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/alix-sh/alix/internal/history"
)

func (a *App) runUndo(args []string) error {
	fs := flag.NewFlagSet("undo", flag.ContinueOnError)
	id := fs.Int("id", 0, "Undo the Nth most recent operation (1 = latest)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var res history.Result
	if *id > 0 {
		var err error
		res, err = a.store.History().UndoByID(a.store.Replay(), *id)
		if err != nil {
			return err
		}
	} else {
		res = a.store.History().Undo(a.store.Replay())
	}
	fmt.Fprintln(a.out, res.Message)
	return nil
}

func (a *App) runRedo(args []string) error {
	fs := flag.NewFlagSet("redo", flag.ContinueOnError)
	id := fs.Int("id", 0, "Redo the Nth most recent undone operation (1 = latest)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var res history.Result
	if *id > 0 {
		var err error
		res, err = a.store.History().RedoByID(a.store.Replay(), *id)
		if err != nil {
			return err
		}
	} else {
		res = a.store.History().Redo(a.store.Replay())
	}
	fmt.Fprintln(a.out, res.Message)
	return nil
}

func (a *App) runHistory(args []string) error {
	hist := a.store.History()
	undo := hist.ListUndo()
	redo := hist.ListRedo()

	if len(undo) == 0 && len(redo) == 0 {
		fmt.Fprintln(a.out, "History is empty.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	if len(undo) > 0 {
		fmt.Fprintln(w, "UNDO\tID\tOPERATION\tALIASES\tWHEN")
		// Most recent first, matching the ids undo -id accepts.
		for i := len(undo) - 1; i >= 0; i-- {
			rec := undo[i]
			fmt.Fprintf(w, "\t%d\t%s\t%d\t%s\n", len(undo)-i, rec.Kind, len(rec.Entries), rec.Timestamp)
		}
	}
	if len(redo) > 0 {
		fmt.Fprintln(w, "REDO\tID\tOPERATION\tALIASES\tWHEN")
		for i := len(redo) - 1; i >= 0; i-- {
			rec := redo[i]
			fmt.Fprintf(w, "\t%d\t%s\t%d\t%s\n", len(redo)-i, rec.Kind, len(rec.Entries), rec.Timestamp)
		}
	}
	return w.Flush()
}

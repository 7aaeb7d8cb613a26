// ABOUTME: Human-readable result messages for undo/redo outcomes
// ABOUTME: Picks a verb per operation kind and handles partial/skipped batches

package history

import "fmt"

// formatMessage builds the user-facing summary line for one undo/redo.
// action is "Undid" or "Redid".
func formatMessage(action string, kind Kind, performed, total, skipped int) string {
	verb := resultVerb(action, kind)

	if skipped > 0 {
		return fmt.Sprintf("%s %s (%d of %d aliases %s, %d skipped)",
			action, kind, performed, total, verb, skipped)
	}
	if performed != total {
		return fmt.Sprintf("%s %s (%d of %d aliases %s)",
			action, kind, performed, total, verb)
	}

	word := "aliases"
	if performed == 1 {
		word = "alias"
	}
	return fmt.Sprintf("%s %s (%d %s %s)", action, kind, performed, word, verb)
}

// resultVerb describes what happened to the affected aliases.
func resultVerb(action string, kind Kind) string {
	undo := action == "Undid"
	switch kind {
	case KindAdd, KindImport:
		if undo {
			return "removed"
		}
		return "added"
	case KindRemove, KindRemoveGroup:
		if undo {
			return "restored"
		}
		return "removed"
	case KindEdit:
		if undo {
			return "restored"
		}
		return "updated"
	case KindRename:
		if undo {
			return "renamed back"
		}
		return "renamed"
	default:
		return "processed"
	}
}

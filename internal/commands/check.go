package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/rollup"
)

// bookProblem is one finding of the check command.
type bookProblem struct {
	ref    string
	detail string
}

func newCheckCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Find unbalanced entries and lines the reports will skip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := g.openBook()
			if err != nil {
				return err
			}
			snap, err := journal.LoadSnapshot(b.root)
			if err != nil {
				return err
			}

			problems := checkBook(snap)
			out := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintf(out, "%s: %s\n", p.ref, p.detail)
			}
			if len(problems) > 0 {
				return fmt.Errorf("found %d problem(s) in %d entries", len(problems), len(snap.Headers))
			}
			fmt.Fprintf(out, "OK: %d entries, %d lines\n", len(snap.Headers), len(snap.Lines))
			return nil
		},
	}
}

// checkBook reports entries failing the balance check, lines without a
// header and lines naming an account missing from the chart.
func checkBook(snap journal.Snapshot) []bookProblem {
	var problems []bookProblem
	for _, issue := range rollup.CheckEntries(snap.Headers, snap.Lines) {
		c := issue.Check
		problems = append(problems, bookProblem{
			ref: issue.Header.ID,
			detail: fmt.Sprintf("%s %q does not balance: debits %s, credits %s (off by %s)",
				issue.Header.Date, issue.Header.Memo,
				c.TotalDebit.String(), c.TotalCredit.String(), c.Difference().Abs().String()),
		})
	}

	headerIDs := make(map[string]bool, len(snap.Headers))
	for _, h := range snap.Headers {
		headerIDs[h.ID] = true
	}
	accountIDs := make(map[string]bool, len(snap.Accounts))
	for _, a := range snap.Accounts {
		accountIDs[a.ID] = true
	}
	for _, l := range snap.Lines {
		if !headerIDs[l.HeaderID] {
			problems = append(problems, bookProblem{ref: l.ID, detail: fmt.Sprintf("line references missing entry %q", l.HeaderID)})
		}
		if !accountIDs[l.AccountID] {
			problems = append(problems, bookProblem{ref: l.ID, detail: fmt.Sprintf("line references unknown account %q", l.AccountID)})
		}
	}
	return problems
}

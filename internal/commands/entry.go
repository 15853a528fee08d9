package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/model"
)

// entryFlags are the flags shared by post and amend.
type entryFlags struct {
	date    string
	memo    string
	ref     string
	debits  []string
	credits []string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "entry date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.memo, "memo", "", "description")
	cmd.Flags().StringVar(&f.ref, "ref", "", "external reference, e.g. a check number")
	cmd.Flags().StringArrayVar(&f.debits, "debit", nil, "debit line as ACCOUNT=AMOUNT (repeatable)")
	cmd.Flags().StringArrayVar(&f.credits, "credit", nil, "credit line as ACCOUNT=AMOUNT (repeatable)")
}

// lines parses the --debit and --credit values, debits first.
func (f *entryFlags) lines() ([]journal.DraftLine, error) {
	var out []journal.DraftLine
	for _, v := range f.debits {
		accountID, amount, err := parseLeg(v)
		if err != nil {
			return nil, fmt.Errorf("--debit %s: %w", v, err)
		}
		out = append(out, journal.DraftLine{AccountID: accountID, Debit: amount})
	}
	for _, v := range f.credits {
		accountID, amount, err := parseLeg(v)
		if err != nil {
			return nil, fmt.Errorf("--credit %s: %w", v, err)
		}
		out = append(out, journal.DraftLine{AccountID: accountID, Credit: amount})
	}
	if len(out) == 0 {
		return nil, errors.New("at least one --debit and one --credit are required")
	}
	return out, nil
}

// parseLeg splits "ACCOUNT=AMOUNT". Typed amounts are parsed strictly.
func parseLeg(s string) (string, decimal.Decimal, error) {
	accountID, raw, ok := strings.Cut(s, "=")
	accountID = strings.TrimSpace(accountID)
	if !ok || accountID == "" {
		return "", decimal.Zero, errors.New("want ACCOUNT=AMOUNT")
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return accountID, amount, nil
}

func newPostCommand(g *globals) *cobra.Command {
	var f entryFlags

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a balanced journal entry",
		Example: `  tally post --date 2024-01-20 --memo "Supermarket" \
    --debit 5030=120.35 --credit 2010=120.35`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := f.lines()
			if err != nil {
				return err
			}
			date := f.date
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			b, svc, err := g.openJournal()
			if err != nil {
				return err
			}
			headerID, err := svc.Post(journal.Draft{Date: date, Memo: f.memo, Ref: f.ref, Lines: lines})
			if err != nil {
				return err
			}
			g.log.Info("posted", zap.String("header", headerID), zap.Int("lines", len(lines)))

			hash, err := g.commit(b, "post: "+entryTitle(date, f.memo))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Posted %s%s\n", headerID, commitSuffix(hash))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newAmendCommand(g *globals) *cobra.Command {
	var f entryFlags

	cmd := &cobra.Command{
		Use:   "amend <entry-id>",
		Short: "Replace the lines of a journal entry",
		Long: `Replace the lines of a journal entry. Date, memo and ref keep their
current values unless given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headerID := args[0]
			lines, err := f.lines()
			if err != nil {
				return err
			}

			b, svc, err := g.openJournal()
			if err != nil {
				return err
			}
			current, err := findHeader(svc, headerID)
			if err != nil {
				return err
			}

			d := journal.Draft{Date: current.Date, Memo: current.Memo, Ref: current.Ref, Lines: lines}
			if cmd.Flags().Changed("date") {
				d.Date = f.date
			}
			if cmd.Flags().Changed("memo") {
				d.Memo = f.memo
			}
			if cmd.Flags().Changed("ref") {
				d.Ref = f.ref
			}
			if err := svc.Amend(headerID, d); err != nil {
				return err
			}
			g.log.Info("amended", zap.String("header", headerID), zap.Int("lines", len(lines)))

			hash, err := g.commit(b, "amend: "+headerID+" "+entryTitle(d.Date, d.Memo))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Amended %s%s\n", headerID, commitSuffix(hash))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete a journal entry and its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headerID := args[0]
			b, svc, err := g.openJournal()
			if err != nil {
				return err
			}
			if err := svc.Delete(headerID); err != nil {
				return err
			}
			g.log.Info("deleted", zap.String("header", headerID))

			hash, err := g.commit(b, "delete: "+headerID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s%s\n", headerID, commitSuffix(hash))
			return nil
		},
	}
}

func (g *globals) openJournal() (*book, *journal.Service, error) {
	b, err := g.openBook()
	if err != nil {
		return nil, nil, err
	}
	accts, err := accounts.Load(b.root)
	if err != nil {
		return nil, nil, err
	}
	return b, journal.NewService(b.root, accts), nil
}

func findHeader(svc *journal.Service, headerID string) (model.JournalHeader, error) {
	headers, _, err := svc.Read()
	if err != nil {
		return model.JournalHeader{}, err
	}
	for _, h := range headers {
		if h.ID == headerID {
			return h, nil
		}
	}
	return model.JournalHeader{}, fmt.Errorf("%w: %s", journal.ErrHeaderNotFound, headerID)
}

func entryTitle(date, memo string) string {
	if memo == "" {
		return date
	}
	return date + " " + memo
}

func commitSuffix(hash string) string {
	if hash == "" {
		return ""
	}
	return " (" + hash + ")"
}

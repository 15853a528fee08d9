package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/render"
	"github.com/cleared-dev/tally/internal/rollup"
)

// reportFlags are shared by the report commands. Unset flags fall back to
// the reports section of tally.yaml.
type reportFlags struct {
	start        string
	end          string
	format       string
	includeEmpty bool
}

func (f *reportFlags) register(cmd *cobra.Command, window bool) {
	if window {
		cmd.Flags().StringVar(&f.start, "start", "", "first date included, YYYY-MM-DD")
	}
	cmd.Flags().StringVar(&f.end, "end", "", "last date included, YYYY-MM-DD")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "text, markdown, json or pretty")
}

// reportContext is everything a report command needs after flags are resolved.
type reportContext struct {
	snap     journal.Snapshot
	opts     rollup.Options
	renderer *render.Renderer
}

func (g *globals) prepareReport(cmd *cobra.Command, f *reportFlags) (*reportContext, error) {
	b, err := g.openBook()
	if err != nil {
		return nil, err
	}

	opts := rollup.Options{
		Start:        b.cfg.Reports.Start,
		End:          b.cfg.Reports.End,
		IncludeEmpty: b.cfg.Reports.IncludeEmpty,
	}
	format := b.cfg.Reports.Format
	flags := cmd.Flags()
	if flags.Changed("start") {
		opts.Start = f.start
	}
	if flags.Changed("end") {
		opts.End = f.end
	}
	if flags.Changed("include-empty") {
		opts.IncludeEmpty = f.includeEmpty
	}
	if flags.Changed("format") {
		format = f.format
	}
	// Point-in-time reports take no window start.
	if flags.Lookup("start") == nil {
		opts.Start = ""
	}

	for _, d := range []struct{ name, value string }{{"start", opts.Start}, {"end", opts.End}} {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d.value); err != nil {
			return nil, fmt.Errorf("invalid --%s %q: want YYYY-MM-DD", d.name, d.value)
		}
	}
	if opts.Start != "" && opts.End != "" && opts.Start > opts.End {
		g.log.Warn("start is after end, report window is empty", zap.String("start", opts.Start), zap.String("end", opts.End))
	}

	fmtv, err := render.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	renderer, err := render.New(cmd.OutOrStdout(), fmtv, b.cfg.Book.Currency)
	if err != nil {
		return nil, err
	}

	snap, err := journal.LoadSnapshot(b.root)
	if err != nil {
		return nil, err
	}
	g.log.Debug("snapshot loaded",
		zap.Int("accounts", len(snap.Accounts)),
		zap.Int("headers", len(snap.Headers)),
		zap.Int("lines", len(snap.Lines)),
		zap.String("start", opts.Start),
		zap.String("end", opts.End),
	)
	return &reportContext{snap: snap, opts: opts, renderer: renderer}, nil
}

func newTrialBalanceCommand(g *globals) *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:     "trial-balance",
		Aliases: []string{"tb"},
		Short:   "Show every active account's balance in debit and credit columns",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := g.prepareReport(cmd, &f)
			if err != nil {
				return err
			}
			rep := rollup.TrialBalance(rc.snap.Accounts, rc.snap.Headers, rc.snap.Lines, rc.opts)
			if !rep.Foots {
				g.log.Warn("trial balance does not foot",
					zap.String("debit", rep.TotalDebit.String()), zap.String("credit", rep.TotalCredit.String()))
			}
			if err := rc.renderer.TrialBalance(rep, rc.opts); err != nil {
				return err
			}
			return rc.renderer.Flush()
		},
	}
	f.register(cmd, true)
	return cmd
}

func newIncomeCommand(g *globals) *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:     "income",
		Aliases: []string{"income-statement", "pl"},
		Short:   "Show revenue, expenses and net income for a period",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := g.prepareReport(cmd, &f)
			if err != nil {
				return err
			}
			rep := rollup.IncomeStatement(rc.snap.Accounts, rc.snap.Headers, rc.snap.Lines, rc.opts)
			if err := rc.renderer.IncomeStatement(rep, rc.opts); err != nil {
				return err
			}
			return rc.renderer.Flush()
		},
	}
	f.register(cmd, true)
	return cmd
}

func newBalanceSheetCommand(g *globals) *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:     "balance-sheet",
		Aliases: []string{"bs"},
		Short:   "Show assets, liabilities and equity as of a date",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := g.prepareReport(cmd, &f)
			if err != nil {
				return err
			}
			rep := rollup.BalanceSheet(rc.snap.Accounts, rc.snap.Headers, rc.snap.Lines, rc.opts)
			if !rep.Balanced {
				g.log.Warn("balance sheet does not balance", zap.String("delta", rep.EquationDelta.String()))
			}
			if err := rc.renderer.BalanceSheet(rep, rc.opts); err != nil {
				return err
			}
			return rc.renderer.Flush()
		},
	}
	f.register(cmd, false)
	return cmd
}

func newLedgerCommand(g *globals) *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Show each account's entries with a running balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := g.prepareReport(cmd, &f)
			if err != nil {
				return err
			}
			groups := rollup.Ledger(rc.snap.Accounts, rc.snap.Headers, rc.snap.Lines, rc.opts)
			if err := rc.renderer.Ledger(groups, rc.opts); err != nil {
				return err
			}
			return rc.renderer.Flush()
		},
	}
	f.register(cmd, true)
	cmd.Flags().BoolVar(&f.includeEmpty, "include-empty", false, "also list accounts without entries")
	return cmd
}

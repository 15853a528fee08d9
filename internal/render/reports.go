package render

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/rollup"
)

// TrialBalance writes a trial balance, rows sorted by account name.
func (r *Renderer) TrialBalance(rep rollup.TrialBalanceReport, opts rollup.Options) error {
	rows := make([]rollup.TrialBalanceRow, len(rep.Rows))
	copy(rows, rep.Rows)
	sort.SliceStable(rows, func(i, j int) bool { return byName(rows[i].Account, rows[j].Account) })

	if r.format == FormatJSON {
		return r.writeJSON(trialBalanceJSON(rep, rows, opts, r.money.Code()))
	}

	if err := r.heading(1, "Trial Balance ("+period(opts)+")"); err != nil {
		return err
	}
	t := table{columns: []column{{title: "ID"}, {title: "Account"}, {title: "Debit", right: true}, {title: "Credit", right: true}}}
	for _, row := range rows {
		t.add(row.Account.ID, row.Account.Name, r.money.FormatNonZero(row.Debit), r.money.FormatNonZero(row.Credit))
	}
	t.add("", "Total", r.money.Format(rep.TotalDebit), r.money.Format(rep.TotalCredit))
	if err := r.table(t); err != nil {
		return err
	}
	if !rep.Foots {
		return r.note("Out of balance by %s", r.money.Format(rep.TotalDebit.Sub(rep.TotalCredit).Abs()))
	}
	return nil
}

// IncomeStatement writes revenue and expense sections and net income.
func (r *Renderer) IncomeStatement(rep rollup.IncomeStatementReport, opts rollup.Options) error {
	revenue := sortedItems(rep.Revenue)
	expenses := sortedItems(rep.Expenses)

	if r.format == FormatJSON {
		return r.writeJSON(incomeStatementJSON(rep, revenue, expenses, opts, r.money.Code()))
	}

	if err := r.heading(1, "Income Statement ("+period(opts)+")"); err != nil {
		return err
	}
	t := r.statementTable()
	r.section(&t, "Revenue", revenue, "Total Revenue", rep.TotalRevenue)
	r.section(&t, "Expenses", expenses, "Total Expenses", rep.TotalExpense)
	t.add("", "Net Income", r.money.Format(rep.NetIncome))
	return r.table(t)
}

// BalanceSheet writes assets, liabilities and equity with their totals.
func (r *Renderer) BalanceSheet(rep rollup.BalanceSheetReport, opts rollup.Options) error {
	assets := sortedItems(rep.Assets)
	liabilities := sortedItems(rep.Liabilities)
	equity := sortedItems(rep.Equity)

	if r.format == FormatJSON {
		return r.writeJSON(balanceSheetJSON(rep, assets, liabilities, equity, opts, r.money.Code()))
	}

	if err := r.heading(1, "Balance Sheet ("+asOf(opts.End)+")"); err != nil {
		return err
	}
	t := r.statementTable()
	r.section(&t, "Assets", assets, "Total Assets", rep.TotalAssets)
	r.section(&t, "Liabilities", liabilities, "Total Liabilities", rep.TotalLiabilities)
	r.section(&t, "Equity", equity, "Total Equity", rep.TotalEquity)
	t.add("", "Total Liabilities & Equity", r.money.Format(rep.TotalLiabilities.Add(rep.TotalEquity)))
	if err := r.table(t); err != nil {
		return err
	}

	if rep.RetainedEarningsID == "" && !rep.CumulativeNetIncome.IsZero() {
		if err := r.note("Net income of %s has no retained earnings account to roll into", r.money.Format(rep.CumulativeNetIncome)); err != nil {
			return err
		}
	}
	if !rep.Balanced {
		return r.note("Out of balance by %s", r.money.Format(rep.EquationDelta))
	}
	return nil
}

// Ledger writes one register per account group, in the order given.
func (r *Renderer) Ledger(groups []rollup.LedgerGroup, opts rollup.Options) error {
	if r.format == FormatJSON {
		return r.writeJSON(ledgerJSON(groups, opts, r.money.Code()))
	}

	if err := r.heading(1, "General Ledger ("+period(opts)+")"); err != nil {
		return err
	}
	if len(groups) == 0 {
		return r.note("No entries.")
	}
	for _, g := range groups {
		if err := r.heading(2, g.Account.ID+" "+g.Account.Name+" ("+string(g.Account.Type)+")"); err != nil {
			return err
		}
		t := table{columns: []column{
			{title: "Date"}, {title: "Memo"}, {title: "Ref"},
			{title: "Debit", right: true}, {title: "Credit", right: true}, {title: "Balance", right: true},
		}}
		balance := decimal.Zero
		for _, e := range g.Entries {
			t.add(e.Date, e.Memo, e.Ref, r.money.FormatNonZero(e.Debit), r.money.FormatNonZero(e.Credit), r.money.Format(e.Balance))
			balance = e.Balance
		}
		t.add("", "Total", "", r.money.Format(g.TotalDebit), r.money.Format(g.TotalCredit), r.money.Format(balance))
		if err := r.table(t); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) statementTable() table {
	return table{columns: []column{{title: "ID"}, {title: "Account"}, {title: "Amount", right: true}}}
}

func (r *Renderer) section(t *table, title string, items []rollup.LineItem, totalLabel string, total decimal.Decimal) {
	t.add("", title, "")
	for _, it := range items {
		t.add(it.Account.ID, "  "+it.Account.Name, r.money.Format(it.Amount))
	}
	t.add("", totalLabel, r.money.Format(total))
}

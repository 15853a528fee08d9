package rollup

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// TrialBalanceRow shows one account's balance as a non-negative amount in
// the debit or credit column.
type TrialBalanceRow struct {
	Account model.Account
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// TrialBalanceReport lists every active account. Rows keep the account input
// order; sorting is left to the caller.
type TrialBalanceReport struct {
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Foots       bool
}

// TrialBalance builds the trial balance over the window in opts.
func TrialBalance(accounts []model.Account, headers []model.JournalHeader, lines []model.JournalLine, opts Options) TrialBalanceReport {
	accs := activeAccounts(accounts)
	balances := AccountBalances(accs, headers, lines, opts)

	report := TrialBalanceReport{
		Rows:        make([]TrialBalanceRow, 0, len(accs)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, a := range accs {
		debit, credit := trialBalanceColumns(a.NormalBalance, balances.amount(a.ID))
		report.Rows = append(report.Rows, TrialBalanceRow{Account: a, Debit: debit, Credit: credit})
		report.TotalDebit = report.TotalDebit.Add(debit)
		report.TotalCredit = report.TotalCredit.Add(credit)
	}
	report.Foots = withinTolerance(report.TotalDebit, report.TotalCredit)
	return report
}

// trialBalanceColumns places a signed balance on the account's normal side,
// or on the opposite side when the balance runs negative.
func trialBalanceColumns(nb model.NormalBalance, balance decimal.Decimal) (debit, credit decimal.Decimal) {
	positive := decimal.Max(decimal.Zero, balance)
	negative := decimal.Max(decimal.Zero, balance.Neg())
	switch nb {
	case model.NormalDebit:
		return positive, negative
	case model.NormalCredit:
		return negative, positive
	}
	// Unknown sign: neither column is the normal side.
	return negative, negative
}

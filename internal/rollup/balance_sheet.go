package rollup

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// retainedEarningsName is matched case-insensitively when no equity account
// carries the RetainedEarnings flag.
const retainedEarningsName = "retained earnings"

// BalanceSheetReport holds point-in-time balances as of an end date.
type BalanceSheetReport struct {
	Assets      []LineItem
	Liabilities []LineItem
	Equity      []LineItem // includes cumulative net income when folded

	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal

	// CumulativeNetIncome is net income from the beginning of the book to End.
	CumulativeNetIncome decimal.Decimal
	// RetainedEarningsID names the equity account that absorbed
	// CumulativeNetIncome; empty when no account did.
	RetainedEarningsID string

	Balanced      bool
	EquationDelta decimal.Decimal // assets - (liabilities + equity)
}

// BalanceSheet builds the balance sheet as of opts.End. opts.Start is ignored.
func BalanceSheet(accounts []model.Account, headers []model.JournalHeader, lines []model.JournalLine, opts Options) BalanceSheetReport {
	accs := activeAccounts(accounts)
	asOf := Options{End: opts.End}
	balances := AccountBalances(accs, headers, lines, asOf)

	report := BalanceSheetReport{
		Assets:      lineItems(accs, balances, model.AccountTypeAsset),
		Liabilities: lineItems(accs, balances, model.AccountTypeLiability),
		Equity:      lineItems(accs, balances, model.AccountTypeEquity),
	}

	report.CumulativeNetIncome = IncomeStatement(accs, headers, lines, asOf).NetIncome
	if i := retainedEarningsIndex(report.Equity); i >= 0 {
		report.Equity[i].Amount = report.Equity[i].Amount.Add(report.CumulativeNetIncome)
		report.RetainedEarningsID = report.Equity[i].Account.ID
	}

	report.TotalAssets = sumItems(report.Assets)
	report.TotalLiabilities = sumItems(report.Liabilities)
	report.TotalEquity = sumItems(report.Equity)
	report.EquationDelta = report.TotalAssets.Sub(report.TotalLiabilities.Add(report.TotalEquity))
	report.Balanced = report.EquationDelta.Abs().LessThan(Tolerance())
	return report
}

// retainedEarningsIndex prefers the flagged account, then the name match.
func retainedEarningsIndex(equity []LineItem) int {
	for i, it := range equity {
		if it.Account.RetainedEarnings {
			return i
		}
	}
	for i, it := range equity {
		if strings.EqualFold(it.Account.Name, retainedEarningsName) {
			return i
		}
	}
	return -1
}

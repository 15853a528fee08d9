package rollup

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// LineItem is one account and its signed balance on a statement.
type LineItem struct {
	Account model.Account
	Amount  decimal.Decimal
}

// IncomeStatementReport covers revenue and expense activity in a window.
type IncomeStatementReport struct {
	Revenue      []LineItem
	Expenses     []LineItem
	TotalRevenue decimal.Decimal
	TotalExpense decimal.Decimal
	NetIncome    decimal.Decimal
}

// IncomeStatement builds the income statement over the window in opts.
// Accounts without activity are kept with a zero amount.
func IncomeStatement(accounts []model.Account, headers []model.JournalHeader, lines []model.JournalLine, opts Options) IncomeStatementReport {
	accs := activeAccounts(accounts)
	balances := AccountBalances(accs, headers, lines, opts)

	revenue := lineItems(accs, balances, model.AccountTypeRevenue)
	expenses := lineItems(accs, balances, model.AccountTypeExpense)
	totalRevenue := sumItems(revenue)
	totalExpense := sumItems(expenses)

	return IncomeStatementReport{
		Revenue:      revenue,
		Expenses:     expenses,
		TotalRevenue: totalRevenue,
		TotalExpense: totalExpense,
		NetIncome:    totalRevenue.Sub(totalExpense),
	}
}

func lineItems(accs []model.Account, balances Balances, t model.AccountType) []LineItem {
	items := []LineItem{}
	for _, a := range accs {
		if a.Type == t {
			items = append(items, LineItem{Account: a, Amount: balances.amount(a.ID)})
		}
	}
	return items
}

func sumItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}

package rollup

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, dec(want).String(), got.String(), msgAndArgs...)
}

func header(id, date string) model.JournalHeader {
	return model.JournalHeader{ID: id, Date: date, Memo: "memo " + id, Ref: "ref-" + id}
}

func debit(id, headerID, accountID, amount string) model.JournalLine {
	return model.JournalLine{ID: id, HeaderID: headerID, AccountID: accountID, Debit: dec(amount)}
}

func credit(id, headerID, accountID, amount string) model.JournalLine {
	return model.JournalLine{ID: id, HeaderID: headerID, AccountID: accountID, Credit: dec(amount)}
}

// household is a small personal chart covering all five account types.
func household() []model.Account {
	return []model.Account{
		{ID: "cash", Name: "Cash", Type: model.AccountTypeAsset},
		{ID: "savings", Name: "Savings", Type: model.AccountTypeAsset},
		{ID: "card", Name: "Credit Card", Type: model.AccountTypeLiability},
		{ID: "opening", Name: "Opening Balance", Type: model.AccountTypeEquity},
		{ID: "re", Name: "Retained Earnings", Type: model.AccountTypeEquity},
		{ID: "salary", Name: "Salary", Type: model.AccountTypeRevenue},
		{ID: "groceries", Name: "Groceries", Type: model.AccountTypeExpense},
		{ID: "rent", Name: "Rent", Type: model.AccountTypeExpense},
	}
}

// householdJournal is a balanced book spanning three months.
func householdJournal() ([]model.JournalHeader, []model.JournalLine) {
	headers := []model.JournalHeader{
		header("h1", "2024-01-01"),
		header("h2", "2024-01-15"),
		header("h3", "2024-01-20"),
		header("h4", "2024-02-01"),
		header("h5", "2024-02-10"),
		header("h6", "2024-03-05"),
	}
	lines := []model.JournalLine{
		debit("l1", "h1", "cash", "1000.00"),
		credit("l2", "h1", "opening", "1000.00"),
		debit("l3", "h2", "cash", "2500.00"),
		credit("l4", "h2", "salary", "2500.00"),
		debit("l5", "h3", "groceries", "120.35"),
		credit("l6", "h3", "card", "120.35"),
		debit("l7", "h4", "rent", "900.00"),
		credit("l8", "h4", "cash", "900.00"),
		debit("l9", "h5", "card", "120.35"),
		credit("l10", "h5", "cash", "120.35"),
		debit("l11", "h6", "savings", "500.00"),
		credit("l12", "h6", "cash", "500.00"),
	}
	return headers, lines
}

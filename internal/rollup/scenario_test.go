package rollup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

// Two accounts, one sale, no equity accounts.
func minimalBook() ([]model.Account, []model.JournalHeader, []model.JournalLine) {
	accounts := []model.Account{
		{ID: "cash", Name: "Cash", Type: model.AccountTypeAsset},
		{ID: "rev", Name: "Revenue", Type: model.AccountTypeRevenue},
	}
	headers := []model.JournalHeader{header("h1", "2024-01-01")}
	lines := []model.JournalLine{
		debit("1", "h1", "cash", "100"),
		credit("2", "h1", "rev", "100"),
	}
	return accounts, headers, lines
}

func TestMinimalBook(t *testing.T) {
	accounts, headers, lines := minimalBook()

	check := ValidateEntry(lines)
	assert.True(t, check.OK)
	assertAmount(t, "100", check.TotalDebit)
	assertAmount(t, "100", check.TotalCredit)

	tb := TrialBalance(accounts, headers, lines, Options{})
	require.Len(t, tb.Rows, 2)
	assertAmount(t, "100", tb.Rows[0].Debit)
	assertAmount(t, "0", tb.Rows[0].Credit)
	assertAmount(t, "0", tb.Rows[1].Debit)
	assertAmount(t, "100", tb.Rows[1].Credit)
	assert.True(t, tb.Foots)

	is := IncomeStatement(accounts, headers, lines, Options{End: "2024-01-01"})
	assertAmount(t, "100", is.TotalRevenue)
	assertAmount(t, "0", is.TotalExpense)
	assertAmount(t, "100", is.NetIncome)

	bs := BalanceSheet(accounts, headers, lines, Options{End: "2024-01-01"})
	assertAmount(t, "100", bs.TotalAssets)
	assertAmount(t, "0", bs.TotalLiabilities)
	assertAmount(t, "0", bs.TotalEquity)
	assertAmount(t, "100", bs.CumulativeNetIncome)
	assertAmount(t, "100", bs.EquationDelta)
	assert.False(t, bs.Balanced)
}

func TestMinimalBook_WithRetainedEarnings(t *testing.T) {
	accounts, headers, lines := minimalBook()
	accounts = append(accounts, model.Account{
		ID: "re", Name: "Household Equity", Type: model.AccountTypeEquity, RetainedEarnings: true,
	})

	bs := BalanceSheet(accounts, headers, lines, Options{End: "2024-01-01"})
	assertAmount(t, "100", bs.TotalEquity)
	assertAmount(t, "0", bs.EquationDelta)
	assert.True(t, bs.Balanced)
}

func TestMinimalBook_EndBeforeFirstEntry(t *testing.T) {
	accounts, headers, lines := minimalBook()

	bs := BalanceSheet(accounts, headers, lines, Options{End: "2023-12-31"})
	assertAmount(t, "0", bs.TotalAssets)
	assertAmount(t, "0", bs.CumulativeNetIncome)
	assert.True(t, bs.Balanced)
}

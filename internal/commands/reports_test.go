package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/config"
)

const testBook = "../../testdata/book"

func TestTrialBalance(t *testing.T) {
	out, err := runTally(t, "--book", testBook, "trial-balance")
	require.NoError(t, err, out)

	assert.Contains(t, out, "Trial Balance (all dates)")
	assert.Contains(t, out, "$2,479.65")
	assert.Contains(t, out, "$3,500.00")
	assert.NotContains(t, out, "Old Wallet", "inactive accounts are left out")
	assert.NotContains(t, out, "Out of balance")
}

func TestTrialBalance_JSON(t *testing.T) {
	out, err := runTally(t, "--book", testBook, "tb", "--format", "json")
	require.NoError(t, err, out)

	var doc struct {
		Rows        []json.RawMessage `json:"rows"`
		TotalDebit  string            `json:"total_debit"`
		TotalCredit string            `json:"total_credit"`
		Foots       bool              `json:"foots"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Rows, 8)
	assert.Equal(t, "3500", doc.TotalDebit)
	assert.Equal(t, "3500", doc.TotalCredit)
	assert.True(t, doc.Foots)
}

func TestIncome(t *testing.T) {
	out, err := runTally(t, "--book", testBook, "income", "--start", "2024-01-01", "--end", "2024-01-31")
	require.NoError(t, err, out)

	assert.Contains(t, out, "Income Statement (2024-01-01 to 2024-01-31)")
	assert.Contains(t, out, "$2,500.00")
	assert.Contains(t, out, "$120.35")
	assert.Contains(t, out, "$2,379.65")
}

func TestIncome_InvalidDate(t *testing.T) {
	_, err := runTally(t, "--book", testBook, "income", "--start", "January")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --start")
}

func TestBalanceSheet(t *testing.T) {
	out, err := runTally(t, "--book", testBook, "balance-sheet", "--end", "2024-01-31", "--format", "markdown")
	require.NoError(t, err, out)

	assert.Contains(t, out, "# Balance Sheet (as of 2024-01-31)")
	assert.Contains(t, out, "| 3900 |   Retained Earnings | $2,379.65 |")
	assert.Contains(t, out, "| Total Liabilities & Equity | $3,500.00 |")
	assert.NotContains(t, out, "Out of balance")
}

func TestBalanceSheet_HasNoStartFlag(t *testing.T) {
	_, err := runTally(t, "--book", testBook, "bs", "--start", "2024-01-01")
	require.Error(t, err)
}

func TestLedger(t *testing.T) {
	out, err := runTally(t, "--book", testBook, "ledger", "--end", "2024-01-31")
	require.NoError(t, err, out)

	assert.Contains(t, out, "1010 Checking (asset)")
	assert.Contains(t, out, "January pay")
	assert.NotContains(t, out, "February rent")
	assert.NotContains(t, out, "Savings", "accounts without entries are hidden")
}

func TestLedger_IncludeEmpty(t *testing.T) {
	out, err := runTally(t, "--book", testBook, "ledger", "--include-empty")
	require.NoError(t, err, out)

	assert.Contains(t, out, "1020 Savings (asset)")
	assert.Contains(t, out, "1900 Old Wallet (asset)")
	// Groups are ordered by type, then name.
	assert.Less(t, strings.Index(out, "1010 Checking"), strings.Index(out, "1020 Savings"))
	assert.Less(t, strings.Index(out, "(asset)"), strings.Index(out, "(equity)"))
	assert.Less(t, strings.Index(out, "(expense)"), strings.Index(out, "(liability)"))
}

func TestReports_ConfigDefaults(t *testing.T) {
	dir := newBook(t)
	postGroceries(t, dir, "50")

	cfgPath := filepath.Join(dir, config.FileName)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.Reports.Format = "json"
	cfg.Reports.End = "2023-12-31"
	require.NoError(t, config.Save(cfgPath, cfg))

	out, err := runTally(t, "--book", dir, "income")
	require.NoError(t, err, out)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc), "format comes from tally.yaml")
	assert.Equal(t, "0", doc["net_income"], "end comes from tally.yaml")

	out, err = runTally(t, "--book", dir, "income", "--end", "", "--format", "text")
	require.NoError(t, err, out)
	assert.Contains(t, out, "$50.00", "flags override tally.yaml")
}

func TestReports_ConfiguredStartIgnoredByBalanceSheet(t *testing.T) {
	dir := newBook(t)
	postGroceries(t, dir, "50")

	cfgPath := filepath.Join(dir, config.FileName)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.Reports.Start = "2030-01-01"
	require.NoError(t, config.Save(cfgPath, cfg))

	out, err := runTally(t, "--book", dir, "--log-level", "warn", "balance-sheet", "--end", "2029-12-31")
	require.NoError(t, err, out)
	assert.NotContains(t, out, "start is after end")

	out, err = runTally(t, "--book", dir, "--log-level", "warn", "income", "--end", "2029-12-31")
	require.NoError(t, err, out)
	assert.Contains(t, out, "start is after end", "window reports still warn")
}

func TestReports_MissingBook(t *testing.T) {
	_, err := runTally(t, "--book", t.TempDir(), "trial-balance")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReports_BookFromEnv(t *testing.T) {
	t.Setenv(config.EnvBook, testBook)
	out, err := runTally(t, "trial-balance")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Checking")
}

func TestCheck_OK(t *testing.T) {
	out, err := runTally(t, "--book", testBook, "check")
	require.NoError(t, err, out)
	assert.Contains(t, out, "OK: 5 entries, 10 lines")
}

func TestCheck_FindsProblems(t *testing.T) {
	dir := newBook(t)
	postGroceries(t, dir, "50")

	f, err := os.OpenFile(filepath.Join(dir, "journal", "lines.csv"), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("l_extra,h_ghost,9999,5.00,,2024-01-20T00:00:00Z\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out, err := runTally(t, "--book", dir, "check")
	require.Error(t, err)
	assert.Contains(t, out, `l_extra: line references missing entry "h_ghost"`)
	assert.Contains(t, out, `l_extra: line references unknown account "9999"`)
	assert.Contains(t, err.Error(), "found 2 problem(s)")
}

func TestCheck_UnbalancedEntry(t *testing.T) {
	dir := newBook(t)
	headerID := postGroceries(t, dir, "50")

	f, err := os.OpenFile(filepath.Join(dir, "journal", "lines.csv"), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("l_extra," + headerID + ",5030,7.5,,2024-01-20T00:00:00Z\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out, err := runTally(t, "--book", dir, "check")
	require.Error(t, err)
	assert.Contains(t, out, headerID+": 2024-01-20 \"Supermarket\" does not balance: debits 57.5, credits 50 (off by 7.5)")
}

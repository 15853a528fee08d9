// Package rollup derives the trial balance, income statement, balance sheet
// and per-account ledger from a snapshot of accounts, journal headers and
// journal lines.
//
// Every function here is pure and allocates its results, so concurrent calls
// over read-only snapshots need no locking. Malformed input never produces an
// error: orphaned lines are skipped and missing amounts count as zero.
package rollup

import "github.com/cleared-dev/tally/internal/model"

// NormalizeAccounts returns copies of accounts with any missing normal
// balance filled in from the account type. Accounts of an unknown type keep
// whatever normal balance they already had.
func NormalizeAccounts(accounts []model.Account) []model.Account {
	out := make([]model.Account, len(accounts))
	for i, a := range accounts {
		if a.NormalBalance == "" {
			if nb, ok := model.DefaultNormalBalance(a.Type); ok {
				a.NormalBalance = nb
			}
		}
		out[i] = a
	}
	return out
}

// activeAccounts normalizes accounts and drops disabled ones.
func activeAccounts(accounts []model.Account) []model.Account {
	normalized := NormalizeAccounts(accounts)
	out := make([]model.Account, 0, len(normalized))
	for _, a := range normalized {
		if a.IsActive() {
			out = append(out, a)
		}
	}
	return out
}

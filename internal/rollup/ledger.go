package rollup

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// LedgerEntry is one line joined with its header.
type LedgerEntry struct {
	HeaderID string
	LineID   string
	Date     string
	Memo     string
	Ref      string
	Debit    decimal.Decimal
	Credit   decimal.Decimal
	Balance  decimal.Decimal // running, in the account's normal-balance sign
}

// LedgerGroup is the register of one account.
type LedgerGroup struct {
	Account     model.Account
	Entries     []LedgerEntry
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// LedgerKey is the case-insensitive "type|name" key groups are ordered by.
func LedgerKey(a model.Account) string {
	return strings.ToLower(string(a.Type) + "|" + a.Name)
}

// LedgerKeyLess orders accounts by type, then by name within a type.
func LedgerKeyLess(a, b model.Account) bool {
	return LedgerKey(a) < LedgerKey(b)
}

// Ledger groups the lines in the window by account, entries ascending by
// date. Lines whose account is unknown are skipped. With opts.IncludeEmpty,
// accounts without entries get an empty group.
func Ledger(accounts []model.Account, headers []model.JournalHeader, lines []model.JournalLine, opts Options) []LedgerGroup {
	filtered := FilterByDate(headers, lines, opts)
	accs := NormalizeAccounts(accounts)

	accByID := make(map[string]model.Account, len(accs))
	for _, a := range accs {
		if _, dup := accByID[a.ID]; !dup {
			accByID[a.ID] = a
		}
	}
	headerByID := make(map[string]model.JournalHeader, len(filtered.Headers))
	for _, h := range filtered.Headers {
		headerByID[h.ID] = h
	}

	var order []string
	byAccount := make(map[string][]model.JournalLine)
	for _, l := range filtered.Lines {
		if _, seen := byAccount[l.AccountID]; !seen {
			order = append(order, l.AccountID)
		}
		byAccount[l.AccountID] = append(byAccount[l.AccountID], l)
	}

	groups := make([]LedgerGroup, 0, len(order))
	present := make(map[string]bool, len(order))
	for _, accountID := range order {
		acc, ok := accByID[accountID]
		if !ok {
			continue
		}
		groups = append(groups, buildGroup(acc, byAccount[accountID], headerByID))
		present[accountID] = true
	}

	if opts.IncludeEmpty {
		for _, a := range accs {
			if present[a.ID] {
				continue
			}
			groups = append(groups, LedgerGroup{
				Account:     a,
				Entries:     []LedgerEntry{},
				TotalDebit:  decimal.Zero,
				TotalCredit: decimal.Zero,
			})
			present[a.ID] = true
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return LedgerKeyLess(groups[i].Account, groups[j].Account)
	})
	return groups
}

func buildGroup(acc model.Account, lines []model.JournalLine, headerByID map[string]model.JournalHeader) LedgerGroup {
	entries := make([]LedgerEntry, 0, len(lines))
	for _, l := range lines {
		h := headerByID[l.HeaderID]
		entries = append(entries, LedgerEntry{
			HeaderID: l.HeaderID,
			LineID:   l.ID,
			Date:     h.Date,
			Memo:     h.Memo,
			Ref:      h.Ref,
			Debit:    l.Debit,
			Credit:   l.Credit,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})

	group := LedgerGroup{Account: acc, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	running := decimal.Zero
	for i := range entries {
		running = running.Add(signedBalance(acc.NormalBalance, entries[i].Debit, entries[i].Credit))
		entries[i].Balance = running
		group.TotalDebit = group.TotalDebit.Add(entries[i].Debit)
		group.TotalCredit = group.TotalCredit.Add(entries[i].Credit)
	}
	group.Entries = entries
	return group
}

package rollup

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Balance holds the period sums for one account and its signed balance.
type Balance struct {
	Debit   decimal.Decimal
	Credit  decimal.Decimal
	Balance decimal.Decimal // in the account's normal-balance sign
}

// Balances maps account IDs to balances, remembering account input order.
type Balances struct {
	ids  []string
	byID map[string]Balance
}

// Get returns the balance for an account ID.
func (b Balances) Get(id string) (Balance, bool) {
	bal, ok := b.byID[id]
	return bal, ok
}

// IDs returns account IDs in the order the accounts were supplied.
func (b Balances) IDs() []string {
	out := make([]string, len(b.ids))
	copy(out, b.ids)
	return out
}

// Len returns the number of accounts.
func (b Balances) Len() int {
	return len(b.ids)
}

// amount returns the signed balance for id, zero when unknown.
func (b Balances) amount(id string) decimal.Decimal {
	return b.byID[id].Balance
}

// AccountBalances sums the debits and credits of the lines in the window for
// every account, including accounts without activity. Lines referencing
// unknown accounts are ignored.
func AccountBalances(accounts []model.Account, headers []model.JournalHeader, lines []model.JournalLine, opts Options) Balances {
	accs := NormalizeAccounts(accounts)
	filtered := FilterByDate(headers, lines, opts)

	sums := make(map[string]Balance, len(accs))
	for _, l := range filtered.Lines {
		s := sums[l.AccountID]
		s.Debit = s.Debit.Add(l.Debit)
		s.Credit = s.Credit.Add(l.Credit)
		sums[l.AccountID] = s
	}

	out := Balances{
		ids:  make([]string, 0, len(accs)),
		byID: make(map[string]Balance, len(accs)),
	}
	for _, a := range accs {
		s := sums[a.ID]
		bal := Balance{
			Debit:   s.Debit,
			Credit:  s.Credit,
			Balance: signedBalance(a.NormalBalance, s.Debit, s.Credit),
		}
		if _, seen := out.byID[a.ID]; !seen {
			out.ids = append(out.ids, a.ID)
		}
		out.byID[a.ID] = bal
	}
	return out
}

// signedBalance treats anything other than a debit normal balance as credit.
func signedBalance(nb model.NormalBalance, debit, credit decimal.Decimal) decimal.Decimal {
	if nb == model.NormalDebit {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

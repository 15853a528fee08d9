package model

import (
	"fmt"
	"strings"
	"time"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// AccountTypes lists the five account types in chart order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
}

// ParseAccountType accepts any casing of a known account type ("Asset", "asset").
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AccountTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// NormalBalance is the side on which an account's balance increases.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "debit"
	NormalCredit NormalBalance = "credit"
)

// ParseNormalBalance accepts any casing of debit/credit. Empty input yields
// the unset value.
func ParseNormalBalance(s string) (NormalBalance, error) {
	switch NormalBalance(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case NormalDebit:
		return NormalDebit, nil
	case NormalCredit:
		return NormalCredit, nil
	}
	return "", fmt.Errorf("unknown normal balance %q", s)
}

// DefaultNormalBalance maps an account type to its conventional sign.
// The second result is false for types outside the five known ones.
func DefaultNormalBalance(t AccountType) (NormalBalance, bool) {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return NormalDebit, true
	case AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue:
		return NormalCredit, true
	}
	return "", false
}

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	ID            string
	Name          string
	Type          AccountType
	NormalBalance NormalBalance // "" = derive from Type
	Subtype       string
	Disabled      bool // zero value keeps the account active
	// RetainedEarnings marks the equity account that absorbs cumulative net
	// income on the balance sheet.
	RetainedEarnings bool
	CreatedAt        time.Time
}

// IsActive reports whether the account takes part in reports.
func (a Account) IsActive() bool {
	return !a.Disabled
}

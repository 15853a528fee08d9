package rollup

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// toleranceExp puts the tolerance at 1e-6.
const toleranceExp = -6

// Tolerance is the largest difference still treated as equal when checking
// that debits match credits or that the accounting equation holds.
func Tolerance() decimal.Decimal {
	return decimal.New(1, toleranceExp)
}

func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance())
}

// SafeAmount parses a monetary amount, yielding zero for empty or
// non-numeric input.
func SafeAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// EntryCheck is the outcome of ValidateEntry.
type EntryCheck struct {
	OK          bool
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// Difference returns debits minus credits.
func (c EntryCheck) Difference() decimal.Decimal {
	return c.TotalDebit.Sub(c.TotalCredit)
}

// ValidateEntry checks a draft entry: debits must equal credits and the
// total must be positive. Account references are not checked.
func ValidateEntry(lines []model.JournalLine) EntryCheck {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	return EntryCheck{
		OK:          withinTolerance(totalDebit, totalCredit) && totalDebit.IsPositive(),
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}
}

// EntryIssue is a header whose lines fail ValidateEntry.
type EntryIssue struct {
	Header model.JournalHeader
	Check  EntryCheck
}

// CheckEntries runs ValidateEntry over the lines of every header and returns
// the failures in header order.
func CheckEntries(headers []model.JournalHeader, lines []model.JournalLine) []EntryIssue {
	byHeader := make(map[string][]model.JournalLine, len(headers))
	for _, l := range lines {
		byHeader[l.HeaderID] = append(byHeader[l.HeaderID], l)
	}

	var issues []EntryIssue
	for _, h := range headers {
		if check := ValidateEntry(byHeader[h.ID]); !check.OK {
			issues = append(issues, EntryIssue{Header: h, Check: check})
		}
	}
	return issues
}

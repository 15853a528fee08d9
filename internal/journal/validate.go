package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/rollup"
)

var (
	// ErrUnbalanced means debits and credits differ or total zero.
	ErrUnbalanced = errors.New("entry does not balance")
	// ErrUnknownAccount means a line references an account not in the chart.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrInactiveAccount means a line references a disabled account.
	ErrInactiveAccount = errors.New("inactive account")
	// ErrNegativeAmount means a line carries a negative debit or credit.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrInvalidDate means the entry date is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("invalid date")
	// ErrHeaderNotFound means no header has the requested ID.
	ErrHeaderNotFound = errors.New("journal entry not found")
)

// AccountChecker answers chart-of-accounts questions for posting.
type AccountChecker interface {
	Exists(id string) bool
	IsActive(id string) bool
}

// DraftLine is one side of an entry being posted.
type DraftLine struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// Draft is an entry being posted or amended.
type Draft struct {
	Date  string
	Memo  string
	Ref   string
	Lines []DraftLine
}

func (d Draft) journalLines() []model.JournalLine {
	lines := make([]model.JournalLine, len(d.Lines))
	for i, dl := range d.Lines {
		lines[i] = model.JournalLine{AccountID: dl.AccountID, Debit: dl.Debit, Credit: dl.Credit}
	}
	return lines
}

// ValidateDraft checks a draft before it is written and reports every
// problem found, joined into one error.
func ValidateDraft(d Draft, accounts AccountChecker) error {
	var errs []error

	if _, err := time.Parse(dateFormat, d.Date); err != nil {
		errs = append(errs, fmt.Errorf("%w %q: want YYYY-MM-DD", ErrInvalidDate, d.Date))
	}

	check := rollup.ValidateEntry(d.journalLines())
	if !check.OK {
		if check.TotalDebit.IsZero() && check.TotalCredit.IsZero() {
			errs = append(errs, fmt.Errorf("%w: no amounts entered", ErrUnbalanced))
		} else {
			errs = append(errs, fmt.Errorf("%w: debits %s, credits %s (off by %s)", ErrUnbalanced,
				check.TotalDebit.StringFixed(2), check.TotalCredit.StringFixed(2), check.Difference().Abs().StringFixed(2)))
		}
	}

	for i, l := range d.Lines {
		switch {
		case !accounts.Exists(l.AccountID):
			errs = append(errs, fmt.Errorf("line %d: %w %q", i+1, ErrUnknownAccount, l.AccountID))
		case !accounts.IsActive(l.AccountID):
			errs = append(errs, fmt.Errorf("line %d: %w %q", i+1, ErrInactiveAccount, l.AccountID))
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			errs = append(errs, fmt.Errorf("line %d: %w", i+1, ErrNegativeAmount))
		}
	}

	return errors.Join(errs...)
}

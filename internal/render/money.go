package render

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats decimal amounts in one currency.
type Money struct {
	cur money.Currency
}

// NewMoney looks up an ISO 4217 currency code.
func NewMoney(code string) (Money, error) {
	cur := money.GetCurrency(strings.ToUpper(strings.TrimSpace(code)))
	if cur == nil {
		return Money{}, fmt.Errorf("unknown currency %q", code)
	}
	return Money{cur: *cur}, nil
}

// Code returns the currency code.
func (m Money) Code() string {
	return m.cur.Code
}

// Format rounds d to the currency's minor unit and formats it, e.g. "$1,234.50".
func (m Money) Format(d decimal.Decimal) string {
	minor := d.Shift(int32(m.cur.Fraction)).Round(0)
	return m.cur.Formatter().Format(minor.IntPart())
}

// FormatNonZero is Format, but blank for zero.
func (m Money) FormatNonZero(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return m.Format(d)
}

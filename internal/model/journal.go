package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalHeader is one transaction: a row in journal/headers.csv.
type JournalHeader struct {
	ID        string
	Date      string // ISO-8601 "YYYY-MM-DD", compared as a string
	Memo      string
	Ref       string
	CreatedAt time.Time
}

// JournalLine is one side of a double-entry: a row in journal/lines.csv.
type JournalLine struct {
	ID        string
	HeaderID  string
	AccountID string
	Debit     decimal.Decimal // zero if credit side
	Credit    decimal.Decimal // zero if debit side
	CreatedAt time.Time
}

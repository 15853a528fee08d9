package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/rollup"
)

// HeaderColumns is the CSV header row of journal/headers.csv.
var HeaderColumns = []string{"id", "date", "memo", "ref", "created_at"}

// LineColumns is the CSV header row of journal/lines.csv.
var LineColumns = []string{"id", "header_id", "account_id", "debit", "credit", "created_at"}

const (
	dateFormat = "2006-01-02"

	numHeaderFields = 5
	colHID          = 0
	colHDate        = 1
	colHMemo        = 2
	colHRef         = 3
	colHCreated     = 4

	numLineFields = 6
	colLID        = 0
	colLHeader    = 1
	colLAccount   = 2
	colLDebit     = 3
	colLCredit    = 4
	colLCreated   = 5
)

// ReadHeaders reads all headers from a headers.csv reader.
func ReadHeaders(r io.Reader) ([]model.JournalHeader, error) {
	records, err := readRecords(r, numHeaderFields)
	if err != nil {
		return nil, fmt.Errorf("reading headers CSV: %w", err)
	}

	var headers []model.JournalHeader
	for i, rec := range records {
		h, err := UnmarshalHeader(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		headers = append(headers, h)
	}
	return headers, nil
}

// ReadLines reads all lines from a lines.csv reader.
func ReadLines(r io.Reader) ([]model.JournalLine, error) {
	records, err := readRecords(r, numLineFields)
	if err != nil {
		return nil, fmt.Errorf("reading lines CSV: %w", err)
	}

	var lines []model.JournalLine
	for i, rec := range records {
		l, err := UnmarshalLine(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// readRecords returns every row after the header row.
func readRecords(r io.Reader, fields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

// WriteHeaders writes headers to a headers.csv writer (including header row).
func WriteHeaders(w io.Writer, headers []model.JournalHeader) error {
	rows := make([][]string, 0, len(headers)+1)
	rows = append(rows, HeaderColumns)
	for _, h := range headers {
		rows = append(rows, MarshalHeader(h))
	}
	return writeRows(w, rows)
}

// WriteLines writes lines to a lines.csv writer (including header row).
func WriteLines(w io.Writer, lines []model.JournalLine) error {
	rows := make([][]string, 0, len(lines)+1)
	rows = append(rows, LineColumns)
	for _, l := range lines {
		rows = append(rows, MarshalLine(l))
	}
	return writeRows(w, rows)
}

func writeRows(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalHeader converts a JournalHeader to a CSV row.
func MarshalHeader(h model.JournalHeader) []string {
	row := make([]string, numHeaderFields)
	row[colHID] = h.ID
	row[colHDate] = h.Date
	row[colHMemo] = h.Memo
	row[colHRef] = h.Ref
	row[colHCreated] = formatTime(h.CreatedAt)
	return row
}

// UnmarshalHeader converts a CSV row to a JournalHeader. The date is kept
// verbatim; reports compare it as a string.
func UnmarshalHeader(record []string) (model.JournalHeader, error) {
	if len(record) != numHeaderFields {
		return model.JournalHeader{}, fmt.Errorf("expected %d fields, got %d", numHeaderFields, len(record))
	}
	if record[colHID] == "" {
		return model.JournalHeader{}, fmt.Errorf("missing id")
	}

	created, err := parseTime(record[colHCreated])
	if err != nil {
		return model.JournalHeader{}, err
	}

	return model.JournalHeader{
		ID:        record[colHID],
		Date:      record[colHDate],
		Memo:      record[colHMemo],
		Ref:       record[colHRef],
		CreatedAt: created,
	}, nil
}

// MarshalLine converts a JournalLine to a CSV row. Zero amounts are left blank.
func MarshalLine(l model.JournalLine) []string {
	row := make([]string, numLineFields)
	row[colLID] = l.ID
	row[colLHeader] = l.HeaderID
	row[colLAccount] = l.AccountID
	row[colLDebit] = formatAmount(l.Debit)
	row[colLCredit] = formatAmount(l.Credit)
	row[colLCreated] = formatTime(l.CreatedAt)
	return row
}

// UnmarshalLine converts a CSV row to a JournalLine. Malformed amounts read
// as zero.
func UnmarshalLine(record []string) (model.JournalLine, error) {
	if len(record) != numLineFields {
		return model.JournalLine{}, fmt.Errorf("expected %d fields, got %d", numLineFields, len(record))
	}
	if record[colLID] == "" {
		return model.JournalLine{}, fmt.Errorf("missing id")
	}

	created, err := parseTime(record[colLCreated])
	if err != nil {
		return model.JournalLine{}, err
	}

	return model.JournalLine{
		ID:        record[colLID],
		HeaderID:  record[colLHeader],
		AccountID: record[colLAccount],
		Debit:     rollup.SafeAmount(record[colLDebit]),
		Credit:    rollup.SafeAmount(record[colLCredit]),
		CreatedAt: created,
	}, nil
}

func formatAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	if d.Exponent() >= -2 {
		return d.StringFixed(2)
	}
	return d.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing created_at %q: %w", s, err)
	}
	return t, nil
}

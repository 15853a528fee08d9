package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cleared-dev/tally/internal/model"
)

// Header is the CSV header for chart-of-accounts.csv.
var Header = []string{"id", "name", "type", "normal_balance", "subtype", "is_active", "retained_earnings", "created_at"}

const (
	numFields  = 8
	colID      = 0
	colName    = 1
	colType    = 2
	colNormal  = 3
	colSubtype = 4
	colActive  = 5
	colRE      = 6
	colCreated = 7
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colNormal] = string(acct.NormalBalance)
	row[colSubtype] = acct.Subtype
	row[colActive] = strconv.FormatBool(acct.IsActive())
	if acct.RetainedEarnings {
		row[colRE] = "true"
	}
	if !acct.CreatedAt.IsZero() {
		row[colCreated] = acct.CreatedAt.UTC().Format(time.RFC3339)
	}
	return row
}

// UnmarshalAccount converts a CSV row to an Account. Blank is_active means
// active; blank normal_balance is filled in later from the type.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if record[colID] == "" {
		return model.Account{}, fmt.Errorf("missing id")
	}
	if record[colName] == "" {
		return model.Account{}, fmt.Errorf("account %s: missing name", record[colID])
	}

	accountType, err := model.ParseAccountType(record[colType])
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s: %w", record[colID], err)
	}

	normal, err := model.ParseNormalBalance(record[colNormal])
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s: %w", record[colID], err)
	}

	active, err := parseFlag(record[colActive], true)
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing is_active %q: %w", record[colActive], err)
	}

	retained, err := parseFlag(record[colRE], false)
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing retained_earnings %q: %w", record[colRE], err)
	}

	var created time.Time
	if record[colCreated] != "" {
		created, err = time.Parse(time.RFC3339, record[colCreated])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing created_at %q: %w", record[colCreated], err)
		}
	}

	return model.Account{
		ID:               record[colID],
		Name:             record[colName],
		Type:             accountType,
		NormalBalance:    normal,
		Subtype:          record[colSubtype],
		Disabled:         !active,
		RetainedEarnings: retained,
		CreatedAt:        created,
	}, nil
}

func parseFlag(s string, def bool) (bool, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseBool(s)
}

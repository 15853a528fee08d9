package rollup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func TestValidateEntry_Balanced(t *testing.T) {
	lines := []model.JournalLine{
		debit("1", "h1", "cash", "100"),
		credit("2", "h1", "rev", "100"),
	}
	check := ValidateEntry(lines)
	assert.True(t, check.OK)
	assertAmount(t, "100", check.TotalDebit)
	assertAmount(t, "100", check.TotalCredit)
	assertAmount(t, "0", check.Difference())
}

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name  string
		lines []model.JournalLine
		ok    bool
	}{
		{"empty", nil, false},
		{"all zero", []model.JournalLine{debit("1", "h", "a", "0"), credit("2", "h", "b", "0")}, false},
		{"unbalanced", []model.JournalLine{debit("1", "h", "a", "100"), credit("2", "h", "b", "99.99")}, false},
		{"within tolerance", []model.JournalLine{debit("1", "h", "a", "100.0000001"), credit("2", "h", "b", "100")}, true},
		{"at tolerance", []model.JournalLine{debit("1", "h", "a", "100.000001"), credit("2", "h", "b", "100")}, false},
		{"split debit", []model.JournalLine{
			debit("1", "h", "groceries", "60.00"),
			debit("2", "h", "rent", "40.00"),
			credit("3", "h", "cash", "100.00"),
		}, true},
		{"both sides on one line", []model.JournalLine{{ID: "1", Debit: dec("50"), Credit: dec("50")}}, true},
		{"negative total", []model.JournalLine{debit("1", "h", "a", "-5"), credit("2", "h", "b", "-5")}, false},
		{"missing amounts count as zero", []model.JournalLine{{ID: "1"}, debit("2", "h", "a", "10"), credit("3", "h", "b", "10")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := ValidateEntry(tt.lines)
			assert.Equal(t, tt.ok, check.OK)
		})
	}
}

func TestValidateEntry_ReportsTotalsWhenUnbalanced(t *testing.T) {
	check := ValidateEntry([]model.JournalLine{
		debit("1", "h", "a", "112.34"),
		credit("2", "h", "b", "100.00"),
	})
	require.False(t, check.OK)
	assertAmount(t, "112.34", check.TotalDebit)
	assertAmount(t, "100", check.TotalCredit)
	assertAmount(t, "12.34", check.Difference())
}

func TestTolerance(t *testing.T) {
	assert.Equal(t, "0.000001", Tolerance().String())
	assert.True(t, withinTolerance(dec("10.0000005"), dec("10")))
	assert.False(t, withinTolerance(dec("10.000001"), dec("10")), "a difference equal to the tolerance is not equal")
}

func TestSafeAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"   ", "0"},
		{"abc", "0"},
		{"12.50", "12.5"},
		{" 7 ", "7"},
		{"-3.25", "-3.25"},
		{"1,000", "0"},
	}
	for _, tt := range tests {
		assertAmount(t, tt.want, SafeAmount(tt.in), "SafeAmount(%q)", tt.in)
	}
}

func TestCheckEntries(t *testing.T) {
	headers, lines := householdJournal()
	headers = append(headers, header("bad", "2024-03-10"), header("empty", "2024-03-11"))
	lines = append(lines,
		debit("b1", "bad", "groceries", "30"),
		credit("b2", "bad", "cash", "20"),
	)

	issues := CheckEntries(headers, lines)
	require.Len(t, issues, 2)
	assert.Equal(t, "bad", issues[0].Header.ID)
	assertAmount(t, "10", issues[0].Check.Difference())
	assert.Equal(t, "empty", issues[1].Header.ID)
	assertAmount(t, "0", issues[1].Check.TotalDebit)
}

func TestCheckEntries_BalancedBook(t *testing.T) {
	headers, lines := householdJournal()
	assert.Empty(t, CheckEntries(headers, lines))
}

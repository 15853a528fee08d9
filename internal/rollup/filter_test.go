package rollup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByDate_InclusiveBounds(t *testing.T) {
	headers, lines := householdJournal()

	f := FilterByDate(headers, lines, Options{Start: "2024-01-15", End: "2024-02-01"})
	require.Len(t, f.Headers, 3)
	assert.Equal(t, "h2", f.Headers[0].ID, "header dated exactly Start is kept")
	assert.Equal(t, "h4", f.Headers[2].ID, "header dated exactly End is kept")
	assert.Len(t, f.Lines, 6)
	assert.Len(t, f.HeaderIDs, 3)
}

func TestFilterByDate_DayAfterEndExcluded(t *testing.T) {
	headers, lines := householdJournal()

	f := FilterByDate(headers, lines, Options{End: "2024-01-31"})
	for _, h := range f.Headers {
		assert.LessOrEqual(t, h.Date, "2024-01-31")
	}
	_, ok := f.HeaderIDs["h4"]
	assert.False(t, ok, "2024-02-01 is one day past End")
	_, ok = f.HeaderIDs["h3"]
	assert.True(t, ok)
}

func TestFilterByDate_Unbounded(t *testing.T) {
	headers, lines := householdJournal()

	f := FilterByDate(headers, lines, Options{})
	assert.Len(t, f.Headers, len(headers))
	assert.Len(t, f.Lines, len(lines))
}

func TestFilterByDate_DropsOrphanLines(t *testing.T) {
	headers, lines := householdJournal()
	lines = append(lines, debit("orphan", "missing", "cash", "5"))

	f := FilterByDate(headers, lines, Options{})
	assert.Len(t, f.Lines, len(lines)-1)
	for _, l := range f.Lines {
		assert.NotEqual(t, "orphan", l.ID)
	}
}

func TestFilterByDate_PreservesOrder(t *testing.T) {
	headers, lines := householdJournal()

	f := FilterByDate(headers, lines, Options{Start: "2024-02-01"})
	var ids []string
	for _, l := range f.Lines {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"l7", "l8", "l9", "l10", "l11", "l12"}, ids)
}

func TestOptionsContains(t *testing.T) {
	opts := Options{Start: "2024-01-01", End: "2024-12-31"}
	assert.True(t, opts.Contains("2024-01-01"))
	assert.True(t, opts.Contains("2024-12-31"))
	assert.False(t, opts.Contains("2023-12-31"))
	assert.False(t, opts.Contains("2025-01-01"))
}

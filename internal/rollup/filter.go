package rollup

import "github.com/cleared-dev/tally/internal/model"

// Options selects the window a report covers. Empty Start or End leaves that
// side unbounded. Dates are ISO-8601 strings compared lexicographically, so
// callers must supply fixed-width "YYYY-MM-DD" values.
type Options struct {
	Start        string
	End          string
	IncludeEmpty bool // ledger only
}

// Contains reports whether date falls inside the window, inclusive on both ends.
func (o Options) Contains(date string) bool {
	if o.Start != "" && date < o.Start {
		return false
	}
	if o.End != "" && date > o.End {
		return false
	}
	return true
}

// Filtered is the result of FilterByDate.
type Filtered struct {
	Headers   []model.JournalHeader
	Lines     []model.JournalLine
	HeaderIDs map[string]struct{}
}

// FilterByDate keeps the headers dated inside the window and the lines that
// belong to them. Input order is preserved.
func FilterByDate(headers []model.JournalHeader, lines []model.JournalLine, opts Options) Filtered {
	f := Filtered{
		Headers:   make([]model.JournalHeader, 0, len(headers)),
		Lines:     make([]model.JournalLine, 0, len(lines)),
		HeaderIDs: make(map[string]struct{}, len(headers)),
	}
	for _, h := range headers {
		if !opts.Contains(h.Date) {
			continue
		}
		f.Headers = append(f.Headers, h)
		f.HeaderIDs[h.ID] = struct{}{}
	}
	for _, l := range lines {
		if _, ok := f.HeaderIDs[l.HeaderID]; ok {
			f.Lines = append(f.Lines, l)
		}
	}
	return f
}

// Package render writes report results as plain text, markdown tables or
// JSON. Amounts are rounded for display here and nowhere else.
package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/rollup"
)

// Format selects the output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	// FormatPretty is markdown styled for a terminal.
	FormatPretty Format = "pretty"
)

// ParseFormat accepts text, markdown (or md), json and pretty. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "pretty":
		return FormatPretty, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, markdown, json or pretty)", s)
}

// Renderer writes reports to one destination in one format and currency.
// Call Flush after the last report.
type Renderer struct {
	w      io.Writer
	format Format
	money  Money

	// set for FormatPretty: markdown is buffered in w and styled on Flush
	pretty *bytes.Buffer
	dst    io.Writer
}

// New creates a Renderer. currency is an ISO 4217 code.
func New(w io.Writer, format Format, currency string) (*Renderer, error) {
	m, err := NewMoney(currency)
	if err != nil {
		return nil, err
	}
	r := &Renderer{w: w, format: format, money: m}
	if format == FormatPretty {
		r.pretty = &bytes.Buffer{}
		r.dst = w
		r.w = r.pretty
		r.format = FormatMarkdown
	}
	return r, nil
}

// Flush writes buffered output. Only FormatPretty buffers.
func (r *Renderer) Flush() error {
	if r.pretty == nil || r.pretty.Len() == 0 {
		return nil
	}
	out, err := glamour.Render(r.pretty.String(), "auto")
	if err != nil {
		return fmt.Errorf("styling output: %w", err)
	}
	r.pretty.Reset()
	_, err = io.WriteString(r.dst, out)
	return err
}

// period describes a report window for titles.
func period(opts rollup.Options) string {
	switch {
	case opts.Start == "" && opts.End == "":
		return "all dates"
	case opts.Start == "":
		return "through " + opts.End
	case opts.End == "":
		return "from " + opts.Start
	}
	return opts.Start + " to " + opts.End
}

func asOf(end string) string {
	if end == "" {
		return "as of latest entry"
	}
	return "as of " + end
}

func byName(a, b model.Account) bool {
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

func sortedItems(items []rollup.LineItem) []rollup.LineItem {
	out := make([]rollup.LineItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return byName(out[i].Account, out[j].Account) })
	return out
}

package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"
)

type column struct {
	title string
	right bool
}

type table struct {
	columns []column
	rows    [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (r *Renderer) heading(level int, title string) error {
	var err error
	if r.format == FormatMarkdown {
		_, err = fmt.Fprintf(r.w, "%s %s\n\n", strings.Repeat("#", level), title)
	} else {
		_, err = fmt.Fprintf(r.w, "%s\n", title)
	}
	return err
}

func (r *Renderer) note(format string, args ...any) error {
	_, err := fmt.Fprintf(r.w, format+"\n", args...)
	return err
}

func (r *Renderer) table(t table) error {
	if r.format == FormatMarkdown {
		return writeMarkdown(r.w, t)
	}
	return writeText(r.w, t)
}

func writeText(w io.Writer, t table) error {
	widths := make([]int, len(t.columns))
	for i, c := range t.columns {
		widths[i] = utf8.RuneCountInString(c.title)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	line := func(cells []string) {
		out := make([]string, len(t.columns))
		for i := range t.columns {
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			if t.columns[i].right {
				cell = strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)) + cell
			}
			out[i] = cell
		}
		fmt.Fprintln(tw, strings.TrimRight(strings.Join(out, "\t"), "\t "))
	}

	titles := make([]string, len(t.columns))
	for i, c := range t.columns {
		titles[i] = c.title
	}
	line(titles)
	for _, row := range t.rows {
		line(row)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writeMarkdown(w io.Writer, t table) error {
	var b strings.Builder
	b.WriteString("|")
	for _, c := range t.columns {
		b.WriteString(" " + escapeCell(c.title) + " |")
	}
	b.WriteString("\n|")
	for _, c := range t.columns {
		if c.right {
			b.WriteString(" ---: |")
		} else {
			b.WriteString(" --- |")
		}
	}
	b.WriteString("\n")
	for _, row := range t.rows {
		b.WriteString("|")
		for i := range t.columns {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(" " + escapeCell(cell) + " |")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

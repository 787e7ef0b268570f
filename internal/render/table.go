// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package render serialises sorted occurrences as a grid table or an Atom feed.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/lestrrat-go/strftime"
	"golang.org/x/text/width"

	"github.com/ManuGH/xmltv-new/internal/schedule"
)

// DefaultTimeFormat renders naive local time, e.g. 2024-01-01 20:00:00.
const DefaultTimeFormat = "%Y-%m-%d %H:%M:%S"

// headerPadding is the minimum room kept on the right of every header cell.
const headerPadding = 2

// TableHeaders are the column titles of the table output.
var TableHeaders = []string{"Channel", "Title", "Subtitle", "Start", "Stop"}

// TableOptions controls table rendering.
type TableOptions struct {
	// TimeFormat is a strftime pattern for the Start and Stop columns.
	// Empty means DefaultTimeFormat.
	TimeFormat string
}

// Table writes occ as a grid table:
//
//	+-----------+---------+
//	| Channel   | Title   |
//	+===========+=========+
//	| BBC One   | Foo     |
//	+-----------+---------+
func Table(w io.Writer, occ []schedule.Occurrence, reg schedule.Registry, opts TableOptions) error {
	pattern := opts.TimeFormat
	if pattern == "" {
		pattern = DefaultTimeFormat
	}
	tf, err := strftime.New(pattern)
	if err != nil {
		return fmt.Errorf("table time format %q: %w", pattern, err)
	}

	rows := make([][]string, 0, len(occ))
	for _, o := range occ {
		rows = append(rows, []string{
			cell(reg.DisplayName(o.Channel)),
			cell(o.Title),
			cell(o.SubTitle),
			cell(tf.FormatString(o.Start)),
			cell(tf.FormatString(o.Stop)),
		})
	}

	widths := make([]int, len(TableHeaders))
	for i, h := range TableHeaders {
		widths[i] = displayWidth(h) + headerPadding
	}
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], displayWidth(c))
		}
	}

	var b strings.Builder
	rule(&b, widths, '-')
	line(&b, widths, TableHeaders)
	rule(&b, widths, '=')
	for _, row := range rows {
		line(&b, widths, row)
		rule(&b, widths, '-')
	}
	if len(rows) == 0 {
		rule(&b, widths, '-')
	}

	_, err = io.WriteString(w, b.String())
	return err
}

func rule(b *strings.Builder, widths []int, fill rune) {
	b.WriteByte('+')
	for _, wd := range widths {
		b.WriteString(strings.Repeat(string(fill), wd+2))
		b.WriteByte('+')
	}
	b.WriteByte('\n')
}

func line(b *strings.Builder, widths []int, cells []string) {
	b.WriteByte('|')
	for i, c := range cells {
		b.WriteByte(' ')
		b.WriteString(c)
		b.WriteString(strings.Repeat(" ", widths[i]-displayWidth(c)))
		b.WriteString(" |")
	}
	b.WriteByte('\n')
}

// cell collapses runs of whitespace, including newlines, so every row stays
// on one line.
func cell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// displayWidth is the number of terminal columns s occupies: East Asian wide
// and fullwidth runes take two, combining marks and format characters none.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		if unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf) {
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

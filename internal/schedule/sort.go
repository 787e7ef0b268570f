// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package schedule

import (
	"slices"
	"strings"
)

// Direction selects the order produced by Sort.
type Direction int

const (
	// Ascending puts the earliest broadcast first (table output).
	Ascending Direction = iota
	// Descending puts the latest broadcast first (feed output).
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// Compare orders occurrences by start, stop, channel display name, title and
// subtitle.
func Compare(reg Registry, a, b Occurrence) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}
	if c := a.Stop.Compare(b.Stop); c != 0 {
		return c
	}
	if c := strings.Compare(reg.DisplayName(a.Channel), reg.DisplayName(b.Channel)); c != 0 {
		return c
	}
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	return strings.Compare(a.SubTitle, b.SubTitle)
}

// Sort orders occ in place. The sort is stable in both directions: equal
// keys keep their aggregation order.
func Sort(occ []Occurrence, reg Registry, dir Direction) {
	slices.SortStableFunc(occ, func(a, b Occurrence) int {
		if dir == Descending {
			return Compare(reg, b, a)
		}
		return Compare(reg, a, b)
	})
}

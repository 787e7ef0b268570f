// SPDX-License-Identifier: MIT
package epg

import (
	"strings"

	unorm "golang.org/x/text/unicode/norm"
)

// normalize returns s in NFC form with surrounding whitespace removed, so the
// same title delivered composed or decomposed compares and hashes equally.
func normalize(s string) string {
	return strings.TrimSpace(unorm.NFC.String(s))
}

// FindText returns the normalised text of the first element in els.
// ok is false when no such element exists.
func FindText(els []Text) (text string, ok bool) {
	if len(els) == 0 {
		return "", false
	}
	return normalize(els[0].Value), true
}

// FindTextOr returns the first element's text, or def when absent.
func FindTextOr(els []Text, def string) string {
	if s, ok := FindText(els); ok {
		return s
	}
	return def
}

// FindAll returns the normalised text of every element in els, in document
// order. Absent elements yield an empty, non-nil slice.
func FindAll(els []Text) []string {
	out := make([]string, 0, len(els))
	for _, el := range els {
		out = append(out, normalize(el.Value))
	}
	return out
}

// DisplayName returns the channel's first display name, or "" when none is defined.
func (c Channel) DisplayName() string { return FindTextOr(c.DisplayNames, "") }

// IsNew reports whether the programme carries a <new/> marker.
func (p Programme) IsNew() bool { return p.New != nil }

func (p Programme) Title() string { return FindTextOr(p.Titles, "") }
func (p Programme) SubTitle() string { return FindTextOr(p.SubTitles, "") }
func (p Programme) Description() string { return FindTextOr(p.Descs, "") }
func (p Programme) Categories() []string { return FindAll(p.CategoryList) }

// Directors returns credits/director names; empty when there are no credits.
func (p Programme) Directors() []string {
	if p.Credits == nil {
		return FindAll(nil)
	}
	return FindAll(p.Credits.Directors)
}

// Actors returns credits/actor names; empty when there are no credits.
func (p Programme) Actors() []string {
	if p.Credits == nil {
		return FindAll(nil)
	}
	return FindAll(p.Credits.Actors)
}

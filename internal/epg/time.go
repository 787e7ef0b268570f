// SPDX-License-Identifier: MIT
package epg

import (
	"fmt"
	"strings"
	"time"
)

const (
	// TimeLayout is the XMLTV timestamp layout without zone: YYYYMMDDHHMMSS.
	TimeLayout = "20060102150405"

	timeLayoutWithOffset = "20060102150405 -0700"
)

// ParseTime parses an XMLTV timestamp. A bare YYYYMMDDHHMMSS value is taken
// as wall-clock time in loc; a value carrying a ±HHMM offset is converted
// into loc so every instant of a run shares one zone.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) == len(TimeLayout) {
		t, err := time.ParseInLocation(TimeLayout, s, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse xmltv time %q: %w", s, err)
		}
		return t, nil
	}
	t, err := time.Parse(timeLayoutWithOffset, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse xmltv time %q: %w", s, err)
	}
	return t.In(loc), nil
}

// FormatTime formats t in its own location as a fixed-width YYYYMMDDHHMMSS value.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// SPDX-License-Identifier: MIT
package epg

import (
	"regexp"
	"time"
)

var snapshotName = regexp.MustCompile(`^tv-([0-9]{8})\.xmltv$`)

// SnapshotDate parses a snapshot filename of the form tv-YYYYMMDD.xmltv and
// returns local midnight of that date in loc. ok is false for any other name,
// including names whose digits are not a calendar date.
func SnapshotDate(name string, loc *time.Location) (date time.Time, ok bool) {
	m := snapshotName.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation("20060102", m[1], loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

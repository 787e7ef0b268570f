// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package schedule

import (
	"fmt"
	"time"

	"github.com/ManuGH/xmltv-new/internal/epg"
)

// Occurrence is one scheduled broadcast of a new programme on a tracked channel.
// Start is always before Stop.
type Occurrence struct {
	Channel     string
	Start       time.Time
	Stop        time.Time
	Title       string
	SubTitle    string
	Description string
	Categories  []string
	Directors   []string
	Actors      []string
}

// ExtractStats counts programmes Extract looked at but did not emit.
type ExtractStats struct {
	Programmes      int // programme elements in the document
	NotNew          int // no <new/> marker
	Unregistered    int // new, but on a channel that is not tracked
	InvalidInterval int // stop not after start
}

// Extract records the display names of tracked channels defined in doc into
// reg (overwriting earlier values) and returns the new programmes on tracked
// channels in document order. Timestamps are placed in loc. An unparsable
// timestamp on an emitted programme wraps epg.ErrSnapshotParse.
func Extract(reg Registry, doc *epg.TV, loc *time.Location) ([]Occurrence, ExtractStats, error) {
	stats := ExtractStats{Programmes: len(doc.Programmes)}

	for _, ch := range doc.Channels {
		if reg.Tracks(ch.ID) {
			reg[ch.ID] = ch.DisplayName()
		}
	}

	var out []Occurrence
	for _, p := range doc.Programmes {
		if !p.IsNew() {
			stats.NotNew++
			continue
		}
		if !reg.Tracks(p.Channel) {
			stats.Unregistered++
			continue
		}

		start, err := epg.ParseTime(p.Start, loc)
		if err != nil {
			return nil, stats, fmt.Errorf("%w: programme on %s: start: %w", epg.ErrSnapshotParse, p.Channel, err)
		}
		stop, err := epg.ParseTime(p.Stop, loc)
		if err != nil {
			return nil, stats, fmt.Errorf("%w: programme on %s: stop: %w", epg.ErrSnapshotParse, p.Channel, err)
		}
		if !start.Before(stop) {
			stats.InvalidInterval++
			continue
		}

		out = append(out, Occurrence{
			Channel:     p.Channel,
			Start:       start,
			Stop:        stop,
			Title:       p.Title(),
			SubTitle:    p.SubTitle(),
			Description: p.Description(),
			Categories:  p.Categories(),
			Directors:   p.Directors(),
			Actors:      p.Actors(),
		})
	}

	return out, stats, nil
}

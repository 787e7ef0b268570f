// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package schedule turns XMLTV snapshot documents into ordered, identifiable
// occurrences of new programmes on the tracked channels.
package schedule

import (
	"slices"
)

// Registry maps tracked channel IDs to their display names. A name stays
// empty until a snapshot defines the channel. The caller owns the single
// registry of a run and passes it to Extract, Sort and the renderers.
type Registry map[string]string

// NewRegistry returns a registry tracking ids, each with an empty display name.
func NewRegistry(ids []string) Registry {
	r := make(Registry, len(ids))
	for _, id := range ids {
		r[id] = ""
	}
	return r
}

// Tracks reports whether id is a configured channel.
func (r Registry) Tracks(id string) bool {
	_, ok := r[id]
	return ok
}

// DisplayName returns the resolved display name of id, or "" when unknown.
func (r Registry) DisplayName(id string) string {
	return r[id]
}

// IDs returns the tracked channel IDs in sorted order.
func (r Registry) IDs() []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

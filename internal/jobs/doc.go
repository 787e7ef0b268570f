// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package jobs drives one xmltv-new run: it aggregates the upcoming
// snapshots of a data directory, orders the new programmes and writes the
// rendered table or feed.
package jobs

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package jobs

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/ManuGH/xmltv-new/internal/epg"
	xglog "github.com/ManuGH/xmltv-new/internal/log"
	"github.com/ManuGH/xmltv-new/internal/schedule"
)

// SnapshotError reports the snapshot file that aborted a run.
type SnapshotError struct {
	File string
	Err  error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("snapshot %s: %v", e.File, e.Err)
}

func (e *SnapshotError) Unwrap() error { return e.Err }

// AggregateOptions controls snapshot selection.
type AggregateOptions struct {
	// Location places snapshot dates and programme timestamps.
	Location *time.Location
	// Today is the local midnight of the run; older snapshots are skipped.
	Today time.Time
}

// Result is the outcome of Aggregate.
type Result struct {
	Occurrences   []schedule.Occurrence
	FilesSeen     int // names matching tv-YYYYMMDD.xmltv
	FilesSelected int // dated today or later, processed
	FilesSkipped  int // dated before today
}

// Midnight returns the start of the calendar day of t in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Aggregate extracts the new programmes from every snapshot in the root of
// fsys dated today or later. Files are processed in lexicographic order and
// their occurrences concatenated; duplicates across snapshots are kept.
// Directory entries are never descended into and only snapshot names are
// opened. The first failing file aborts the whole aggregation.
func Aggregate(ctx context.Context, fsys fs.FS, reg schedule.Registry, opts AggregateOptions) (Result, error) {
	logger := xglog.WithComponentFromContext(ctx, "aggregate")
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	var res Result

	// fs.ReadDir returns entries sorted by filename.
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return res, fmt.Errorf("list data directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if isDir(fsys, entry) {
			logger.Debug().Str(xglog.FieldFile, name).Msg("skipping directory")
			continue
		}
		day, ok := epg.SnapshotDate(name, loc)
		if !ok {
			logger.Debug().Str(xglog.FieldFile, name).Msg("not a snapshot")
			continue
		}
		res.FilesSeen++
		if day.Before(opts.Today) {
			res.FilesSkipped++
			logger.Debug().Str(xglog.FieldFile, name).Msg("snapshot in the past")
			continue
		}

		if err := ctx.Err(); err != nil {
			return res, err
		}

		occ, err := extractFile(ctx, fsys, name, reg, loc)
		if err != nil {
			return res, &SnapshotError{File: name, Err: err}
		}
		res.FilesSelected++
		res.Occurrences = append(res.Occurrences, occ...)
	}

	return res, nil
}

// isDir reports whether entry is a directory or a symbolic link to one.
func isDir(fsys fs.FS, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fs.Stat(fsys, entry.Name())
	return err == nil && info.IsDir()
}

func extractFile(ctx context.Context, fsys fs.FS, name string, reg schedule.Registry, loc *time.Location) ([]schedule.Occurrence, error) {
	logger := xglog.WithComponentFromContext(ctx, "aggregate")

	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Debug().Err(cerr).Str(xglog.FieldFile, name).Msg("close snapshot")
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file (%s)", info.Mode().Type())
	}

	doc, err := epg.Decode(f)
	if err != nil {
		return nil, err
	}

	occ, stats, err := schedule.Extract(reg, doc, loc)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str(xglog.FieldFile, name).
		Int("programmes", stats.Programmes).
		Int("not_new", stats.NotNew).
		Int("unregistered", stats.Unregistered).
		Int("invalid_interval", stats.InvalidInterval).
		Int(xglog.FieldOccurrences, len(occ)).
		Msg("snapshot extracted")

	return occ, nil
}

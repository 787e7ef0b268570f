// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package jobs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ManuGH/xmltv-new/internal/config"
	xglog "github.com/ManuGH/xmltv-new/internal/log"
	"github.com/ManuGH/xmltv-new/internal/metrics"
	"github.com/ManuGH/xmltv-new/internal/render"
	"github.com/ManuGH/xmltv-new/internal/schedule"
)

// Mode selects the output document.
type Mode int

const (
	// ModeTable renders an ascending grid table.
	ModeTable Mode = iota
	// ModeFeed renders a descending Atom feed.
	ModeFeed
)

func (m Mode) String() string {
	switch m {
	case ModeTable:
		return "table"
	case ModeFeed:
		return "feed"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Deps holds the collaborators of a run. Zero values are replaced by the
// production defaults.
type Deps struct {
	FS         fs.FS            // snapshot directory; os.DirFS(cfg.DataDir)
	Stdout     io.Writer        // document sink when OutputPath is empty; os.Stdout
	OutputPath string           // optional file replaced atomically
	Clock      func() time.Time // time.Now
	Metrics    *metrics.Recorder
}

func (d Deps) withDefaults(cfg config.AppConfig) Deps {
	if d.FS == nil {
		d.FS = os.DirFS(cfg.DataDir)
	}
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Metrics == nil {
		d.Metrics = metrics.NewRecorder()
	}
	return d
}

// Run performs one complete run: aggregate → sort → render → write.
// The document is rendered in memory first, so a failed run writes nothing.
func Run(ctx context.Context, cfg config.AppConfig, mode Mode, deps Deps) (err error) {
	deps = deps.withDefaults(cfg)
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	started := deps.Clock()
	ctx = xglog.ContextWithRunID(ctx, uuid.NewString())
	runLogger := xglog.WithContext(ctx, xglog.Base()).With().
		Str(xglog.FieldMode, mode.String()).
		Logger()
	ctx = runLogger.WithContext(ctx)
	logger := xglog.WithComponentFromContext(ctx, "jobs")

	defer func() {
		finished := deps.Clock()
		deps.Metrics.RecordRun(finished, finished.Sub(started), err == nil)
		if cfg.MetricsFile == "" {
			return
		}
		if werr := deps.Metrics.WriteTextfile(cfg.MetricsFile); werr != nil {
			logger.Warn().Err(werr).Str("path", cfg.MetricsFile).Msg("metrics textfile not written")
		}
	}()

	logger.Info().
		Str(xglog.FieldDataDir, cfg.DataDir).
		Int("channels", len(cfg.ChannelIDs)).
		Msg("run started")

	reg := schedule.NewRegistry(cfg.ChannelIDs)
	res, err := Aggregate(ctx, deps.FS, reg, AggregateOptions{
		Location: loc,
		Today:    Midnight(started, loc),
	})
	deps.Metrics.RecordFiles(res.FilesSeen, res.FilesSelected, res.FilesSkipped)
	if err != nil {
		logger.Error().Err(err).Msg("aggregation failed")
		return err
	}

	perChannel := make(map[string]int, len(cfg.ChannelIDs))
	for _, o := range res.Occurrences {
		perChannel[o.Channel]++
	}
	deps.Metrics.RecordOccurrences(reg.IDs(), perChannel)

	order := schedule.Ascending
	if mode == ModeFeed {
		order = schedule.Descending
	}
	schedule.Sort(res.Occurrences, reg, order)
	logger.Debug().
		Stringer("order", order).
		Int(xglog.FieldOccurrences, len(res.Occurrences)).
		Msg("occurrences sorted")

	var buf bytes.Buffer
	switch mode {
	case ModeTable:
		err = render.Table(&buf, res.Occurrences, reg, render.TableOptions{
			TimeFormat: cfg.Table.TimeFormat,
		})
	case ModeFeed:
		err = render.Feed(&buf, res.Occurrences, reg, feedOptions(cfg, started.In(loc)))
	default:
		err = fmt.Errorf("unknown mode %s", mode)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", mode, err)
	}

	if deps.OutputPath != "" {
		if err := writeOutput(ctx, deps.OutputPath, buf.Bytes()); err != nil {
			return err
		}
	} else if _, err := deps.Stdout.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info().
		Int(xglog.FieldFilesSeen, res.FilesSeen).
		Int(xglog.FieldFilesSelected, res.FilesSelected).
		Int(xglog.FieldOccurrences, len(res.Occurrences)).
		Str(xglog.FieldOutput, outputName(deps.OutputPath)).
		Int64(xglog.FieldDuration, deps.Clock().Sub(started).Milliseconds()).
		Msg("run finished")

	return nil
}

func feedOptions(cfg config.AppConfig, now time.Time) render.FeedOptions {
	opts := render.FeedOptions{
		Title:     cfg.Feed.Title,
		ID:        cfg.Feed.ID,
		Author:    cfg.Feed.Author,
		Link:      cfg.Feed.Link,
		Generator: "xmltv-new",
		Updated:   now,
	}
	if opts.ID == "" {
		opts.ID = render.FeedID(cfg.DataDir)
	}
	if cfg.Version != "" {
		opts.Generator += " " + cfg.Version
	}
	return opts
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package metrics records per-run Prometheus gauges for xmltv-new.
//
// The tool is one-shot, so nothing is served over HTTP. Gauges live in a
// private registry and are written in the node_exporter textfile format
// when a metrics file is configured.
package metrics

import (
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Snapshot file states used as the "state" label.
const (
	StateSeen     = "seen"
	StateSelected = "selected"
	StateSkipped  = "skipped"
)

// Recorder holds the gauges of a single run.
// No cardinality beyond the configured channel list.
type Recorder struct {
	registry *prometheus.Registry

	snapshotFiles *prometheus.GaugeVec
	occurrences   *prometheus.GaugeVec
	lastRun       prometheus.Gauge
	lastDuration  prometheus.Gauge
	lastSuccess   prometheus.Gauge
}

// NewRecorder creates a Recorder backed by a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		snapshotFiles: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "xmltvnew_snapshot_files",
			Help: "Snapshot files handled by the last run, by state (seen/selected/skipped).",
		}, []string{"state"}),
		occurrences: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "xmltvnew_occurrences",
			Help: "New programme occurrences reported by the last run, by channel.",
		}, []string{"channel"}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "xmltvnew_last_run_timestamp_seconds",
			Help: "Unix time at which the last run finished.",
		}),
		lastDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "xmltvnew_last_run_duration_seconds",
			Help: "Wall time of the last run.",
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "xmltvnew_last_run_success",
			Help: "1 if the last run produced output, 0 otherwise.",
		}),
	}
}

// RecordFiles sets the snapshot file gauges.
func (r *Recorder) RecordFiles(seen, selected, skipped int) {
	r.snapshotFiles.WithLabelValues(StateSeen).Set(float64(seen))
	r.snapshotFiles.WithLabelValues(StateSelected).Set(float64(selected))
	r.snapshotFiles.WithLabelValues(StateSkipped).Set(float64(skipped))
}

// RecordOccurrences sets one gauge per channel. Every tracked channel gets
// a sample, including those without occurrences.
func (r *Recorder) RecordOccurrences(tracked []string, perChannel map[string]int) {
	ids := append([]string(nil), tracked...)
	sort.Strings(ids)
	for _, id := range ids {
		r.occurrences.WithLabelValues(id).Set(float64(perChannel[id]))
	}
}

// RecordRun marks the end of a run.
func (r *Recorder) RecordRun(finished time.Time, took time.Duration, success bool) {
	r.lastRun.Set(float64(finished.Unix()))
	r.lastDuration.Set(took.Seconds())
	if success {
		r.lastSuccess.Set(1)
	} else {
		r.lastSuccess.Set(0)
	}
}

// WriteTextfile atomically writes all gauges to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

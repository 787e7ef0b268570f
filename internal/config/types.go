// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

// FileConfig represents the YAML configuration structure
type FileConfig struct {
	DataDir     string          `yaml:"data_dir,omitempty"`
	Timezone    string          `yaml:"timezone,omitempty"`
	Channels    []ChannelConfig `yaml:"channels,omitempty"`
	Log         LogConfig       `yaml:"log,omitempty"`
	Table       TableConfig     `yaml:"table,omitempty"`
	Feed        FeedConfig      `yaml:"feed,omitempty"`
	MetricsFile string          `yaml:"metrics_file,omitempty"`
}

// ChannelConfig names one tracked channel. Name is informational only; the
// display name always comes from the snapshots.
type ChannelConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name,omitempty"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// TableConfig holds table output settings
type TableConfig struct {
	TimeFormat string `yaml:"time_format,omitempty"` // strftime pattern
}

// FeedConfig holds Atom feed metadata
type FeedConfig struct {
	Title  string `yaml:"title,omitempty"`
	ID     string `yaml:"id,omitempty"`
	Author string `yaml:"author,omitempty"`
	Link   string `yaml:"link,omitempty"`
}

// AppConfig is the resolved configuration of one run.
type AppConfig struct {
	DataDir     string         // absolute
	Timezone    string         // IANA name or "Local"
	Location    *time.Location // loaded from Timezone
	ChannelIDs  []string       // configuration order
	LogLevel    string
	Table       TableConfig
	Feed        FeedConfig
	MetricsFile string
	Version     string
}

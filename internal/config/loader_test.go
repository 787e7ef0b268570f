// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultConfigName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.Mkdir(dataDir, 0o750))

	path := writeConfig(t, dir, `
data_dir: `+dataDir+`
timezone: Europe/Berlin
channels:
  - id: arte.de
    name: ARTE
  - id: zdf.de
log:
  level: debug
table:
  time_format: "%d.%m. %H:%M"
feed:
  title: Neu im TV
  id: urn:example:feed
  author: me
  link: https://example.org/new.atom
metrics_file: `+filepath.Join(dir, "xmltv.prom")+`
`)

	cfg, err := NewLoader(path, "1.2.3").Load()
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	require.NotNil(t, cfg.Location)
	assert.Equal(t, "Europe/Berlin", cfg.Location.String())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, filepath.Join(dir, "xmltv.prom"), cfg.MetricsFile)
	if diff := cmp.Diff([]string{"arte.de", "zdf.de"}, cfg.ChannelIDs); diff != "" {
		t.Errorf("channel ids mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, TableConfig{TimeFormat: "%d.%m. %H:%M"}, cfg.Table)
	assert.Equal(t, FeedConfig{
		Title:  "Neu im TV",
		ID:     "urn:example:feed",
		Author: "me",
		Link:   "https://example.org/new.atom",
	}, cfg.Feed)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := NewLoader("", "").Load()
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, cfg.DataDir)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.ChannelIDs)
	assert.Empty(t, cfg.MetricsFile)
	assert.NotNil(t, cfg.Location)
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeConfig(t, dir, "")

	cfg, err := NewLoader(path, "").Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.ChannelIDs)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	envDir := t.TempDir()
	path := writeConfig(t, dir, `
data_dir: `+dir+`
timezone: UTC
log:
  level: info
`)

	t.Setenv(EnvDataDir, envDir)
	t.Setenv(EnvTimezone, "America/New_York")
	t.Setenv(EnvLogLevel, "ERROR")
	t.Setenv(EnvMetricsFile, filepath.Join(envDir, "m.prom"))

	loader := NewLoader(path, "")
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, envDir, cfg.DataDir)
	assert.Equal(t, "America/New_York", cfg.Location.String())
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, filepath.Join(envDir, "m.prom"), cfg.MetricsFile)

	for _, key := range []string{EnvDataDir, EnvTimezone, EnvLogLevel, EnvMetricsFile} {
		assert.Contains(t, loader.ConsumedEnvKeys, key)
	}
}

func TestLoad_RelativeDataDirResolvedAgainstWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "guide"), 0o750))
	t.Chdir(dir)
	path := writeConfig(t, dir, "data_dir: guide\n")

	cfg, err := NewLoader(path, "").Load()
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "guide"), cfg.DataDir)
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "missing data dir", content: "data_dir: " + filepath.Join(dir, "nope") + "\n"},
		{name: "unknown timezone", content: "data_dir: " + dir + "\ntimezone: Mars/Olympus\n"},
		{name: "invalid log level", content: "data_dir: " + dir + "\nlog:\n  level: loud\n"},
		{name: "empty channel id", content: "data_dir: " + dir + "\nchannels:\n  - id: \"\"\n"},
		{name: "duplicate channel id", content: "data_dir: " + dir + "\nchannels:\n  - id: a\n  - id: a\n"},
		{name: "bad time format", content: "data_dir: " + dir + "\ntable:\n  time_format: \"%Q\"\n"},
		{name: "bad feed link", content: "data_dir: " + dir + "\nfeed:\n  link: ftp://example.org\n"},
		{name: "malformed yaml", content: "channels: [\n"},
		{name: "multiple documents", content: "data_dir: " + dir + "\n---\ndata_dir: " + dir + "\n"},
		{name: "wrong type", content: "channels: yes\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultConfigName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := NewLoader(path, "").Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "absent"), "").Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStrictConfig_FailsOnUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
data_dir: `+dir+`
chanels:
  - id: typo.de
`)

	_, err := NewLoader(path, "").Load()
	require.Error(t, err)
	if !errors.Is(err, ErrUnknownConfigField) {
		t.Fatalf("expected ErrUnknownConfigField, got: %v", err)
	}
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("base", "config"), ResolvePath("base", ""))
	assert.Equal(t, filepath.Join("base", "other.yaml"), ResolvePath("base", "other.yaml"))
	assert.Equal(t, "/etc/xmltv-new.yaml", ResolvePath("base", "/etc//xmltv-new.yaml"))
}

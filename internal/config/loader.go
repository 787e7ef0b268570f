// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/xmltv-new/internal/validate"
)

// DefaultConfigName is the configuration file looked up in the base directory.
const DefaultConfigName = "config"

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	version         string
	ConsumedEnvKeys map[string]struct{} // keys read during Load
}

// NewLoader creates a new configuration loader. An empty configPath skips the
// file stage and yields defaults plus environment overrides.
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

// ResolvePath joins a configuration name onto its base directory, leaving
// absolute names untouched.
func ResolvePath(base, name string) string {
	if name == "" {
		name = DefaultConfigName
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(base, name)
}

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

// Load loads configuration with precedence: ENV > File > Defaults, then
// resolves and validates it.
func (l *Loader) Load() (AppConfig, error) {
	cfg, err := l.load()
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return cfg, nil
}

func (l *Loader) load() (AppConfig, error) {
	// 1. Defaults
	fileCfg := &FileConfig{}

	// 2. File
	if l.configPath != "" {
		fc, err := l.loadFile(l.configPath)
		if err != nil {
			return AppConfig{}, fmt.Errorf("load config file %s: %w", l.configPath, err)
		}
		fileCfg = fc
	}

	cwd, err := os.Getwd()
	if err != nil {
		return AppConfig{}, fmt.Errorf("determine working directory: %w", err)
	}

	cfg := AppConfig{
		DataDir:     orDefault(fileCfg.DataDir, cwd),
		Timezone:    orDefault(fileCfg.Timezone, "Local"),
		LogLevel:    orDefault(fileCfg.Log.Level, string(validate.LogLevelWarn)),
		Table:       fileCfg.Table,
		Feed:        fileCfg.Feed,
		MetricsFile: fileCfg.MetricsFile,
		Version:     l.version,
	}
	cfg.ChannelIDs = make([]string, 0, len(fileCfg.Channels))
	for _, ch := range fileCfg.Channels {
		cfg.ChannelIDs = append(cfg.ChannelIDs, ch.ID)
	}

	// 3. Environment (highest priority)
	cfg.DataDir = l.envString(EnvDataDir, cfg.DataDir)
	cfg.Timezone = l.envString(EnvTimezone, cfg.Timezone)
	cfg.LogLevel = strings.ToLower(l.envString(EnvLogLevel, cfg.LogLevel))
	cfg.MetricsFile = l.envString(EnvMetricsFile, cfg.MetricsFile)

	if abs, err := filepath.Abs(cfg.DataDir); err == nil {
		cfg.DataDir = abs
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return cfg, fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	// 4. Validate final configuration
	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFile loads configuration from a YAML file with STRICT parsing.
// Unknown fields will cause a fatal error to prevent misconfiguration.
func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	// #nosec G304 -- configuration file paths are provided by the operator via CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	// Strict: Ensure no multiple documents or trailing content
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

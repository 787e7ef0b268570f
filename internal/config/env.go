// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/ManuGH/xmltv-new/internal/log"
)

// Environment overrides.
const (
	EnvDataDir     = "XMLTVNEW_DATA_DIR"
	EnvTimezone    = "XMLTVNEW_TIMEZONE"
	EnvLogLevel    = "XMLTVNEW_LOG_LEVEL"
	EnvMetricsFile = "XMLTVNEW_METRICS_FILE"
)

// ParseString reads a string from environment variable or returns default value.
// It logs the source (environment or default) for observability.
func ParseString(key, defaultValue string) string {
	return parseStringWithLogger(log.WithComponent("config"), key, defaultValue)
}

func parseStringWithLogger(logger zerolog.Logger, key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		if value == "" {
			logger.Debug().
				Str("key", key).
				Str("default", defaultValue).
				Str("source", "default").
				Msg("using default value (environment variable is empty)")
			return defaultValue
		}
		logger.Debug().
			Str("key", key).
			Str("value", value).
			Str("source", "environment").
			Msg("using environment variable")
		return value
	}
	logger.Debug().
		Str("key", key).
		Str("default", defaultValue).
		Str("source", "default").
		Msg("using default value")
	return defaultValue
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config loads the xmltv-new configuration.
//
// Precedence is ENV > file > defaults. The YAML file is parsed strictly:
// unknown keys, multiple documents and trailing content are rejected.
// Every failure wraps ErrConfiguration.
package config

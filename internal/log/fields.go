// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldService = "service"
	FieldVersion = "version"
	FieldRunID   = "run_id"

	// Process / pipeline fields
	FieldComponent = "component"
	FieldMode      = "mode"
	FieldDuration  = "duration_ms"

	// Input fields
	FieldDataDir = "data_dir"
	FieldFile    = "file"
	FieldChannel = "channel"
	FieldConfig  = "config"

	// Counters
	FieldOccurrences   = "occurrences"
	FieldFilesSeen     = "files_seen"
	FieldFilesSelected = "files_selected"

	// Output fields
	FieldOutput = "output"
)

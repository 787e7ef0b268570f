// SPDX-License-Identifier: MIT
package validate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name           string
		value          string
		allowedSchemes []string
		wantErr        bool
	}{
		{"valid http", "http://example.com", []string{"http", "https"}, false},
		{"valid https", "https://example.com/feed.atom", []string{"http", "https"}, false},
		{"empty url", "", []string{"http"}, true},
		{"no host", "http://", []string{"http"}, true},
		{"invalid scheme", "ftp://example.com", []string{"http", "https"}, true},
		{"no scheme", "example.com", []string{"http"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.URL("testURL", tt.value, tt.allowedSchemes)

			if tt.wantErr && v.IsValid() {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && !v.IsValid() {
				t.Errorf("unexpected error: %v", v.Err())
			}
		})
	}
}

func TestValidator_ExistingDirectory(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"existing", tmp, ""},
		{"empty", "", "cannot be empty"},
		{"missing", filepath.Join(tmp, "nope"), "does not exist"},
		{"file", file, "not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.ExistingDirectory("DataDir", tt.path)
			err := v.Err()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(tmp, "nope")); !os.IsNotExist(err) {
		t.Error("ExistingDirectory must not create directories")
	}
}

func TestValidator_Unique(t *testing.T) {
	v := New()
	v.Unique("Channels", []string{"a", "b", "a", "a"})
	if got := len(v.Errors()); got != 2 {
		t.Fatalf("expected 2 duplicate errors, got %d", got)
	}

	v = New()
	v.Unique("Channels", []string{"a", "b"})
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}
}

func TestValidator_OneOfAndNotEmpty(t *testing.T) {
	v := New()
	v.OneOf("Level", "loud", LogLevels)
	v.NotEmpty("ID", "  ")
	v.OneOf("Level", "warn", LogLevels)
	v.NotEmpty("ID", "x")

	if len(v.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %v", v.Errors())
	}
}

func TestValidationError_Message(t *testing.T) {
	v := New()
	if v.Err() != nil {
		t.Fatal("empty validator must not produce an error")
	}

	v.AddError("A", "bad", 1)
	if got := v.Err().Error(); got != "validation failed for A: bad" {
		t.Errorf("unexpected single message %q", got)
	}

	v.AddError("B", "worse", 2)
	err := v.Err()
	if got := err.Error(); got != "validation failed for A: bad; validation failed for B: worse" {
		t.Errorf("unexpected joined message %q", got)
	}

	var ve ValidationError
	if !errors.As(err, &ve) || len(ve.Errors()) != 2 {
		t.Errorf("expected ValidationError with 2 entries, got %#v", err)
	}
}

func TestValidator_Custom(t *testing.T) {
	v := New()
	v.Custom("TZ", "Mars/Olympus", func(interface{}) error { return errors.New("unknown time zone") })
	if v.IsValid() {
		t.Fatal("expected custom validation error")
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, l := range LogLevels {
		if _, err := ParseLogLevel(l); err != nil {
			t.Errorf("ParseLogLevel(%q) unexpected error: %v", l, err)
		}
	}
	if _, err := ParseLogLevel("trace"); err == nil {
		t.Error("expected error for trace")
	}
}

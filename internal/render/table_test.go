// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/xmltv-new/internal/schedule"
)

func at(day, h, m int) time.Time {
	return time.Date(2099, 1, day, h, m, 0, 0, time.UTC)
}

func readGolden(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err, "read golden file %s", name)
	return string(b)
}

func basicFixture() ([]schedule.Occurrence, schedule.Registry) {
	reg := schedule.Registry{
		"1.bbc.co.uk": "BBC One",
		"2.bbc.co.uk": "BBC Two",
		"3.example":   "",
	}
	occ := []schedule.Occurrence{
		{
			Channel: "1.bbc.co.uk", Start: at(1, 20, 0), Stop: at(1, 21, 0),
			Title: "Doctor Who", SubTitle: "Episode 1", Description: "The Doctor returns.",
			Categories: []string{"Drama", "Sci-Fi"}, Directors: []string{"Jane Doe"},
			Actors: []string{"John Smith", "Ann Other"},
		},
		{
			Channel: "3.example", Start: at(1, 20, 30), Stop: at(1, 21, 30),
			Title: "Mystery Show",
		},
		{
			Channel: "2.bbc.co.uk", Start: at(2, 9, 0), Stop: at(2, 10, 0),
			Title: "Q & A <Live>", SubTitle: `Part "2"`, Description: "Viewers' questions <unscripted>",
			Categories: []string{"Talk & Chat"}, Actors: []string{"Host & Co"},
		},
	}
	return occ, reg
}

func TestTable_Golden(t *testing.T) {
	occ, reg := basicFixture()

	tests := []struct {
		name   string
		occ    []schedule.Occurrence
		reg    schedule.Registry
		golden string
	}{
		{name: "basic", occ: occ, reg: reg, golden: "table_basic.golden"},
		{name: "empty", occ: nil, reg: reg, golden: "table_empty.golden"},
		{
			name: "wide characters",
			occ: []schedule.Occurrence{
				{Channel: "nhk", Start: at(1, 20, 0), Stop: at(1, 21, 0), Title: "ニュース"},
				{Channel: "arte", Start: at(1, 21, 0), Stop: at(1, 22, 0), Title: "Café", SubTitle: "Épisode"},
			},
			reg:    schedule.Registry{"nhk": "NHK総合", "arte": "Arte"},
			golden: "table_wide.golden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Table(&buf, tt.occ, tt.reg, TableOptions{}))
			assert.Equal(t, readGolden(t, tt.golden), buf.String())
		})
	}
}

func TestTable_TimeFormat(t *testing.T) {
	occ := []schedule.Occurrence{{Channel: "c", Start: at(1, 20, 0), Stop: at(1, 21, 5), Title: "T"}}

	var buf bytes.Buffer
	require.NoError(t, Table(&buf, occ, schedule.Registry{"c": "C"}, TableOptions{TimeFormat: "%d/%m %H:%M"}))
	assert.Contains(t, buf.String(), "| 01/01 20:00 | 01/01 21:05 |")
}

func TestTable_NoOffsetInDefaultFormat(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	occ := []schedule.Occurrence{{
		Channel: "c",
		Start:   time.Date(2099, 1, 1, 20, 0, 0, 0, loc),
		Stop:    time.Date(2099, 1, 1, 21, 0, 0, 0, loc),
	}}

	var buf bytes.Buffer
	require.NoError(t, Table(&buf, occ, schedule.Registry{"c": "C"}, TableOptions{}))
	assert.Contains(t, buf.String(), "| 2099-01-01 20:00:00 | 2099-01-01 21:00:00 |")
	assert.NotContains(t, buf.String(), "+01")
}

func TestTable_CollapsesWhitespace(t *testing.T) {
	occ := []schedule.Occurrence{{Channel: "c", Start: at(1, 20, 0), Stop: at(1, 21, 0), Title: "Two\nLines\tHere"}}

	var buf bytes.Buffer
	require.NoError(t, Table(&buf, occ, schedule.Registry{"c": "C"}, TableOptions{}))
	assert.Contains(t, buf.String(), "| Two Lines Here |")
}

func TestTable_InvalidTimeFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Table(&buf, nil, schedule.Registry{}, TableOptions{TimeFormat: "%Q"})
	require.Error(t, err)
	assert.Zero(t, buf.Len(), "nothing is written on error")
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"総合", 4},
		{"Café", 4},
		{"Ｆｕｌｌ", 8},
		{"a\u200db", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, displayWidth(tt.in), "displayWidth(%q)", tt.in)
	}
}

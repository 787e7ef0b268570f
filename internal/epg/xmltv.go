// SPDX-License-Identifier: MIT

// Package epg provides the XMLTV schema layer: document types, a strict
// decoder and the timestamp and snapshot naming conventions.
package epg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// maxSnapshotSize bounds a single snapshot document. A truncated read surfaces
// as a parse error rather than a silently shortened schedule.
const maxSnapshotSize = 256 * 1024 * 1024

// ErrSnapshotParse classifies snapshot documents that are not valid XMLTV markup.
// Use errors.Is(err, ErrSnapshotParse) instead of string matching.
var ErrSnapshotParse = errors.New("snapshot parse error")

type TV struct {
	XMLName    xml.Name    `xml:"tv"`
	Channels   []Channel   `xml:"channel"`
	Programmes []Programme `xml:"programme"`
}

type Channel struct {
	ID           string `xml:"id,attr"`
	DisplayNames []Text `xml:"display-name"`
}

// Text is a text-valued XMLTV element with an optional language.
type Text struct {
	Lang  string `xml:"lang,attr,omitempty"`
	Value string `xml:",chardata"`
}

// Marker is an empty flag element such as <new/>.
type Marker struct{}

type Credits struct {
	Directors []Text `xml:"director"`
	Actors    []Text `xml:"actor"`
}

type Programme struct {
	Start        string   `xml:"start,attr"`
	Stop         string   `xml:"stop,attr"`
	Channel      string   `xml:"channel,attr"`
	Titles       []Text   `xml:"title"`
	SubTitles    []Text   `xml:"sub-title"`
	Descs        []Text   `xml:"desc"`
	CategoryList []Text   `xml:"category"`
	Credits      *Credits `xml:"credits"`
	New          *Marker  `xml:"new"`
}

// Decode parses one XMLTV document. Decoding is strict: custom entities are
// not expanded, non-UTF-8 encodings are transcoded, and anything other than
// whitespace, comments or processing instructions after the root element is
// rejected. Every failure wraps ErrSnapshotParse.
func Decode(r io.Reader) (*TV, error) {
	dec := xml.NewDecoder(io.LimitReader(r, maxSnapshotSize))
	dec.Strict = true
	dec.Entity = make(map[string]string)
	dec.CharsetReader = charset.NewReaderLabel

	var doc TV
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrSnapshotParse)
		}
		return nil, fmt.Errorf("%w: decode xmltv: %w", ErrSnapshotParse, err)
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: trailing content: %w", ErrSnapshotParse, err)
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(trimSpace(t)) != 0 {
				return nil, fmt.Errorf("%w: junk after document element", ErrSnapshotParse)
			}
		default:
			return nil, fmt.Errorf("%w: junk after document element", ErrSnapshotParse)
		}
	}

	return &doc, nil
}

func trimSpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isSpace(b[start]) {
		start++
	}
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package render

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ManuGH/xmltv-new/internal/schedule"
)

const (
	atomNS  = "http://www.w3.org/2005/Atom"
	xhtmlNS = "http://www.w3.org/1999/xhtml"

	// DefaultFeedTitle is used when no feed title is configured.
	DefaultFeedTitle = "New TV programmes"
	// DefaultFeedAuthor is used when no feed author is configured.
	DefaultFeedAuthor = "xmltv-new"
)

// ErrMissingFeedID is returned by Feed when FeedOptions.ID is empty; an Atom
// feed must carry a permanent identifier. FeedID derives one from a data directory.
var ErrMissingFeedID = errors.New("atom feed id is required")

// FeedOptions controls feed-level metadata.
type FeedOptions struct {
	Title     string
	ID        string // required
	Author    string
	Link      string // optional rel="self" URL
	Generator string
	Updated   time.Time
}

type atomFeed struct {
	XMLName   xml.Name    `xml:"http://www.w3.org/2005/Atom feed"`
	Title     string      `xml:"title"`
	ID        string      `xml:"id"`
	Updated   string      `xml:"updated"`
	Link      *atomLink   `xml:"link,omitempty"`
	Author    atomPerson  `xml:"author"`
	Generator string      `xml:"generator,omitempty"`
	Entries   []atomEntry `xml:"entry"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

type atomPerson struct {
	Name string `xml:"name"`
}

type atomEntry struct {
	Title      string         `xml:"title"`
	ID         string         `xml:"id"`
	Published  string         `xml:"published"`
	Updated    string         `xml:"updated"`
	Categories []atomCategory `xml:"category"`
	Content    atomContent    `xml:"content"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// atomContent holds a prebuilt XHTML div. The div and its children are
// written verbatim so they all stay in the XHTML default namespace.
type atomContent struct {
	Type  string `xml:"type,attr"`
	XHTML string `xml:",innerxml"`
}

// Indentation of the content block inside a MarshalIndent'ed entry.
const (
	contentIndent = "    "
	divIndent     = contentIndent + "  "
	blockIndent   = divIndent + "  "
	itemIndent    = blockIndent + "  "
)

// FeedID returns the default feed identifier for a data directory: a name
// based UUID of its file URL, stable for as long as the directory is.
func FeedID(absDataDir string) string {
	u := "file://" + filepath.ToSlash(absDataDir)
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(u)).String()
}

// EntryTitle formats "[channel] title (subtitle)"; the parenthesised part is
// omitted when there is no subtitle.
func EntryTitle(displayName string, o schedule.Occurrence) string {
	s := fmt.Sprintf("[%s] %s", displayName, o.Title)
	if o.SubTitle != "" {
		s += " (" + o.SubTitle + ")"
	}
	return s
}

// Feed writes occ as an Atom 1.0 document, one entry per occurrence in the
// given order. Entry IDs are occurrence identities; only the feed-level
// updated timestamp depends on the clock.
func Feed(w io.Writer, occ []schedule.Occurrence, reg schedule.Registry, opts FeedOptions) error {
	if strings.TrimSpace(opts.ID) == "" {
		return ErrMissingFeedID
	}
	feed := atomFeed{
		Title:     opts.Title,
		ID:        opts.ID,
		Updated:   opts.Updated.Format(time.RFC3339),
		Author:    atomPerson{Name: opts.Author},
		Generator: opts.Generator,
		Entries:   make([]atomEntry, 0, len(occ)),
	}
	if feed.Title == "" {
		feed.Title = DefaultFeedTitle
	}
	if feed.Author.Name == "" {
		feed.Author.Name = DefaultFeedAuthor
	}
	if opts.Link != "" {
		feed.Link = &atomLink{Rel: "self", Href: opts.Link}
	}

	for _, o := range occ {
		feed.Entries = append(feed.Entries, entry(reg, o))
	}

	out, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal atom feed: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(xml.Header) + len(out) + 1)
	buf.WriteString(xml.Header)
	buf.Write(out)
	buf.WriteByte('\n')

	_, err = w.Write(buf.Bytes())
	return err
}

func entry(reg schedule.Registry, o schedule.Occurrence) atomEntry {
	published := o.Start.Format(time.RFC3339)

	e := atomEntry{
		Title:     EntryTitle(reg.DisplayName(o.Channel), o),
		ID:        schedule.Identity(o),
		Published: published,
		Updated:   published,
		Content:   atomContent{Type: "xhtml", XHTML: content(o)},
	}
	for _, c := range o.Categories {
		e.Categories = append(e.Categories, atomCategory{Term: c})
	}
	return e
}

// content renders the xhtml div of an entry: the description paragraph,
// then labelled Directors and Cast lists when present.
func content(o schedule.Occurrence) string {
	var b strings.Builder
	b.WriteString("\n" + divIndent + `<div xmlns="` + xhtmlNS + `">`)
	paragraph(&b, o.Description)
	if len(o.Directors) > 0 {
		paragraph(&b, "Directors:")
		list(&b, o.Directors)
	}
	if len(o.Actors) > 0 {
		paragraph(&b, "Cast:")
		list(&b, o.Actors)
	}
	b.WriteString("\n" + divIndent + "</div>\n" + contentIndent)
	return b.String()
}

func paragraph(b *strings.Builder, text string) {
	b.WriteString("\n" + blockIndent + "<p>")
	escape(b, text)
	b.WriteString("</p>")
}

func list(b *strings.Builder, items []string) {
	b.WriteString("\n" + blockIndent + "<ul>")
	for _, it := range items {
		b.WriteString("\n" + itemIndent + "<li>")
		escape(b, it)
		b.WriteString("</li>")
	}
	b.WriteString("\n" + blockIndent + "</ul>")
}

// escape writes text with the same escaping encoding/xml applies to chardata.
func escape(b *strings.Builder, text string) {
	// strings.Builder never returns a write error.
	_ = xml.EscapeText(b, []byte(text))
}

// Package takeout splits a Google Takeout watch-history HTML export
// into per-entry fragments and projects each fragment into its raw
// fields. It performs no date parsing and no video/ad decision; those
// belong to the history package.
package takeout

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrMalformed marks a fragment that lacks the minimum structure
// shared by all history entries. The fragment is dropped; the run
// continues.
var ErrMalformed = errors.New("malformed history fragment")

// Fragment is one markup unit representing a single watch-history
// entry, as cut out of the export document.
type Fragment struct {
	HTML string
}

// RawEntry is the structural projection of one fragment. Any field
// except Timestamp may be empty; a missing channel is meaningful
// input for ad classification, not an extraction failure.
type RawEntry struct {
	Title       string
	Link        string
	ChannelName string
	ChannelLink string
	Timestamp   string // localized free text, e.g. "Jan 5, 2021, 8:14:03 PM PST"
}

const (
	outerCellSelector = "div.outer-cell"
	bodyCellSelector  = "div.content-cell.mdl-typography--body-1"
)

var (
	watchHrefRe   = regexp.MustCompile(`youtube\.com/watch`)
	channelHrefRe = regexp.MustCompile(`youtube\.com/(channel|c|@|user)`)
)

// Split cuts the export document into one Fragment per history entry.
// It reads the whole document; the caller owns opening and closing
// the underlying file.
func Split(r io.Reader) ([]Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse export document: %w", err)
	}

	var fragments []Fragment
	doc.Find(outerCellSelector).Each(func(_ int, sel *goquery.Selection) {
		html, err := goquery.OuterHtml(sel)
		if err != nil {
			return
		}
		fragments = append(fragments, Fragment{HTML: html})
	})

	if fragments == nil {
		fragments = []Fragment{}
	}
	return fragments, nil
}

// Extract projects one fragment into its raw fields. It returns
// ErrMalformed when the entry body cell is missing or carries no
// trailing timestamp text. Missing title/link/channel fields are
// returned empty, not treated as errors.
func Extract(f Fragment) (RawEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(f.HTML))
	if err != nil {
		return RawEntry{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	body := doc.Find(bodyCellSelector).First()
	if body.Length() == 0 {
		return RawEntry{}, fmt.Errorf("%w: no body cell", ErrMalformed)
	}

	var entry RawEntry
	body.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		switch {
		case entry.Link == "" && watchHrefRe.MatchString(href):
			entry.Link = href
			entry.Title = strings.TrimSpace(a.Text())
		case entry.ChannelLink == "" && channelHrefRe.MatchString(href):
			entry.ChannelLink = href
			entry.ChannelName = strings.TrimSpace(a.Text())
		}
	})

	entry.Timestamp = trailingText(body)
	if entry.Timestamp == "" {
		return RawEntry{}, fmt.Errorf("%w: no timestamp text", ErrMalformed)
	}

	return entry, nil
}

// trailingText returns the last non-empty text node directly under
// the body cell. In the export format the entry's date/time string
// always sits after the final <br>, so it is that last node.
func trailingText(body *goquery.Selection) string {
	last := ""
	body.Contents().Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		if node.Type != html.TextNode {
			return
		}
		if text := strings.TrimSpace(node.Data); text != "" {
			last = text
		}
	})
	return last
}

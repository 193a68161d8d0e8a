// Package history turns raw takeout entries into a typed, immutable,
// time-ordered record store: it classifies each entry as a video view
// or an advertisement impression, normalizes its localized timestamp,
// and drops (while counting) entries that cannot be salvaged.
package history

import (
	"time"

	"watchlog/internal/takeout"
)

// Kind distinguishes a genuine video view from an advertisement
// impression.
type Kind int

const (
	KindVideo Kind = iota
	KindAd
)

// String returns the lowercase label used in output and logs.
func (k Kind) String() string {
	if k == KindAd {
		return "ad"
	}
	return "video"
}

// Record is one parsed, classified, timestamped viewing or
// ad-impression event. Title, Link, ChannelName and ChannelLink may
// be empty (most ads carry no channel identity); Timestamp is always
// valid, entries without a parseable timestamp are never stored.
type Record struct {
	Title       string
	Link        string
	ChannelName string
	ChannelLink string
	Timestamp   time.Time
	Kind        Kind
}

// Dropped counts fragments excluded during a build, by reason.
type Dropped struct {
	Malformed   int // fragment lacked the minimum entry structure
	Unparseable int // timestamp text could not be normalized
}

// Total returns the number of dropped fragments across all reasons.
func (d Dropped) Total() int {
	return d.Malformed + d.Unparseable
}

// classify tags a raw entry as video or ad. The export renders
// advertisements without a clickable channel identity, so channel
// link absence is the whole rule. A deleted channel on a genuine
// video entry trips the same rule; that false positive is a known
// property of the source format and is kept as-is.
func classify(raw takeout.RawEntry) Kind {
	if raw.ChannelLink == "" {
		return KindAd
	}
	return KindVideo
}

package history

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"watchlog/internal/takeout"
)

// Options controls a store build.
type Options struct {
	// Location is the reference offset all stored timestamps are
	// normalized into; it is also the assumed zone for timestamp
	// text carrying no zone token. Nil means UTC.
	Location *time.Location
	Logger   zerolog.Logger
}

// Store is the immutable, time-ordered collection of records for one
// run. Built once; every index and query result is a derived view.
type Store struct {
	records []*Record
	videos  int
	ads     int
	dropped Dropped
}

// Build runs extraction, classification and timestamp normalization
// over the given fragments, drops the ones that cannot be salvaged,
// and returns the surviving records sorted by timestamp ascending
// (document order breaks ties). Build never fails: malformed input
// costs individual records, not the run.
func Build(fragments []takeout.Fragment, opts Options) *Store {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	s := &Store{records: make([]*Record, 0, len(fragments))}
	start := time.Now()

	for _, frag := range fragments {
		raw, err := takeout.Extract(frag)
		if err != nil {
			s.dropped.Malformed++
			opts.Logger.Debug().Err(err).Msg("dropped malformed fragment")
			continue
		}

		ts, err := ParseTimestamp(raw.Timestamp, loc)
		if err != nil {
			s.dropped.Unparseable++
			opts.Logger.Debug().Str("text", raw.Timestamp).Msg("dropped entry with unparseable timestamp")
			continue
		}

		rec := &Record{
			Title:       raw.Title,
			Link:        raw.Link,
			ChannelName: raw.ChannelName,
			ChannelLink: raw.ChannelLink,
			Timestamp:   ts.In(loc),
			Kind:        classify(raw),
		}
		if rec.Kind == KindAd {
			s.ads++
		} else {
			s.videos++
		}
		s.records = append(s.records, rec)
	}

	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].Timestamp.Before(s.records[j].Timestamp)
	})

	opts.Logger.Info().
		Int("records", len(s.records)).
		Int("videos", s.videos).
		Int("ads", s.ads).
		Int("dropped", s.dropped.Total()).
		Dur("duration", time.Since(start)).
		Msg("history store built")

	return s
}

// Records returns the stored records in chronological order. The
// returned slice is shared; callers must treat it as read-only.
func (s *Store) Records() []*Record { return s.records }

// Len returns the total number of stored records.
func (s *Store) Len() int { return len(s.records) }

// Videos returns the number of records classified as video views.
func (s *Store) Videos() int { return s.videos }

// Ads returns the number of records classified as ad impressions.
func (s *Store) Ads() int { return s.ads }

// Dropped reports how many fragments were excluded during the build.
func (s *Store) Dropped() Dropped { return s.dropped }

// Span returns the timestamps of the oldest and newest records. Both
// are zero for an empty store.
func (s *Store) Span() (oldest, newest time.Time) {
	if len(s.records) == 0 {
		return time.Time{}, time.Time{}
	}
	return s.records[0].Timestamp, s.records[len(s.records)-1].Timestamp
}

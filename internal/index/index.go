// Package index derives grouping structures from an immutable record
// store. Buckets are built lazily on first use and cached for the
// rest of the run; they hold back-references into the store, never
// copies.
package index

import (
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"

	"watchlog/internal/history"
)

// ErrUnknownGranularity is returned for a granularity outside the
// supported set.
var ErrUnknownGranularity = errors.New("unknown granularity")

// Granularity is a time or categorical dimension records are
// bucketed by.
type Granularity int

const (
	Year Granularity = iota
	Month
	Day
	Hour
	Weekday
	Channel
	Title
)

// String returns the lowercase granularity name used in output.
func (g Granularity) String() string {
	switch g {
	case Year:
		return "year"
	case Month:
		return "month"
	case Day:
		return "day"
	case Hour:
		return "hour"
	case Weekday:
		return "weekday"
	case Channel:
		return "channel"
	case Title:
		return "title"
	default:
		return fmt.Sprintf("granularity(%d)", int(g))
	}
}

// KindFilter selects which record kinds take part in a grouping.
type KindFilter int

const (
	All KindFilter = iota
	VideosOnly
	AdsOnly
)

// Match reports whether a record passes the filter.
func (f KindFilter) Match(r *history.Record) bool {
	switch f {
	case VideosOnly:
		return r.Kind == history.KindVideo
	case AdsOnly:
		return r.Kind == history.KindAd
	default:
		return true
	}
}

type cacheKey struct {
	g Granularity
	f KindFilter
}

// Index builds and caches groupings over one record store.
type Index struct {
	store *history.Store

	mu    sync.RWMutex
	cache map[cacheKey]map[string][]*history.Record
}

// New creates an Index over the given store. No grouping is computed
// until first requested.
func New(store *history.Store) *Index {
	return &Index{
		store: store,
		cache: make(map[cacheKey]map[string][]*history.Record),
	}
}

// GroupBy partitions the records passing the kind filter into
// buckets keyed by the canonical key for the granularity. Every
// matching record lands in exactly one bucket, and bucket contents
// preserve the store's chronological order. Results are cached;
// concurrent readers are safe once the store is built.
func (ix *Index) GroupBy(g Granularity, f KindFilter) (map[string][]*history.Record, error) {
	if g < Year || g > Title {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGranularity, int(g))
	}

	key := cacheKey{g: g, f: f}
	ix.mu.RLock()
	if buckets, ok := ix.cache[key]; ok {
		ix.mu.RUnlock()
		return buckets, nil
	}
	ix.mu.RUnlock()

	matching := lo.Filter(ix.store.Records(), func(r *history.Record, _ int) bool {
		return f.Match(r)
	})
	buckets := lo.GroupBy(matching, func(r *history.Record) string {
		return Key(g, r)
	})

	ix.mu.Lock()
	ix.cache[key] = buckets
	ix.mu.Unlock()
	return buckets, nil
}

// Key returns the canonical bucket key of a record for a granularity:
// "2013", "2013-07", "2013-07-22", "14", "Mon", the channel name or
// the title.
func Key(g Granularity, r *history.Record) string {
	switch g {
	case Year:
		return r.Timestamp.Format("2006")
	case Month:
		return r.Timestamp.Format("2006-01")
	case Day:
		return r.Timestamp.Format("2006-01-02")
	case Hour:
		return r.Timestamp.Format("15")
	case Weekday:
		return r.Timestamp.Format("Mon")
	case Channel:
		return r.ChannelName
	default:
		return r.Title
	}
}

// Package query answers the analysis catalog over a built record
// store. Each mode composes a kind/year/channel/date/keyword filter,
// one of a small set of aggregations, and a uniform tie-break rule;
// results are pure reads and safe to evaluate concurrently.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"watchlog/internal/history"
	"watchlog/internal/index"
)

// ErrInvalidParameter is the only error category queries surface:
// parameters outside their declared domain, rejected before any
// aggregation work. An empty result is never an error.
var ErrInvalidParameter = errors.New("invalid query parameter")

// DefaultLimit bounds top-N and first-N results when the caller does
// not ask for a specific count.
const DefaultLimit = 10

// Params carries the per-mode query parameters. Zero values mean
// "not set" for the optional ones.
type Params struct {
	Limit   int    // top-N / first-N size; 0 means DefaultLimit
	Year    int    // optional year scope
	Channel string // channel-first-videos: case-insensitive substring
	Date    string // *-on-date modes: "2006-01-02"
	Keyword string // search-titles: case-insensitive substring
}

// KeyCount is one ranked or keyed bucket: its canonical key, its
// record count and the timestamp of its earliest member.
type KeyCount struct {
	Key   string
	Count int
	First time.Time
}

// Summary aggregates whole-store totals.
type Summary struct {
	Records int
	Videos  int
	Ads     int
	Dropped history.Dropped
	Oldest  time.Time
	Newest  time.Time
}

// YearResult is one year's slice of a per-year mode.
type YearResult struct {
	Year    int
	Counts  []KeyCount
	Records []*history.Record
}

// Result is the output of one mode run. Exactly one of Counts,
// Records, ByYear or Summary is populated, depending on the mode's
// aggregation; Granularity and Params describe how to present it.
type Result struct {
	Mode        Mode
	Granularity index.Granularity
	Params      Params
	Counts      []KeyCount
	Records     []*history.Record
	ByYear      []YearResult
	Summary     *Summary
}

// Engine evaluates catalog modes against one store and its index.
type Engine struct {
	store *history.Store
	idx   *index.Index
}

// New creates an Engine over a built store.
func New(store *history.Store, idx *index.Index) *Engine {
	return &Engine{store: store, idx: idx}
}

// Run validates the parameters for the given mode and evaluates it.
// Unknown modes, malformed dates and missing required parameters are
// rejected up front; queries matching nothing return empty results.
func (e *Engine) Run(mode Mode, p Params) (*Result, error) {
	spec, ok := lookup(mode)
	if !ok {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidParameter, mode)
	}
	if err := validate(spec, p); err != nil {
		return nil, err
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}

	res := &Result{Mode: mode, Granularity: spec.gran, Params: p}

	switch spec.agg {
	case aggFirstN:
		recs := e.filtered(spec, p)
		if spec.perYear {
			res.ByYear = perYear(recs, func(sub []*history.Record) YearResult {
				return YearResult{Records: firstN(sub, p.Limit)}
			})
		} else {
			res.Records = firstN(recs, p.Limit)
		}
	case aggTopCount:
		if spec.perYear {
			res.ByYear = perYear(e.filtered(spec, p), func(sub []*history.Record) YearResult {
				return YearResult{Counts: rank(groupBy(sub, spec.gran), p.Limit)}
			})
		} else {
			buckets, err := e.buckets(spec, p)
			if err != nil {
				return nil, err
			}
			res.Counts = rank(buckets, p.Limit)
		}
	case aggCountByKey:
		buckets, err := e.buckets(spec, p)
		if err != nil {
			return nil, err
		}
		res.Counts = keyOrder(buckets, spec.gran)
	case aggOnDate:
		res.Records = e.filtered(spec, p)
	case aggSearch:
		res.Records = firstN(e.filtered(spec, p), p.Limit)
	case aggSummary:
		oldest, newest := e.store.Span()
		res.Summary = &Summary{
			Records: e.store.Len(),
			Videos:  e.store.Videos(),
			Ads:     e.store.Ads(),
			Dropped: e.store.Dropped(),
			Oldest:  oldest,
			Newest:  newest,
		}
	}

	return res, nil
}

func validate(spec modeSpec, p Params) error {
	if p.Limit < 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidParameter, p.Limit)
	}
	if p.Year < 0 {
		return fmt.Errorf("%w: year must be positive, got %d", ErrInvalidParameter, p.Year)
	}
	if spec.needsChannel && strings.TrimSpace(p.Channel) == "" {
		return fmt.Errorf("%w: mode %q requires a channel", ErrInvalidParameter, spec.mode)
	}
	if spec.needsKeyword && strings.TrimSpace(p.Keyword) == "" {
		return fmt.Errorf("%w: mode %q requires a keyword", ErrInvalidParameter, spec.mode)
	}
	if spec.needsDate {
		if p.Date == "" {
			return fmt.Errorf("%w: mode %q requires a date", ErrInvalidParameter, spec.mode)
		}
		if _, err := time.Parse("2006-01-02", p.Date); err != nil {
			return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidParameter, p.Date)
		}
	}
	return nil
}

// buckets returns the grouping for a counting mode. The common
// unscoped case is served by the lazily cached index; a year scope
// filters first and groups the subset.
func (e *Engine) buckets(spec modeSpec, p Params) (map[string][]*history.Record, error) {
	if p.Year == 0 {
		return e.idx.GroupBy(spec.gran, spec.filter)
	}
	return groupBy(e.filtered(spec, p), spec.gran), nil
}

// filtered applies the mode's kind filter plus the optional year,
// channel, date and keyword filters, preserving chronological order.
func (e *Engine) filtered(spec modeSpec, p Params) []*history.Record {
	return lo.Filter(e.store.Records(), func(r *history.Record, _ int) bool {
		if !spec.filter.Match(r) {
			return false
		}
		if p.Year != 0 && r.Timestamp.Year() != p.Year {
			return false
		}
		if spec.needsDate && index.Key(index.Day, r) != p.Date {
			return false
		}
		if spec.needsChannel && !containsFold(r.ChannelName, p.Channel) {
			return false
		}
		if spec.needsKeyword && !containsFold(r.Title, p.Keyword) {
			return false
		}
		return true
	})
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func groupBy(recs []*history.Record, g index.Granularity) map[string][]*history.Record {
	return lo.GroupBy(recs, func(r *history.Record) string {
		return index.Key(g, r)
	})
}

// firstN returns the first n records of an already-chronological
// subsequence.
func firstN(recs []*history.Record, n int) []*history.Record {
	if n > len(recs) {
		n = len(recs)
	}
	out := make([]*history.Record, n)
	copy(out, recs[:n])
	return out
}

// rank orders buckets by occurrence count, descending. Ties break by
// earliest first-occurrence timestamp, then by key, so rankings are
// reproducible across runs.
func rank(buckets map[string][]*history.Record, n int) []KeyCount {
	counts := toKeyCounts(buckets)
	sort.Slice(counts, func(i, j int) bool {
		a, b := counts[i], counts[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if !a.First.Equal(b.First) {
			return a.First.Before(b.First)
		}
		return a.Key < b.Key
	})
	if n < len(counts) {
		counts = counts[:n]
	}
	return counts
}

// keyOrder returns one KeyCount per non-empty bucket in ascending
// key order. Zero-filling absent ordinal buckets is the formatter's
// job.
func keyOrder(buckets map[string][]*history.Record, g index.Granularity) []KeyCount {
	counts := toKeyCounts(buckets)
	sort.Slice(counts, func(i, j int) bool {
		return lessKey(g, counts[i].Key, counts[j].Key)
	})
	return counts
}

func toKeyCounts(buckets map[string][]*history.Record) []KeyCount {
	return lo.MapToSlice(buckets, func(key string, recs []*history.Record) KeyCount {
		return KeyCount{Key: key, Count: len(recs), First: recs[0].Timestamp}
	})
}

// lessKey orders canonical keys. Weekday keys get calendar order;
// everything else sorts lexically, which is chronological for the
// zero-padded time keys.
func lessKey(g index.Granularity, a, b string) bool {
	if g == index.Weekday {
		return weekdayOrder(a) < weekdayOrder(b)
	}
	return a < b
}

var weekdayKeys = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func weekdayOrder(key string) int {
	for i, day := range weekdayKeys {
		if day == key {
			return i
		}
	}
	return len(weekdayKeys)
}

// perYear slices the filtered records by year and re-runs the same
// aggregation once per distinct year, ascending.
func perYear(recs []*history.Record, agg func([]*history.Record) YearResult) []YearResult {
	byYear := lo.GroupBy(recs, func(r *history.Record) int {
		return r.Timestamp.Year()
	})
	years := lo.Keys(byYear)
	sort.Ints(years)

	results := make([]YearResult, 0, len(years))
	for _, year := range years {
		yr := agg(byYear[year])
		yr.Year = year
		results = append(results, yr)
	}
	return results
}

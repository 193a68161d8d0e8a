// Package report shapes query results for the presentation layer:
// row-oriented tables for console display, and label/value series
// for a bar-chart renderer, with absent ordinal buckets filled in as
// zeros so charts keep their full axis.
package report

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/samber/lo"

	"watchlog/internal/history"
	"watchlog/internal/index"
	"watchlog/internal/query"
)

// ErrNotChartable is returned for results that have no meaningful
// series form (summaries, per-year breakdowns, first-N lists).
var ErrNotChartable = errors.New("result has no chart form")

// Table is an ordered, row-oriented rendering of a result.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Series is a chart-ready pair of parallel label and value slices.
type Series struct {
	Labels []string
	Values []int
}

const timestampLayout = "2006-01-02 15:04:05"

// BuildTable renders any result as a table over the fixed field set
// (title, channel, link, timestamp, count).
func BuildTable(res *query.Result) Table {
	switch {
	case res.Summary != nil:
		return summaryTable(res.Summary)
	case res.ByYear != nil:
		return perYearTable(res)
	case res.Counts != nil:
		return countsTable(res.Granularity.String(), res.Counts)
	default:
		return recordsTable(res.Records)
	}
}

func countsTable(keyName string, counts []query.KeyCount) Table {
	t := Table{Columns: []string{keyName, "count"}}
	for _, kc := range counts {
		t.Rows = append(t.Rows, []string{kc.Key, strconv.Itoa(kc.Count)})
	}
	return t
}

func recordsTable(recs []*history.Record) Table {
	t := Table{Columns: []string{"timestamp", "title", "channel", "link"}}
	for _, r := range recs {
		t.Rows = append(t.Rows, []string{
			r.Timestamp.Format(timestampLayout), r.Title, r.ChannelName, r.Link,
		})
	}
	return t
}

func perYearTable(res *query.Result) Table {
	var t Table
	for _, yr := range res.ByYear {
		inner := countsTable(res.Granularity.String(), yr.Counts)
		if yr.Records != nil {
			inner = recordsTable(yr.Records)
		}
		if t.Columns == nil {
			t.Columns = append([]string{"year"}, inner.Columns...)
		}
		year := strconv.Itoa(yr.Year)
		for _, row := range inner.Rows {
			t.Rows = append(t.Rows, append([]string{year}, row...))
		}
	}
	if t.Columns == nil {
		t.Columns = []string{"year"}
	}
	return t
}

// hourHistogram is the chart form of a single-date record list: the
// day's 24 hour buckets, zero-filled.
func hourHistogram(recs []*history.Record) Series {
	s := Series{Labels: hourKeys(), Values: make([]int, 24)}
	for _, r := range recs {
		s.Values[r.Timestamp.Hour()]++
	}
	return s
}

func summaryTable(s *query.Summary) Table {
	t := Table{Columns: []string{"field", "value"}}
	add := func(field, value string) {
		t.Rows = append(t.Rows, []string{field, value})
	}
	add("records", strconv.Itoa(s.Records))
	add("videos", strconv.Itoa(s.Videos))
	add("ads", strconv.Itoa(s.Ads))
	add("dropped_malformed", strconv.Itoa(s.Dropped.Malformed))
	add("dropped_unparseable", strconv.Itoa(s.Dropped.Unparseable))
	if s.Records > 0 {
		add("oldest", s.Oldest.Format(timestampLayout))
		add("newest", s.Newest.Format(timestampLayout))
	}
	return t
}

// BuildSeries renders a result as a chart series. Ordinal
// granularities are zero-filled: a monthly chart always has 12
// points, an hourly chart 24, a weekday chart 7, a yearly chart one
// per year of the covered span. Ranked granularities (channel,
// title, top days) keep their ranking order without fill.
func BuildSeries(res *query.Result) (Series, error) {
	if res.Records != nil && res.Params.Date != "" {
		return hourHistogram(res.Records), nil
	}
	if res.Counts == nil {
		return Series{}, fmt.Errorf("%w: mode %q", ErrNotChartable, res.Mode)
	}

	byKey := lo.Associate(res.Counts, func(kc query.KeyCount) (string, int) {
		return kc.Key, kc.Count
	})

	switch res.Granularity {
	case index.Hour:
		return fill(hourKeys(), nil, byKey), nil
	case index.Weekday:
		return fill(weekdayKeys(), nil, byKey), nil
	case index.Month:
		keys, labels := monthKeys(res)
		return fill(keys, labels, byKey), nil
	case index.Year:
		return fill(yearKeys(res.Counts), nil, byKey), nil
	default:
		return rankedSeries(res.Counts), nil
	}
}

// fill builds a series over the full key domain, zero where no
// bucket exists. labels defaults to the keys themselves.
func fill(keys, labels []string, byKey map[string]int) Series {
	if labels == nil {
		labels = keys
	}
	s := Series{Labels: labels, Values: make([]int, len(keys))}
	for i, key := range keys {
		s.Values[i] = byKey[key]
	}
	return s
}

func rankedSeries(counts []query.KeyCount) Series {
	s := Series{
		Labels: make([]string, len(counts)),
		Values: make([]int, len(counts)),
	}
	for i, kc := range counts {
		s.Labels[i] = kc.Key
		s.Values[i] = kc.Count
	}
	return s
}

func hourKeys() []string {
	keys := make([]string, 24)
	for h := 0; h < 24; h++ {
		keys[h] = fmt.Sprintf("%02d", h)
	}
	return keys
}

func weekdayKeys() []string {
	return []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
}

// monthKeys returns the month key domain. With a year scope that is
// the 12 months of that year labeled Jan..Dec; otherwise the
// contiguous months between the oldest and newest buckets present.
func monthKeys(res *query.Result) (keys, labels []string) {
	if year := res.Params.Year; year != 0 {
		for m := time.January; m <= time.December; m++ {
			keys = append(keys, fmt.Sprintf("%04d-%02d", year, m))
			labels = append(labels, m.String()[:3])
		}
		return keys, labels
	}

	if len(res.Counts) == 0 {
		return nil, nil
	}
	first, _ := time.Parse("2006-01", res.Counts[0].Key)
	last, _ := time.Parse("2006-01", res.Counts[len(res.Counts)-1].Key)
	for t := first; !t.After(last); t = t.AddDate(0, 1, 0) {
		keys = append(keys, t.Format("2006-01"))
	}
	return keys, nil
}

// yearKeys returns the contiguous year domain covered by the counts.
func yearKeys(counts []query.KeyCount) []string {
	if len(counts) == 0 {
		return nil
	}
	first, _ := strconv.Atoi(counts[0].Key)
	last, _ := strconv.Atoi(counts[len(counts)-1].Key)
	var keys []string
	for y := first; y <= last; y++ {
		keys = append(keys, strconv.Itoa(y))
	}
	return keys
}

// Package render draws report series as horizontal text bar charts.
// It owns presentation only; everything it receives is already
// aggregated.
package render

import (
	"fmt"
	"strings"

	"watchlog/internal/report"
)

// DefaultWidth is the bar length given to the largest value when the
// caller does not specify one.
const DefaultWidth = 50

// BarChart renders a series as one bar per label, scaled so the
// largest value spans width runes. Zero-valued buckets keep their
// row, so ordinal charts stay continuous.
func BarChart(s report.Series, width int) string {
	if len(s.Labels) == 0 {
		return "(no data)\n"
	}
	if width <= 0 {
		width = DefaultWidth
	}

	max := 0
	labelWidth := 0
	for i, label := range s.Labels {
		if s.Values[i] > max {
			max = s.Values[i]
		}
		if len(label) > labelWidth {
			labelWidth = len(label)
		}
	}

	var b strings.Builder
	for i, label := range s.Labels {
		bar := ""
		if max > 0 {
			bar = strings.Repeat("█", s.Values[i]*width/max)
		}
		fmt.Fprintf(&b, "%-*s %s %d\n", labelWidth, label, bar, s.Values[i])
	}
	return b.String()
}

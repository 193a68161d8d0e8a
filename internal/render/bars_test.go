package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlog/internal/report"
)

func TestBarChart_ScalesToWidth(t *testing.T) {
	s := report.Series{
		Labels: []string{"Mon", "Tue"},
		Values: []int{10, 5},
	}

	out := BarChart(s, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, 10, strings.Count(lines[0], "█"))
	assert.Equal(t, 5, strings.Count(lines[1], "█"))
	assert.True(t, strings.HasPrefix(lines[0], "Mon"))
	assert.True(t, strings.HasSuffix(lines[0], "10"))
}

func TestBarChart_KeepsZeroRows(t *testing.T) {
	s := report.Series{
		Labels: []string{"00", "01", "02"},
		Values: []int{0, 3, 0},
	}

	out := BarChart(s, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "0")
	assert.NotContains(t, lines[0], "█")
}

func TestBarChart_EmptySeries(t *testing.T) {
	out := BarChart(report.Series{}, 10)
	assert.Equal(t, "(no data)\n", out)
}

func TestBarChart_AllZeroValues(t *testing.T) {
	s := report.Series{
		Labels: []string{"Mon", "Tue"},
		Values: []int{0, 0},
	}

	out := BarChart(s, 10)
	assert.NotContains(t, out, "█")
	assert.Contains(t, out, "Mon")
}

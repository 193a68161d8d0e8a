package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlog/internal/query"
)

func TestReport_TopChannels(t *testing.T) {
	engine := seedEngine(t)
	cmd := &ReportCommand{globals: &GlobalFlags{}}
	cmd.Args.Mode = "top-channels"

	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEngine(engine, 10))
	})

	assert.Contains(t, out, "channel")
	assert.Contains(t, out, "Beta")
	assert.Contains(t, out, "2")

	// Beta (2 views) ranks above Alpha (1 view).
	assert.Less(t, strings.Index(out, "Beta"), strings.Index(out, "Alpha"))
}

func TestReport_JSONOutput(t *testing.T) {
	engine := seedEngine(t)
	cmd := &ReportCommand{globals: &GlobalFlags{JSON: true}}
	cmd.Args.Mode = "videos-by-year"

	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEngine(engine, 10))
	})

	var parsed struct {
		Columns []string   `json:"columns"`
		Rows    [][]string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, []string{"year", "count"}, parsed.Columns)
	require.Len(t, parsed.Rows, 1)
	assert.Equal(t, []string{"2023", "3"}, parsed.Rows[0])
}

func TestReport_UnknownModeFails(t *testing.T) {
	engine := seedEngine(t)
	cmd := &ReportCommand{globals: &GlobalFlags{}}
	cmd.Args.Mode = "nope"

	err := cmd.executeWithEngine(engine, 10)
	assert.ErrorIs(t, err, query.ErrInvalidParameter)
}

func TestReport_EmptyDateResultPrintsPlaceholder(t *testing.T) {
	engine := seedEngine(t)
	cmd := &ReportCommand{globals: &GlobalFlags{}, Date: "1999-12-31"}
	cmd.Args.Mode = "videos-on-date"

	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEngine(engine, 10))
	})
	assert.Contains(t, out, "no matching records")
}

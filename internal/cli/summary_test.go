package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary_Human(t *testing.T) {
	engine := seedEngine(t)
	cmd := &SummaryCommand{globals: &GlobalFlags{}, version: "test"}

	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEngine(engine))
	})

	assert.Contains(t, out, "Records:      4")
	assert.Contains(t, out, "Videos:       3")
	assert.Contains(t, out, "Ads:          1")
	assert.Contains(t, out, "Oldest:       2023-01-01")
	assert.Contains(t, out, "Newest:       2023-01-03")
}

func TestSummary_JSON(t *testing.T) {
	engine := seedEngine(t)
	cmd := &SummaryCommand{globals: &GlobalFlags{JSON: true}, version: "1.0.0"}

	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEngine(engine))
	})

	var parsed summaryJSON
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "1.0.0", parsed.Version)
	assert.Equal(t, 4, parsed.Records)
	assert.Equal(t, 3, parsed.Videos)
	assert.Equal(t, 1, parsed.Ads)
	assert.NotEmpty(t, parsed.Oldest)
}

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_FindsMatches(t *testing.T) {
	engine := seedEngine(t)
	cmd := &SearchCommand{globals: &GlobalFlags{}}
	cmd.Args.Keyword = []string{"clip"}

	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEngine(engine, 10))
	})

	assert.Contains(t, out, `Found 2 matching records for "clip"`)
	assert.Contains(t, out, "Clip one")
	assert.Contains(t, out, "Clip two")
}

func TestSearch_NoMatches(t *testing.T) {
	engine := seedEngine(t)
	cmd := &SearchCommand{globals: &GlobalFlags{}}
	cmd.Args.Keyword = []string{"nothing", "here"}

	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEngine(engine, 10))
	})

	assert.Contains(t, out, `No titles match "nothing here"`)
}

func TestSearch_RequiresKeyword(t *testing.T) {
	engine := seedEngine(t)
	cmd := &SearchCommand{globals: &GlobalFlags{}}

	err := cmd.executeWithEngine(engine, 10)
	assert.Error(t, err)
}

func TestSearch_LimitApplies(t *testing.T) {
	engine := seedEngine(t)
	cmd := &SearchCommand{Limit: 1, globals: &GlobalFlags{}}
	cmd.Args.Keyword = []string{"clip"}

	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithEngine(engine, 10))
	})

	assert.Contains(t, out, "Clip one")
	assert.NotContains(t, out, "Clip two")
}

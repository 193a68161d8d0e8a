package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHas27Modes(t *testing.T) {
	assert.Len(t, Modes(), 27)
}

func TestCatalogModesAreUnique(t *testing.T) {
	seen := make(map[Mode]bool)
	for _, info := range Modes() {
		assert.False(t, seen[info.Mode], "duplicate mode %q", info.Mode)
		assert.NotEmpty(t, info.Description)
		seen[info.Mode] = true
	}
}

func TestParseMode(t *testing.T) {
	for _, info := range Modes() {
		mode, err := ParseMode(string(info.Mode))
		require.NoError(t, err)
		assert.Equal(t, info.Mode, mode)
	}
}

func TestParseMode_Unknown(t *testing.T) {
	_, err := ParseMode("most-watched-everything")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequencerLatestWins(t *testing.T) {
	var seq Sequencer
	assert.False(t, seq.IsLatest(0))

	first := seq.Next()
	assert.True(t, seq.IsLatest(first))

	second := seq.Next()
	assert.False(t, seq.IsLatest(first))
	assert.True(t, seq.IsLatest(second))
	assert.Equal(t, second, seq.Latest())
}

func TestParseRenderMode(t *testing.T) {
	mode, err := ParseRenderMode("")
	assert.NoError(t, err)
	assert.Equal(t, ModeReplace, mode)

	mode, err = ParseRenderMode("Append")
	assert.NoError(t, err)
	assert.Equal(t, ModeAppend, mode)

	_, err = ParseRenderMode("scroll")
	assert.Error(t, err)
}

package service

import (
	"testing"

	"github.com/ltmanh/vocaprep/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWordLines(t *testing.T) {
	raw := `ephemeral | lasting for a very short time
ubiquitous | present everywhere

this line has no separator
 | missing word
missing definition |
terse | using few words`

	words := parseWordLines(raw)
	require.Len(t, words, 3)
	assert.Equal(t, dto.WordCreateDTO{Word: "ephemeral", Definition: "lasting for a very short time"}, words[0])
	assert.Equal(t, dto.WordCreateDTO{Word: "ubiquitous", Definition: "present everywhere"}, words[1])
	assert.Equal(t, dto.WordCreateDTO{Word: "terse", Definition: "using few words"}, words[2])
}

func TestParseWordLinesKeepsPipesInDefinition(t *testing.T) {
	words := parseWordLines("union | a | b joined together")
	require.Len(t, words, 1)
	assert.Equal(t, "union", words[0].Word)
	assert.Equal(t, "a | b joined together", words[0].Definition)
}

func TestParseWordLinesEmptyInput(t *testing.T) {
	assert.Empty(t, parseWordLines(""))
	assert.Empty(t, parseWordLines("no pairs here at all"))
}

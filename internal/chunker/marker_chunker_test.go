package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textbetti/internal/domain"
	"textbetti/internal/lemma"
)

func TestUnitsSentence(t *testing.T) {
	c := NewMarkerChunker(nil)
	units, err := c.Units("One two. Three? Four! Wait... End", domain.SplitSentence)
	require.NoError(t, err)
	assert.Equal(t, []string{"One two.", " Three?", " Four!", " Wait...", " End"}, units)
}

func TestUnitsParagraph(t *testing.T) {
	c := NewMarkerChunker(nil)
	units, err := c.Units("first para\nsecond para\n\nthird", domain.SplitParagraph)
	require.NoError(t, err)
	assert.Equal(t, []string{"first para\n", "second para\n", "\n", "third"}, units)
}

func TestUnitsUnknownMode(t *testing.T) {
	c := NewMarkerChunker(nil)
	_, err := c.Units("text", domain.SplitMode("chapter"))
	assert.Error(t, err)
}

func TestWordsStripsPunctuationAndLowercases(t *testing.T) {
	c := NewMarkerChunker(nil)
	assert.Equal(t, []string{"hello", "world", "again"}, c.Words(`Hello, «World»: "again"!`))
	assert.Empty(t, c.Words(" ... ; "))
}

func TestWordsAppliesNormalizer(t *testing.T) {
	s, err := lemma.NewSnowball("english")
	require.NoError(t, err)
	c := NewMarkerChunker(s)
	assert.Equal(t, []string{"run", "run"}, c.Words("Running runs"))
}

func TestSplitBuildsVocabularyInFirstOccurrenceOrder(t *testing.T) {
	c := NewMarkerChunker(nil)
	tokens, vocab, err := c.Split("b a. c b. a", domain.SplitSentence)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, []string{"b", "a", "c"}, vocab.Words())
	for i, tok := range tokens {
		assert.Equal(t, i, tok.Index)
	}
	assert.Equal(t, map[string]int{"c": 1, "b": 1}, tokens[1].Counts)
}

func TestSplitKeepsPunctuationOnlyUnits(t *testing.T) {
	c := NewMarkerChunker(nil)
	tokens, vocab, err := c.Split("Word. ; . !", domain.SplitSentence)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Empty(t, tokens[1].Words)
	assert.Empty(t, tokens[2].Words)
	assert.Equal(t, 1, vocab.Len())
}

func TestSplitEmptyText(t *testing.T) {
	c := NewMarkerChunker(nil)
	tokens, vocab, err := c.Split("", domain.SplitParagraph)
	require.NoError(t, err)
	assert.Empty(t, tokens)
	assert.Equal(t, 0, vocab.Len())
}

func TestSplitIdenticalUnitsStayDistinct(t *testing.T) {
	c := NewMarkerChunker(nil)
	tokens, _, err := c.Split(strings.Repeat("same words.", 3), domain.SplitSentence)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, tokens[0].Text, tokens[2].Text)
	assert.NotEqual(t, tokens[0].Index, tokens[2].Index)
}

package chunker

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"textbetti/internal/domain"
	"textbetti/internal/lemma"
)

// unitSeparator never occurs in ordinary text; it is inserted after every
// boundary marker and then split on.
const unitSeparator = "\x00"

var (
	// Longer markers come first so an ellipsis closes a single unit.
	sentenceMarks  = []string{"...", ".", "?", "!"}
	paragraphMarks = []string{"\n", "\t", "    ", "  "}
	punctuation    = []string{",", ";", "\"", ":", "—", "\n", "\r", "\t", "«", "»", "...", ".", "?", "!"}
)

// MarkerChunker splits text at fixed boundary markers and extracts
// normalized words for each unit.
type MarkerChunker struct {
	normalizer domain.Normalizer
	sentence   *strings.Replacer
	paragraph  *strings.Replacer
	stripper   *strings.Replacer
}

// NewMarkerChunker creates a chunker that normalizes words with n.
// A nil normalizer means identity.
func NewMarkerChunker(n domain.Normalizer) *MarkerChunker {
	if n == nil {
		n = lemma.Identity{}
	}
	strip := make([]string, 0, 2*len(punctuation))
	for _, p := range punctuation {
		strip = append(strip, p, "")
	}
	return &MarkerChunker{
		normalizer: n,
		sentence:   separatorReplacer(sentenceMarks),
		paragraph:  separatorReplacer(paragraphMarks),
		stripper:   strings.NewReplacer(strip...),
	}
}

func separatorReplacer(marks []string) *strings.Replacer {
	pairs := make([]string, 0, 2*len(marks))
	for _, m := range marks {
		pairs = append(pairs, m, m+unitSeparator)
	}
	return strings.NewReplacer(pairs...)
}

// Units returns the raw textual units of text, empty units dropped.
func (c *MarkerChunker) Units(text string, mode domain.SplitMode) ([]string, error) {
	var marked string
	switch mode {
	case domain.SplitSentence:
		marked = c.sentence.Replace(text)
	case domain.SplitParagraph:
		marked = c.paragraph.Replace(text)
	default:
		_, err := domain.ParseSplitMode(string(mode))
		return nil, err
	}
	parts := strings.Split(marked, unitSeparator)
	units := parts[:0]
	for _, p := range parts {
		if p == "" {
			continue
		}
		units = append(units, p)
	}
	return units, nil
}

// Words extracts the normalized word sequence of one unit.
func (c *MarkerChunker) Words(unit string) []string {
	// Casers carry state and are not shared between goroutines.
	lower := cases.Lower(language.Und)
	var words []string
	for _, raw := range strings.Split(unit, " ") {
		w := c.stripper.Replace(lower.String(raw))
		if w == "" {
			continue
		}
		if w = c.normalizer.Normalize(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// Split tokenizes text and builds the shared vocabulary. Token vectors are
// left empty for a Vectorizer to fill.
func (c *MarkerChunker) Split(text string, mode domain.SplitMode) ([]domain.Token, *domain.Vocabulary, error) {
	units, err := c.Units(text, mode)
	if err != nil {
		return nil, nil, err
	}
	tokens := make([]domain.Token, 0, len(units))
	all := make([][]string, 0, len(units))
	for i, u := range units {
		words := c.Words(u)
		counts := make(map[string]int, len(words))
		for _, w := range words {
			counts[w]++
		}
		tokens = append(tokens, domain.Token{Index: i, Text: u, Words: words, Counts: counts})
		all = append(all, words)
	}
	return tokens, domain.NewVocabulary(all), nil
}

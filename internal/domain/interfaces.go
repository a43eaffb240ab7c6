package domain

import "fmt"

// SplitMode selects the textual unit a document is split into.
type SplitMode string

const (
	SplitSentence  SplitMode = "sentence"
	SplitParagraph SplitMode = "paragraph"
)

// ParseSplitMode converts a user-supplied string into a SplitMode.
func ParseSplitMode(s string) (SplitMode, error) {
	switch SplitMode(s) {
	case SplitSentence, SplitParagraph:
		return SplitMode(s), nil
	default:
		return "", fmt.Errorf("unknown split mode %q", s)
	}
}

// Token is one textual unit of a document and a vertex of the complex.
// Index is its stable position in the token list; two tokens with equal
// text are still distinct vertices.
type Token struct {
	Index  int
	Text   string
	Words  []string
	Counts map[string]int
	Vector []float64
}

// Vocabulary is the ordered set of normalized words of one text,
// in first-occurrence order across all tokens.
type Vocabulary struct {
	words []string
	index map[string]int
}

// NewVocabulary builds a vocabulary from per-token word sequences.
func NewVocabulary(tokenWords [][]string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]int)}
	for _, words := range tokenWords {
		for _, w := range words {
			if _, ok := v.index[w]; ok {
				continue
			}
			v.index[w] = len(v.words)
			v.words = append(v.words, w)
		}
	}
	return v
}

// Len returns the number of distinct words.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.words)
}

// Index returns the vector position of word.
func (v *Vocabulary) Index(word string) (int, bool) {
	if v == nil {
		return 0, false
	}
	i, ok := v.index[word]
	return i, ok
}

// Words returns a copy of the words in vocabulary order.
func (v *Vocabulary) Words() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.words))
	copy(out, v.words)
	return out
}

// SweepPoint is one sample of the Betti curve.
type SweepPoint struct {
	Diameter float64 `json:"diameter"`
	B0       int     `json:"b0"`
	B1       int     `json:"b1"`
}

// Normalizer maps a raw lowercase word to its canonical dictionary form.
// Implementations must be pure and fall back to identity for unknown words.
type Normalizer interface {
	Name() string
	Normalize(word string) string
}

// Splitter turns raw text into tokens sharing one vocabulary.
type Splitter interface {
	Split(text string, mode SplitMode) ([]Token, *Vocabulary, error)
}

// Vectorizer fills token vectors aligned to a vocabulary.
type Vectorizer interface {
	Name() string
	Vectorize(tokens []Token, vocab *Vocabulary) error
}

// Metric measures the distance between two token vectors.
// +Inf means the pair can never be connected.
type Metric func(a, b []float64) float64

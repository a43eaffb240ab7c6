// Package lemma provides word normalizers used before vectorization.
package lemma

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/english"
	"github.com/blevesearch/snowballstem/french"
	"github.com/blevesearch/snowballstem/german"
	"github.com/blevesearch/snowballstem/russian"
	"github.com/blevesearch/snowballstem/spanish"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"textbetti/internal/domain"
)

// Identity returns words unchanged.
type Identity struct{}

// Name reports "identity".
func (Identity) Name() string { return "identity" }

// Normalize returns word as is.
func (Identity) Normalize(word string) string { return word }

// Fold strips diacritics, e.g. "café" -> "cafe", "ёлка" -> "елка".
type Fold struct{}

// Name reports "fold".
func (Fold) Name() string { return "fold" }

// Normalize decomposes word, drops combining marks and recomposes it. The
// transformer chain is stateful, so one is built per call.
func (Fold) Normalize(word string) string {
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(strip, word)
	if err != nil {
		return word
	}
	return out
}

type stemFunc func(env *snowballstem.Env) bool

var stemmers = map[string]stemFunc{
	"english": english.Stem,
	"french":  french.Stem,
	"german":  german.Stem,
	"russian": russian.Stem,
	"spanish": spanish.Stem,
}

// Snowball reduces words to their Snowball stem for one language.
type Snowball struct {
	language string
	stem     stemFunc
}

// NewSnowball returns a stemmer for language (english, french, german, russian, spanish).
func NewSnowball(language string) (*Snowball, error) {
	lang := strings.ToLower(strings.TrimSpace(language))
	fn, ok := stemmers[lang]
	if !ok {
		return nil, fmt.Errorf("no snowball stemmer for language %q", language)
	}
	return &Snowball{language: lang, stem: fn}, nil
}

// Name reports "snowball-" followed by the stemmer language.
func (s *Snowball) Name() string { return "snowball-" + s.language }

// Normalize stems word, falling back to the input when stemming yields nothing.
func (s *Snowball) Normalize(word string) (out string) {
	if word == "" {
		return word
	}
	defer func() {
		// a panicking stemmer degrades to identity
		if r := recover(); r != nil {
			out = word
		}
	}()
	env := snowballstem.NewEnv(word)
	s.stem(env)
	if stemmed := env.Current(); stemmed != "" {
		return stemmed
	}
	return word
}

// New builds the normalizer named by kind. language is only used by "snowball".
func New(kind, language string) (domain.Normalizer, error) {
	switch kind {
	case "identity", "":
		return Identity{}, nil
	case "fold":
		return Fold{}, nil
	case "snowball":
		return NewSnowball(language)
	default:
		return nil, fmt.Errorf("unknown normalizer: %s", kind)
	}
}

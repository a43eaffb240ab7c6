// Package count builds raw word-frequency vectors.
package count

import (
	"errors"

	"textbetti/internal/domain"
)

// Vectorizer sets vector[i] to the number of times vocabulary word i
// occurs in a token.
type Vectorizer struct{}

// NewVectorizer creates a count vectorizer.
func NewVectorizer() *Vectorizer { return &Vectorizer{} }

// Name returns the identifier of this vectorizer.
func (v *Vectorizer) Name() string { return "count" }

// Vectorize fills every token's Vector in place.
func (v *Vectorizer) Vectorize(tokens []domain.Token, vocab *domain.Vocabulary) error {
	dim := vocab.Len()
	for i := range tokens {
		vec := make([]float64, dim)
		for word, n := range tokens[i].Counts {
			idx, ok := vocab.Index(word)
			if !ok {
				return errors.New("token word missing from vocabulary: " + word)
			}
			vec[idx] = float64(n)
		}
		tokens[i].Vector = vec
	}
	return nil
}

package tfidf

import (
	"math"

	"textbetti/internal/domain"
)

// Vectorizer weights token word counts by smoothed inverse document
// frequency, treating each token as a document. Stopwords get weight 0.
type Vectorizer struct {
	stopwords map[string]struct{}
	normalize bool
}

// Option configures a Vectorizer.
type Option func(*Vectorizer)

// WithStopwords replaces the default English stopword list. Words must be
// given in normalized form.
func WithStopwords(words []string) Option {
	return func(v *Vectorizer) { v.stopwords = toSet(words) }
}

// WithL2Normalize scales every non-zero vector to unit length.
func WithL2Normalize() Option {
	return func(v *Vectorizer) { v.normalize = true }
}

// NewVectorizer creates a TF-IDF vectorizer.
func NewVectorizer(opts ...Option) *Vectorizer {
	v := &Vectorizer{stopwords: defaultStopwords()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Name returns the identifier of this vectorizer.
func (v *Vectorizer) Name() string { return "tfidf" }

// Vectorize fills every token's Vector in place.
func (v *Vectorizer) Vectorize(tokens []domain.Token, vocab *domain.Vocabulary) error {
	dim := vocab.Len()
	df := make([]int, dim)
	for _, tok := range tokens {
		for word := range tok.Counts {
			if idx, ok := vocab.Index(word); ok {
				df[idx]++
			}
		}
	}
	idf := make([]float64, dim)
	n := float64(len(tokens))
	for i, f := range df {
		// Smoothed IDF
		idf[i] = math.Log((1+n)/(1+float64(f))) + 1.0
	}
	for i := range tokens {
		vec := make([]float64, dim)
		total := 0
		for _, c := range tokens[i].Counts {
			total += c
		}
		if total > 0 {
			for word, c := range tokens[i].Counts {
				if _, isStop := v.stopwords[word]; isStop {
					continue
				}
				if idx, ok := vocab.Index(word); ok {
					vec[idx] = float64(c) / float64(total) * idf[idx]
				}
			}
		}
		if v.normalize {
			l2Normalize(vec)
		}
		tokens[i].Vector = vec
	}
	return nil
}

func l2Normalize(vec []float64) {
	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
}

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func defaultStopwords() map[string]struct{} {
	return toSet([]string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	})
}

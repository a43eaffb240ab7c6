// Package embedding selects the vectorizer that turns tokens into vectors.
package embedding

import (
	"fmt"

	"textbetti/internal/domain"
	"textbetti/internal/embedding/count"
	"textbetti/internal/embedding/tfidf"
)

// New returns the vectorizer named by kind.
func New(kind string) (domain.Vectorizer, error) {
	switch kind {
	case "count", "":
		return count.NewVectorizer(), nil
	case "tfidf":
		return tfidf.NewVectorizer(), nil
	default:
		return nil, fmt.Errorf("unknown embedder: %s", kind)
	}
}

// Package topology builds the simplicial complex of a token list and
// computes its first two Betti numbers.
package topology

import "errors"

var (
	// ErrInvalidDiameter reports a negative, NaN or infinite diameter.
	ErrInvalidDiameter = errors.New("invalid diameter")
	// ErrTooManySimplices reports a complex larger than Config.MaxSimplices
	// or a boundary matrix larger than Config.MaxMatrixCells.
	ErrTooManySimplices = errors.New("too many simplices")
)

// Edge is a 1-simplex on vertex indices U < V.
type Edge struct {
	U, V int
}

// NewEdge returns the canonical edge on a and b.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{U: a, V: b}
}

// Triangle is a 2-simplex on vertex indices A < B < C.
type Triangle struct {
	A, B, C int
}

// NewTriangle returns the canonical triangle on a, b and c.
func NewTriangle(a, b, c int) Triangle {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return Triangle{A: a, B: b, C: c}
}

// Faces returns the boundary edges of t in the order {B,C}, {A,C}, {A,B}.
func (t Triangle) Faces() [3]Edge {
	return [3]Edge{{t.B, t.C}, {t.A, t.C}, {t.A, t.B}}
}

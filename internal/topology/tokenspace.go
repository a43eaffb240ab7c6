package topology

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"textbetti/internal/domain"
)

// Formula selects how b1 is derived from the boundary ranks.
type Formula string

const (
	// FormulaSource is |1-simplices| - rank ∂2, the curve the original
	// analyzer plots.
	FormulaSource Formula = "source"
	// FormulaStandard is dim ker ∂1 - rank ∂2 = |1-simplices| - rank ∂1 - rank ∂2.
	FormulaStandard Formula = "standard"
)

// ParseFormula converts a configuration string into a Formula.
func ParseFormula(s string) (Formula, error) {
	switch Formula(s) {
	case "":
		return FormulaSource, nil
	case FormulaSource, FormulaStandard:
		return Formula(s), nil
	default:
		return "", fmt.Errorf("unknown b1 formula %q", s)
	}
}

// Config tunes a TokenSpace.
type Config struct {
	Formula Formula
	// Tolerance is the singular-value cutoff for matrix rank. Zero or
	// negative selects σmax·max(rows, cols)·ε.
	Tolerance float64
	// MaxSimplices caps edges plus triangles per diameter. Zero disables the cap.
	MaxSimplices int
	// MaxMatrixCells caps rows·cols of each dense boundary matrix, checked
	// before allocation. Zero disables the cap.
	MaxMatrixCells int
}

// TokenSpace is the complex of one (tokens, metric, diameter) triple.
// It is built once and never mutated.
type TokenSpace struct {
	Diameter  float64
	Neighbors [][]int
	Edges     []Edge
	Triangles []Triangle
	Boundary1 *mat.Dense
	Boundary2 *mat.Dense
	Rank1     int
	Rank2     int
	B0        int
	B1        int

	vertices  int
	edgeIndex map[Edge]int
}

// NewTokenSpace builds the complex for tokens at diameter and computes its
// Betti numbers.
func NewTokenSpace(tokens []domain.Token, metric domain.Metric, diameter float64, cfg Config) (*TokenSpace, error) {
	if math.IsNaN(diameter) || math.IsInf(diameter, 0) || diameter < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDiameter, diameter)
	}
	formula, err := ParseFormula(string(cfg.Formula))
	if err != nil {
		return nil, err
	}
	ts := &TokenSpace{Diameter: diameter, vertices: len(tokens)}
	ts.Neighbors = neighbors(tokens, metric, diameter)
	if err := ts.buildEdges(cfg.MaxSimplices); err != nil {
		return nil, err
	}
	if cells := cfg.MaxMatrixCells; cells > 0 && len(ts.Edges)*ts.vertices > cells {
		return nil, fmt.Errorf("%w: boundary 1 of %dx%d exceeds %d cells at diameter %v",
			ErrTooManySimplices, len(ts.Edges), ts.vertices, cells, ts.Diameter)
	}
	if err := ts.buildTriangles(cfg.MaxSimplices, cfg.MaxMatrixCells); err != nil {
		return nil, err
	}
	ts.Boundary1 = ts.boundary1()
	ts.Boundary2 = ts.boundary2()
	if ts.Rank1, err = Rank(ts.Boundary1, cfg.Tolerance); err != nil {
		return nil, err
	}
	if ts.Rank2, err = Rank(ts.Boundary2, cfg.Tolerance); err != nil {
		return nil, err
	}
	ts.B0 = ts.vertices - ts.Rank1
	ts.B1 = ts.BettiOne(formula)
	return ts, nil
}

// Vertices returns the number of 0-simplices.
func (ts *TokenSpace) Vertices() int { return ts.vertices }

// BettiOne returns b1 under formula f.
func (ts *TokenSpace) BettiOne(f Formula) int {
	if f == FormulaStandard {
		return len(ts.Edges) - ts.Rank1 - ts.Rank2
	}
	return len(ts.Edges) - ts.Rank2
}

// Point returns the sweep sample of this complex.
func (ts *TokenSpace) Point() domain.SweepPoint {
	return domain.SweepPoint{Diameter: ts.Diameter, B0: ts.B0, B1: ts.B1}
}

// neighbors returns sorted, symmetric, irreflexive adjacency lists. The
// metric is evaluated once per unordered pair and mirrored.
func neighbors(tokens []domain.Token, metric domain.Metric, diameter float64) [][]int {
	n := len(tokens)
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if metric(tokens[i].Vector, tokens[j].Vector) <= diameter {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}
	return adj
}

func (ts *TokenSpace) buildEdges(limit int) error {
	ts.edgeIndex = make(map[Edge]int)
	for u, nbrs := range ts.Neighbors {
		for _, v := range nbrs {
			if v < u {
				continue
			}
			e := Edge{U: u, V: v}
			ts.edgeIndex[e] = len(ts.Edges)
			ts.Edges = append(ts.Edges, e)
			if limit > 0 && len(ts.Edges) > limit {
				return fmt.Errorf("%w: more than %d edges at diameter %v", ErrTooManySimplices, limit, ts.Diameter)
			}
		}
	}
	return nil
}

// buildTriangles extends every edge by each common neighbour. A triangle
// {a<b<c} is emitted only from its lowest edge (a,b), so each appears once
// and the list comes out in lexicographic order.
func (ts *TokenSpace) buildTriangles(limit, cells int) error {
	for _, e := range ts.Edges {
		for _, k := range intersectSorted(ts.Neighbors[e.U], ts.Neighbors[e.V]) {
			if k <= e.V {
				continue
			}
			ts.Triangles = append(ts.Triangles, Triangle{A: e.U, B: e.V, C: k})
			if limit > 0 && len(ts.Edges)+len(ts.Triangles) > limit {
				return fmt.Errorf("%w: more than %d simplices at diameter %v", ErrTooManySimplices, limit, ts.Diameter)
			}
			if cells > 0 && len(ts.Triangles)*len(ts.Edges) > cells {
				return fmt.Errorf("%w: boundary 2 exceeds %d cells at diameter %v", ErrTooManySimplices, cells, ts.Diameter)
			}
		}
	}
	return nil
}

func intersectSorted(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

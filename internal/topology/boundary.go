package topology

import "gonum.org/v1/gonum/mat"

// boundary1 returns ∂1 with one row per edge and one column per vertex:
// +1 at the lower endpoint, -1 at the higher. Nil when there are no edges.
func (ts *TokenSpace) boundary1() *mat.Dense {
	if len(ts.Edges) == 0 || ts.vertices == 0 {
		return nil
	}
	m := mat.NewDense(len(ts.Edges), ts.vertices, nil)
	for r, e := range ts.Edges {
		m.Set(r, e.U, 1)
		m.Set(r, e.V, -1)
	}
	return m
}

// boundary2 returns ∂2 with one row per triangle and one column per edge.
// Triangle (a,b,c) maps to +{b,c} -{a,c} +{a,b}. Nil when there are no triangles.
func (ts *TokenSpace) boundary2() *mat.Dense {
	if len(ts.Triangles) == 0 {
		return nil
	}
	m := mat.NewDense(len(ts.Triangles), len(ts.Edges), nil)
	signs := [3]float64{1, -1, 1}
	for r, t := range ts.Triangles {
		for i, face := range t.Faces() {
			m.Set(r, ts.edgeIndex[face], signs[i])
		}
	}
	return m
}

// EdgeIndex returns the column of e in ∂2.
func (ts *TokenSpace) EdgeIndex(e Edge) (int, bool) {
	i, ok := ts.edgeIndex[e]
	return i, ok
}

package topology

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"textbetti/internal/domain"
	"textbetti/internal/metric"
)

func vectors(vs ...[]float64) []domain.Token {
	tokens := make([]domain.Token, len(vs))
	for i, v := range vs {
		tokens[i] = domain.Token{Index: i, Vector: v}
	}
	return tokens
}

// tableMetric looks distances up by vertex index stored in Vector[0].
func tableMetric(d [][]float64) domain.Metric {
	return func(a, b []float64) float64 {
		return d[int(a[0])][int(b[0])]
	}
}

func indexed(n int) []domain.Token {
	tokens := make([]domain.Token, n)
	for i := range tokens {
		tokens[i] = domain.Token{Index: i, Vector: []float64{float64(i)}}
	}
	return tokens
}

func TestScenarioA(t *testing.T) {
	tokens := vectors([]float64{1, 1, 0}, []float64{1, 0, 1})

	ts, err := NewTokenSpace(tokens, metric.Angular, 0.5, Config{})
	require.NoError(t, err)
	assert.Empty(t, ts.Edges)
	assert.Equal(t, 2, ts.B0)
	assert.Equal(t, 0, ts.B1)

	ts, err = NewTokenSpace(tokens, metric.Angular, 1.5, Config{})
	require.NoError(t, err)
	assert.Equal(t, []Edge{{0, 1}}, ts.Edges)
	assert.Empty(t, ts.Triangles)
	assert.Equal(t, 1, ts.B0)
	assert.Equal(t, 0, ts.B1)
}

func TestScenarioBBothFormulas(t *testing.T) {
	tokens := vectors([]float64{1, 1, 0}, []float64{1, 0, 1}, []float64{0, 1, 1})

	src, err := NewTokenSpace(tokens, metric.Angular, 1.5, Config{Formula: FormulaSource})
	require.NoError(t, err)
	assert.Equal(t, []Triangle{{0, 1, 2}}, src.Triangles)
	assert.Len(t, src.Edges, 3)
	assert.Equal(t, 2, src.Rank1)
	assert.Equal(t, 1, src.Rank2)
	assert.Equal(t, 1, src.B0)
	// |E| - rank ∂2 counts the filled triangle's boundary cycles as 2.
	assert.Equal(t, 2, src.B1)

	std, err := NewTokenSpace(tokens, metric.Angular, 1.5, Config{Formula: FormulaStandard})
	require.NoError(t, err)
	assert.Equal(t, 1, std.B0)
	assert.Equal(t, 0, std.B1)
	assert.Equal(t, 0, src.BettiOne(FormulaStandard))
	assert.Equal(t, 2, std.BettiOne(FormulaSource))
}

func TestHollowSquareHasOneCycle(t *testing.T) {
	inf := math.Inf(1)
	d := [][]float64{
		{0, 1, inf, 1},
		{1, 0, 1, inf},
		{inf, 1, 0, 1},
		{1, inf, 1, 0},
	}
	ts, err := NewTokenSpace(indexed(4), tableMetric(d), 1, Config{Formula: FormulaStandard})
	require.NoError(t, err)
	assert.Len(t, ts.Edges, 4)
	assert.Empty(t, ts.Triangles)
	assert.Equal(t, 1, ts.B0)
	assert.Equal(t, 1, ts.B1)
	assert.Equal(t, 4, ts.BettiOne(FormulaSource))
}

func TestZeroDiameterIsolatesVertices(t *testing.T) {
	tokens := vectors([]float64{1, 0}, []float64{0, 1}, []float64{1, 1})
	ts, err := NewTokenSpace(tokens, metric.Angular, 0, Config{})
	require.NoError(t, err)
	assert.Empty(t, ts.Edges)
	assert.Equal(t, 3, ts.B0)
	assert.Equal(t, 0, ts.B1)
}

func TestIdenticalTextsAreDistinctVertices(t *testing.T) {
	tokens := []domain.Token{
		{Index: 0, Text: "same", Vector: []float64{1}},
		{Index: 1, Text: "same", Vector: []float64{1}},
	}
	ts, err := NewTokenSpace(tokens, metric.Angular, 0.1, Config{})
	require.NoError(t, err)
	assert.Equal(t, []Edge{{0, 1}}, ts.Edges)
	assert.Equal(t, 1, ts.B0)
}

func TestZeroVectorNeverConnects(t *testing.T) {
	tokens := vectors([]float64{0, 0}, []float64{1, 0}, []float64{1, 0})
	ts, err := NewTokenSpace(tokens, metric.Angular, math.Pi, Config{})
	require.NoError(t, err)
	assert.Empty(t, ts.Neighbors[0])
	assert.Equal(t, 2, ts.B0)
}

func TestAdjacencySymmetricIrreflexive(t *testing.T) {
	tokens := vectors([]float64{1, 2, 0}, []float64{0, 1, 1}, []float64{3, 0, 1}, []float64{1, 1, 1}, []float64{0, 0, 2})
	ts, err := NewTokenSpace(tokens, metric.Angular, 1.2, Config{})
	require.NoError(t, err)
	for i, nbrs := range ts.Neighbors {
		for _, j := range nbrs {
			assert.NotEqual(t, i, j)
			assert.Contains(t, ts.Neighbors[j], i)
		}
	}
}

func TestBoundaryMatrices(t *testing.T) {
	tokens := vectors([]float64{1, 1, 0}, []float64{1, 0, 1}, []float64{0, 1, 1})
	ts, err := NewTokenSpace(tokens, metric.Angular, 1.5, Config{})
	require.NoError(t, err)

	want1 := mat.NewDense(3, 3, []float64{
		1, -1, 0, // {0,1}
		1, 0, -1, // {0,2}
		0, 1, -1, // {1,2}
	})
	assert.True(t, mat.Equal(want1, ts.Boundary1))

	// columns follow edge order {0,1},{0,2},{1,2}; faces {1,2}:+1 {0,2}:-1 {0,1}:+1
	want2 := mat.NewDense(1, 3, []float64{1, -1, 1})
	assert.True(t, mat.Equal(want2, ts.Boundary2))

	var composed mat.Dense
	composed.Mul(ts.Boundary2, ts.Boundary1)
	assert.True(t, mat.Equal(mat.NewDense(1, 3, nil), &composed), "∂1∘∂2 must vanish")
}

func TestDeterministicAcrossRuns(t *testing.T) {
	tokens := vectors([]float64{1, 2, 0, 1}, []float64{0, 1, 1, 1}, []float64{3, 0, 1, 0}, []float64{1, 1, 1, 0}, []float64{0, 2, 2, 1})
	a, err := NewTokenSpace(tokens, metric.Angular, 1.0, Config{})
	require.NoError(t, err)
	b, err := NewTokenSpace(tokens, metric.Angular, 1.0, Config{})
	require.NoError(t, err)
	assert.Equal(t, a.Edges, b.Edges)
	assert.Equal(t, a.Triangles, b.Triangles)
	assert.True(t, mat.Equal(a.Boundary1, b.Boundary1))
	if a.Boundary2 != nil {
		assert.True(t, mat.Equal(a.Boundary2, b.Boundary2))
	}
	assert.Equal(t, a.Point(), b.Point())
}

func TestEmptyTokens(t *testing.T) {
	ts, err := NewTokenSpace(nil, metric.Angular, 1, Config{})
	require.NoError(t, err)
	assert.Nil(t, ts.Boundary1)
	assert.Nil(t, ts.Boundary2)
	assert.Equal(t, domain.SweepPoint{Diameter: 1}, ts.Point())
}

func TestInvalidDiameter(t *testing.T) {
	for _, d := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		_, err := NewTokenSpace(indexed(2), metric.Angular, d, Config{})
		assert.ErrorIs(t, err, ErrInvalidDiameter)
	}
}

func TestUnknownFormula(t *testing.T) {
	_, err := NewTokenSpace(indexed(2), metric.Angular, 1, Config{Formula: "betti"})
	assert.Error(t, err)
}

func TestMaxSimplices(t *testing.T) {
	tokens := vectors([]float64{1}, []float64{1}, []float64{1}, []float64{1})
	_, err := NewTokenSpace(tokens, metric.Angular, 1, Config{MaxSimplices: 5})
	assert.ErrorIs(t, err, ErrTooManySimplices)

	ts, err := NewTokenSpace(tokens, metric.Angular, 1, Config{MaxSimplices: 10})
	require.NoError(t, err)
	assert.Len(t, ts.Edges, 6)
	assert.Len(t, ts.Triangles, 4)
}

func TestMaxMatrixCells(t *testing.T) {
	// five identical vectors: ∂1 is 10x5, ∂2 is 10x10
	tokens := vectors([]float64{1}, []float64{1}, []float64{1}, []float64{1}, []float64{1})

	_, err := NewTokenSpace(tokens, metric.Angular, 1, Config{MaxMatrixCells: 49})
	assert.ErrorIs(t, err, ErrTooManySimplices)
	assert.Contains(t, err.Error(), "boundary 1")

	_, err = NewTokenSpace(tokens, metric.Angular, 1, Config{MaxMatrixCells: 60})
	assert.ErrorIs(t, err, ErrTooManySimplices)
	assert.Contains(t, err.Error(), "boundary 2")

	ts, err := NewTokenSpace(tokens, metric.Angular, 1, Config{MaxMatrixCells: 100})
	require.NoError(t, err)
	r, c := ts.Boundary2.Dims()
	assert.Equal(t, 100, r*c)
}

func TestCanonicalSimplices(t *testing.T) {
	assert.Equal(t, Edge{2, 5}, NewEdge(5, 2))
	assert.Equal(t, Triangle{1, 4, 7}, NewTriangle(7, 1, 4))
	assert.Equal(t, Triangle{1, 4, 7}, NewTriangle(4, 7, 1))
	assert.Equal(t, [3]Edge{{4, 7}, {1, 7}, {1, 4}}, Triangle{1, 4, 7}.Faces())
}

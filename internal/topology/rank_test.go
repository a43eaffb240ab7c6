package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name string
		m    *mat.Dense
		want int
	}{
		{"nil", nil, 0},
		{"zero", mat.NewDense(2, 3, nil), 0},
		{"identity", mat.NewDense(2, 2, []float64{1, 0, 0, 1}), 2},
		{"dependent rows", mat.NewDense(3, 2, []float64{1, 2, 2, 4, 3, 6}), 1},
		{"path boundary", mat.NewDense(2, 3, []float64{1, -1, 0, 0, 1, -1}), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rank(tt.m, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRankCustomTolerance(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 0, 0, 1e-6})
	r, err := Rank(m, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, r)

	r, err = Rank(m, 1e-3)
	require.NoError(t, err)
	assert.Equal(t, 1, r)
}

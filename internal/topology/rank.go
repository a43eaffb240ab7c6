package topology

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// epsilon is the float64 machine epsilon.
var epsilon = math.Nextafter(1, 2) - 1

// Rank returns the numerical rank of m: the number of singular values
// above tol. tol <= 0 selects σmax·max(rows, cols)·ε. A nil or empty
// matrix has rank 0.
func Rank(m *mat.Dense, tol float64) (int, error) {
	if m == nil || m.IsEmpty() {
		return 0, nil
	}
	r, c := m.Dims()
	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDNone) {
		return 0, errors.New("singular value decomposition did not converge")
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return 0, nil
	}
	if tol <= 0 {
		// singular values come back in descending order
		tol = values[0] * float64(max(r, c)) * epsilon
	}
	rank := 0
	for _, v := range values {
		if v > tol {
			rank++
		}
	}
	return rank, nil
}

// Package metric provides distances between token vectors.
package metric

import "math"

// Dot returns the inner product over the common prefix of a and b.
func Dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// L2Norm returns the Euclidean length of x.
func L2Norm(x []float64) float64 {
	return math.Sqrt(Dot(x, x))
}

// Cosine returns the cosine similarity of a and b clamped to [-1, 1].
// ok is false when either vector has zero length.
func Cosine(a, b []float64) (cos float64, ok bool) {
	na, nb := L2Norm(a), L2Norm(b)
	if na == 0 || nb == 0 {
		return 0, false
	}
	cos = Dot(a, b) / (na * nb)
	// rounding can push the ratio just outside the domain of acos
	return math.Max(-1, math.Min(1, cos)), true
}

// Angular returns arccos of the cosine similarity, in [0, π].
// A zero-length vector never connects: the distance is +Inf.
func Angular(a, b []float64) float64 {
	cos, ok := Cosine(a, b)
	if !ok {
		return math.Inf(1)
	}
	return math.Acos(cos)
}

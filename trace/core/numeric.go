// Package core provides shared numeric helpers for trace processing.
package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps, using a relative
// comparison for large magnitudes and an absolute one near zero.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// SameInterval reports whether two sample intervals agree. A tolerance of
// zero demands exact equality; a positive tolerance delegates to
// [NearlyEqual].
func SameInterval(a, b, tol float64) bool {
	if tol <= 0 {
		return a == b
	}

	return NearlyEqual(a, b, tol)
}

// Package utils contains small numeric helpers shared across the module.
package utils

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Float64AlmostEqual reports whether a and b agree within tol, absolutely or relatively.
func Float64AlmostEqual(a, b, tol float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, tol, tol)
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Float64IsValid returns true if v is a finite number.
func Float64IsValid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

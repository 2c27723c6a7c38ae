// Package spatialmath defines the planar vector, rotation, and rigid transform
// algebra used by the collision query engine. Vectors are r2.Points; this package
// adds the operations r2 does not provide and the rotation/transform types.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// VecIsValid returns true if both components are finite numbers.
func VecIsValid(v r2.Point) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Lerp linearly interpolates from a to b by fraction t.
func Lerp(a, b r2.Point, t float64) r2.Point {
	return r2.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
}

// MulAdd returns a + s*b.
func MulAdd(a r2.Point, s float64, b r2.Point) r2.Point {
	return r2.Point{X: a.X + s*b.X, Y: a.Y + s*b.Y}
}

// MulSub returns a - s*b.
func MulSub(a r2.Point, s float64, b r2.Point) r2.Point {
	return r2.Point{X: a.X - s*b.X, Y: a.Y - s*b.Y}
}

// Norm2 returns the squared length of v. r2.Point carries Norm but not its
// squared form.
func Norm2(v r2.Point) float64 {
	return v.Dot(v)
}

// LeftPerp returns the counterclockwise perpendicular (-y, x).
func LeftPerp(v r2.Point) r2.Point {
	return r2.Point{X: -v.Y, Y: v.X}
}

// RightPerp returns the clockwise perpendicular (y, -x).
func RightPerp(v r2.Point) r2.Point {
	return r2.Point{X: v.Y, Y: -v.X}
}

// CrossSV returns the planar cross product of a scalar and a vector, s ^ v = (-s*y, s*x).
func CrossSV(s float64, v r2.Point) r2.Point {
	return r2.Point{X: -s * v.Y, Y: s * v.X}
}

// CrossVS returns the planar cross product of a vector and a scalar, v ^ s = (s*y, -s*x).
func CrossVS(v r2.Point, s float64) r2.Point {
	return r2.Point{X: s * v.Y, Y: -s * v.X}
}

// NormalizeWithLength returns the unit vector pointing along v together with v's length.
// A zero vector yields a zero vector and length 0.
func NormalizeWithLength(v r2.Point) (r2.Point, float64) {
	length := v.Norm()
	if length == 0 {
		return r2.Point{}, 0
	}
	return v.Mul(1 / length), length
}

// IsNormalized returns true if v has length 1 within a small tolerance.
func IsNormalized(v r2.Point) bool {
	n2 := Norm2(v)
	return 1-1e-4 < n2 && n2 < 1+1e-4
}

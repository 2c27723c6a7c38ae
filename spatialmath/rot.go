package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// Rot is a planar rotation stored as a unit complex number. Storing cosine and sine
// directly makes rotating a point two multiplies per component with no trig calls.
type Rot struct {
	Cos, Sin float64
}

// NewZeroRot returns the identity rotation.
func NewZeroRot() Rot {
	return Rot{Cos: 1, Sin: 0}
}

// NewRot returns the rotation of the given angle in radians.
func NewRot(radians float64) Rot {
	return Rot{Cos: math.Cos(radians), Sin: math.Sin(radians)}
}

// NewRotBetween returns the rotation taking unit vector a to unit vector b.
func NewRotBetween(a, b r2.Point) Rot {
	return Rot{Cos: a.Dot(b), Sin: a.Cross(b)}.Normalize()
}

// Angle returns the rotation angle in radians, in [-π, π].
func (q Rot) Angle() float64 {
	return math.Atan2(q.Sin, q.Cos)
}

// Rotate applies the rotation to a vector.
func (q Rot) Rotate(v r2.Point) r2.Point {
	return r2.Point{X: q.Cos*v.X - q.Sin*v.Y, Y: q.Sin*v.X + q.Cos*v.Y}
}

// InvRotate applies the inverse rotation to a vector.
func (q Rot) InvRotate(v r2.Point) r2.Point {
	return r2.Point{X: q.Cos*v.X + q.Sin*v.Y, Y: -q.Sin*v.X + q.Cos*v.Y}
}

// Mul composes two rotations, q followed by r applied in q's frame.
func (q Rot) Mul(r Rot) Rot {
	return Rot{
		Cos: q.Cos*r.Cos - q.Sin*r.Sin,
		Sin: q.Sin*r.Cos + q.Cos*r.Sin,
	}
}

// InvMul composes the inverse of q with r.
func (q Rot) InvMul(r Rot) Rot {
	return Rot{
		Cos: q.Cos*r.Cos + q.Sin*r.Sin,
		Sin: q.Cos*r.Sin - q.Sin*r.Cos,
	}
}

// Normalize rescales the rotation back to unit length. Interpolating rotations
// componentwise drifts off the unit circle, so sweeps normalize after every lerp.
func (q Rot) Normalize() Rot {
	length := math.Hypot(q.Sin, q.Cos)
	if length <= 0 {
		return NewZeroRot()
	}
	inv := 1 / length
	return Rot{Cos: q.Cos * inv, Sin: q.Sin * inv}
}

// IsNormalized returns true if sin²+cos² is 1 within tolerance.
func (q Rot) IsNormalized() bool {
	n2 := q.Sin*q.Sin + q.Cos*q.Cos
	return 1-0.0006 < n2 && n2 < 1+0.0006
}

// IsValid returns true if the rotation is finite and unit length.
func (q Rot) IsValid() bool {
	return VecIsValid(r2.Point{X: q.Cos, Y: q.Sin}) && q.IsNormalized()
}

// UnwindAngle reduces an angle in radians to the symmetric range [-π, π].
func UnwindAngle(radians float64) float64 {
	return math.Remainder(radians, 2*math.Pi)
}

package spatialmath

import "github.com/golang/geo/r2"

// Transform is a planar rigid transform: a rotation followed by a translation.
type Transform struct {
	P r2.Point
	Q Rot
}

// NewZeroTransform returns the identity transform.
func NewZeroTransform() Transform {
	return Transform{Q: NewZeroRot()}
}

// NewTransform returns the transform with the given translation and rotation angle in radians.
func NewTransform(p r2.Point, radians float64) Transform {
	return Transform{P: p, Q: NewRot(radians)}
}

// TransformPoint maps a point from the local frame into the parent frame.
func (t Transform) TransformPoint(p r2.Point) r2.Point {
	return t.Q.Rotate(p).Add(t.P)
}

// InvTransformPoint maps a point from the parent frame into the local frame.
func (t Transform) InvTransformPoint(p r2.Point) r2.Point {
	return t.Q.InvRotate(p.Sub(t.P))
}

// Mul composes two transforms: the result maps u's local frame through t.
func (t Transform) Mul(u Transform) Transform {
	return Transform{
		P: t.Q.Rotate(u.P).Add(t.P),
		Q: t.Q.Mul(u.Q),
	}
}

// InvMul composes the inverse of t with u, expressing u in t's frame.
func (t Transform) InvMul(u Transform) Transform {
	return Transform{
		P: t.Q.InvRotate(u.P.Sub(t.P)),
		Q: t.Q.InvMul(u.Q),
	}
}

// IsValid returns true if the translation is finite and the rotation is valid.
func (t Transform) IsValid() bool {
	return VecIsValid(t.P) && t.Q.IsValid()
}

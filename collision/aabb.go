package collision

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/kinematiclabs/collide2d/spatialmath"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Lower, Upper r2.Point
}

// IsValid returns true if the bounds are finite and non-inverted.
func (a AABB) IsValid() bool {
	d := a.Upper.Sub(a.Lower)
	return d.X >= 0 && d.Y >= 0 && spatialmath.VecIsValid(a.Lower) && spatialmath.VecIsValid(a.Upper)
}

// Contains returns true if the other box lies entirely inside this one.
func (a AABB) Contains(b AABB) bool {
	return a.Lower.X <= b.Lower.X && a.Lower.Y <= b.Lower.Y &&
		b.Upper.X <= a.Upper.X && b.Upper.Y <= a.Upper.Y
}

// Overlaps returns true if the boxes touch or intersect.
func (a AABB) Overlaps(b AABB) bool {
	return a.Lower.X <= b.Upper.X && a.Lower.Y <= b.Upper.Y &&
		b.Lower.X <= a.Upper.X && b.Lower.Y <= a.Upper.Y
}

// Center returns the box center.
func (a AABB) Center() r2.Point {
	return a.Lower.Add(a.Upper).Mul(0.5)
}

// Extents returns the box half extents.
func (a AABB) Extents() r2.Point {
	return a.Upper.Sub(a.Lower).Mul(0.5)
}

// Perimeter returns the box perimeter.
func (a AABB) Perimeter() float64 {
	return 2 * (a.Upper.X - a.Lower.X + a.Upper.Y - a.Lower.Y)
}

// Union returns the smallest box containing both boxes.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Lower: r2.Point{X: math.Min(a.Lower.X, b.Lower.X), Y: math.Min(a.Lower.Y, b.Lower.Y)},
		Upper: r2.Point{X: math.Max(a.Upper.X, b.Upper.X), Y: math.Max(a.Upper.Y, b.Upper.Y)},
	}
}

// AABB returns the circle's bounding box under the given transform.
func (c Circle) AABB(tf spatialmath.Transform) AABB {
	p := tf.TransformPoint(c.Center)
	return AABB{
		Lower: r2.Point{X: p.X - c.Radius, Y: p.Y - c.Radius},
		Upper: r2.Point{X: p.X + c.Radius, Y: p.Y + c.Radius},
	}
}

// AABB returns the capsule's bounding box under the given transform.
func (c Capsule) AABB(tf spatialmath.Transform) AABB {
	p1 := tf.TransformPoint(c.Center1)
	p2 := tf.TransformPoint(c.Center2)
	return AABB{
		Lower: r2.Point{X: math.Min(p1.X, p2.X) - c.Radius, Y: math.Min(p1.Y, p2.Y) - c.Radius},
		Upper: r2.Point{X: math.Max(p1.X, p2.X) + c.Radius, Y: math.Max(p1.Y, p2.Y) + c.Radius},
	}
}

// AABB returns the segment's bounding box under the given transform.
func (s Segment) AABB(tf spatialmath.Transform) AABB {
	p1 := tf.TransformPoint(s.Point1)
	p2 := tf.TransformPoint(s.Point2)
	return AABB{
		Lower: r2.Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Upper: r2.Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// AABB returns the polygon's bounding box under the given transform, including the
// rounded margin.
func (p Polygon) AABB(tf spatialmath.Transform) AABB {
	v := tf.TransformPoint(p.Vertices[0])
	lower, upper := v, v
	for i := 1; i < p.Count; i++ {
		v = tf.TransformPoint(p.Vertices[i])
		lower = r2.Point{X: math.Min(lower.X, v.X), Y: math.Min(lower.Y, v.Y)}
		upper = r2.Point{X: math.Max(upper.X, v.X), Y: math.Max(upper.Y, v.Y)}
	}
	r := r2.Point{X: p.Radius, Y: p.Radius}
	return AABB{Lower: lower.Sub(r), Upper: upper.Add(r)}
}

package collision

import (
	"github.com/golang/geo/r2"

	"github.com/kinematiclabs/collide2d/spatialmath"
	"github.com/kinematiclabs/collide2d/utils"
)

// Circle is a solid circle.
type Circle struct {
	// Local center.
	Center r2.Point

	Radius float64
}

// Proxy converts the circle to a shape proxy: one point plus radius.
func (c Circle) Proxy() ShapeProxy {
	return MakeProxy([]r2.Point{c.Center}, c.Radius)
}

// TransformedProxy converts the circle to a proxy in the target frame.
func (c Circle) TransformedProxy(tf spatialmath.Transform) ShapeProxy {
	return MakeTransformedProxy([]r2.Point{c.Center}, c.Radius, tf)
}

// Contains tests a point for overlap with the circle in local space.
func (c Circle) Contains(point r2.Point) bool {
	return spatialmath.Norm2(c.Center.Sub(point)) <= c.Radius*c.Radius
}

// IsValid returns true if the center is finite and the radius is a positive finite number.
func (c Circle) IsValid() bool {
	return spatialmath.VecIsValid(c.Center) && utils.Float64IsValid(c.Radius) && c.Radius > 0
}

// Capsule is a solid capsule: two semicircles connected by a rectangle. A capsule
// whose centers coincide behaves exactly like a circle in every query.
type Capsule struct {
	// Local centers of the two semicircles.
	Center1, Center2 r2.Point

	// Radius of the semicircles.
	Radius float64
}

// Proxy converts the capsule to a shape proxy: two points plus radius.
func (c Capsule) Proxy() ShapeProxy {
	return MakeProxy([]r2.Point{c.Center1, c.Center2}, c.Radius)
}

// TransformedProxy converts the capsule to a proxy in the target frame.
func (c Capsule) TransformedProxy(tf spatialmath.Transform) ShapeProxy {
	return MakeTransformedProxy([]r2.Point{c.Center1, c.Center2}, c.Radius, tf)
}

// Contains tests a point for overlap with the capsule in local space.
func (c Capsule) Contains(point r2.Point) bool {
	d := SegmentDistance(c.Center1, c.Center2, point, point)
	return d.DistanceSquared <= c.Radius*c.Radius
}

// IsValid returns true if both centers are finite and the radius is a positive finite number.
func (c Capsule) IsValid() bool {
	return spatialmath.VecIsValid(c.Center1) && spatialmath.VecIsValid(c.Center2) &&
		utils.Float64IsValid(c.Radius) && c.Radius > 0
}

// Segment is a line segment with two-sided collision.
type Segment struct {
	Point1, Point2 r2.Point
}

// Proxy converts the segment to a shape proxy: two points, zero radius.
func (s Segment) Proxy() ShapeProxy {
	return MakeProxy([]r2.Point{s.Point1, s.Point2}, 0)
}

// TransformedProxy converts the segment to a proxy in the target frame.
func (s Segment) TransformedProxy(tf spatialmath.Transform) ShapeProxy {
	return MakeTransformedProxy([]r2.Point{s.Point1, s.Point2}, 0, tf)
}

// IsValid returns true if both endpoints are finite.
func (s Segment) IsValid() bool {
	return spatialmath.VecIsValid(s.Point1) && spatialmath.VecIsValid(s.Point2)
}

// ChainSegment is a line segment with one-sided collision, as generated for a chain
// shape: ghost1 -> point1 -> point2 -> ghost2. Only the right side of the segment
// collides.
type ChainSegment struct {
	// Tail ghost vertex.
	Ghost1 r2.Point

	Segment Segment

	// Head ghost vertex.
	Ghost2 r2.Point
}

// Proxy converts the chain segment's interior segment to a shape proxy.
func (c ChainSegment) Proxy() ShapeProxy {
	return c.Segment.Proxy()
}

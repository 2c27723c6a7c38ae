package collision

import (
	"github.com/golang/geo/r2"

	"github.com/kinematiclabs/collide2d/spatialmath"
	"github.com/kinematiclabs/collide2d/utils"
)

// Polygon is a solid convex polygon of 3 to MaxPolygonVertices counter-clockwise
// vertices, optionally rounded by a radius. Outward edge normals and the centroid are
// precomputed at construction.
type Polygon struct {
	Vertices [MaxPolygonVertices]r2.Point
	Normals  [MaxPolygonVertices]r2.Point
	Centroid r2.Point
	Radius   float64
	Count    int
}

// computeCentroid is the area-weighted centroid of a counter-clockwise convex loop,
// accumulated as a triangle fan from the first vertex.
func computeCentroid(vertices []r2.Point) r2.Point {
	origin := vertices[0]
	var center r2.Point
	area := 0.0

	for i := 1; i < len(vertices)-1; i++ {
		e1 := vertices[i].Sub(origin)
		e2 := vertices[i+1].Sub(origin)
		a := 0.5 * e1.Cross(e2)
		center = spatialmath.MulAdd(center, a/3, e1.Add(e2))
		area += a
	}

	return origin.Add(center.Mul(1 / area))
}

// NewPolygon builds a rounded polygon from a valid hull. The radius expands the
// polygon outward; use 0 for sharp edges.
func NewPolygon(hull Hull, radius float64) (Polygon, error) {
	if hull.Count < 3 {
		return Polygon{}, newBadPolygonHullError(hull.Count)
	}
	if radius < 0 || !utils.Float64IsValid(radius) {
		return Polygon{}, newBadRadiusError(radius)
	}

	p := Polygon{Count: hull.Count, Radius: radius}
	for i := 0; i < hull.Count; i++ {
		p.Vertices[i] = hull.Points[i]
	}
	for i := 0; i < hull.Count; i++ {
		i2 := (i + 1) % hull.Count
		edge := p.Vertices[i2].Sub(p.Vertices[i])
		p.Normals[i] = spatialmath.RightPerp(edge).Normalize()
	}
	p.Centroid = computeCentroid(p.Vertices[:p.Count])
	return p, nil
}

// NewOffsetPolygon builds a rounded polygon from a hull, baking the given transform
// into the vertices and normals.
func NewOffsetPolygon(hull Hull, radius float64, tf spatialmath.Transform) (Polygon, error) {
	p, err := NewPolygon(hull, radius)
	if err != nil {
		return Polygon{}, err
	}
	return TransformPolygon(tf, p), nil
}

// NewBox builds an axis-aligned box polygon centered at the origin from half extents.
func NewBox(halfWidth, halfHeight float64) (Polygon, error) {
	if halfWidth <= 0 || halfHeight <= 0 ||
		!utils.Float64IsValid(halfWidth) || !utils.Float64IsValid(halfHeight) {
		return Polygon{}, newBadBoxDimensionsError(halfWidth, halfHeight)
	}

	var p Polygon
	p.Count = 4
	p.Vertices[0] = r2.Point{X: -halfWidth, Y: -halfHeight}
	p.Vertices[1] = r2.Point{X: halfWidth, Y: -halfHeight}
	p.Vertices[2] = r2.Point{X: halfWidth, Y: halfHeight}
	p.Vertices[3] = r2.Point{X: -halfWidth, Y: halfHeight}
	p.Normals[0] = r2.Point{X: 0, Y: -1}
	p.Normals[1] = r2.Point{X: 1, Y: 0}
	p.Normals[2] = r2.Point{X: 0, Y: 1}
	p.Normals[3] = r2.Point{X: -1, Y: 0}
	return p, nil
}

// NewSquare builds an axis-aligned square polygon centered at the origin.
func NewSquare(halfExtent float64) (Polygon, error) {
	return NewBox(halfExtent, halfExtent)
}

// NewRoundedBox builds a box polygon expanded by a radius. The half extents describe
// the core box; the full shape extends radius beyond it on every side.
func NewRoundedBox(halfWidth, halfHeight, radius float64) (Polygon, error) {
	if radius < 0 || !utils.Float64IsValid(radius) {
		return Polygon{}, newBadRadiusError(radius)
	}
	p, err := NewBox(halfWidth, halfHeight)
	if err != nil {
		return Polygon{}, err
	}
	p.Radius = radius
	return p, nil
}

// NewOffsetBox builds a box polygon translated to center and rotated by angle, with
// the offset baked into the vertices.
func NewOffsetBox(halfWidth, halfHeight float64, center r2.Point, angle float64) (Polygon, error) {
	p, err := NewBox(halfWidth, halfHeight)
	if err != nil {
		return Polygon{}, err
	}
	return TransformPolygon(spatialmath.NewTransform(center, angle), p), nil
}

// NewOffsetRoundedBox builds a rounded box polygon with the given offset baked in.
func NewOffsetRoundedBox(halfWidth, halfHeight float64, center r2.Point, angle, radius float64) (Polygon, error) {
	p, err := NewRoundedBox(halfWidth, halfHeight, radius)
	if err != nil {
		return Polygon{}, err
	}
	return TransformPolygon(spatialmath.NewTransform(center, angle), p), nil
}

// TransformPolygon maps a polygon's vertices, normals, and centroid through a
// transform, producing a polygon expressed in the parent frame.
func TransformPolygon(tf spatialmath.Transform, p Polygon) Polygon {
	for i := 0; i < p.Count; i++ {
		p.Vertices[i] = tf.TransformPoint(p.Vertices[i])
		p.Normals[i] = tf.Q.Rotate(p.Normals[i])
	}
	p.Centroid = tf.TransformPoint(p.Centroid)
	return p
}

// Proxy converts the polygon to a shape proxy.
func (p Polygon) Proxy() ShapeProxy {
	return MakeProxy(p.Vertices[:p.Count], p.Radius)
}

// TransformedProxy converts the polygon to a proxy in the target frame.
func (p Polygon) TransformedProxy(tf spatialmath.Transform) ShapeProxy {
	return MakeTransformedProxy(p.Vertices[:p.Count], p.Radius, tf)
}

// Contains tests a point for overlap with the polygon in local space, including the
// rounded margin.
func (p Polygon) Contains(point r2.Point) bool {
	input := DistanceInput{
		ProxyA:     MakeProxy(p.Vertices[:p.Count], 0),
		ProxyB:     MakeProxy([]r2.Point{point}, 0),
		TransformA: spatialmath.NewZeroTransform(),
		TransformB: spatialmath.NewZeroTransform(),
	}
	output := Distance(input, nil)
	return output.Distance <= p.Radius
}

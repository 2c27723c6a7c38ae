package collision

import (
	"github.com/golang/geo/r2"

	"github.com/kinematiclabs/collide2d/spatialmath"
	"github.com/kinematiclabs/collide2d/utils"
)

// ShapeProxy is the generalized convex shape consumed by the distance, cast, and TOI
// queries: a bounded point cloud plus an expansion radius. A circle is one point with
// r > 0, a capsule two points with r > 0, a segment two points with r = 0, and a
// polygon up to MaxPolygonVertices points with r >= 0. Proxies are built per query
// and never retained by the engine.
type ShapeProxy struct {
	// Convex hull vertices in local space.
	Points [MaxPolygonVertices]r2.Point

	// Number of valid vertices, 1 to MaxPolygonVertices.
	Count int

	// Expansion radius for rounded shapes. Zero for sharp-edged shapes.
	Radius float64
}

// MakeProxy copies a point span into a proxy. The points must describe a convex hull;
// len(points) must be between 1 and MaxPolygonVertices.
func MakeProxy(points []r2.Point, radius float64) ShapeProxy {
	p := ShapeProxy{Count: len(points), Radius: radius}
	copy(p.Points[:], points)
	return p
}

// MakeTransformedProxy copies a point span into a proxy, mapping every point through
// the given transform.
func MakeTransformedProxy(points []r2.Point, radius float64, tf spatialmath.Transform) ShapeProxy {
	p := ShapeProxy{Count: len(points), Radius: radius}
	for i, pt := range points {
		p.Points[i] = tf.TransformPoint(pt)
	}
	return p
}

// FindSupport returns the index of the point maximizing dot(point, direction).
// A near-zero direction returns index 0; that is a deterministic fallback, not an
// error, and callers rely on it when two proxies start coincident.
func (p *ShapeProxy) FindSupport(direction r2.Point) int {
	if spatialmath.Norm2(direction) < epsilon {
		return 0
	}

	bestIndex := 0
	bestValue := p.Points[0].Dot(direction)
	for i := 1; i < p.Count; i++ {
		if value := p.Points[i].Dot(direction); value > bestValue {
			bestIndex = i
			bestValue = value
		}
	}
	return bestIndex
}

// IsValid returns true if the proxy has a usable point count, a non-negative finite
// radius, and finite points. Queries do not check this on the hot path; validate
// shapes upstream.
func (p *ShapeProxy) IsValid() bool {
	if p.Count < 1 || p.Count > MaxPolygonVertices {
		return false
	}
	if p.Radius < 0 || !utils.Float64IsValid(p.Radius) {
		return false
	}
	for i := 0; i < p.Count; i++ {
		if !spatialmath.VecIsValid(p.Points[i]) {
			return false
		}
	}
	return true
}

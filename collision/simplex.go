package collision

import (
	"github.com/golang/geo/r2"

	"github.com/kinematiclabs/collide2d/spatialmath"
)

// SimplexCache persists the feature indices of a GJK simplex between distance calls
// on the same shape pair. Zero-initialize it before the first call; Distance writes
// the final simplex back so the next call with nearby transforms converges in one or
// two iterations. The cache is owned entirely by the caller.
type SimplexCache struct {
	// Number of cached vertices: 0 (uninitialized), 1 (point), 2 (segment), 3 (triangle).
	Count int

	// Cached vertex indices on proxy A.
	IndexA [3]uint8

	// Cached vertex indices on proxy B.
	IndexB [3]uint8
}

// simplexVertex is one support-point pair of a GJK simplex. All points are expressed
// in proxy A's frame.
type simplexVertex struct {
	wA     r2.Point // support point on A
	wB     r2.Point // support point on B
	w      r2.Point // Minkowski point wA - wB
	a      float64  // barycentric weight
	indexA int
	indexB int
}

// simplex is GJK's working set: a point, line segment, or triangle in Minkowski
// difference space. The solve routines are pure; they return the reduced simplex and
// the next search direction instead of reordering vertices in place.
type simplex struct {
	vertices [3]simplexVertex
	count    int
}

// makeSimplex reconstructs a simplex from a cache, or seeds a single vertex from each
// proxy's first point when the cache is uninitialized.
func makeSimplex(cache *SimplexCache, proxyA, proxyB *ShapeProxy) simplex {
	var s simplex
	if cache == nil || cache.Count == 0 {
		s.count = 1
		s.vertices[0] = simplexVertex{
			wA: proxyA.Points[0],
			wB: proxyB.Points[0],
			w:  proxyA.Points[0].Sub(proxyB.Points[0]),
			a:  1,
		}
		return s
	}

	s.count = cache.Count
	for i := 0; i < s.count; i++ {
		v := &s.vertices[i]
		v.indexA = int(cache.IndexA[i])
		v.indexB = int(cache.IndexB[i])
		v.wA = proxyA.Points[v.indexA]
		v.wB = proxyB.Points[v.indexB]
		v.w = v.wA.Sub(v.wB)
		v.a = -1 // recomputed by the solver
	}
	return s
}

// makeCache snapshots the simplex's feature indices.
func (s *simplex) makeCache() SimplexCache {
	c := SimplexCache{Count: s.count}
	for i := 0; i < s.count; i++ {
		c.IndexA[i] = uint8(s.vertices[i].indexA)
		c.IndexB[i] = uint8(s.vertices[i].indexB)
	}
	return c
}

// solve2 finds the closest feature of a line segment to the origin and returns the
// reduced simplex with barycentric weights plus a search direction toward the origin.
func (s simplex) solve2() (simplex, r2.Point) {
	w1 := s.vertices[0].w
	w2 := s.vertices[1].w
	e12 := w2.Sub(w1)

	// w1 region
	d12u2 := -w1.Dot(e12)
	if d12u2 <= 0 {
		s.vertices[0].a = 1
		s.count = 1
		return s, w1.Mul(-1)
	}

	// w2 region
	d12u1 := w2.Dot(e12)
	if d12u1 <= 0 {
		s.vertices[1].a = 1
		s.vertices[0] = s.vertices[1]
		s.count = 1
		return s, w2.Mul(-1)
	}

	// Edge region
	invD12 := 1 / (d12u1 + d12u2)
	s.vertices[0].a = d12u1 * invD12
	s.vertices[1].a = d12u2 * invD12
	s.count = 2
	return s, spatialmath.CrossSV(w1.Add(w2).Cross(e12), e12)
}

// solve3 classifies the origin against a triangle's Voronoi regions using closed-form
// 2x2/3x3 determinants and returns the reduced simplex plus a search direction. A
// zero direction means the origin is enclosed.
func (s simplex) solve3() (simplex, r2.Point) {
	w1 := s.vertices[0].w
	w2 := s.vertices[1].w
	w3 := s.vertices[2].w

	// Edge 12 barycentrics (a3 = 0)
	e12 := w2.Sub(w1)
	d12u1 := w2.Dot(e12)
	d12u2 := -w1.Dot(e12)

	// Edge 13 barycentrics (a2 = 0)
	e13 := w3.Sub(w1)
	d13u1 := w3.Dot(e13)
	d13u2 := -w1.Dot(e13)

	// Edge 23 barycentrics (a1 = 0)
	e23 := w3.Sub(w2)
	d23u1 := w3.Dot(e23)
	d23u2 := -w2.Dot(e23)

	// Triangle barycentrics
	n123 := e12.Cross(e13)
	d123u1 := n123 * w2.Cross(w3)
	d123u2 := n123 * w3.Cross(w1)
	d123u3 := n123 * w1.Cross(w2)

	// w1 region
	if d12u2 <= 0 && d13u2 <= 0 {
		s.vertices[0].a = 1
		s.count = 1
		return s, w1.Mul(-1)
	}

	// Edge 12 region
	if d12u1 > 0 && d12u2 > 0 && d123u3 <= 0 {
		invD12 := 1 / (d12u1 + d12u2)
		s.vertices[0].a = d12u1 * invD12
		s.vertices[1].a = d12u2 * invD12
		s.count = 2
		return s, spatialmath.CrossSV(w1.Add(w2).Cross(e12), e12)
	}

	// Edge 13 region
	if d13u1 > 0 && d13u2 > 0 && d123u2 <= 0 {
		invD13 := 1 / (d13u1 + d13u2)
		s.vertices[0].a = d13u1 * invD13
		s.vertices[2].a = d13u2 * invD13
		s.vertices[1] = s.vertices[2]
		s.count = 2
		return s, spatialmath.CrossSV(w1.Add(w3).Cross(e13), e13)
	}

	// w2 region
	if d12u1 <= 0 && d23u2 <= 0 {
		s.vertices[1].a = 1
		s.vertices[0] = s.vertices[1]
		s.count = 1
		return s, w2.Mul(-1)
	}

	// w3 region
	if d13u1 <= 0 && d23u1 <= 0 {
		s.vertices[2].a = 1
		s.vertices[0] = s.vertices[2]
		s.count = 1
		return s, w3.Mul(-1)
	}

	// Edge 23 region
	if d23u1 > 0 && d23u2 > 0 && d123u1 <= 0 {
		invD23 := 1 / (d23u1 + d23u2)
		s.vertices[1].a = d23u1 * invD23
		s.vertices[2].a = d23u2 * invD23
		s.vertices[0] = s.vertices[2]
		s.count = 2
		return s, spatialmath.CrossSV(w2.Add(w3).Cross(e23), e23)
	}

	// Origin is inside the triangle; no search direction.
	invD123 := 1 / (d123u1 + d123u2 + d123u3)
	s.vertices[0].a = d123u1 * invD123
	s.vertices[1].a = d123u2 * invD123
	s.vertices[2].a = d123u3 * invD123
	s.count = 3
	return s, r2.Point{}
}

// witnessPoints combines the simplex vertices by their barycentric weights into the
// closest points on each proxy, in A's frame. In the triangle (overlap) case the
// point on B reuses A's combination; the shapes overlap there so the witness points
// coincide by policy.
func (s *simplex) witnessPoints() (r2.Point, r2.Point) {
	switch s.count {
	case 1:
		return s.vertices[0].wA, s.vertices[0].wB
	case 2:
		v1, v2 := &s.vertices[0], &s.vertices[1]
		pa := v1.wA.Mul(v1.a).Add(v2.wA.Mul(v2.a))
		pb := v1.wB.Mul(v1.a).Add(v2.wB.Mul(v2.a))
		return pa, pb
	default:
		v1, v2, v3 := &s.vertices[0], &s.vertices[1], &s.vertices[2]
		pa := v1.wA.Mul(v1.a).Add(v2.wA.Mul(v2.a)).Add(v3.wA.Mul(v3.a))
		return pa, pa
	}
}

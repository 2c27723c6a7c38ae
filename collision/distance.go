package collision

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/kinematiclabs/collide2d/spatialmath"
	"github.com/kinematiclabs/collide2d/utils"
)

// DistanceInput is the request for a closest-point query between two proxies.
type DistanceInput struct {
	ProxyA, ProxyB ShapeProxy

	// World transforms of the proxies.
	TransformA, TransformB spatialmath.Transform

	// UseRadii subtracts both proxy radii from the distance and pushes the witness
	// points out to the rounded surfaces.
	UseRadii bool
}

// DistanceOutput is the result of a closest-point query.
type DistanceOutput struct {
	// Closest points on A and B in world coordinates.
	PointA, PointB r2.Point

	// Unit normal pointing from A to B. Only valid when Distance > 0.
	Normal r2.Point

	// Distance between the shapes. Zero when overlapping.
	Distance float64

	// Number of GJK support evaluations. A warm cache typically needs one.
	Iterations int
}

// Distance computes the closest points between two convex proxies using GJK. The
// cache warm-starts the simplex and receives the final simplex back; pass nil for a
// one-shot query. The function is total: exhausting the iteration cap yields the best
// available approximation, never an error.
func Distance(input DistanceInput, cache *SimplexCache) DistanceOutput {
	// Bring proxy B into A's frame once so the main loop needs no transforms.
	localB := ShapeProxy{Count: input.ProxyB.Count, Radius: input.ProxyB.Radius}
	{
		tf := input.TransformA.InvMul(input.TransformB)
		for i := 0; i < input.ProxyB.Count; i++ {
			localB.Points[i] = tf.TransformPoint(input.ProxyB.Points[i])
		}
	}

	s := makeSimplex(cache, &input.ProxyA, &localB)

	iterations := 0

	// The witness points live in A's frame, so both map through A's transform.
	overlap := func() DistanceOutput {
		if cache != nil {
			*cache = s.makeCache()
		}
		localA, localPB := s.witnessPoints()
		return DistanceOutput{
			PointA:     input.TransformA.TransformPoint(localA),
			PointB:     input.TransformA.TransformPoint(localPB),
			Normal:     r2.Point{},
			Distance:   0,
			Iterations: iterations,
		}
	}

	var nonUnitNormal r2.Point

	var saveA, saveB [3]int
	for iterations < maxDistanceIterations {
		// Snapshot the vertex index pairs for duplicate detection.
		saveCount := s.count
		for i := 0; i < saveCount; i++ {
			saveA[i] = s.vertices[i].indexA
			saveB[i] = s.vertices[i].indexB
		}

		var d r2.Point
		switch s.count {
		case 1:
			d = s.vertices[0].w.Mul(-1)
		case 2:
			s, d = s.solve2()
		default:
			s, d = s.solve3()
		}

		// A full triangle encloses the origin.
		if s.count == 3 {
			return overlap()
		}

		// A degenerate search direction means the origin sits on a simplex feature;
		// the normal would be invalid, so report overlap.
		if spatialmath.Norm2(d) < epsilon*epsilon {
			return overlap()
		}

		nonUnitNormal = d

		// Tentative new vertex: support(A, d) - support(B, -d).
		v := &s.vertices[s.count]
		v.indexA = input.ProxyA.FindSupport(d)
		v.wA = input.ProxyA.Points[v.indexA]
		v.indexB = localB.FindSupport(d.Mul(-1))
		v.wB = localB.Points[v.indexB]
		v.w = v.wA.Sub(v.wB)

		// Iteration count equals the number of support evaluations.
		iterations++

		// A repeated support pair is the main termination criterion; appending it
		// would cycle forever.
		duplicate := false
		for i := 0; i < saveCount; i++ {
			if saveA[i] == v.indexA && saveB[i] == v.indexB {
				duplicate = true
				break
			}
		}
		if duplicate {
			break
		}

		s.count++
	}

	normal := input.TransformA.Q.Rotate(nonUnitNormal.Normalize())
	localA, localPB := s.witnessPoints()

	out := DistanceOutput{
		PointA:     input.TransformA.TransformPoint(localA),
		PointB:     input.TransformA.TransformPoint(localPB),
		Normal:     normal,
		Distance:   localA.Sub(localPB).Norm(),
		Iterations: iterations,
	}

	if cache != nil {
		*cache = s.makeCache()
	}

	if input.UseRadii {
		radiusA := input.ProxyA.Radius
		radiusB := input.ProxyB.Radius
		out.Distance = math.Max(out.Distance-radiusA-radiusB, 0)

		// Keep the witness points on the rounded perimeters even when overlapped so
		// they move smoothly between queries.
		out.PointA = spatialmath.MulAdd(out.PointA, radiusA, normal)
		out.PointB = spatialmath.MulSub(out.PointB, radiusB, normal)
	}

	return out
}

// SegmentDistanceOutput is the result of a segment-segment closest-point query.
type SegmentDistanceOutput struct {
	// Closest points on each segment.
	Closest1, Closest2 r2.Point

	// Barycentric fractions of the closest points along each segment, in [0, 1].
	Fraction1, Fraction2 float64

	// Squared distance between the closest points.
	DistanceSquared float64
}

// SegmentDistance computes the closest points between segments p1-q1 and p2-q2 in
// closed form, clamping to the endpoints. Degenerate (point-like) segments are
// handled explicitly.
func SegmentDistance(p1, q1, p2, q2 r2.Point) SegmentDistanceOutput {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	dd1 := d1.Dot(d1)
	dd2 := d2.Dot(d2)
	rd1 := r.Dot(d1)
	rd2 := r.Dot(d2)

	eps2 := epsilon * epsilon

	var f1, f2 float64
	switch {
	case dd1 < eps2 || dd2 < eps2:
		switch {
		case dd1 >= eps2:
			// Segment 2 is degenerate.
			f1 = utils.Clamp(-rd1/dd1, 0, 1)
			f2 = 0
		case dd2 >= eps2:
			// Segment 1 is degenerate.
			f1 = 0
			f2 = utils.Clamp(rd2/dd2, 0, 1)
		default:
			f1 = 0
			f2 = 0
		}
	default:
		d12 := d1.Dot(d2)
		denominator := dd1*dd2 - d12*d12

		// Fraction on segment 1.
		if denominator != 0 {
			// Not parallel.
			f1 = utils.Clamp((d12*rd2-dd2*rd1)/denominator, 0, 1)
		}

		// Point on segment 2 closest to p1 + f1*d1.
		f2 = (d12*f1 + rd2) / dd2

		// Clamping f2 requires a do-over on segment 1.
		if f2 < 0 {
			f1 = utils.Clamp(-rd1/dd1, 0, 1)
			f2 = 0
		} else if f2 > 1 {
			f1 = utils.Clamp((d12-rd1)/dd1, 0, 1)
			f2 = 1
		}
	}

	closest1 := spatialmath.MulAdd(p1, f1, d1)
	closest2 := spatialmath.MulAdd(p2, f2, d2)
	return SegmentDistanceOutput{
		Closest1:        closest1,
		Closest2:        closest2,
		Fraction1:       f1,
		Fraction2:       f2,
		DistanceSquared: spatialmath.Norm2(closest1.Sub(closest2)),
	}
}

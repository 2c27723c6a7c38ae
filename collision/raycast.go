package collision

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/kinematiclabs/collide2d/spatialmath"
	"github.com/kinematiclabs/collide2d/utils"
)

// RayCastInput is a ray described by an origin, a translation vector, and the maximum
// fraction of the translation to travel.
type RayCastInput struct {
	Origin, Translation r2.Point

	// Largest hit fraction to report. May exceed 1 to extend the ray beyond the
	// translation vector.
	MaxFraction float64
}

// IsValid returns true if the origin and translation are finite and the fraction is a
// non-negative finite number.
func (in RayCastInput) IsValid() bool {
	return spatialmath.VecIsValid(in.Origin) && spatialmath.VecIsValid(in.Translation) &&
		utils.Float64IsValid(in.MaxFraction) && in.MaxFraction >= 0
}

// CastOutput is the result of a ray or shape cast. When Hit is false the other fields
// are zero. An initial overlap reports Hit with a zero fraction and a zero normal.
type CastOutput struct {
	// Surface normal at the hit point.
	Normal r2.Point

	// Hit point in world coordinates.
	Point r2.Point

	// Fraction of the translation at the hit.
	Fraction float64

	// Number of conservative-advancement iterations. Zero for closed-form casts.
	Iterations int

	Hit bool
}

// RayCastCircle casts a ray against a circle in local space by solving the
// ray-circle quadratic in closed form.
func RayCastCircle(input RayCastInput, circle Circle) CastOutput {
	// Shift the ray so the circle center is the origin.
	s := input.Origin.Sub(circle.Center)

	r := circle.Radius
	rr := r * r

	length := input.Translation.Norm()
	if length == 0 {
		if spatialmath.Norm2(s) < rr {
			return CastOutput{Point: input.Origin, Hit: true}
		}
		return CastOutput{}
	}
	d := input.Translation.Mul(1 / length)

	// Closest point on the infinite ray to the center: s + t*d.
	t := -s.Dot(d)
	c := spatialmath.MulAdd(s, t, d)
	cc := c.Dot(c)

	if cc > rr {
		return CastOutput{}
	}

	// Pythagoras back to the entering intersection.
	h := math.Sqrt(rr - cc)
	distance := t - h

	if distance < 0 || input.MaxFraction*length < distance {
		if spatialmath.Norm2(s) < rr {
			return CastOutput{Point: input.Origin, Hit: true}
		}
		return CastOutput{}
	}

	normal := spatialmath.MulAdd(s, distance, d).Normalize()
	return CastOutput{
		Normal:   normal,
		Point:    spatialmath.MulAdd(circle.Center, circle.Radius, normal),
		Fraction: distance / length,
		Hit:      true,
	}
}

// RayCastCapsule casts a ray against a capsule in local space. The infinite capsule
// sides are intersected with Cramer's rule; ends fall through to the circle cast.
func RayCastCapsule(input RayCastInput, capsule Capsule) CastOutput {
	v1 := capsule.Center1
	v2 := capsule.Center2

	e := v2.Sub(v1)
	capsuleLength := e.Norm()
	if capsuleLength < epsilon {
		// Degenerate capsule, treat as a circle.
		return RayCastCircle(input, Circle{Center: v1, Radius: capsule.Radius})
	}
	a := e.Mul(1 / capsuleLength)

	p1 := input.Origin
	d := input.Translation

	r := capsule.Radius
	rr := r * r

	q := p1.Sub(v1)
	qa := q.Dot(a)

	// Component of q perpendicular to the capsule axis.
	qp := spatialmath.MulAdd(q, -qa, a)

	// Ray starts inside the infinite capsule?
	if qp.Dot(qp) < rr {
		if qa < 0 {
			// Behind the segment, only the first end cap matters.
			return RayCastCircle(input, Circle{Center: v1, Radius: capsule.Radius})
		}
		if qa > capsuleLength {
			// Ahead of the segment, only the second end cap matters.
			return RayCastCircle(input, Circle{Center: v2, Radius: capsule.Radius})
		}
		return CastOutput{Point: input.Origin, Hit: true}
	}

	// Axis perpendicular pointing right.
	n := r2.Point{X: a.Y, Y: -a.X}

	rayLength := d.Norm()
	if rayLength == 0 {
		return CastOutput{}
	}
	u := d.Mul(1 / rayLength)

	// Intersect the ray with both infinite capsule sides:
	//   v1 +- radius*n + s1*a = p1 + s2*u
	// which is the linear system s1*a - s2*u = b with b = q -+ radius*n,
	// solved with Cramer's rule on [a -u].
	den := a.Cross(u.Mul(-1))
	if den > -epsilon && den < epsilon {
		// Parallel and outside the infinite capsule.
		return CastOutput{}
	}

	b1 := spatialmath.MulSub(q, r, n)
	b2 := spatialmath.MulAdd(q, r, n)

	invDen := 1 / den

	s21 := a.Cross(b1) * invDen
	s22 := a.Cross(b2) * invDen

	var s2 float64
	var b r2.Point
	if s21 < s22 {
		s2 = s21
		b = b1
	} else {
		s2 = s22
		b = b2
		n = n.Mul(-1)
	}

	if s2 < 0 || s2 > input.MaxFraction*rayLength {
		return CastOutput{}
	}

	s1 := b.Cross(u.Mul(-1)) * invDen
	if s1 < 0 {
		// Ray passes behind the capsule segment.
		return RayCastCircle(input, Circle{Center: v1, Radius: capsule.Radius})
	}
	if s1 > capsuleLength {
		// Ray passes ahead of the capsule segment.
		return RayCastCircle(input, Circle{Center: v2, Radius: capsule.Radius})
	}

	return CastOutput{
		Normal:   n,
		Point:    spatialmath.MulAdd(spatialmath.Lerp(v1, v2, s1/capsuleLength), r, n),
		Fraction: s2 / rayLength,
		Hit:      true,
	}
}

// RayCastPolygon casts a ray against a polygon in local space by clipping the ray
// fraction interval against each edge half-plane. Rounded polygons fall back to a
// shape cast of a point proxy.
func RayCastPolygon(input RayCastInput, polygon Polygon) CastOutput {
	if polygon.Radius == 0 {
		// Shift all math to the first vertex since the polygon may be far from the
		// origin.
		base := polygon.Vertices[0]

		p1 := input.Origin.Sub(base)
		d := input.Translation

		lower, upper := 0.0, input.MaxFraction

		index := invalidIndex
		for edgeIndex := 0; edgeIndex < polygon.Count; edgeIndex++ {
			// p = p1 + a*d
			// dot(normal, p - v) = 0
			// dot(normal, p1 - v) + a*dot(normal, d) = 0
			vertex := polygon.Vertices[edgeIndex].Sub(base)
			numerator := polygon.Normals[edgeIndex].Dot(vertex.Sub(p1))
			denominator := polygon.Normals[edgeIndex].Dot(d)

			if denominator == 0 {
				// Parallel and outside this edge.
				if numerator < 0 {
					return CastOutput{}
				}
			} else {
				// The division-free forms of lower < numerator/denominator and
				// upper > numerator/denominator, accounting for the sign flip when
				// the denominator is negative.
				if denominator < 0 && numerator < lower*denominator {
					// The ray enters this half-plane.
					lower = numerator / denominator
					index = edgeIndex
				} else if denominator > 0 && numerator < upper*denominator {
					// The ray exits this half-plane.
					upper = numerator / denominator
				}
			}

			if upper < lower {
				return CastOutput{}
			}
		}

		if index == invalidIndex {
			// The origin is inside the polygon.
			return CastOutput{Point: input.Origin, Hit: true}
		}

		return CastOutput{
			Normal:   polygon.Normals[index],
			Point:    spatialmath.MulAdd(input.Origin, lower, d),
			Fraction: lower,
			Hit:      true,
		}
	}

	return ShapeCast(ShapeCastPairInput{
		ProxyA:       MakeProxy(polygon.Vertices[:polygon.Count], polygon.Radius),
		ProxyB:       MakeProxy([]r2.Point{input.Origin}, 0),
		TransformA:   spatialmath.NewZeroTransform(),
		TransformB:   spatialmath.NewZeroTransform(),
		TranslationB: input.Translation,
		MaxFraction:  input.MaxFraction,
	})
}

// RayCastSegment casts a ray against a segment in local space. With oneSided set,
// rays approaching from the left of point1->point2 pass through.
func RayCastSegment(input RayCastInput, segment Segment, oneSided bool) CastOutput {
	if oneSided {
		if offset := input.Origin.Sub(segment.Point1).Cross(segment.Point2.Sub(segment.Point1)); offset < 0 {
			return CastOutput{}
		}
	}

	p1 := input.Origin
	d := input.Translation

	v1 := segment.Point1
	v2 := segment.Point2
	e := v2.Sub(v1)

	length := e.Norm()
	if length == 0 {
		return CastOutput{}
	}
	eUnit := e.Mul(1 / length)

	// Normal points right looking from v1 toward v2.
	normal := spatialmath.RightPerp(eUnit)

	// Intersect the ray with the infinite line through the segment:
	// p = p1 + t*d with dot(normal, p - v1) = 0.
	numerator := normal.Dot(v1.Sub(p1))
	denominator := normal.Dot(d)

	if denominator == 0 {
		return CastOutput{}
	}

	t := numerator / denominator
	if t < 0 || t > input.MaxFraction {
		return CastOutput{}
	}

	p := spatialmath.MulAdd(p1, t, d)

	// Position of p along the segment.
	s := p.Sub(v1).Dot(eUnit)
	if s < 0 || s > length {
		return CastOutput{}
	}

	if numerator > 0 {
		normal = normal.Mul(-1)
	}

	return CastOutput{Normal: normal, Point: p, Fraction: t, Hit: true}
}

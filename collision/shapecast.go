package collision

import (
	"github.com/golang/geo/r2"

	"github.com/kinematiclabs/collide2d/spatialmath"
	"github.com/kinematiclabs/collide2d/utils"
)

// ShapeCastInput sweeps a proxy along a translation against a stationary shape in
// that shape's local space.
type ShapeCastInput struct {
	// The moving proxy, starting in the stationary shape's frame.
	Proxy ShapeProxy

	// Sweep translation of the proxy.
	Translation r2.Point

	// Largest hit fraction to report, in [0, 1].
	MaxFraction float64

	// CanEncroach lets a pair that starts within the slop margin advance closer
	// instead of reporting an immediate overlap hit.
	CanEncroach bool
}

// IsValid returns true if the proxy, translation, and fraction are usable.
func (in ShapeCastInput) IsValid() bool {
	return in.Proxy.IsValid() && spatialmath.VecIsValid(in.Translation) &&
		utils.Float64IsValid(in.MaxFraction) && in.MaxFraction >= 0 && in.MaxFraction <= 1
}

// ShapeCastPairInput sweeps proxy B along a world translation against a stationary
// proxy A.
type ShapeCastPairInput struct {
	ProxyA, ProxyB ShapeProxy

	// World transforms of the proxies at the start of the sweep.
	TransformA, TransformB spatialmath.Transform

	// Sweep translation of proxy B in world coordinates.
	TranslationB r2.Point

	// Largest hit fraction to report, in [0, 1].
	MaxFraction float64

	// CanEncroach lets a pair that starts within the slop margin advance closer
	// instead of reporting an immediate overlap hit.
	CanEncroach bool
}

// IsValid returns true if the proxies, transforms, translation, and fraction are
// usable.
func (in ShapeCastPairInput) IsValid() bool {
	return in.ProxyA.IsValid() && in.ProxyB.IsValid() &&
		in.TransformA.IsValid() && in.TransformB.IsValid() &&
		spatialmath.VecIsValid(in.TranslationB) &&
		utils.Float64IsValid(in.MaxFraction) && in.MaxFraction >= 0 && in.MaxFraction <= 1
}

// ShapeCast sweeps proxy B against proxy A using conservative advancement: each step
// measures the core distance with GJK and advances B along its translation by the
// distance to a slop-derived target separation, which no rotation-free sweep can
// tunnel through. The fraction where the pair first reaches the target is the hit.
func ShapeCast(input ShapeCastPairInput) CastOutput {
	var result CastOutput

	if spatialmath.Norm2(input.TranslationB) < epsilon {
		// Zero translation, reduce to a static overlap test.
		output := Distance(DistanceInput{
			ProxyA:     input.ProxyA,
			ProxyB:     input.ProxyB,
			TransformA: input.TransformA,
			TransformB: input.TransformB,
			UseRadii:   true,
		}, nil)
		if output.Distance <= 0 {
			result.Point = spatialmath.Lerp(output.PointA, output.PointB, 0.5)
			result.Hit = true
		}
		return result
	}

	totalRadius := input.ProxyA.Radius + input.ProxyB.Radius
	tolerance := LinearSlop / 4

	// The core shapes stop a slop short of touching so the radii surfaces just meet.
	target := max(LinearSlop, totalRadius-LinearSlop)

	var cache SimplexCache
	distanceInput := DistanceInput{
		ProxyA:     input.ProxyA,
		ProxyB:     input.ProxyB,
		TransformA: input.TransformA,
		TransformB: input.TransformB,
	}

	fraction := 0.0
	delta := input.TranslationB

	for iteration := 0; iteration < maxDistanceIterations; iteration++ {
		result.Iterations++

		output := Distance(distanceInput, &cache)
		if output.Distance < target+tolerance {
			if iteration == 0 {
				if input.CanEncroach && output.Distance > 2*LinearSlop {
					// Allow the pair to close up to a slop of the start distance.
					target = output.Distance - LinearSlop
				} else {
					// Initial overlap, report the midpoint of the rounded surfaces.
					result.Hit = true
					c1 := spatialmath.MulAdd(output.PointA, input.ProxyA.Radius, output.Normal)
					c2 := spatialmath.MulAdd(output.PointB, -input.ProxyB.Radius, output.Normal)
					result.Point = spatialmath.Lerp(c1, c2, 0.5)
					return result
				}
			} else {
				// Regular hit at the current fraction.
				result.Normal = output.Normal
				result.Point = spatialmath.MulAdd(output.PointA, input.ProxyA.Radius, output.Normal)
				result.Fraction = fraction
				result.Hit = true
				return result
			}
		}

		// Approach speed along the separating normal. Moving apart means a miss.
		denominator := delta.Dot(output.Normal)
		if denominator >= 0 {
			return result
		}

		fraction += (target - output.Distance) / denominator
		if fraction >= input.MaxFraction {
			return result
		}

		distanceInput.TransformB.P = spatialmath.MulAdd(input.TransformB.P, fraction, delta)
	}

	// Iteration cap exhausted without converging.
	return result
}

// ShapeCastCircle sweeps a proxy against a circle in the circle's local space.
func ShapeCastCircle(input ShapeCastInput, circle Circle) CastOutput {
	return ShapeCast(ShapeCastPairInput{
		ProxyA:       circle.Proxy(),
		ProxyB:       input.Proxy,
		TransformA:   spatialmath.NewZeroTransform(),
		TransformB:   spatialmath.NewZeroTransform(),
		TranslationB: input.Translation,
		MaxFraction:  input.MaxFraction,
		CanEncroach:  input.CanEncroach,
	})
}

// ShapeCastCapsule sweeps a proxy against a capsule in the capsule's local space.
func ShapeCastCapsule(input ShapeCastInput, capsule Capsule) CastOutput {
	return ShapeCast(ShapeCastPairInput{
		ProxyA:       capsule.Proxy(),
		ProxyB:       input.Proxy,
		TransformA:   spatialmath.NewZeroTransform(),
		TransformB:   spatialmath.NewZeroTransform(),
		TranslationB: input.Translation,
		MaxFraction:  input.MaxFraction,
		CanEncroach:  input.CanEncroach,
	})
}

// ShapeCastPolygon sweeps a proxy against a polygon in the polygon's local space.
func ShapeCastPolygon(input ShapeCastInput, polygon Polygon) CastOutput {
	return ShapeCast(ShapeCastPairInput{
		ProxyA:       polygon.Proxy(),
		ProxyB:       input.Proxy,
		TransformA:   spatialmath.NewZeroTransform(),
		TransformB:   spatialmath.NewZeroTransform(),
		TranslationB: input.Translation,
		MaxFraction:  input.MaxFraction,
		CanEncroach:  input.CanEncroach,
	})
}

// ShapeCastSegment sweeps a proxy against a segment in the segment's local space.
func ShapeCastSegment(input ShapeCastInput, segment Segment) CastOutput {
	return ShapeCast(ShapeCastPairInput{
		ProxyA:       segment.Proxy(),
		ProxyB:       input.Proxy,
		TransformA:   spatialmath.NewZeroTransform(),
		TransformB:   spatialmath.NewZeroTransform(),
		TranslationB: input.Translation,
		MaxFraction:  input.MaxFraction,
		CanEncroach:  input.CanEncroach,
	})
}

package collision

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/kinematiclabs/collide2d/spatialmath"
	"github.com/kinematiclabs/collide2d/utils"
)

// Sweep describes the motion of a body's center of mass and rotation over one step.
// Transforms are interpolated around the local center so rotation does not translate
// the body origin.
type Sweep struct {
	// Center of mass in body-local coordinates.
	LocalCenter r2.Point

	// World center of mass at the start and end of the step.
	C1, C2 r2.Point

	// World rotation at the start and end of the step.
	Q1, Q2 spatialmath.Rot
}

// IsValid returns true if all sweep fields are finite.
func (s Sweep) IsValid() bool {
	return spatialmath.VecIsValid(s.LocalCenter) &&
		spatialmath.VecIsValid(s.C1) && spatialmath.VecIsValid(s.C2) &&
		s.Q1.IsValid() && s.Q2.IsValid()
}

// TransformAt interpolates the sweep at fraction t in [0, 1]. The rotation is lerped
// componentwise and renormalized, which stays on the short arc for the step-sized
// rotations the solver produces.
func (s Sweep) TransformAt(t float64) spatialmath.Transform {
	q := spatialmath.Rot{
		Cos: (1-t)*s.Q1.Cos + t*s.Q2.Cos,
		Sin: (1-t)*s.Q1.Sin + t*s.Q2.Sin,
	}.Normalize()

	p := spatialmath.Lerp(s.C1, s.C2, t)
	// Shift from the center of mass back to the body origin.
	p = p.Sub(q.Rotate(s.LocalCenter))

	return spatialmath.Transform{P: p, Q: q}
}

// LinearVelocity is the center displacement over the step.
func (s Sweep) LinearVelocity() r2.Point {
	return s.C2.Sub(s.C1)
}

// AngularDisplacement is the rotation over the step, unwound to (-pi, pi].
func (s Sweep) AngularDisplacement() float64 {
	return spatialmath.UnwindAngle(s.Q2.Angle() - s.Q1.Angle())
}

// Advance returns a sweep covering the remainder of the step after fraction t, so a
// body resolved at a time of impact can continue from there.
func (s Sweep) Advance(t float64) Sweep {
	advanced := s.TransformAt(t)
	remaining := 1 - t

	newC1 := advanced.P.Add(advanced.Q.Rotate(s.LocalCenter))
	newAngle := advanced.Q.Angle() + s.AngularDisplacement()*remaining

	return Sweep{
		LocalCenter: s.LocalCenter,
		C1:          newC1,
		C2:          s.C2,
		Q1:          advanced.Q,
		Q2:          spatialmath.NewRot(newAngle),
	}
}

// TOIState classifies the outcome of a time-of-impact query.
type TOIState uint8

const (
	// TOIStateFailed means the solver exhausted its iterations without converging.
	TOIStateFailed TOIState = iota

	// TOIStateOverlapped means the shapes already overlap at the start of the sweep.
	TOIStateOverlapped

	// TOIStateHit means the shapes reach the target separation at Fraction.
	TOIStateHit

	// TOIStateSeparated means the shapes stay apart through the whole sweep.
	TOIStateSeparated
)

// String implements fmt.Stringer.
func (s TOIState) String() string {
	switch s {
	case TOIStateFailed:
		return "failed"
	case TOIStateOverlapped:
		return "overlapped"
	case TOIStateHit:
		return "hit"
	case TOIStateSeparated:
		return "separated"
	default:
		return "unknown"
	}
}

// TOIInput is a time-of-impact query between two swept proxies.
type TOIInput struct {
	ProxyA, ProxyB ShapeProxy

	// Motion of each proxy over the step.
	SweepA, SweepB Sweep

	// Largest sweep fraction to search, in [0, 1].
	MaxFraction float64
}

// IsValid returns true if the proxies, sweeps, and fraction are usable.
func (in TOIInput) IsValid() bool {
	return in.ProxyA.IsValid() && in.ProxyB.IsValid() &&
		in.SweepA.IsValid() && in.SweepB.IsValid() &&
		utils.Float64IsValid(in.MaxFraction) && in.MaxFraction >= 0 && in.MaxFraction <= 1
}

// TOIOutput is the result of a time-of-impact query. Point, Normal, and Separation
// describe the configuration at Fraction for hit and overlap states.
type TOIOutput struct {
	State TOIState

	// Contact point in world coordinates.
	Point r2.Point

	// Contact normal from A to B. Zero for overlaps.
	Normal r2.Point

	// Sweep fraction of the event.
	Fraction float64

	// Core separation at the event. Negative when overlapped.
	Separation float64
}

// axisType tags which feature pair defines a separation axis.
type axisType uint8

const (
	axisPoints axisType = iota // vertex of A vs vertex of B
	axisFaceA                  // face of A vs vertex of B
	axisFaceB                  // face of B vs vertex of A
)

// separationSolver evaluates the separation of two swept proxies along a fixed local
// axis derived from a GJK simplex. The axis stays attached to its owning shape while
// the witness vertices are re-supported each evaluation.
type separationSolver struct {
	proxyA, proxyB *ShapeProxy
	sweepA, sweepB Sweep

	// Axis and face midpoint in the owning shape's local frame.
	localAxis    r2.Point
	localWitness r2.Point

	axisType axisType

	// Witness vertex indices, refreshed by findMinSeparation.
	indexA, indexB int

	// Face axes point outward from the owning shape; flip restores the A-to-B sense.
	flip bool
}

// makeSeparationSolver derives a separation axis from the simplex cache of a distance
// query evaluated at sweep fraction t. The cache must hold a point or segment simplex.
func makeSeparationSolver(cache SimplexCache, proxyA, proxyB *ShapeProxy, sweepA, sweepB Sweep, t float64) separationSolver {
	s := separationSolver{
		proxyA: proxyA,
		proxyB: proxyB,
		sweepA: sweepA,
		sweepB: sweepB,
		indexA: invalidIndex,
		indexB: invalidIndex,
	}

	tfA := sweepA.TransformAt(t)
	tfB := sweepB.TransformAt(t)

	switch {
	case cache.Count == 1:
		// Vertex vs vertex: the axis is the world direction between them.
		indexA := int(cache.IndexA[0])
		indexB := int(cache.IndexB[0])

		pointA := tfA.TransformPoint(proxyA.Points[indexA])
		pointB := tfB.TransformPoint(proxyB.Points[indexB])

		s.localAxis = pointB.Sub(pointA).Normalize()
		s.axisType = axisPoints
		s.indexA = indexA
		s.indexB = indexB

	case cache.IndexA[0] == cache.IndexA[1]:
		// Two vertices on B, one on A: separate along a face of B.
		b1 := proxyB.Points[cache.IndexB[0]]
		b2 := proxyB.Points[cache.IndexB[1]]

		s.localAxis = spatialmath.CrossVS(b2.Sub(b1), 1).Normalize()
		s.localWitness = b1.Add(b2).Mul(0.5)

		pointA := tfA.TransformPoint(proxyA.Points[cache.IndexA[0]])
		pointB := tfB.TransformPoint(s.localWitness)
		normal := tfB.Q.Rotate(s.localAxis)

		s.flip = pointA.Sub(pointB).Dot(normal) < 0
		s.axisType = axisFaceB
		s.indexA = int(cache.IndexA[0])

	default:
		// Two vertices on A: separate along a face of A.
		a1 := proxyA.Points[cache.IndexA[0]]
		a2 := proxyA.Points[cache.IndexA[1]]

		s.localAxis = spatialmath.CrossVS(a2.Sub(a1), 1).Normalize()
		s.localWitness = a1.Add(a2).Mul(0.5)

		pointA := tfA.TransformPoint(s.localWitness)
		pointB := tfB.TransformPoint(proxyB.Points[cache.IndexB[0]])
		normal := tfA.Q.Rotate(s.localAxis)

		s.flip = pointB.Sub(pointA).Dot(normal) < 0
		s.axisType = axisFaceA
		s.indexB = int(cache.IndexB[0])
	}

	return s
}

// signedAxis is the local axis with the flip applied.
func (s *separationSolver) signedAxis() r2.Point {
	if s.flip {
		return s.localAxis.Mul(-1)
	}
	return s.localAxis
}

// separationAt projects the current witness pair onto a world normal.
func (s *separationSolver) separationAt(tfA, tfB spatialmath.Transform, normal r2.Point) float64 {
	switch s.axisType {
	case axisPoints:
		pointA := tfA.TransformPoint(s.proxyA.Points[s.indexA])
		pointB := tfB.TransformPoint(s.proxyB.Points[s.indexB])
		return pointB.Sub(pointA).Dot(normal)
	case axisFaceA:
		pointA := tfA.TransformPoint(s.localWitness)
		pointB := tfB.TransformPoint(s.proxyB.Points[s.indexB])
		return pointB.Sub(pointA).Dot(normal)
	default:
		pointA := tfA.TransformPoint(s.proxyA.Points[s.indexA])
		pointB := tfB.TransformPoint(s.localWitness)
		return pointA.Sub(pointB).Dot(normal)
	}
}

// findMinSeparation re-supports the witness vertices against the axis at sweep
// fraction t and returns the minimum separation there.
func (s *separationSolver) findMinSeparation(t float64) float64 {
	tfA := s.sweepA.TransformAt(t)
	tfB := s.sweepB.TransformAt(t)

	switch s.axisType {
	case axisPoints:
		axisWorld := tfA.Q.Rotate(s.localAxis)
		s.indexA = s.proxyA.FindSupport(tfA.Q.InvRotate(axisWorld))
		s.indexB = s.proxyB.FindSupport(tfB.Q.InvRotate(axisWorld.Mul(-1)))
		return s.separationAt(tfA, tfB, axisWorld)
	case axisFaceA:
		normalWorld := tfA.Q.Rotate(s.signedAxis())
		s.indexB = s.proxyB.FindSupport(tfB.Q.InvRotate(normalWorld.Mul(-1)))
		return s.separationAt(tfA, tfB, normalWorld)
	default:
		normalWorld := tfB.Q.Rotate(s.signedAxis())
		s.indexA = s.proxyA.FindSupport(tfA.Q.InvRotate(normalWorld.Mul(-1)))
		return s.separationAt(tfA, tfB, normalWorld)
	}
}

// evaluate returns the separation of the cached witness pair at sweep fraction t
// without re-supporting.
func (s *separationSolver) evaluate(t float64) float64 {
	tfA := s.sweepA.TransformAt(t)
	tfB := s.sweepB.TransformAt(t)

	switch s.axisType {
	case axisPoints:
		return s.separationAt(tfA, tfB, tfA.Q.Rotate(s.localAxis))
	case axisFaceA:
		return s.separationAt(tfA, tfB, tfA.Q.Rotate(s.signedAxis()))
	default:
		return s.separationAt(tfA, tfB, tfB.Q.Rotate(s.signedAxis()))
	}
}

// worldNormal is the separation axis in world coordinates at sweep fraction t.
func (s *separationSolver) worldNormal(t float64) r2.Point {
	switch s.axisType {
	case axisPoints:
		return s.sweepA.TransformAt(t).Q.Rotate(s.localAxis)
	case axisFaceA:
		return s.sweepA.TransformAt(t).Q.Rotate(s.signedAxis())
	default:
		return s.sweepB.TransformAt(t).Q.Rotate(s.signedAxis())
	}
}

// witnessPoints returns the world witness pair at sweep fraction t.
func (s *separationSolver) witnessPoints(t float64) (r2.Point, r2.Point) {
	var localA, localB r2.Point
	switch s.axisType {
	case axisPoints:
		localA = s.proxyA.Points[max(s.indexA, 0)]
		localB = s.proxyB.Points[max(s.indexB, 0)]
	case axisFaceA:
		localA = s.localWitness
		localB = s.proxyB.Points[max(s.indexB, 0)]
	default:
		localA = s.proxyA.Points[max(s.indexA, 0)]
		localB = s.localWitness
	}

	return s.sweepA.TransformAt(t).TransformPoint(localA), s.sweepB.TransformAt(t).TransformPoint(localB)
}

// findRootBracketed solves separation(t) = target on [a, b] with alternating
// bisection and secant steps. fa and fb are the separations at the endpoints, with
// fa above and fb below the target.
func (s *separationSolver) findRootBracketed(target, tolerance, a, fa, b, fb float64) float64 {
	for rootIteration := 0; rootIteration < maxRootIterations; rootIteration++ {
		var t float64
		if rootIteration&1 == 1 {
			// Secant step for convergence speed.
			t = a + (target-fa)*(b-a)/(fb-fa)
		} else {
			// Bisection step for guaranteed progress.
			t = (a + b) * 0.5
		}

		ft := s.evaluate(t)

		if math.Abs(ft-target) < tolerance {
			return t
		}

		if ft > target {
			a = t
			fa = ft
		} else {
			b = t
			fb = ft
		}

		if math.Abs(b-a) < tolerance {
			break
		}
	}

	return (a + b) * 0.5
}

// TimeOfImpact finds the first sweep fraction at which two moving proxies reach a
// slop-derived target separation, using conservative advancement with a separation
// solver per axis. Motionless pairs reduce to a distance query. The result is total;
// a solver that cannot converge reports TOIStateFailed with its best fraction.
func TimeOfImpact(input TOIInput) TOIOutput {
	if input.SweepA.C1 == input.SweepA.C2 && input.SweepA.Q1 == input.SweepA.Q2 &&
		input.SweepB.C1 == input.SweepB.C2 && input.SweepB.Q1 == input.SweepB.Q2 {
		// Static pair, a single distance query decides.
		output := Distance(DistanceInput{
			ProxyA:     input.ProxyA,
			ProxyB:     input.ProxyB,
			TransformA: input.SweepA.TransformAt(0),
			TransformB: input.SweepB.TransformAt(0),
			UseRadii:   true,
		}, nil)

		if output.Distance <= 0 {
			return TOIOutput{
				State:      TOIStateOverlapped,
				Point:      spatialmath.Lerp(output.PointA, output.PointB, 0.5),
				Separation: output.Distance,
			}
		}
		return TOIOutput{
			State:      TOIStateSeparated,
			Fraction:   input.MaxFraction,
			Separation: output.Distance,
		}
	}

	totalRadius := input.ProxyA.Radius + input.ProxyB.Radius
	tolerance := LinearSlop / 4
	target := max(LinearSlop, totalRadius-LinearSlop)

	t1 := 0.0
	var cache SimplexCache

	for distanceIteration := 0; distanceIteration < maxDistanceIterations; distanceIteration++ {
		tfA := input.SweepA.TransformAt(t1)
		tfB := input.SweepB.TransformAt(t1)

		output := Distance(DistanceInput{
			ProxyA:     input.ProxyA,
			ProxyB:     input.ProxyB,
			TransformA: tfA,
			TransformB: tfB,
		}, &cache)

		if output.Distance <= 0 {
			// Core shapes overlap at t1. Mid-sweep this still counts as a hit, but
			// no usable normal exists at the start.
			pointA := spatialmath.MulAdd(output.PointA, input.ProxyA.Radius, output.Normal)
			pointB := spatialmath.MulSub(output.PointB, input.ProxyB.Radius, output.Normal)

			result := TOIOutput{
				State:      TOIStateHit,
				Point:      spatialmath.Lerp(pointA, pointB, 0.5),
				Normal:     output.Normal,
				Fraction:   t1,
				Separation: output.Distance,
			}
			if t1 == 0 {
				result.State = TOIStateOverlapped
				result.Normal = r2.Point{}
			}
			return result
		}

		if output.Distance <= target+tolerance {
			pointA := spatialmath.MulAdd(output.PointA, input.ProxyA.Radius, output.Normal)
			pointB := spatialmath.MulSub(output.PointB, input.ProxyB.Radius, output.Normal)

			return TOIOutput{
				State:      TOIStateHit,
				Point:      spatialmath.Lerp(pointA, pointB, 0.5),
				Normal:     output.Normal,
				Fraction:   t1,
				Separation: output.Distance,
			}
		}

		solver := makeSeparationSolver(cache, &input.ProxyA, &input.ProxyB, input.SweepA, input.SweepB, t1)

		// Push t2 back from the end of the sweep until the deepest vertex pair on
		// this axis reaches the target, then advance t1 and pick a fresh axis. Each
		// push-back resolves one vertex, so the vertex count bounds the loop.
		t2 := input.MaxFraction
		foundHit := false

		for pushBackIteration := 0; pushBackIteration < MaxPolygonVertices; pushBackIteration++ {
			s2 := solver.findMinSeparation(t2)

			if s2 > target+tolerance {
				// Separated on this axis over the whole interval.
				t1 = t2
				break
			}

			if s2 > target-tolerance {
				// Touching at t2, continue from there with a new axis.
				t1 = t2
				foundHit = true
				break
			}

			s1 := solver.evaluate(t1)

			if s1 < target-tolerance {
				// The advancement undershot the target; the bracket is broken and the
				// root finder cannot recover. Callers should treat this as near-contact.
				return TOIOutput{
					State:      TOIStateFailed,
					Fraction:   t1,
					Separation: s1,
				}
			}

			if s1 <= target+tolerance {
				// Already touching at t1.
				normal := solver.worldNormal(t1)
				pointA, pointB := solver.witnessPoints(t1)
				return TOIOutput{
					State:      TOIStateHit,
					Point:      spatialmath.Lerp(pointA, pointB, 0.5),
					Normal:     normal,
					Fraction:   t1,
					Separation: s1,
				}
			}

			root := solver.findRootBracketed(target, tolerance, t1, s1, t2, s2)
			if root < t1 || root > t2 {
				root = (t1 + t2) * 0.5
			}
			t2 = root
		}

		// A touch found by the push-back loop restarts the outer loop so the distance
		// query above classifies the hit, even when it lands exactly at MaxFraction.
		if !foundHit && t1 >= input.MaxFraction {
			return TOIOutput{
				State:      TOIStateSeparated,
				Fraction:   input.MaxFraction,
				Separation: solver.evaluate(input.MaxFraction),
			}
		}
	}

	return TOIOutput{State: TOIStateFailed, Fraction: t1}
}

package collision

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"golang.org/x/sync/errgroup"

	"github.com/kinematiclabs/collide2d/spatialmath"
)

func TestDistanceSeparatedCircles(t *testing.T) {
	a := Circle{Radius: 1}
	b := Circle{Radius: 1}

	input := DistanceInput{
		ProxyA:     a.Proxy(),
		ProxyB:     b.Proxy(),
		TransformA: spatialmath.NewZeroTransform(),
		TransformB: spatialmath.NewTransform(r2.Point{X: 3, Y: 0}, 0),
		UseRadii:   true,
	}
	output := Distance(input, nil)

	test.That(t, output.Distance, test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, output.Normal.X, test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, output.Normal.Y, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, output.PointA.X, test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, output.PointB.X, test.ShouldAlmostEqual, 2, 1e-12)
}

func TestDistanceTouchingCircles(t *testing.T) {
	a := Circle{Radius: 1}
	b := Circle{Radius: 1}

	input := DistanceInput{
		ProxyA:     a.Proxy(),
		ProxyB:     b.Proxy(),
		TransformA: spatialmath.NewZeroTransform(),
		TransformB: spatialmath.NewTransform(r2.Point{X: 2, Y: 0}, 0),
		UseRadii:   true,
	}
	output := Distance(input, nil)

	// Radii meet exactly; the witness points coincide on the shared surface point.
	test.That(t, output.Distance, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, output.PointA.X, test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, output.PointA.Y, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, output.PointB.X, test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, output.PointB.Y, test.ShouldAlmostEqual, 0, 1e-12)
}

func TestDistanceBoxes(t *testing.T) {
	box, err := NewSquare(1)
	test.That(t, err, test.ShouldBeNil)

	input := DistanceInput{
		ProxyA:     box.Proxy(),
		ProxyB:     box.Proxy(),
		TransformA: spatialmath.NewZeroTransform(),
		TransformB: spatialmath.NewTransform(r2.Point{X: 4, Y: 0}, 0),
	}
	output := Distance(input, nil)

	test.That(t, output.Distance, test.ShouldAlmostEqual, 2, 1e-12)
	test.That(t, output.Normal.X, test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, output.Normal.Y, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, output.PointB.X-output.PointA.X, test.ShouldAlmostEqual, 2, 1e-12)
}

func TestDistanceOverlap(t *testing.T) {
	box, err := NewSquare(1)
	test.That(t, err, test.ShouldBeNil)

	input := DistanceInput{
		ProxyA:     box.Proxy(),
		ProxyB:     box.Proxy(),
		TransformA: spatialmath.NewZeroTransform(),
		TransformB: spatialmath.NewTransform(r2.Point{X: 0.5, Y: 0.25}, 0.1),
	}
	output := Distance(input, nil)

	test.That(t, output.Distance, test.ShouldEqual, 0)
	test.That(t, output.Normal, test.ShouldResemble, r2.Point{})
}

func TestDistanceWarmCache(t *testing.T) {
	box, err := NewSquare(1)
	test.That(t, err, test.ShouldBeNil)

	input := DistanceInput{
		ProxyA:     box.Proxy(),
		ProxyB:     box.Proxy(),
		TransformA: spatialmath.NewZeroTransform(),
		TransformB: spatialmath.NewTransform(r2.Point{X: 4, Y: 0}, 0),
	}

	var cache SimplexCache
	cold := Distance(input, &cache)
	test.That(t, cache.Count, test.ShouldBeGreaterThan, 0)

	warm := Distance(input, &cache)
	test.That(t, warm.Iterations, test.ShouldBeLessThanOrEqualTo, 2)
	test.That(t, warm.Distance, test.ShouldAlmostEqual, cold.Distance, 1e-12)
	test.That(t, warm.PointA, test.ShouldResemble, cold.PointA)
	test.That(t, warm.PointB, test.ShouldResemble, cold.PointB)
}

func TestDistanceSymmetry(t *testing.T) {
	box, err := NewBox(1, 0.5)
	test.That(t, err, test.ShouldBeNil)
	capsule := Capsule{Center1: r2.Point{X: -0.5, Y: 0}, Center2: r2.Point{X: 0.5, Y: 0}, Radius: 0.25}

	tfA := spatialmath.NewZeroTransform()
	tfB := spatialmath.NewTransform(r2.Point{X: 3, Y: 1}, 0.4)

	forward := Distance(DistanceInput{
		ProxyA: box.Proxy(), ProxyB: capsule.Proxy(),
		TransformA: tfA, TransformB: tfB, UseRadii: true,
	}, nil)
	reverse := Distance(DistanceInput{
		ProxyA: capsule.Proxy(), ProxyB: box.Proxy(),
		TransformA: tfB, TransformB: tfA, UseRadii: true,
	}, nil)

	test.That(t, forward.Distance, test.ShouldAlmostEqual, reverse.Distance, 1e-9)
}

func TestDistanceDegenerateCapsule(t *testing.T) {
	box, err := NewSquare(1)
	test.That(t, err, test.ShouldBeNil)

	capsule := Capsule{Radius: 0.5}
	circle := Circle{Radius: 0.5}

	tfA := spatialmath.NewZeroTransform()
	tfB := spatialmath.NewTransform(r2.Point{X: 3, Y: 0.5}, 0)

	fromCapsule := Distance(DistanceInput{
		ProxyA: box.Proxy(), ProxyB: capsule.Proxy(),
		TransformA: tfA, TransformB: tfB, UseRadii: true,
	}, nil)
	fromCircle := Distance(DistanceInput{
		ProxyA: box.Proxy(), ProxyB: circle.Proxy(),
		TransformA: tfA, TransformB: tfB, UseRadii: true,
	}, nil)

	// A capsule with coincident centers answers exactly like a circle.
	test.That(t, fromCapsule, test.ShouldResemble, fromCircle)
	test.That(t, fromCapsule.Distance, test.ShouldAlmostEqual, 1.5, 1e-12)
}

func TestDistanceConcurrent(t *testing.T) {
	box, err := NewSquare(1)
	test.That(t, err, test.ShouldBeNil)

	baseline := Distance(DistanceInput{
		ProxyA:     box.Proxy(),
		ProxyB:     box.Proxy(),
		TransformA: spatialmath.NewZeroTransform(),
		TransformB: spatialmath.NewTransform(r2.Point{X: 4, Y: 0}, 0),
	}, nil)

	// Queries share proxies but own their caches, so they can run in parallel.
	var group errgroup.Group
	for i := 0; i < 32; i++ {
		group.Go(func() error {
			var cache SimplexCache
			for j := 0; j < 100; j++ {
				output := Distance(DistanceInput{
					ProxyA:     box.Proxy(),
					ProxyB:     box.Proxy(),
					TransformA: spatialmath.NewZeroTransform(),
					TransformB: spatialmath.NewTransform(r2.Point{X: 4, Y: 0}, 0),
				}, &cache)
				if output.Distance != baseline.Distance {
					return errors.Errorf("distance changed under concurrency: %v", output.Distance)
				}
			}
			return nil
		})
	}
	test.That(t, group.Wait(), test.ShouldBeNil)
}

func TestSegmentDistance(t *testing.T) {
	// Parallel horizontal segments one unit apart.
	output := SegmentDistance(
		r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0},
		r2.Point{X: 0, Y: 1}, r2.Point{X: 1, Y: 1},
	)
	test.That(t, output.DistanceSquared, test.ShouldAlmostEqual, 1, 1e-12)

	// Crossing segments touch.
	output = SegmentDistance(
		r2.Point{X: -1, Y: 0}, r2.Point{X: 1, Y: 0},
		r2.Point{X: 0, Y: -1}, r2.Point{X: 0, Y: 1},
	)
	test.That(t, output.DistanceSquared, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, output.Fraction1, test.ShouldAlmostEqual, 0.5, 1e-12)
	test.That(t, output.Fraction2, test.ShouldAlmostEqual, 0.5, 1e-12)

	// Second segment degenerates to a point past the first segment's end.
	output = SegmentDistance(
		r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0},
		r2.Point{X: 2, Y: 0}, r2.Point{X: 2, Y: 0},
	)
	test.That(t, output.DistanceSquared, test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, output.Fraction1, test.ShouldEqual, 1)
	test.That(t, output.Closest1, test.ShouldResemble, r2.Point{X: 1, Y: 0})

	// Both segments degenerate.
	output = SegmentDistance(
		r2.Point{X: 0, Y: 0}, r2.Point{X: 0, Y: 0},
		r2.Point{X: 3, Y: 4}, r2.Point{X: 3, Y: 4},
	)
	test.That(t, output.DistanceSquared, test.ShouldAlmostEqual, 25, 1e-12)
}

func TestProxyValidation(t *testing.T) {
	p := MakeProxy([]r2.Point{{X: 1, Y: 1}}, 0.5)
	test.That(t, p.IsValid(), test.ShouldBeTrue)

	p.Radius = -1
	test.That(t, p.IsValid(), test.ShouldBeFalse)

	p = ShapeProxy{}
	test.That(t, p.IsValid(), test.ShouldBeFalse)
}

func TestProxySupport(t *testing.T) {
	box, err := NewSquare(1)
	test.That(t, err, test.ShouldBeNil)
	p := box.Proxy()

	i := p.FindSupport(r2.Point{X: 1, Y: 1})
	test.That(t, p.Points[i], test.ShouldResemble, r2.Point{X: 1, Y: 1})

	i = p.FindSupport(r2.Point{X: -1, Y: -1})
	test.That(t, p.Points[i], test.ShouldResemble, r2.Point{X: -1, Y: -1})

	// A degenerate direction falls back to the first point.
	test.That(t, p.FindSupport(r2.Point{}), test.ShouldEqual, 0)
}

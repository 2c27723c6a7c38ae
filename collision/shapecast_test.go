package collision

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/kinematiclabs/collide2d/spatialmath"
)

func TestShapeCastPointVsBox(t *testing.T) {
	box, err := NewSquare(1)
	test.That(t, err, test.ShouldBeNil)

	output := ShapeCast(ShapeCastPairInput{
		ProxyA:       box.Proxy(),
		ProxyB:       MakeProxy([]r2.Point{{X: 2, Y: 0}}, 0),
		TransformA:   spatialmath.NewZeroTransform(),
		TransformB:   spatialmath.NewZeroTransform(),
		TranslationB: r2.Point{X: -2, Y: 0},
		MaxFraction:  1,
	})

	// The point stops a slop short of the face at x = 1.
	test.That(t, output.Hit, test.ShouldBeTrue)
	test.That(t, output.Fraction, test.ShouldAlmostEqual, 0.5, 0.01)
	test.That(t, output.Normal.X, test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, output.Point.X, test.ShouldAlmostEqual, 1, 1e-9)
}

func TestShapeCastMaxFraction(t *testing.T) {
	box, err := NewSquare(1)
	test.That(t, err, test.ShouldBeNil)

	input := ShapeCastPairInput{
		ProxyA:       box.Proxy(),
		ProxyB:       MakeProxy([]r2.Point{{X: 2, Y: 0}}, 0),
		TransformA:   spatialmath.NewZeroTransform(),
		TransformB:   spatialmath.NewZeroTransform(),
		TranslationB: r2.Point{X: -2, Y: 0},
		MaxFraction:  0.25,
	}
	output := ShapeCast(input)
	test.That(t, output.Hit, test.ShouldBeFalse)

	// The same sweep with room to finish hits.
	input.MaxFraction = 1
	test.That(t, ShapeCast(input).Hit, test.ShouldBeTrue)
}

func TestShapeCastMovingApart(t *testing.T) {
	box, err := NewSquare(1)
	test.That(t, err, test.ShouldBeNil)

	output := ShapeCast(ShapeCastPairInput{
		ProxyA:       box.Proxy(),
		ProxyB:       MakeProxy([]r2.Point{{X: 2, Y: 0}}, 0),
		TransformA:   spatialmath.NewZeroTransform(),
		TransformB:   spatialmath.NewZeroTransform(),
		TranslationB: r2.Point{X: 5, Y: 0},
		MaxFraction:  1,
	})
	test.That(t, output.Hit, test.ShouldBeFalse)
	test.That(t, output.Iterations, test.ShouldEqual, 1)
}

func TestShapeCastInitialOverlap(t *testing.T) {
	box, err := NewSquare(1)
	test.That(t, err, test.ShouldBeNil)

	output := ShapeCast(ShapeCastPairInput{
		ProxyA:       box.Proxy(),
		ProxyB:       MakeProxy([]r2.Point{{X: 0.5, Y: 0}}, 0),
		TransformA:   spatialmath.NewZeroTransform(),
		TransformB:   spatialmath.NewZeroTransform(),
		TranslationB: r2.Point{X: -1, Y: 0},
		MaxFraction:  1,
	})
	test.That(t, output.Hit, test.ShouldBeTrue)
	test.That(t, output.Fraction, test.ShouldEqual, 0)
	test.That(t, output.Normal, test.ShouldResemble, r2.Point{})
}

func TestShapeCastZeroTranslation(t *testing.T) {
	a := Circle{Radius: 1}
	b := Circle{Radius: 1}

	// Overlapping pair reports a zero-fraction hit.
	output := ShapeCast(ShapeCastPairInput{
		ProxyA:      a.Proxy(),
		ProxyB:      b.Proxy(),
		TransformA:  spatialmath.NewZeroTransform(),
		TransformB:  spatialmath.NewTransform(r2.Point{X: 1, Y: 0}, 0),
		MaxFraction: 1,
	})
	test.That(t, output.Hit, test.ShouldBeTrue)
	test.That(t, output.Fraction, test.ShouldEqual, 0)

	// Separated pair misses.
	output = ShapeCast(ShapeCastPairInput{
		ProxyA:      a.Proxy(),
		ProxyB:      b.Proxy(),
		TransformA:  spatialmath.NewZeroTransform(),
		TransformB:  spatialmath.NewTransform(r2.Point{X: 5, Y: 0}, 0),
		MaxFraction: 1,
	})
	test.That(t, output.Hit, test.ShouldBeFalse)
}

func TestShapeCastEncroach(t *testing.T) {
	a := Circle{Radius: 0.5}
	b := Circle{Radius: 0.5}

	input := ShapeCastPairInput{
		ProxyA:       a.Proxy(),
		ProxyB:       b.Proxy(),
		TransformA:   spatialmath.NewZeroTransform(),
		TransformB:   spatialmath.NewTransform(r2.Point{X: 0.996, Y: 0}, 0),
		TranslationB: r2.Point{X: -1, Y: 0},
		MaxFraction:  1,
	}

	// Starting inside the slop margin is an immediate hit by default.
	output := ShapeCast(input)
	test.That(t, output.Hit, test.ShouldBeTrue)
	test.That(t, output.Fraction, test.ShouldEqual, 0)
	test.That(t, output.Normal, test.ShouldResemble, r2.Point{})

	// With encroachment the pair advances a little before hitting.
	input.CanEncroach = true
	output = ShapeCast(input)
	test.That(t, output.Hit, test.ShouldBeTrue)
	test.That(t, output.Fraction, test.ShouldBeGreaterThan, 0)
	test.That(t, output.Normal.X, test.ShouldAlmostEqual, 1, 1e-9)
}

func TestShapeCastShapeHelpers(t *testing.T) {
	movingPoint := MakeProxy([]r2.Point{{X: 3, Y: 0}}, 0)
	input := ShapeCastInput{
		Proxy:       movingPoint,
		Translation: r2.Point{X: -6, Y: 0},
		MaxFraction: 1,
	}

	circleOutput := ShapeCastCircle(input, Circle{Radius: 1})
	test.That(t, circleOutput.Hit, test.ShouldBeTrue)
	test.That(t, circleOutput.Fraction, test.ShouldAlmostEqual, 2.0/6.0, 0.01)

	// A degenerate capsule behaves exactly like its circle.
	capsuleOutput := ShapeCastCapsule(input, Capsule{Radius: 1})
	test.That(t, capsuleOutput, test.ShouldResemble, circleOutput)

	boxOutput := ShapeCastPolygon(input, mustSquare(t, 1))
	test.That(t, boxOutput.Hit, test.ShouldBeTrue)
	test.That(t, boxOutput.Fraction, test.ShouldAlmostEqual, 2.0/6.0, 0.01)

	segmentOutput := ShapeCastSegment(input, Segment{
		Point1: r2.Point{X: 0, Y: -1},
		Point2: r2.Point{X: 0, Y: 1},
	})
	test.That(t, segmentOutput.Hit, test.ShouldBeTrue)
	test.That(t, segmentOutput.Fraction, test.ShouldAlmostEqual, 0.5, 0.01)
}

func mustSquare(t *testing.T, halfExtent float64) Polygon {
	t.Helper()
	p, err := NewSquare(halfExtent)
	test.That(t, err, test.ShouldBeNil)
	return p
}

package collision

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestComputeHullBox(t *testing.T) {
	points := []r2.Point{
		{X: 1, Y: 1},
		{X: -1, Y: -1},
		{X: -1, Y: 1},
		{X: 1, Y: -1},
	}

	hull, err := ComputeHull(points)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hull.Count, test.ShouldEqual, 4)
	test.That(t, hull.IsValid(), test.ShouldBeTrue)
}

func TestComputeHullInteriorPointsDropped(t *testing.T) {
	points := []r2.Point{
		{X: -1, Y: -1},
		{X: 1, Y: -1},
		{X: 0, Y: 0},
		{X: 1, Y: 1},
		{X: 0.2, Y: -0.3},
		{X: -1, Y: 1},
	}

	hull, err := ComputeHull(points)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hull.Count, test.ShouldEqual, 4)
	test.That(t, hull.IsValid(), test.ShouldBeTrue)
}

func TestComputeHullWeldsClosePoints(t *testing.T) {
	points := []r2.Point{
		{X: -1, Y: -1},
		{X: 1, Y: -1},
		{X: 1, Y: 1},
		{X: 1.001, Y: 1.001}, // within the weld tolerance of the previous point
		{X: -1, Y: 1},
	}

	hull, err := ComputeHull(points)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hull.Count, test.ShouldEqual, 4)
}

func TestComputeHullDegenerate(t *testing.T) {
	// Too few points.
	_, err := ComputeHull([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}})
	test.That(t, err, test.ShouldNotBeNil)

	// Too many points.
	tooMany := make([]r2.Point, MaxPolygonVertices+1)
	_, err = ComputeHull(tooMany)
	test.That(t, err, test.ShouldNotBeNil)

	// All points collinear.
	_, err = ComputeHull([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}})
	test.That(t, err, test.ShouldNotBeNil)

	// All points weld into one.
	_, err = ComputeHull([]r2.Point{{X: 0, Y: 0}, {X: 0.001, Y: 0}, {X: 0, Y: 0.001}})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestHullIsValid(t *testing.T) {
	// Counter-clockwise triangle.
	hull := Hull{Count: 3}
	hull.Points[0] = r2.Point{X: 0, Y: 0}
	hull.Points[1] = r2.Point{X: 2, Y: 0}
	hull.Points[2] = r2.Point{X: 0, Y: 2}
	test.That(t, hull.IsValid(), test.ShouldBeTrue)

	// Clockwise winding fails.
	hull.Points[1], hull.Points[2] = hull.Points[2], hull.Points[1]
	test.That(t, hull.IsValid(), test.ShouldBeFalse)

	// Non-convex quad fails.
	hull = Hull{Count: 4}
	hull.Points[0] = r2.Point{X: 0, Y: 0}
	hull.Points[1] = r2.Point{X: 2, Y: 0}
	hull.Points[2] = r2.Point{X: 0.1, Y: 0.1}
	hull.Points[3] = r2.Point{X: 0, Y: 2}
	test.That(t, hull.IsValid(), test.ShouldBeFalse)

	test.That(t, (&Hull{}).IsValid(), test.ShouldBeFalse)
}

package collision

import "github.com/pkg/errors"

func newBadHullPointCountError(count int) error {
	return errors.Errorf("convex hull needs 3 to %d points, got %d", MaxPolygonVertices, count)
}

func newDegenerateHullError() error {
	return errors.New("points are degenerate: all nearly coincident or collinear")
}

func newBadPolygonHullError(count int) error {
	return errors.Errorf("polygon needs a valid hull of at least 3 points, got %d", count)
}

func newBadBoxDimensionsError(halfWidth, halfHeight float64) error {
	return errors.Errorf("box half extents must be positive finite numbers, got %v x %v", halfWidth, halfHeight)
}

func newBadRadiusError(radius float64) error {
	return errors.Errorf("shape radius must be a non-negative finite number, got %v", radius)
}

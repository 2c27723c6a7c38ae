package collision

import "math"

// Tuning constants read by every query family. They are owned conceptually by the
// surrounding simulator; the engine only reads them.
const (
	// MaxPolygonVertices bounds the vertex count of any convex shape or proxy.
	MaxPolygonVertices = 8

	// LinearSlop is the minimum resolvable length. Casts and TOI aim for a surface
	// gap of about this size so contacts form slightly before shapes touch.
	LinearSlop = 0.005

	// maxDistanceIterations caps GJK support evaluations per distance query and the
	// conservative-advancement steps of a cast or TOI outer loop.
	maxDistanceIterations = 20

	// maxRootIterations caps the secant/bisection root finder inside TOI.
	maxRootIterations = 50

	invalidIndex = -1
)

// epsilon is the double-precision machine epsilon. Degenerate-direction checks
// compare squared lengths directly against it; GJK's termination test uses its
// square.
var epsilon = math.Nextafter(1, 2) - 1

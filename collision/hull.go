package collision

import (
	"github.com/golang/geo/r2"

	"github.com/kinematiclabs/collide2d/spatialmath"
)

// Hull is a convex hull in counter-clockwise order with no welded or collinear
// points. Build one with ComputeHull; hand-built hulls can be checked with IsValid.
type Hull struct {
	Points [MaxPolygonVertices]r2.Point
	Count  int
}

// recurseHull runs one quickhull split: the points strictly right of p1-p2 are
// partitioned around the farthest one and both halves recurse. The returned partial
// hull excludes p1 and p2.
func recurseHull(p1, p2 r2.Point, points []r2.Point) Hull {
	var hull Hull
	if len(points) == 0 {
		return hull
	}

	e := p2.Sub(p1).Normalize()

	rightPoints := make([]r2.Point, 0, len(points))
	bestIndex := 0
	bestDistance := points[0].Sub(p1).Cross(e)
	if bestDistance > 0 {
		rightPoints = append(rightPoints, points[0])
	}
	for i := 1; i < len(points); i++ {
		distance := points[i].Sub(p1).Cross(e)
		if distance > bestDistance {
			bestIndex = i
			bestDistance = distance
		}
		if distance > 0 {
			rightPoints = append(rightPoints, points[i])
		}
	}

	if bestDistance < 2*LinearSlop {
		// All remaining points are within the line's slop band.
		return hull
	}

	bestPoint := points[bestIndex]
	hull1 := recurseHull(p1, bestPoint, rightPoints)
	hull2 := recurseHull(bestPoint, p2, rightPoints)

	// Stitch: lower half, apex, upper half.
	for i := 0; i < hull1.Count; i++ {
		hull.Points[hull.Count] = hull1.Points[i]
		hull.Count++
	}
	hull.Points[hull.Count] = bestPoint
	hull.Count++
	for i := 0; i < hull2.Count; i++ {
		hull.Points[hull.Count] = hull2.Points[i]
		hull.Count++
	}
	return hull
}

// ComputeHull builds the convex hull of a point cloud using quickhull. Points closer
// together than about 4*LinearSlop are welded and near-collinear hull points are
// merged, so the result may have fewer points than the input. The input length must
// be between 3 and MaxPolygonVertices; clouds that weld or collapse below a triangle
// are rejected as degenerate.
func ComputeHull(points []r2.Point) (Hull, error) {
	var hull Hull

	if len(points) < 3 || len(points) > MaxPolygonVertices {
		return Hull{}, newBadHullPointCountError(len(points))
	}

	lower := points[0]
	upper := points[0]

	// Weld close points to stop the merge pass below from oscillating.
	tolSqr := 16 * LinearSlop * LinearSlop
	ps := make([]r2.Point, 0, len(points))
	for _, v := range points {
		lower = r2.Point{X: min(lower.X, v.X), Y: min(lower.Y, v.Y)}
		upper = r2.Point{X: max(upper.X, v.X), Y: max(upper.Y, v.Y)}

		unique := true
		for _, u := range ps {
			if spatialmath.Norm2(v.Sub(u)) < tolSqr {
				unique = false
				break
			}
		}
		if unique {
			ps = append(ps, v)
		}
	}

	if len(ps) < 3 {
		return Hull{}, newDegenerateHullError()
	}

	// Seed the divider with two extreme points: farthest from the bounding-box
	// center, then farthest from that one.
	c := lower.Add(upper).Mul(0.5)
	f1 := 0
	dsq1 := spatialmath.Norm2(c.Sub(ps[0]))
	for i := 1; i < len(ps); i++ {
		if dsq := spatialmath.Norm2(c.Sub(ps[i])); dsq > dsq1 {
			f1 = i
			dsq1 = dsq
		}
	}
	p1 := ps[f1]
	ps[f1] = ps[len(ps)-1]
	ps = ps[:len(ps)-1]

	f2 := 0
	dsq2 := spatialmath.Norm2(p1.Sub(ps[0]))
	for i := 1; i < len(ps); i++ {
		if dsq := spatialmath.Norm2(p1.Sub(ps[i])); dsq > dsq2 {
			f2 = i
			dsq2 = dsq
		}
	}
	p2 := ps[f2]
	ps[f2] = ps[len(ps)-1]
	ps = ps[:len(ps)-1]

	// Split the remaining points by side of the line p1-p2, skipping points inside
	// the slop band.
	rightPoints := make([]r2.Point, 0, len(ps))
	leftPoints := make([]r2.Point, 0, len(ps))
	e := p2.Sub(p1).Normalize()
	for _, v := range ps {
		d := v.Sub(p1).Cross(e)
		if d >= 2*LinearSlop {
			rightPoints = append(rightPoints, v)
		} else if d <= -2*LinearSlop {
			leftPoints = append(leftPoints, v)
		}
	}

	hull1 := recurseHull(p1, p2, rightPoints)
	hull2 := recurseHull(p2, p1, leftPoints)

	if hull1.Count == 0 && hull2.Count == 0 {
		// All points collinear.
		return Hull{}, newDegenerateHullError()
	}

	// Stitch counter-clockwise: p1, right hull, p2, left hull.
	hull.Points[hull.Count] = p1
	hull.Count++
	for i := 0; i < hull1.Count; i++ {
		hull.Points[hull.Count] = hull1.Points[i]
		hull.Count++
	}
	hull.Points[hull.Count] = p2
	hull.Count++
	for i := 0; i < hull2.Count; i++ {
		hull.Points[hull.Count] = hull2.Points[i]
		hull.Count++
	}

	// Merge near-collinear hull points until none remain.
	searching := true
	for searching && hull.Count > 2 {
		searching = false
		for i := 0; i < hull.Count; i++ {
			i1 := i
			i2 := (i + 1) % hull.Count
			i3 := (i + 2) % hull.Count

			s1 := hull.Points[i1]
			s2 := hull.Points[i2]
			s3 := hull.Points[i3]

			ex := s3.Sub(s1).Normalize()
			if distance := s2.Sub(s1).Cross(ex); distance <= 2*LinearSlop {
				for j := i2; j < hull.Count-1; j++ {
					hull.Points[j] = hull.Points[j+1]
				}
				hull.Count--
				searching = true
				break
			}
		}
	}

	if hull.Count < 3 {
		return Hull{}, newDegenerateHullError()
	}

	return hull, nil
}

// IsValid checks convexity, winding, and the welding tolerance of the hull. Hulls
// returned by ComputeHull always pass.
func (h *Hull) IsValid() bool {
	if h.Count < 3 || h.Count > MaxPolygonVertices {
		return false
	}
	for i := 0; i < h.Count; i++ {
		if !spatialmath.VecIsValid(h.Points[i]) {
			return false
		}
	}

	// Every point must be strictly behind every edge.
	for i := 0; i < h.Count; i++ {
		i2 := (i + 1) % h.Count
		p := h.Points[i]
		e := h.Points[i2].Sub(p).Normalize()

		for j := 0; j < h.Count; j++ {
			if j == i || j == i2 {
				continue
			}
			if h.Points[j].Sub(p).Cross(e) >= 0 {
				return false
			}
		}
	}

	tolSqr := 16 * LinearSlop * LinearSlop
	for i := 0; i < h.Count; i++ {
		for j := i + 1; j < h.Count; j++ {
			if spatialmath.Norm2(h.Points[i].Sub(h.Points[j])) < tolSqr {
				return false
			}
		}
	}
	return true
}

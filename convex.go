package gcscan

import (
	"slices"
)

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// ConvexHull returns the convex hull of the hull's points in counter-clockwise
// order, starting from the lowest-leftmost point. Collinear points are left out
// and the ring is not closed. Fewer than three distinct points are returned as is.
func (h *Hull) ConvexHull() []Point {
	points := slices.Clone(h.Points())
	slices.SortFunc(points, func(a, b Point) int {
		if a.X != b.X {
			if a.X < b.X {
				return -1
			}
			return 1
		}
		if a.Y < b.Y {
			return -1
		} else if a.Y > b.Y {
			return 1
		}
		return 0
	})
	points = slices.Compact(points)
	if len(points) < 3 {
		return points
	}

	// Andrew's monotone chain: lower hull, then upper hull.
	ring := make([]Point, 0, 2*len(points))
	for _, p := range points {
		for len(ring) >= 2 && cross(ring[len(ring)-2], ring[len(ring)-1], p) <= 0 {
			ring = ring[:len(ring)-1]
		}
		ring = append(ring, p)
	}
	lower := len(ring) + 1
	for pdx := len(points) - 2; pdx >= 0; pdx -= 1 {
		p := points[pdx]
		for len(ring) >= lower && cross(ring[len(ring)-2], ring[len(ring)-1], p) <= 0 {
			ring = ring[:len(ring)-1]
		}
		ring = append(ring, p)
	}
	return ring[:len(ring)-1]
}

// Centroid returns the area centroid of a simple polygon. Polygons with no area
// fall back to the center of their bounding box.
func Centroid(polygon []Point) Point {
	if len(polygon) == 0 {
		return Point{}
	}

	var area, cx, cy float64
	for pdx, p := range polygon {
		q := polygon[(pdx+1)%len(polygon)]
		a := p.X*q.Y - q.X*p.Y
		area += a
		cx += (p.X + q.X) * a
		cy += (p.Y + q.Y) * a
	}
	if area != 0 {
		return Point{X: cx / (3 * area), Y: cy / (3 * area)}
	}

	b := Box{XMin: polygon[0].X, YMin: polygon[0].Y, XMax: polygon[0].X, YMax: polygon[0].Y}
	for _, p := range polygon[1:] {
		b.XMin = min(b.XMin, p.X)
		b.YMin = min(b.YMin, p.Y)
		b.XMax = max(b.XMax, p.X)
		b.YMax = max(b.YMax, p.Y)
	}
	return b.Center()
}

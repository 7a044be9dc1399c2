package gcscan

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Hull collects the distinct grid cells visited by extrusion moves. The set of
// grid points is authoritative; the float view returned by Points is rebuilt
// from it on the first read after any change.
//
// A Hull is not safe for concurrent use.
type Hull struct {
	precision float64
	seen      map[GridPoint]struct{}
	order     []GridPoint // grid points in first-insertion order

	points []Point
	dirty  bool
}

func NewHull() *Hull {
	return &Hull{
		precision: 1.0,
		seen:      map[GridPoint]struct{}{},
	}
}

func (h *Hull) Precision() float64 {
	return h.precision
}

// SetPrecision changes the grid size used for points inserted from now on.
// Points already in the hull keep their old grid coordinates, which Points maps
// back through the new precision.
func (h *Hull) SetPrecision(precision float64) error {
	if !(precision > 0) || math.IsInf(precision, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidPrecision, precision)
	}
	h.precision = precision
	h.dirty = true
	return nil
}

func (h *Hull) Insert(p Point) error {
	g, err := Quantize(h.precision, p)
	if err != nil {
		return err
	}
	h.add(g)
	h.dirty = true
	return nil
}

func (h *Hull) add(g GridPoint) {
	if _, ok := h.seen[g]; ok {
		return
	}
	h.seen[g] = struct{}{}
	h.order = append(h.order, g)
}

// SetPoints replaces the contents of the hull. Either every point is accepted
// or the hull is left as it was.
func (h *Hull) SetPoints(points []Point) error {
	grid := make([]GridPoint, len(points))
	for pdx, p := range points {
		g, err := Quantize(h.precision, p)
		if err != nil {
			return fmt.Errorf("point %d: %w", pdx, err)
		}
		grid[pdx] = g
	}

	h.seen = make(map[GridPoint]struct{}, len(grid))
	h.order = make([]GridPoint, 0, len(grid))
	h.dirty = true
	for _, g := range grid {
		h.add(g)
	}
	return nil
}

func (h *Hull) Len() int {
	return len(h.order)
}

// Points returns the hull's points, mapped back from the grid. The returned
// slice is shared with the hull and must not be modified.
func (h *Hull) Points() []Point {
	if h.dirty || h.points == nil {
		h.points = make([]Point, len(h.order))
		for gdx, g := range h.order {
			h.points[gdx] = g.Point(h.precision)
		}
		h.dirty = false
	}
	return h.points
}

type Box struct {
	XMin, YMin, XMax, YMax float64
}

func (b Box) Center() Point {
	return Point{X: (b.XMin + b.XMax) / 2, Y: (b.YMin + b.YMax) / 2}
}

func (b Box) Polygon() []Point {
	return []Point{
		{b.XMin, b.YMin},
		{b.XMin, b.YMax},
		{b.XMax, b.YMax},
		{b.XMax, b.YMin},
	}
}

func (h *Hull) BoundingBox() (Box, bool) {
	points := h.Points()
	if len(points) == 0 {
		return Box{}, false
	}

	b := Box{
		XMin: math.Inf(1),
		YMin: math.Inf(1),
		XMax: math.Inf(-1),
		YMax: math.Inf(-1),
	}
	for _, p := range points {
		b.XMin = math.Min(b.XMin, p.X)
		b.YMin = math.Min(b.YMin, p.Y)
		b.XMax = math.Max(b.XMax, p.X)
		b.YMax = math.Max(b.YMax, p.Y)
	}
	return b, true
}

// PointBytes packs the points as little-endian float64 x, y pairs: 16 bytes per
// point, no header.
func (h *Hull) PointBytes() []byte {
	points := h.Points()
	buf := make([]byte, 0, 16*len(points))
	for _, p := range points {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.Y))
	}
	return buf
}

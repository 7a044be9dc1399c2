package gcscan

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQuantize(t *testing.T) {
	cases := []struct {
		precision float64
		pt        Point
		g         GridPoint
		fail      bool
	}{
		{precision: 1.0, pt: Point{0, 0}, g: GridPoint{0, 0}},
		{precision: 1.0, pt: Point{0.4, 0.4}, g: GridPoint{0, 0}},
		{precision: 1.0, pt: Point{0.49, 0}, g: GridPoint{0, 0}},
		{precision: 1.0, pt: Point{0.51, 0}, g: GridPoint{1, 0}},
		{precision: 1.0, pt: Point{0.5, -0.5}, g: GridPoint{1, -1}},
		{precision: 1.0, pt: Point{-2.7, 3.2}, g: GridPoint{-3, 3}},
		{precision: 0.1, pt: Point{1.26, 2.04}, g: GridPoint{13, 20}},
		{precision: 5, pt: Point{12, 13}, g: GridPoint{2, 3}},
		{precision: 1.0, pt: Point{math.MaxInt32 + 1.0, 0}, fail: true},
		{precision: 1.0, pt: Point{0, math.Inf(-1)}, fail: true},
		{precision: 1.0, pt: Point{math.NaN(), 0}, fail: true},
	}

	for _, c := range cases {
		g, err := Quantize(c.precision, c.pt)
		if c.fail {
			if !errors.Is(err, ErrOutOfRange) {
				t.Errorf("Quantize(%v, %s) got %v want ErrOutOfRange", c.precision, c.pt, err)
			}
		} else if err != nil {
			t.Errorf("Quantize(%v, %s) failed with %s", c.precision, c.pt, err)
		} else if g != c.g {
			t.Errorf("Quantize(%v, %s) got %v want %v", c.precision, c.pt, g, c.g)
		}
	}

	if pt := (GridPoint{13, -20}).Point(0.5); pt != (Point{6.5, -10}) {
		t.Errorf("GridPoint.Point got %s want (6.5, -10)", pt)
	}
}

func TestHullInsert(t *testing.T) {
	cases := []struct {
		precision float64
		insert    []Point
		points    []Point
	}{
		{precision: 1.0, insert: []Point{{1, 2}}, points: []Point{{1, 2}}},
		{precision: 1.0, insert: []Point{{1, 2}, {1, 2}}, points: []Point{{1, 2}}},
		{precision: 1.0, insert: []Point{{0, 0}, {0.4, 0.4}}, points: []Point{{0, 0}}},
		{precision: 1.0, insert: []Point{{0.49, 0}, {0.51, 0}}, points: []Point{{0, 0}, {1, 0}}},
		{precision: 2.0, insert: []Point{{3.1, 0.9}, {4.9, 0}}, points: []Point{{4, 0}}},
		{
			precision: 0.5,
			insert:    []Point{{5, 5}, {1, 1}, {5.1, 4.9}, {3, 3}},
			points:    []Point{{5, 5}, {1, 1}, {3, 3}},
		},
	}

	for _, c := range cases {
		h := NewHull()
		err := h.SetPrecision(c.precision)
		if err != nil {
			t.Fatalf("SetPrecision(%v) failed with %s", c.precision, err)
		}
		for _, pt := range c.insert {
			err = h.Insert(pt)
			if err != nil {
				t.Errorf("Insert(%s) failed with %s", pt, err)
			}
		}
		if diff := cmp.Diff(c.points, h.Points()); diff != "" {
			t.Errorf("Insert(%v) points (-want +got):\n%s", c.insert, diff)
		}
		if h.Len() != len(c.points) {
			t.Errorf("Insert(%v) Len() got %d want %d", c.insert, h.Len(), len(c.points))
		}
	}
}

func TestHullInsertOutOfRange(t *testing.T) {
	h := NewHull()
	if err := h.Insert(Point{1, 1}); err != nil {
		t.Fatal(err)
	}
	h.Points()

	err := h.Insert(Point{math.Inf(1), 0})
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Insert(+Inf) got %v want ErrOutOfRange", err)
	}
	if diff := cmp.Diff([]Point{{1, 1}}, h.Points()); diff != "" {
		t.Errorf("points (-want +got):\n%s", diff)
	}
}

func TestHullPrecision(t *testing.T) {
	h := NewHull()
	if h.Precision() != 1.0 {
		t.Errorf("default precision got %v want 1", h.Precision())
	}

	for _, p := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := h.SetPrecision(p); !errors.Is(err, ErrInvalidPrecision) {
			t.Errorf("SetPrecision(%v) got %v want ErrInvalidPrecision", p, err)
		}
	}
	if h.Precision() != 1.0 {
		t.Errorf("precision changed to %v by rejected values", h.Precision())
	}

	// Changing the precision does not re-quantize stored points; the view maps
	// every grid point back through the current precision.
	h.Insert(Point{3, 4})
	h.SetPrecision(0.5)
	h.Insert(Point{3, 4})
	if diff := cmp.Diff([]Point{{1.5, 2}, {3, 4}}, h.Points()); diff != "" {
		t.Errorf("points (-want +got):\n%s", diff)
	}
}

func TestHullSetPoints(t *testing.T) {
	h := NewHull()
	if diff := cmp.Diff([]Point{}, h.Points()); diff != "" {
		t.Errorf("empty hull points (-want +got):\n%s", diff)
	}

	h.Insert(Point{9, 9})
	err := h.SetPoints([]Point{{1, 2}, {3, 4}, {1.1, 2.1}})
	if err != nil {
		t.Fatalf("SetPoints failed with %s", err)
	}
	if diff := cmp.Diff([]Point{{1, 2}, {3, 4}}, h.Points()); diff != "" {
		t.Errorf("points (-want +got):\n%s", diff)
	}

	err = h.SetPoints([]Point{{5, 5}, {math.NaN(), 1}})
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetPoints(NaN) got %v want ErrOutOfRange", err)
	}
	if diff := cmp.Diff([]Point{{1, 2}, {3, 4}}, h.Points()); diff != "" {
		t.Errorf("rejected SetPoints changed points (-want +got):\n%s", diff)
	}

	err = h.SetPoints(nil)
	if err != nil {
		t.Fatalf("SetPoints(nil) failed with %s", err)
	}
	if h.Len() != 0 || len(h.Points()) != 0 {
		t.Errorf("SetPoints(nil) left %d points", h.Len())
	}
}

func TestHullBoundingBox(t *testing.T) {
	h := NewHull()
	if _, ok := h.BoundingBox(); ok {
		t.Error("BoundingBox of empty hull returned a box")
	}

	h.Insert(Point{3, 4})
	b, ok := h.BoundingBox()
	if !ok || b != (Box{3, 4, 3, 4}) {
		t.Errorf("BoundingBox got %v, %v want {3 4 3 4}, true", b, ok)
	}

	// The box was computed from the cached view; inserting must invalidate it.
	h.Insert(Point{-2, 10})
	h.Insert(Point{7, 1})
	if diff := cmp.Diff([]Point{{3, 4}, {-2, 10}, {7, 1}}, h.Points()); diff != "" {
		t.Errorf("points after BoundingBox (-want +got):\n%s", diff)
	}
	b, ok = h.BoundingBox()
	if !ok || b != (Box{-2, 1, 7, 10}) {
		t.Errorf("BoundingBox got %v, %v want {-2 1 7 10}, true", b, ok)
	}
	if c := b.Center(); c != (Point{2.5, 5.5}) {
		t.Errorf("Center got %s want (2.5, 5.5)", c)
	}
	want := []Point{{-2, 1}, {-2, 10}, {7, 10}, {7, 1}}
	if diff := cmp.Diff(want, b.Polygon()); diff != "" {
		t.Errorf("Polygon (-want +got):\n%s", diff)
	}
}

func TestHullPointBytes(t *testing.T) {
	h := NewHull()
	if buf := h.PointBytes(); len(buf) != 0 {
		t.Errorf("PointBytes of empty hull got %d bytes", len(buf))
	}

	h.SetPoints([]Point{{1.0, 2.0}, {3.0, 4.0}})
	buf := h.PointBytes()
	if len(buf) != 32 {
		t.Fatalf("PointBytes got %d bytes want 32", len(buf))
	}

	var got []float64
	for off := 0; off < len(buf); off += 8 {
		got = append(got, math.Float64frombits(binary.LittleEndian.Uint64(buf[off:])))
	}
	if diff := cmp.Diff([]float64{1, 2, 3, 4}, got); diff != "" {
		t.Errorf("PointBytes (-want +got):\n%s", diff)
	}
}

func TestConvexHull(t *testing.T) {
	cases := []struct {
		points []Point
		hull   []Point
	}{
		{points: []Point{}, hull: []Point{}},
		{points: []Point{{1, 1}}, hull: []Point{{1, 1}}},
		{points: []Point{{2, 2}, {1, 1}}, hull: []Point{{1, 1}, {2, 2}}},
		{points: []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, hull: []Point{{0, 0}, {3, 3}}},
		{
			points: []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {2, 2}, {1, 3}, {2, 0}},
			hull:   []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}},
		},
		{
			points: []Point{{5, 1}, {3, 5}, {1, 1}, {3, 2}},
			hull:   []Point{{1, 1}, {5, 1}, {3, 5}},
		},
	}

	for _, c := range cases {
		h := NewHull()
		h.SetPoints(c.points)
		if diff := cmp.Diff(c.hull, h.ConvexHull()); diff != "" {
			t.Errorf("ConvexHull(%v) (-want +got):\n%s", c.points, diff)
		}
	}
}

func TestCentroid(t *testing.T) {
	cases := []struct {
		polygon []Point
		c       Point
	}{
		{polygon: nil, c: Point{}},
		{polygon: []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}, c: Point{2, 2}},
		{polygon: []Point{{0, 0}, {0, 4}, {4, 4}, {4, 0}}, c: Point{2, 2}},
		{polygon: []Point{{0, 0}, {6, 0}, {0, 3}}, c: Point{2, 1}},
		{polygon: []Point{{0, 0}, {4, 2}}, c: Point{2, 1}},
		{polygon: []Point{{3, 3}}, c: Point{3, 3}},
	}

	for _, c := range cases {
		if got := Centroid(c.polygon); got != c.c {
			t.Errorf("Centroid(%v) got %s want %s", c.polygon, got, c.c)
		}
	}
}

package gcscan

import (
	"errors"
	"fmt"
	"strconv"

	"fortio.org/safecast"
)

var (
	ErrOutOfRange       = errors.New("point out of grid range")
	ErrInvalidPrecision = errors.New("precision must be a positive finite number")
)

type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", strconv.FormatFloat(p.X, 'g', -1, 64),
		strconv.FormatFloat(p.Y, 'g', -1, 64))
}

// GridPoint is a Point snapped to a grid of cells precision wide. It only has meaning
// together with the precision used to make it.
type GridPoint struct {
	X, Y int32
}

func Quantize(precision float64, p Point) (GridPoint, error) {
	x, err := safecast.Round[int32](p.X / precision)
	if err != nil {
		return GridPoint{}, fmt.Errorf("%w: x = %v", ErrOutOfRange, p.X)
	}
	y, err := safecast.Round[int32](p.Y / precision)
	if err != nil {
		return GridPoint{}, fmt.Errorf("%w: y = %v", ErrOutOfRange, p.Y)
	}
	return GridPoint{X: x, Y: y}, nil
}

func (g GridPoint) Point(precision float64) Point {
	return Point{X: float64(g.X) * precision, Y: float64(g.Y) * precision}
}

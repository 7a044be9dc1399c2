// Package export writes the points collected for each object.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/leftmike/gcscan/preprocess"
)

type Format int

const (
	Binary Format = iota
	MsgPack
	JSON
)

func (f Format) String() string {
	switch f {
	case Binary:
		return "binary"
	case MsgPack:
		return "msgpack"
	case JSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

func ParseFormat(s string) (Format, error) {
	for _, f := range []Format{Binary, MsgPack, JSON} {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown export format: %q", s)
}

// Record is one object; BBox is [xmin, ymin, xmax, ymax] and is nil when the
// object has no points.
type Record struct {
	Name   string       `json:"name" msgpack:"name"`
	BBox   []float64    `json:"bbox" msgpack:"bbox"`
	Points [][2]float64 `json:"points" msgpack:"points"`
}

func NewRecord(obj *preprocess.Object) Record {
	rec := Record{Name: obj.Name, Points: [][2]float64{}}
	if box, ok := obj.Hull.BoundingBox(); ok {
		rec.BBox = []float64{box.XMin, box.YMin, box.XMax, box.YMax}
	}
	for _, p := range obj.Hull.Points() {
		rec.Points = append(rec.Points, [2]float64{p.X, p.Y})
	}
	return rec
}

// Write writes objects to w in format. Binary holds the raw points of exactly
// one object: little-endian float64 x and y pairs with no header.
func Write(w io.Writer, f Format, objects []*preprocess.Object) error {
	if f == Binary {
		if len(objects) != 1 {
			return fmt.Errorf("binary export needs exactly one object, got %d", len(objects))
		}
		_, err := w.Write(objects[0].Hull.PointBytes())
		return err
	}

	recs := make([]Record, 0, len(objects))
	for _, obj := range objects {
		recs = append(recs, NewRecord(obj))
	}

	switch f {
	case MsgPack:
		return msgpack.NewEncoder(w).Encode(recs)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
	return fmt.Errorf("unknown export format: %s", f)
}

// Select returns the objects whose Name or ID is name; an empty name selects
// all of them.
func Select(objects []*preprocess.Object, name string) ([]*preprocess.Object, error) {
	if name == "" {
		return objects, nil
	}
	for _, obj := range objects {
		if obj.Name == name || obj.ID == name {
			return []*preprocess.Object{obj}, nil
		}
	}
	return nil, fmt.Errorf("no object named %q", name)
}

package preprocess

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/leftmike/gcscan"
)

type HullMode int

const (
	HullBoundingBox HullMode = iota
	HullConvex
)

func (m HullMode) String() string {
	switch m {
	case HullBoundingBox:
		return "bbox"
	case HullConvex:
		return "convex"
	}
	return fmt.Sprintf("HullMode(%d)", int(m))
}

func ParseHullMode(s string) (HullMode, error) {
	switch s {
	case "bbox":
		return HullBoundingBox, nil
	case "convex":
		return HullConvex, nil
	}
	return 0, fmt.Errorf("unknown hull mode: %q", s)
}

// Object is a printed object found in the G-code. ID is the slicer's
// identifier; Name is the identifier cleaned up for use in Klipper commands.
type Object struct {
	ID   string
	Name string
	Hull *gcscan.Hull
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// cleanName makes id usable as a NAME= argument: runs of anything but letters,
// digits and underscores become a single underscore.
func cleanName(id string) string {
	return strings.Trim(nonWord.ReplaceAllString(norm.NFC.String(id), "_"), "_")
}

// Bounds returns the center and outline of the object. ok is false if no
// extrusion moves were seen for it. Convex outlines with fewer than three
// corners fall back to the bounding box.
func (obj *Object) Bounds(mode HullMode) (center gcscan.Point, polygon []gcscan.Point, ok bool) {
	box, ok := obj.Hull.BoundingBox()
	if !ok {
		return gcscan.Point{}, nil, false
	}
	if mode == HullConvex {
		ring := obj.Hull.ConvexHull()
		if len(ring) >= 3 {
			return gcscan.Centroid(ring), ring, true
		}
	}
	return box.Center(), box.Polygon(), true
}

func (obj *Object) define(mode HullMode) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "EXCLUDE_OBJECT_DEFINE NAME=%s", obj.Name)

	center, polygon, ok := obj.Bounds(mode)
	if ok {
		coords := make([][2]float64, len(polygon))
		for pdx, p := range polygon {
			coords[pdx] = [2]float64{p.X, p.Y}
		}
		buf, err := json.Marshal(coords)
		if err != nil {
			return "", fmt.Errorf("object %s: %w", obj.Name, err)
		}
		fmt.Fprintf(&sb, " CENTER=%0.3f,%0.3f POLYGON=%s", center.X, center.Y, buf)
	}
	sb.WriteByte('\n')
	return sb.String(), nil
}

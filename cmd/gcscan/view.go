package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leftmike/gcscan/preprocess"
)

type viewObject struct {
	Name    string       `json:"name"`
	Center  [2]float64   `json:"center"`
	Polygon [][2]float64 `json:"polygon"`
	Points  [][2]float64 `json:"points"`
}

type viewBounds struct {
	Min [2]float64 `json:"min"`
	Max [2]float64 `json:"max"`
}

func (c *cli) viewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [flags] <file.gcode>",
		Short: "Write an HTML page drawing the outline and points of each object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			res, err := c.scanFile(cmd, args[0])
			if err != nil {
				return err
			}
			opts, _ := c.options(cmd)

			w, closeOut, err := createOutput(cmd, out)
			if err != nil {
				return err
			}
			err = writeView(w, filepath.Base(args[0]), res, opts.Hull)
			if cerr := closeOut(); err == nil {
				err = cerr
			}
			return err
		},
	}
	cmd.Flags().String("out", "", "write to this file instead of stdout")
	addOptionFlags(cmd)
	return cmd
}

func writeView(w io.Writer, title string, res *preprocess.Result, mode preprocess.HullMode) error {
	var bounds *viewBounds
	objects := []viewObject{}
	for _, obj := range res.Objects {
		center, polygon, ok := obj.Bounds(mode)
		if !ok {
			continue
		}
		vo := viewObject{Name: obj.Name, Center: [2]float64{center.X, center.Y}}
		for _, p := range polygon {
			vo.Polygon = append(vo.Polygon, [2]float64{p.X, p.Y})
		}
		for _, p := range obj.Hull.Points() {
			vo.Points = append(vo.Points, [2]float64{p.X, p.Y})
		}
		objects = append(objects, vo)

		box, _ := obj.Hull.BoundingBox()
		if bounds == nil {
			bounds = &viewBounds{
				Min: [2]float64{box.XMin, box.YMin},
				Max: [2]float64{box.XMax, box.YMax},
			}
		} else {
			bounds.Min = [2]float64{min(bounds.Min[0], box.XMin), min(bounds.Min[1], box.YMin)}
			bounds.Max = [2]float64{max(bounds.Max[0], box.XMax), max(bounds.Max[1], box.YMax)}
		}
	}
	if bounds == nil {
		bounds = &viewBounds{Max: [2]float64{1, 1}}
	}

	titleJSON, err := json.Marshal(title)
	if err != nil {
		return err
	}
	boundsJSON, err := json.Marshal(bounds)
	if err != nil {
		return err
	}
	objectsJSON, err := json.Marshal(objects)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, viewHTML, titleJSON, boundsJSON, objectsJSON)
	return err
}

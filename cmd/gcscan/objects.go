package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/leftmike/gcscan/preprocess"
)

// scanFile identifies the slicer of path and collects its objects.
func (c *cli) scanFile(cmd *cobra.Command, path string) (*preprocess.Result, error) {
	opts, err := c.options(cmd)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := preprocess.Scan(cmd.Context(), f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if res.AlreadyProcessed {
		return nil, fmt.Errorf("%s: already processed; objects are only collected from slicer output",
			path)
	}
	return res, nil
}

func (c *cli) objectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "objects [flags] <file.gcode>",
		Short: "List the objects found in a G-code file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.scanFile(cmd, args[0])
			if err != nil {
				return err
			}
			opts, _ := c.options(cmd)
			printObjects(cmd.OutOrStdout(), res, opts.Hull)
			return nil
		},
	}
	addOptionFlags(cmd)
	return cmd
}

var (
	headerColor = color.New(color.Bold)
	nameColor   = color.New(color.FgCyan)
	emptyColor  = color.New(color.FgYellow)
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

func printObjects(w io.Writer, res *preprocess.Result, mode preprocess.HullMode) {
	rows := [][]string{{"NAME", "POINTS", "CENTER", "XMIN", "YMIN", "XMAX", "YMAX"}}
	for _, obj := range res.Objects {
		row := []string{obj.Name, strconv.Itoa(obj.Hull.Len()), "-", "-", "-", "-", "-"}
		if box, ok := obj.Hull.BoundingBox(); ok {
			center, _, _ := obj.Bounds(mode)
			row[2] = formatFloat(center.X) + "," + formatFloat(center.Y)
			row[3] = formatFloat(box.XMin)
			row[4] = formatFloat(box.YMin)
			row[5] = formatFloat(box.XMax)
			row[6] = formatFloat(box.YMax)
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for cdx, cell := range row {
			widths[cdx] = max(widths[cdx], runewidth.StringWidth(cell))
		}
	}

	fmt.Fprintf(w, "%s: %d objects\n", res.Slicer, len(res.Objects))
	for rdx, row := range rows {
		for cdx, cell := range row {
			s := runewidth.FillRight(cell, widths[cdx])
			switch {
			case rdx == 0:
				s = headerColor.Sprint(s)
			case cdx == 0 && res.Objects[rdx-1].Hull.Len() == 0:
				s = emptyColor.Sprint(s)
			case cdx == 0:
				s = nameColor.Sprint(s)
			}
			if cdx > 0 {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprint(w, s)
		}
		fmt.Fprintln(w)
	}
}

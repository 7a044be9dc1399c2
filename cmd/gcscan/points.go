package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/leftmike/gcscan/internal/export"
)

// createOutput returns stdout for an empty path.
func createOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func (c *cli) pointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "points [flags] <file.gcode>",
		Short: "Export the extrusion points collected for each object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatStr, _ := cmd.Flags().GetString("format")
			format, err := export.ParseFormat(formatStr)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("object")
			out, _ := cmd.Flags().GetString("out")

			res, err := c.scanFile(cmd, args[0])
			if err != nil {
				return err
			}
			objects, err := export.Select(res.Objects, name)
			if err != nil {
				return err
			}

			w, closeOut, err := createOutput(cmd, out)
			if err != nil {
				return err
			}
			err = export.Write(w, format, objects)
			if cerr := closeOut(); err == nil {
				err = cerr
			}
			return err
		},
	}
	cmd.Flags().String("format", "json", "output format (binary|msgpack|json)")
	cmd.Flags().String("object", "", "only export the object with this name or id")
	cmd.Flags().String("out", "", "write to this file instead of stdout")
	cmd.Flags().Float64("precision", 1.0, "grid size in mm used to collect points")
	return cmd
}

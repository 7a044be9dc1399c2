package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leftmike/gcscan/preprocess"
)

// options returns the preprocessor options from the config, overridden by the
// --hull and --precision flags if cmd has them.
func (c *cli) options(cmd *cobra.Command) (preprocess.Options, error) {
	cfg := c.cfg
	flags := cmd.Flags()
	if flags.Lookup("hull") != nil && flags.Changed("hull") {
		cfg.Hull, _ = flags.GetString("hull")
	}
	if flags.Lookup("precision") != nil && flags.Changed("precision") {
		cfg.Precision, _ = flags.GetFloat64("precision")
	}
	if err := cfg.Validate(); err != nil {
		return preprocess.Options{}, err
	}

	hull, err := preprocess.ParseHullMode(cfg.Hull)
	if err != nil {
		return preprocess.Options{}, err
	}
	return preprocess.Options{Precision: cfg.Precision, Hull: hull}, nil
}

func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().String("hull", preprocess.HullBoundingBox.String(),
		"object outline ("+preprocess.HullBoundingBox.String()+"|"+preprocess.HullConvex.String()+")")
	cmd.Flags().Float64("precision", 1.0, "grid size in mm used to collect points")
}

type processResult struct {
	path string
	res  *preprocess.Result
	err  error
}

func (c *cli) processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [flags] <file.gcode>...",
		Short: "Add object cancellation markers to G-code files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.runProcess,
	}
	cmd.Flags().StringP("output-suffix", "o", "",
		"write to <stem><suffix><ext> instead of rewriting the file")
	cmd.Flags().IntP("jobs", "j", 0, "max files processed at once (default from config)")
	addOptionFlags(cmd)
	return cmd
}

func (c *cli) runProcess(cmd *cobra.Command, args []string) error {
	opts, err := c.options(cmd)
	if err != nil {
		return err
	}

	suffix := c.cfg.OutputSuffix
	if cmd.Flags().Changed("output-suffix") {
		suffix, _ = cmd.Flags().GetString("output-suffix")
	}
	jobs := c.cfg.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs, _ = cmd.Flags().GetInt("jobs")
		if jobs < 1 {
			return fmt.Errorf("jobs must be at least 1: %d", jobs)
		}
	}

	ctx := cmd.Context()
	results := make([]processResult, len(args))
	var g errgroup.Group
	g.SetLimit(min(jobs, len(args)))
	for adx, path := range args {
		adx, path := adx, path
		g.Go(func() error {
			res, err := preprocess.ProcessFile(ctx, path, suffix, opts)
			results[adx] = processResult{path: path, res: res, err: err}
			return nil
		})
	}
	g.Wait()

	failed := printResults(cmd.OutOrStdout(), results, suffix)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func printResults(w io.Writer, results []processResult, suffix string) int {
	var failed int
	for _, r := range results {
		switch {
		case errors.Is(r.err, preprocess.ErrUnknownSlicer):
			failed += 1
			fmt.Fprintf(w, "%s: %s\n", r.path, color.YellowString("unknown slicer"))
		case r.err != nil:
			failed += 1
			fmt.Fprintf(w, "%s: %s\n", r.path, color.RedString(r.err.Error()))
		case r.res.AlreadyProcessed:
			fmt.Fprintf(w, "%s: %s\n", r.path, color.CyanString("already processed"))
		default:
			fmt.Fprintf(w, "%s: %s, %d objects -> %s\n", r.path, color.GreenString(r.res.Slicer),
				len(r.res.Objects), preprocess.OutputPath(r.path, suffix))
		}
	}
	return failed
}

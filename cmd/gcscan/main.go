package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leftmike/gcscan/internal/config"
	"github.com/leftmike/gcscan/internal/ctxlog"
	"github.com/leftmike/gcscan/preprocess"
)

type cli struct {
	cfg config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "gcscan",
		Short: "Add Klipper object cancellation to sliced G-code",
		Long: `gcscan finds the objects in G-code written by PrusaSlicer, SuperSlicer, Slic3r,
Cura, ideaMaker or any slicer that emits M486 labels, and adds the
EXCLUDE_OBJECT_DEFINE, EXCLUDE_OBJECT_START and EXCLUDE_OBJECT_END commands
Klipper needs to cancel them one at a time.`,
		Version:           preprocess.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().String("config", "", "config file (default: nearest "+config.FileName+")")
	root.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	root.PersistentFlags().String("log-format", "", "log format (text|json)")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	root.AddCommand(c.processCmd())
	root.AddCommand(c.objectsCmd())
	root.AddCommand(c.pointsCmd())
	root.AddCommand(c.viewCmd())
	root.AddCommand(versionCmd())
	return root
}

// setup loads the config, applies the global flags and puts the logger in the
// command's context.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	path, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Resolve(path, ".")
	if err != nil {
		return err
	}

	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	colorMode, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	if err := setupColor(colorMode, cmd.OutOrStdout()); err != nil {
		return err
	}

	logger := ctxlog.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
	c.cfg = cfg
	return nil
}

func setupColor(mode string, out io.Writer) error {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		f, ok := out.(*os.File)
		color.NoColor = !ok || !isTerminal(f)
	default:
		return fmt.Errorf("unknown color mode: %q", mode)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

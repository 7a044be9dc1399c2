package main

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/leftmike/gcscan/preprocess"
)

var versionColor = color.New(color.FgGreen, color.Bold)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the gcscan version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gcscan %s (%s %s/%s)\n",
				versionColor.Sprint(preprocess.Version), runtime.Version(), runtime.GOOS,
				runtime.GOARCH)
		},
	}
}

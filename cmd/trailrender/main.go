// Command trailrender inspects and renders exported trail snapshots.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trailrender",
		Short: "Render and inspect trail snapshots",
		Long: `trailrender works with the JSON snapshots and SQLite telemetry written by
a trails run. It renders a snapshot's field to PNG, summarizes it, and
lists the stats windows recorded for a run.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newRenderCmd(),
		newInfoCmd(),
		newStatsCmd(),
	)
	return rootCmd
}

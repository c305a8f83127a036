package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/trails/telemetry"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <runs.db> <run-id>",
		Short: "List the stats windows stored for a run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			store, err := telemetry.OpenStore(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(args[1])
			if err != nil {
				return fmt.Errorf("run %s: %w", args[1], err)
			}
			windows, err := store.RunStats(args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"run": run, "windows": windows})
			}

			fmt.Fprintf(out, "Run %s: %dx%d, %d agents, seed %d, %d ticks\n",
				run.ID, run.Width, run.Height, run.Agents, run.Seed, run.FinalTick)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TICK\tMASS\tMAX\tCOVERAGE\tOCCUPIED\tMEMORY")
			for _, w := range windows {
				fmt.Fprintf(tw, "%d\t%.1f\t%.2f\t%.1f%%\t%d\t%.2f\n",
					w.WindowEndTick, w.Mass, w.Max, w.Coverage*100, w.OccupiedCells, w.MeanMemory)
			}
			return tw.Flush()
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/trails/telemetry"
)

// snapshotInfo is the summary printed by the info command.
type snapshotInfo struct {
	RunID           string  `json:"run_id,omitempty"`
	Seed            uint64  `json:"seed"`
	Tick            int     `json:"tick"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	Agents          int     `json:"agents"`
	DepositAmount   float64 `json:"deposit_amount"`
	RetentionFactor float64 `json:"retention_factor"`
	SpreadEnabled   bool    `json:"spread_enabled"`
	Mass            float64 `json:"mass"`
	Max             float64 `json:"max"`
	Coverage        float64 `json:"coverage"`
	TrailP50        float64 `json:"trail_p50"`
	TrailP90        float64 `json:"trail_p90"`
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <snapshot.json>",
		Short: "Summarize a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			snap, err := telemetry.LoadSnapshot(args[0])
			if err != nil {
				return err
			}
			info := summarize(snap)

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			mode := "decay"
			if info.SpreadEnabled {
				mode = "spread"
			}
			fmt.Fprintf(out, "Size:     %dx%d\n", info.Width, info.Height)
			fmt.Fprintf(out, "Tick:     %d\n", info.Tick)
			fmt.Fprintf(out, "Agents:   %d\n", info.Agents)
			fmt.Fprintf(out, "Seed:     %d\n", info.Seed)
			fmt.Fprintf(out, "Field:    %s, deposit %g, retention %g\n", mode, info.DepositAmount, info.RetentionFactor)
			fmt.Fprintf(out, "Mass:     %.3f\n", info.Mass)
			fmt.Fprintf(out, "Max:      %.3f\n", info.Max)
			fmt.Fprintf(out, "Coverage: %.1f%%\n", info.Coverage*100)
			fmt.Fprintf(out, "Trail:    p50 %.3f, p90 %.3f\n", info.TrailP50, info.TrailP90)
			return nil
		},
	}
}

func summarize(snap *telemetry.Snapshot) snapshotInfo {
	stats := telemetry.ComputeFieldStats(telemetry.FieldSample{
		Cells:  snap.Field.Cells,
		Agents: len(snap.Agents),
	})
	return snapshotInfo{
		RunID:           snap.RunID,
		Seed:            snap.Seed,
		Tick:            snap.Tick,
		Width:           snap.Field.Width,
		Height:          snap.Field.Height,
		Agents:          len(snap.Agents),
		DepositAmount:   snap.DepositAmount,
		RetentionFactor: snap.RetentionFactor,
		SpreadEnabled:   snap.SpreadEnabled,
		Mass:            stats.Mass,
		Max:             stats.Max,
		Coverage:        stats.Coverage,
		TrailP50:        stats.TrailP50,
		TrailP90:        stats.TrailP90,
	}
}

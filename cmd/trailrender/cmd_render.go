package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/trails/renderer"
	"github.com/pthm-cable/trails/telemetry"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <snapshot.json>",
		Short: "Render a snapshot's field to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")

			snap, err := telemetry.LoadSnapshot(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
			}
			if err := renderer.SavePNG(output, snap.Field); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, tick %d)\n",
				output, snap.Field.Width, snap.Field.Height, snap.Tick)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "PNG path (default: snapshot name with .png)")
	return cmd
}

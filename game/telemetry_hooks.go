package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/trails/renderer"
	"github.com/pthm-cable/trails/telemetry"
)

// afterTick runs the per-tick telemetry: mass tracking, window flushes,
// progress lines and periodic snapshots.
func (g *Game) afterTick() error {
	tick := g.sim.Tick()
	g.collector.RecordMass(g.sim.Field().Mass())

	if g.collector.ShouldFlush(tick) {
		g.flushTelemetry()
	}
	if every := g.cfg.Run.ProgressEvery; every > 0 && tick%every == 0 {
		g.logProgress()
	}
	if every := g.cfg.Run.SnapshotEvery; every > 0 && tick%every == 0 && g.outputManager != nil {
		path, err := g.outputManager.WriteSnapshot(g.snapshot())
		if err != nil {
			return fmt.Errorf("snapshot at tick %d: %w", tick, err)
		}
		slog.Info("snapshot saved", "path", path, "tick", tick)
	}
	return nil
}

// flushTelemetry closes the current stats window and fans it out to the
// log, CSV, store and callback.
func (g *Game) flushTelemetry() {
	tick := g.sim.Tick()
	occupied, meanMemory := g.sim.Occupancy()

	stats := g.collector.Flush(tick, telemetry.FieldSample{
		Cells:         g.sim.Field().Cells,
		Agents:        g.sim.AgentCount(),
		OccupiedCells: occupied,
		MeanMemory:    meanMemory,
	})
	g.lastStats = stats
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	if err := g.store.WriteStats(g.runID, stats); err != nil {
		slog.Error("failed to store stats", "error", err)
	}
}

// snapshot builds an export of the current state.
func (g *Game) snapshot() *telemetry.Snapshot {
	p := g.sim.Params()
	return &telemetry.Snapshot{
		Version:         telemetry.SnapshotVersion,
		RunID:           g.runID,
		Seed:            g.seed,
		Tick:            g.sim.Tick(),
		DepositAmount:   p.DepositAmount,
		RetentionFactor: p.RetentionFactor,
		SpreadEnabled:   p.SpreadEnabled,
		Field:           g.sim.Snapshot(),
		Agents:          g.sim.Agents(),
	}
}

// SaveSnapshot writes a snapshot of the current state into the output
// directory. Returns "" when output is disabled.
func (g *Game) SaveSnapshot() (string, error) {
	return g.outputManager.WriteSnapshot(g.snapshot())
}

// SaveImage writes the current field as a PNG to the configured image path.
func (g *Game) SaveImage() error {
	if err := renderer.SavePNG(g.imagePath, g.sim.Snapshot()); err != nil {
		return fmt.Errorf("saving image %s: %w", g.imagePath, err)
	}
	slog.Info("image saved", "path", g.imagePath, "tick", g.sim.Tick())
	return nil
}

package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/trails/telemetry"
)

// logProgress writes the periodic progress line.
func (g *Game) logProgress() {
	field := g.sim.Field()
	slog.Info("progress",
		"tick", g.sim.Tick(),
		"max_ticks", g.maxTicks,
		"mass", field.Mass(),
		"max", field.Max(),
		"coverage", g.lastStats.Coverage,
	)
}

// logPerfStats logs the rolling per-phase timings at debug level.
func (g *Game) logPerfStats() {
	stats := g.perfCollector.Stats()
	slog.Debug("perf",
		"tick", g.sim.Tick(),
		"speed", g.stepsPerUpdate,
		"avg_tick", stats.AvgTickDuration.Round(time.Microsecond),
		"ticks_per_sec", int(stats.TicksPerSecond),
		telemetry.PhaseAgents+"_pct", stats.PhasePct[telemetry.PhaseAgents],
		telemetry.PhaseField+"_pct", stats.PhasePct[telemetry.PhaseField],
		telemetry.PhaseTelemetry+"_pct", stats.PhasePct[telemetry.PhaseTelemetry],
	)
}

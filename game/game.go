package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/trails/config"
	"github.com/pthm-cable/trails/rng"
	"github.com/pthm-cable/trails/telemetry"
	"github.com/pthm-cable/trails/tui"
)

// Options configures a run.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Seed           uint64
	MaxTicks       int    // 0 = run.ticks from config; < 0 = unlimited
	OutputDir      string // CSV logs, config, snapshots and image; empty disables files
	DBPath         string // SQLite telemetry store; empty disables
	ImagePath      string // final image; empty = output.image from config
	StepsPerUpdate int
	LogStats       bool
	StatsCallback  func(telemetry.FieldStats)
}

// Game drives a Simulation and everything around it: telemetry,
// snapshots, the final image and pause/speed state for viewers.
type Game struct {
	cfg  *config.Config
	sim  *Simulation
	seed uint64

	runID          string
	maxTicks       int
	stepsPerUpdate int
	paused         bool
	finished       bool
	imagePath      string
	logStats       bool
	statsCallback  func(telemetry.FieldStats)

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	store         *telemetry.Store
	lastStats     telemetry.FieldStats
}

// NewGameWithOptions builds the simulation, seeds the agents and opens the
// configured outputs.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	sim, err := NewSimulation(cfg.World.Width, cfg.World.Height, ParamsFromConfig(cfg), rng.New(opts.Seed))
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	g := &Game{
		cfg:            cfg,
		sim:            sim,
		seed:           opts.Seed,
		runID:          telemetry.NewRunID(),
		maxTicks:       opts.MaxTicks,
		stepsPerUpdate: opts.StepsPerUpdate,
		imagePath:      opts.ImagePath,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		collector:      telemetry.NewCollector(cfg.Telemetry.Window),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
	}
	if g.maxTicks == 0 {
		g.maxTicks = cfg.Run.Ticks
	}
	if g.stepsPerUpdate < 1 {
		g.stepsPerUpdate = cfg.Screen.StepsPerFrame
	}
	if g.imagePath == "" {
		g.imagePath = cfg.Output.Image
	}

	if err := g.spawnInitialAgents(); err != nil {
		return nil, err
	}
	if err := g.openOutputs(opts.OutputDir, opts.DBPath); err != nil {
		g.Unload()
		return nil, err
	}
	g.imagePath = g.outputManager.Path(g.imagePath)

	slog.Info("run created",
		"run_id", g.runID,
		"seed", g.seed,
		"width", cfg.World.Width,
		"height", cfg.World.Height,
		"agents", g.sim.AgentCount(),
		"spread", cfg.Pheromone.SpreadEnabled,
		"max_ticks", g.maxTicks,
	)
	return g, nil
}

// UpdateHeadless runs one batch of ticks. It is a no-op while paused or
// once the tick limit is reached.
func (g *Game) UpdateHeadless() error {
	if g.paused {
		return nil
	}
	for i := 0; i < g.stepsPerUpdate && !g.Done(); i++ {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

// step advances the simulation one tick and runs the per-tick hooks.
func (g *Game) step() error {
	g.perfCollector.StartTick()
	if err := g.sim.iterate(g.perfCollector.StartPhase); err != nil {
		return err
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	err := g.afterTick()
	g.perfCollector.EndTick()

	if w := g.cfg.Telemetry.PerfWindow; w > 0 && g.sim.Tick()%w == 0 {
		g.logPerfStats()
	}
	return err
}

// Step implements the terminal viewer's stepping contract.
func (g *Game) Step() (bool, error) {
	if err := g.UpdateHeadless(); err != nil {
		return true, err
	}
	return g.Done(), nil
}

// Done reports whether the tick limit has been reached.
func (g *Game) Done() bool {
	return g.finished || (g.maxTicks > 0 && g.sim.Tick() >= g.maxTicks)
}

// Finish ends the run: flushes the last partial window, writes the final
// image and snapshot, and closes the run record. Safe to call twice.
func (g *Game) Finish() error {
	if g.finished {
		return nil
	}
	g.finished = true
	final := g.sim.Finish()
	tick := g.sim.Tick()

	var errs []error
	if g.collector.Pending(tick) {
		g.flushTelemetry()
	}
	if g.imagePath != "" {
		if err := g.SaveImage(); err != nil {
			errs = append(errs, err)
		}
	}
	if g.outputManager != nil {
		if _, err := g.outputManager.WriteSnapshot(g.snapshot()); err != nil {
			errs = append(errs, fmt.Errorf("final snapshot: %w", err))
		}
	}
	if err := g.store.FinishRun(g.runID, tick); err != nil {
		errs = append(errs, err)
	}

	slog.Info("run finished",
		"run_id", g.runID,
		"tick", tick,
		"mass", final.Mass(),
		"max", final.Max(),
		"image", g.imagePath,
	)
	return errors.Join(errs...)
}

// Unload closes all outputs.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	if err := g.store.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}
}

// TogglePause flips the pause state and returns the new value.
func (g *Game) TogglePause() bool {
	g.paused = !g.paused
	return g.paused
}

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool { return g.paused }

// Speed returns the ticks run per update.
func (g *Game) Speed() int { return g.stepsPerUpdate }

// SetSpeed sets the ticks run per update (minimum 1).
func (g *Game) SetSpeed(n int) {
	g.stepsPerUpdate = max(n, 1)
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int { return g.sim.Tick() }

// Simulation exposes the underlying simulation for viewers.
func (g *Game) Simulation() *Simulation { return g.sim }

// RunID returns the identifier of this run.
func (g *Game) RunID() string { return g.runID }

// LastStats returns the most recently flushed stats window.
func (g *Game) LastStats() telemetry.FieldStats { return g.lastStats }

// PerfStats returns the rolling timing summary.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perfCollector.Stats() }

// RecordFrame records frame timing for graphical mode.
func (g *Game) RecordFrame() { g.perfCollector.RecordFrame() }

// Config returns the run configuration.
func (g *Game) Config() *config.Config { return g.cfg }

// Frame returns the current field and a status line for the terminal viewer.
func (g *Game) Frame() tui.Frame {
	snap := g.sim.Snapshot()
	return tui.Frame{
		Field: snap,
		Status: fmt.Sprintf("tick %d/%d  agents %d  mass %.0f  max %.1f  speed %dx",
			g.sim.Tick(), g.maxTicks, g.sim.AgentCount(), snap.Mass(), snap.Max(), g.stepsPerUpdate),
	}
}

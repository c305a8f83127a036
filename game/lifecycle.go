package game

import (
	"fmt"
	"time"

	"github.com/pthm-cable/trails/telemetry"
)

// spawnInitialAgents places the configured population at random cells.
func (g *Game) spawnInitialAgents() error {
	if err := g.sim.AddRandomAgents(g.cfg.Agents.Count); err != nil {
		return fmt.Errorf("spawning agents: %w", err)
	}
	return nil
}

// openOutputs creates the output directory and the telemetry store, and
// records the run in both.
func (g *Game) openOutputs(outputDir, dbPath string) error {
	om, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	g.outputManager = om
	if err := om.WriteConfig(g.cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if dbPath == "" {
		return nil
	}
	store, err := telemetry.OpenStore(dbPath)
	if err != nil {
		return err
	}
	g.store = store

	p := g.sim.Params()
	w, h := g.sim.Size()
	return store.BeginRun(telemetry.Run{
		ID:              g.runID,
		StartedAt:       time.Now().UTC(),
		Seed:            g.seed,
		Width:           w,
		Height:          h,
		Agents:          g.sim.AgentCount(),
		MemoryCapacity:  p.MemoryCapacity,
		DepositAmount:   p.DepositAmount,
		RetentionFactor: p.RetentionFactor,
		SpreadEnabled:   p.SpreadEnabled,
	})
}

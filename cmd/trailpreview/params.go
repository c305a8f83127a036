package main

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/trails/config"
	"github.com/pthm-cable/trails/game"
	"github.com/pthm-cable/trails/rng"
)

// previewParams are the knobs exposed by the preview sliders.
type previewParams struct {
	Agents    int
	Memory    int
	Deposit   float64
	Retention float64
	Spread    bool
	Seed      uint64
}

// defaultParams starts from the embedded configuration defaults.
func defaultParams() (previewParams, error) {
	cfg, err := config.Load("")
	if err != nil {
		return previewParams{}, err
	}
	return previewParams{
		Agents:    cfg.Agents.Count,
		Memory:    cfg.Agents.MemoryCapacity,
		Deposit:   cfg.Pheromone.DepositAmount,
		Retention: cfg.Pheromone.RetentionFactor,
		Spread:    cfg.Pheromone.SpreadEnabled,
		Seed:      12345,
	}, nil
}

// newSimulation builds a fresh width x height run for p.
func newSimulation(width, height int, p previewParams) (*game.Simulation, error) {
	sim, err := game.NewSimulation(width, height, game.Params{
		DepositAmount:   p.Deposit,
		RetentionFactor: p.Retention,
		SpreadEnabled:   p.Spread,
		MemoryCapacity:  p.Memory,
	}, rng.New(p.Seed))
	if err != nil {
		return nil, err
	}
	if err := sim.AddRandomAgents(p.Agents); err != nil {
		return nil, fmt.Errorf("spawning agents: %w", err)
	}
	return sim, nil
}

// configYAML renders p as the agents/pheromone sections of a config file.
func configYAML(p previewParams) (string, error) {
	out, err := yaml.Marshal(struct {
		Agents    config.AgentsConfig    `yaml:"agents"`
		Pheromone config.PheromoneConfig `yaml:"pheromone"`
	}{
		Agents: config.AgentsConfig{Count: p.Agents, MemoryCapacity: p.Memory},
		Pheromone: config.PheromoneConfig{
			DepositAmount:   p.Deposit,
			RetentionFactor: p.Retention,
			SpreadEnabled:   p.Spread,
		},
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

package game

import "github.com/pthm-cable/trails/config"

// ParamsFromConfig maps the pheromone and agent sections onto run parameters.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		DepositAmount:   cfg.Pheromone.DepositAmount,
		RetentionFactor: cfg.Pheromone.RetentionFactor,
		SpreadEnabled:   cfg.Pheromone.SpreadEnabled,
		MemoryCapacity:  cfg.Agents.MemoryCapacity,
	}
}

package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/trails/config"
	"github.com/pthm-cable/trails/game"
	"github.com/pthm-cable/trails/telemetry"
)

// FitnessEvaluator runs headless simulations and scores how close the
// resulting trail network comes to a target coverage.
type FitnessEvaluator struct {
	params         *ParamVector
	maxTicks       int
	seeds          []uint64
	baseConfig     *config.Config
	targetCoverage float64

	mu           sync.Mutex
	lastCoverage float64 // mean final coverage from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []uint64, baseCfg *config.Config, targetCoverage float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:         params,
		maxTicks:       maxTicks,
		seeds:          seeds,
		baseConfig:     baseCfg,
		targetCoverage: targetCoverage,
	}
}

// LastCoverage returns the mean coverage from the most recent evaluation.
func (fe *FitnessEvaluator) LastCoverage() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastCoverage
}

// stabilityWeight scales the mass-swing penalty against the coverage error.
const stabilityWeight = 0.1

// runResult holds the results from a single simulation run.
type runResult struct {
	windows []telemetry.FieldStats // collected via StatsCallback each window
	err     error
}

// Evaluate computes fitness for a parameter vector (lower = better),
// averaged over all seeds. Seeds run in parallel.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalCoverage float64
	for _, r := range results {
		f, coverage := fe.computeFitness(r)
		totalFitness += f
		totalCoverage += coverage
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastCoverage = totalCoverage / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless run with no file outputs.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed uint64) runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var result runResult
	g, err := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		MaxTicks:       fe.maxTicks,
		StepsPerUpdate: 50,
		StatsCallback: func(stats telemetry.FieldStats) {
			result.windows = append(result.windows, stats)
		},
	})
	if err != nil {
		result.err = err
		return result
	}
	defer g.Unload()

	for !g.Done() {
		if err := g.UpdateHeadless(); err != nil {
			result.err = err
			return result
		}
	}
	result.err = g.Finish()
	return result
}

// copyConfig copies the base config and disables everything that writes
// files or logs per run.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Output.Image = ""
	cfg.Run.ProgressEvery = 0
	cfg.Run.SnapshotEvery = 0
	return &cfg
}

// computeFitness scores a run (lower = better):
// (coverage - target)^2 + stabilityWeight * (massMax - massMin) / massMax
// over the final stats window. Failed or empty runs score +Inf.
func (fe *FitnessEvaluator) computeFitness(r runResult) (fitness, coverage float64) {
	if r.err != nil || len(r.windows) == 0 {
		return math.Inf(1), 0
	}
	last := r.windows[len(r.windows)-1]

	errCov := last.Coverage - fe.targetCoverage
	var swing float64
	if last.MassMax > 0 {
		swing = (last.MassMax - last.MassMin) / last.MassMax
	}
	return errCov*errCov + stabilityWeight*swing, last.Coverage
}

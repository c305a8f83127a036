package game

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/rng"
)

// countingSource records which kind of draw the selector asked for.
type countingSource struct {
	inner    rng.Source
	uniform  []int
	weighted int
}

func (c *countingSource) IntN(n int) int {
	c.uniform = append(c.uniform, n)
	return c.inner.IntN(n)
}

func (c *countingSource) WeightedIndex(w []float64) (int, bool) {
	c.weighted++
	return c.inner.WeightedIndex(w)
}

func TestNewSimulationValidation(t *testing.T) {
	src := rng.New(1)
	cases := []struct {
		name   string
		w, h   int
		params Params
		src    rng.Source
		want   error
	}{
		{"zero width", 0, 5, DefaultParams(), src, ErrInvalidSize},
		{"zero height", 5, 0, DefaultParams(), src, ErrInvalidSize},
		{"retention above one", 5, 5, Params{RetentionFactor: 1.5}, src, ErrInvalidRetention},
		{"retention below zero", 5, 5, Params{RetentionFactor: -0.1}, src, ErrInvalidRetention},
		{"negative deposit", 5, 5, Params{DepositAmount: -1}, src, ErrInvalidDeposit},
		{"negative memory", 5, 5, Params{MemoryCapacity: -1}, src, ErrInvalidMemory},
		{"nil source", 5, 5, DefaultParams(), nil, ErrNilSource},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sim, err := NewSimulation(c.w, c.h, c.params, c.src)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if sim != nil {
				t.Error("expected no simulation on error")
			}
		})
	}

	sim, err := NewSimulation(4, 3, Params{RetentionFactor: 1}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim.State() != StateReady {
		t.Errorf("expected ready, got %s", sim.State())
	}
	if sim.Snapshot().Mass() != 0 {
		t.Error("expected empty field")
	}
}

func TestScenarioSingleAgentFirstTick(t *testing.T) {
	src := &countingSource{inner: rng.New(5)}
	sim, err := NewSimulation(3, 3, Params{DepositAmount: 10, RetentionFactor: 1.0, MemoryCapacity: 6}, src)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	if err := sim.AddRandomAgents(1); err != nil {
		t.Fatalf("AddRandomAgents: %v", err)
	}
	start := sim.Agents()[0]
	src.uniform = nil

	if err := sim.Iterate(); err != nil {
		t.Fatalf("Iterate: %v", err)
	}

	snap := sim.Snapshot()
	if got := snap.At(start.X, start.Y); got != 10 {
		t.Errorf("expected 10 at the starting cell, got %f", got)
	}
	if math.Abs(snap.Mass()-10) > 1e-12 {
		t.Errorf("expected total mass 10, got %f", snap.Mass())
	}
	if src.weighted != 0 {
		t.Errorf("expected no weighted draw on an empty field, got %d", src.weighted)
	}
	if len(src.uniform) != 1 || src.uniform[0] != 3 {
		t.Errorf("expected a single uniform draw over 3 candidates, got %v", src.uniform)
	}

	end := sim.Agents()[0]
	dirs := []components.Heading{start.Heading, start.Heading.Left(), start.Heading.Right()}
	legal := false
	for _, d := range dirs {
		p := components.Position{X: start.X, Y: start.Y}.Step(d, 3, 3)
		if p.X == end.X && p.Y == end.Y && d == end.Heading {
			legal = true
		}
	}
	if !legal {
		t.Errorf("agent moved from %+v to illegal state %+v", start, end)
	}
	if end.Memory != 1 {
		t.Errorf("expected one remembered position, got %d", end.Memory)
	}
}

func TestIntraTickDepositVisibility(t *testing.T) {
	// The second agent stands so that the first agent's cell is straight ahead.
	// With memory on and an otherwise empty field it must walk onto it.
	for seed := uint64(0); seed < 20; seed++ {
		sim, err := NewSimulation(5, 5, Params{DepositAmount: 3, RetentionFactor: 1}, rng.New(seed))
		if err != nil {
			t.Fatalf("NewSimulation: %v", err)
		}
		if err := sim.AddAgent(components.Position{X: 2, Y: 3}, components.North, 6); err != nil {
			t.Fatal(err)
		}
		if err := sim.AddAgent(components.Position{X: 2, Y: 2}, components.North, 6); err != nil {
			t.Fatal(err)
		}

		if err := sim.Iterate(); err != nil {
			t.Fatal(err)
		}

		second := sim.Agents()[1]
		if second.X != 2 || second.Y != 3 || second.Heading != components.North {
			t.Fatalf("seed %d: expected second agent to follow the fresh deposit, got %+v", seed, second)
		}
	}
}

func TestAgentsKeepInsertionOrder(t *testing.T) {
	sim, err := NewSimulation(10, 10, DefaultParams(), rng.New(3))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if err := sim.AddAgent(components.Position{X: i, Y: i}, components.East, 0); err != nil {
			t.Fatal(err)
		}
	}

	for i, a := range sim.Agents() {
		if a.X != i || a.Y != i {
			t.Errorf("agent %d at (%d,%d), expected (%d,%d)", i, a.X, a.Y, i, i)
		}
	}
	if sim.AgentCount() != 10 {
		t.Errorf("expected 10 agents, got %d", sim.AgentCount())
	}
}

func TestAddAgentWrapsPosition(t *testing.T) {
	sim, err := NewSimulation(4, 4, DefaultParams(), rng.New(3))
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.AddAgent(components.Position{X: -1, Y: 9}, components.South, 2); err != nil {
		t.Fatal(err)
	}
	a := sim.Agents()[0]
	if a.X != 3 || a.Y != 1 {
		t.Errorf("expected wrapped position (3,1), got (%d,%d)", a.X, a.Y)
	}
}

func TestLifecycle(t *testing.T) {
	sim, err := NewSimulation(8, 8, DefaultParams(), rng.New(9))
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.AddRandomAgents(5); err != nil {
		t.Fatal(err)
	}
	if err := sim.Iterate(); err != nil {
		t.Fatal(err)
	}
	if sim.State() != StateRunning {
		t.Errorf("expected running, got %s", sim.State())
	}
	if sim.Tick() != 1 {
		t.Errorf("expected tick 1, got %d", sim.Tick())
	}

	if err := sim.AddRandomAgents(1); !errors.Is(err, ErrNotReady) {
		t.Errorf("expected ErrNotReady, got %v", err)
	}
	if err := sim.AddAgent(components.Position{}, components.North, 0); !errors.Is(err, ErrNotReady) {
		t.Errorf("expected ErrNotReady, got %v", err)
	}

	final := sim.Finish()
	if final.Width != 8 || final.Height != 8 {
		t.Errorf("unexpected final snapshot size %dx%d", final.Width, final.Height)
	}
	if err := sim.Iterate(); !errors.Is(err, ErrFinished) {
		t.Errorf("expected ErrFinished, got %v", err)
	}
}

func TestDecayRunKeepsMassBounded(t *testing.T) {
	params := Params{DepositAmount: 1, RetentionFactor: 0.5}
	sim, err := NewSimulation(20, 20, params, rng.New(4))
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.AddRandomAgents(50); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 200; i++ {
		if err := sim.Iterate(); err != nil {
			t.Fatal(err)
		}
	}

	// Steady state: mass m satisfies m = 0.5*(m + 50).
	mass := sim.Snapshot().Mass()
	if math.Abs(mass-50) > 1e-6 {
		t.Errorf("expected steady-state mass 50, got %f", mass)
	}
}

func TestSpreadRunConservesDepositedMass(t *testing.T) {
	params := Params{DepositAmount: 2, RetentionFactor: 0.4, SpreadEnabled: true, MemoryCapacity: 3}
	sim, err := NewSimulation(15, 9, params, rng.New(6))
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.AddRandomAgents(12); err != nil {
		t.Fatal(err)
	}

	const ticks = 40
	for i := 0; i < ticks; i++ {
		if err := sim.Iterate(); err != nil {
			t.Fatal(err)
		}
	}

	want := float64(ticks * 12 * 2)
	if got := sim.Snapshot().Mass(); math.Abs(got-want) > 1e-6*want {
		t.Errorf("expected mass %f, got %f", want, got)
	}
	for i, v := range sim.Snapshot().Cells {
		if v < 0 {
			t.Fatalf("cell %d negative: %f", i, v)
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() ([]components.AgentState, []float64) {
		params := Params{DepositAmount: 5, RetentionFactor: 0.7, SpreadEnabled: true, MemoryCapacity: 6}
		sim, err := NewSimulation(16, 12, params, rng.New(12345))
		if err != nil {
			t.Fatal(err)
		}
		if err := sim.AddRandomAgents(40); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 100; i++ {
			if err := sim.Iterate(); err != nil {
				t.Fatal(err)
			}
		}
		return sim.Agents(), sim.Snapshot().Cells
	}

	agentsA, cellsA := run()
	agentsB, cellsB := run()

	for i := range agentsA {
		if agentsA[i] != agentsB[i] {
			t.Fatalf("agent %d diverged: %+v vs %+v", i, agentsA[i], agentsB[i])
		}
	}
	for i := range cellsA {
		if math.Float64bits(cellsA[i]) != math.Float64bits(cellsB[i]) {
			t.Fatalf("cell %d diverged: %v vs %v", i, cellsA[i], cellsB[i])
		}
	}
}

func TestOccupancy(t *testing.T) {
	sim, err := NewSimulation(6, 6, DefaultParams(), rng.New(2))
	if err != nil {
		t.Fatal(err)
	}
	sim.AddAgent(components.Position{X: 1, Y: 1}, components.North, 4)
	sim.AddAgent(components.Position{X: 1, Y: 1}, components.South, 4)
	sim.AddAgent(components.Position{X: 3, Y: 3}, components.East, 4)

	distinct, mem := sim.Occupancy()
	if distinct != 2 {
		t.Errorf("expected 2 occupied cells, got %d", distinct)
	}
	if mem != 0 {
		t.Errorf("expected empty memories, got %f", mem)
	}

	sim.Iterate()
	_, mem = sim.Occupancy()
	if mem != 1 {
		t.Errorf("expected one remembered cell per agent, got %f", mem)
	}
}

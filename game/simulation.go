package game

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/rng"
	"github.com/pthm-cable/trails/systems"
	"github.com/pthm-cable/trails/telemetry"
)

// Construction and lifecycle errors.
var (
	ErrInvalidSize      = errors.New("width and height must be > 0")
	ErrInvalidRetention = errors.New("retention factor must be in [0,1]")
	ErrInvalidDeposit   = errors.New("deposit amount must be >= 0")
	ErrInvalidMemory    = errors.New("memory capacity must be >= 0")
	ErrNilSource        = errors.New("random source is required")
	ErrNotReady         = errors.New("agents can only be added before the first tick")
	ErrFinished         = errors.New("simulation has finished")
)

// State is the simulation lifecycle stage.
type State uint8

const (
	StateReady State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// DefaultMemoryCapacity is the per-agent history size used when none is configured.
const DefaultMemoryCapacity = 6

// Params holds the per-run simulation parameters.
type Params struct {
	DepositAmount   float64 // pheromone added per agent per tick
	RetentionFactor float64 // decay / diffusion rate in [0,1]
	SpreadEnabled   bool    // diffuse-and-spread instead of plain decay
	MemoryCapacity  int     // per-agent history size; 0 disables memory
}

// DefaultParams returns the parameters of the reference model.
func DefaultParams() Params {
	return Params{
		DepositAmount:   100,
		RetentionFactor: 0.25,
		MemoryCapacity:  DefaultMemoryCapacity,
	}
}

// Validate checks the parameter ranges.
func (p Params) Validate() error {
	var errs []error
	if p.RetentionFactor < 0 || p.RetentionFactor > 1 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrInvalidRetention, p.RetentionFactor))
	}
	if p.DepositAmount < 0 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrInvalidDeposit, p.DepositAmount))
	}
	if p.MemoryCapacity < 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidMemory, p.MemoryCapacity))
	}
	return errors.Join(errs...)
}

// Simulation owns the field, the agents and the random source for one run.
// It is single-threaded: callers must not use it from more than one goroutine.
type Simulation struct {
	width, height int
	params        Params
	state         State
	tick          int

	rng      rng.Source
	field    *systems.PheromoneField
	selector *systems.MoveSelector

	world       *ecs.World
	agentMapper *ecs.Map3[components.Position, components.Heading, components.Memory]
	agentFilter *ecs.Filter3[components.Position, components.Heading, components.Memory]

	// Insertion order; ECS storage order is not relied on.
	agents []ecs.Entity
}

// NewSimulation creates a Ready simulation with an empty field and no agents.
func NewSimulation(width, height int, params Params, src rng.Source) (*Simulation, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, ErrNilSource
	}

	world := ecs.NewWorld()
	field := systems.NewPheromoneField(width, height)

	return &Simulation{
		width:       width,
		height:      height,
		params:      params,
		state:       StateReady,
		rng:         src,
		field:       field,
		selector:    systems.NewMoveSelector(field, params.DepositAmount, src),
		world:       world,
		agentMapper: ecs.NewMap3[components.Position, components.Heading, components.Memory](world),
		agentFilter: ecs.NewFilter3[components.Position, components.Heading, components.Memory](world),
	}, nil
}

// AddAgent places one agent. Only allowed before the first tick.
func (s *Simulation) AddAgent(pos components.Position, heading components.Heading, memoryCapacity int) error {
	if s.state != StateReady {
		return ErrNotReady
	}
	if memoryCapacity < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMemory, memoryCapacity)
	}

	p := components.Position{X: components.Wrap(pos.X, s.width), Y: components.Wrap(pos.Y, s.height)}
	h := heading % components.NumHeadings
	mem := components.NewMemory(memoryCapacity)

	entity := s.agentMapper.NewEntity(&p, &h, &mem)
	s.agents = append(s.agents, entity)
	return nil
}

// AddRandomAgents adds count agents with uniformly random positions and
// headings, using the configured memory capacity.
func (s *Simulation) AddRandomAgents(count int) error {
	return s.AddRandomAgentsWithMemory(count, s.params.MemoryCapacity)
}

// AddRandomAgentsWithMemory is AddRandomAgents with an explicit memory capacity.
func (s *Simulation) AddRandomAgentsWithMemory(count, memoryCapacity int) error {
	if s.state != StateReady {
		return ErrNotReady
	}
	for i := 0; i < count; i++ {
		pos := components.Position{X: s.rng.IntN(s.width), Y: s.rng.IntN(s.height)}
		heading := components.Heading(s.rng.IntN(components.NumHeadings))
		if err := s.AddAgent(pos, heading, memoryCapacity); err != nil {
			return err
		}
	}
	return nil
}

// Iterate advances one tick: every agent deposits, senses and moves in
// insertion order, then the field is decayed or spread exactly once.
func (s *Simulation) Iterate() error {
	return s.iterate(nil)
}

// iterate is Iterate with an optional callback invoked before each phase.
func (s *Simulation) iterate(onPhase func(phase string)) error {
	if s.state == StateFinished {
		return ErrFinished
	}
	s.state = StateRunning

	if onPhase != nil {
		onPhase(telemetry.PhaseAgents)
	}
	s.stepAgents()
	if onPhase != nil {
		onPhase(telemetry.PhaseField)
	}
	s.stepField()

	s.tick++
	return nil
}

// stepAgents runs the move selector over every agent.
func (s *Simulation) stepAgents() {
	for _, e := range s.agents {
		pos, heading, mem := s.agentMapper.Get(e)
		s.selector.Step(components.Agent{Pos: pos, Heading: heading, Memory: mem})
	}
}

// stepField applies the end-of-tick field transform.
func (s *Simulation) stepField() {
	s.field.Step(s.params.RetentionFactor, s.params.SpreadEnabled)
}

// Finish ends the run and returns the final field snapshot.
func (s *Simulation) Finish() systems.FieldSnapshot {
	s.state = StateFinished
	return s.field.Snapshot()
}

// Snapshot returns a copy of the current field.
func (s *Simulation) Snapshot() systems.FieldSnapshot {
	return s.field.Snapshot()
}

// Agents returns the state of every agent in insertion order.
func (s *Simulation) Agents() []components.AgentState {
	out := make([]components.AgentState, 0, len(s.agents))
	for _, e := range s.agents {
		pos, heading, mem := s.agentMapper.Get(e)
		out = append(out, components.AgentState{
			X:       pos.X,
			Y:       pos.Y,
			Heading: *heading,
			Memory:  mem.Len(),
		})
	}
	return out
}

// AgentCount returns the number of agents.
func (s *Simulation) AgentCount() int { return len(s.agents) }

// Field exposes the live field for read-only consumers such as viewers.
func (s *Simulation) Field() *systems.PheromoneField { return s.field }

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int { return s.tick }

// State returns the lifecycle stage.
func (s *Simulation) State() State { return s.state }

// Params returns the run parameters.
func (s *Simulation) Params() Params { return s.params }

// Size returns the grid dimensions.
func (s *Simulation) Size() (int, int) { return s.width, s.height }

// Occupancy reports how many distinct cells hold at least one agent and the
// mean number of remembered positions per agent.
func (s *Simulation) Occupancy() (distinctCells int, meanMemory float64) {
	seen := make(map[components.Position]struct{}, len(s.agents))
	var memTotal int

	query := s.agentFilter.Query()
	for query.Next() {
		pos, _, mem := query.Get()
		seen[*pos] = struct{}{}
		memTotal += mem.Len()
	}

	if len(s.agents) > 0 {
		meanMemory = float64(memTotal) / float64(len(s.agents))
	}
	return len(seen), meanMemory
}

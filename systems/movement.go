package systems

import (
	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/rng"
)

// Candidate is one reachable next cell considered during a move decision.
type Candidate struct {
	Pos     components.Position
	Heading components.Heading
	Sensed  float64
}

// NumCandidates is the number of moves considered per step:
// straight ahead, one turn left, one turn right.
const NumCandidates = 3

// MoveSelector steps agents over a pheromone field.
type MoveSelector struct {
	Field   *PheromoneField
	Deposit float64
	Rand    rng.Source
}

// NewMoveSelector creates a selector that deposits amount per step.
func NewMoveSelector(field *PheromoneField, deposit float64, src rng.Source) *MoveSelector {
	return &MoveSelector{Field: field, Deposit: deposit, Rand: src}
}

// Step advances one agent: deposit at the current cell, sense the three
// candidates, choose one, then move and turn.
func (s *MoveSelector) Step(a components.Agent) Candidate {
	// Deposit first so agents later in the tick can sense it.
	s.Field.DepositAt(*a.Pos, s.Deposit)

	cands := Candidates(a, s.Field)
	next := Choose(s.Rand, cands[:])

	a.MoveTo(next.Pos)
	a.Turn(next.Heading)
	return next
}

// Candidates returns the straight, left and right moves for a, with sensed
// values. Cells in the agent's memory sense as zero.
func Candidates(a components.Agent, field *PheromoneField) [NumCandidates]Candidate {
	h := *a.Heading
	headings := [NumCandidates]components.Heading{h, h.Left(), h.Right()}

	var out [NumCandidates]Candidate
	for i, dir := range headings {
		pos := a.Pos.Step(dir, field.W, field.H)
		sensed := 0.0
		if !a.Memory.Contains(pos) {
			sensed = field.SampleAt(pos)
		}
		out[i] = Candidate{Pos: pos, Heading: dir, Sensed: sensed}
	}
	return out
}

// Choose picks the next move. If any candidate sensed pheromone, one of
// those is drawn with probability proportional to its value; otherwise, or
// if the weighted draw fails, one of all candidates is drawn uniformly.
func Choose(src rng.Source, cands []Candidate) Candidate {
	nonzero := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Sensed > 0 {
			nonzero = append(nonzero, c)
		}
	}

	if len(nonzero) > 0 {
		if c, ok := rng.ChooseWeighted(src, nonzero, func(c Candidate) float64 { return c.Sensed }); ok {
			return c
		}
	}
	return rng.Choose(src, cands)
}

// Package components defines the ECS components that make up an agent.
package components

// Agent is a view over one agent's components, as returned by an ECS mapper.
// Methods mutate the underlying components in place.
type Agent struct {
	Pos     *Position
	Heading *Heading
	Memory  *Memory
}

// MoveTo remembers the current position and then moves to p.
func (a Agent) MoveTo(p Position) {
	a.Memory.Push(*a.Pos)
	*a.Pos = p
}

// Turn sets the agent's heading.
func (a Agent) Turn(h Heading) {
	*a.Heading = h
}

// AgentState is a plain copy of one agent for export.
type AgentState struct {
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Heading Heading `json:"heading"`
	Memory  int     `json:"memory"`
}

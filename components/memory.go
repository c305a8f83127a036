package components

// Memory is a fixed-capacity FIFO of recently occupied cells. When full, the
// oldest entry is overwritten. A zero-capacity Memory records nothing and
// contains nothing.
type Memory struct {
	buf  []Position
	head int // next write slot
	n    int
}

// NewMemory creates a Memory holding at most capacity positions.
// Negative capacities are treated as zero.
func NewMemory(capacity int) Memory {
	if capacity < 0 {
		capacity = 0
	}
	return Memory{buf: make([]Position, capacity)}
}

// Push records p, evicting the oldest entry when full.
func (m *Memory) Push(p Position) {
	if len(m.buf) == 0 {
		return
	}
	m.buf[m.head] = p
	m.head = (m.head + 1) % len(m.buf)
	if m.n < len(m.buf) {
		m.n++
	}
}

// Contains reports whether p is among the remembered positions.
func (m *Memory) Contains(p Position) bool {
	for i := 0; i < m.n; i++ {
		if m.buf[i] == p {
			return true
		}
	}
	return false
}

// Len returns the number of remembered positions.
func (m *Memory) Len() int { return m.n }

// Cap returns the configured capacity.
func (m *Memory) Cap() int { return len(m.buf) }

// Positions returns the remembered positions, oldest first.
func (m *Memory) Positions() []Position {
	out := make([]Position, 0, m.n)
	start := 0
	if m.n == len(m.buf) {
		start = m.head
	}
	for i := 0; i < m.n; i++ {
		out = append(out, m.buf[(start+i)%len(m.buf)])
	}
	return out
}

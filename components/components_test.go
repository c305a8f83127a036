package components

import "testing"

func TestHeadingRing(t *testing.T) {
	for h := Heading(0); h < NumHeadings; h++ {
		if got := h.Left().Right(); got != h {
			t.Errorf("%s: Left().Right() = %s", h, got)
		}
		if got := h.Right().Left(); got != h {
			t.Errorf("%s: Right().Left() = %s", h, got)
		}
		dx, dy := h.Delta()
		if dx == 0 && dy == 0 {
			t.Errorf("%s: zero delta", h)
		}
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
			t.Errorf("%s: delta (%d,%d) out of range", h, dx, dy)
		}
	}

	if North.Left() != NorthWest {
		t.Errorf("expected N.Left() = NW, got %s", North.Left())
	}
	if NorthWest.Right() != North {
		t.Errorf("expected NW.Right() = N, got %s", NorthWest.Right())
	}
}

func TestHeadingDeltasDistinct(t *testing.T) {
	seen := make(map[[2]int]Heading)
	for h := Heading(0); h < NumHeadings; h++ {
		dx, dy := h.Delta()
		if prev, ok := seen[[2]int{dx, dy}]; ok {
			t.Errorf("%s and %s share delta (%d,%d)", prev, h, dx, dy)
		}
		seen[[2]int{dx, dy}] = h
	}
}

func TestPositionStepWraps(t *testing.T) {
	p := Position{X: 0, Y: 0}
	got := p.Step(SouthWest, 5, 4)
	if got != (Position{X: 4, Y: 3}) {
		t.Errorf("expected (4,3), got %+v", got)
	}

	p = Position{X: 4, Y: 3}
	got = p.Step(NorthEast, 5, 4)
	if got != (Position{X: 0, Y: 0}) {
		t.Errorf("expected (0,0), got %+v", got)
	}
}

func TestWrap(t *testing.T) {
	cases := []struct{ a, m, want int }{
		{0, 3, 0},
		{3, 3, 0},
		{-1, 3, 2},
		{-7, 3, 2},
		{10, 4, 2},
	}
	for _, c := range cases {
		if got := Wrap(c.a, c.m); got != c.want {
			t.Errorf("Wrap(%d, %d) = %d, want %d", c.a, c.m, got, c.want)
		}
	}
}

func TestMemoryEvictsOldest(t *testing.T) {
	m := NewMemory(3)
	for i := 0; i < 5; i++ {
		m.Push(Position{X: i})
	}

	if m.Len() != 3 {
		t.Fatalf("expected len 3, got %d", m.Len())
	}
	for i := 0; i < 2; i++ {
		if m.Contains(Position{X: i}) {
			t.Errorf("expected position %d to be evicted", i)
		}
	}
	for i := 2; i < 5; i++ {
		if !m.Contains(Position{X: i}) {
			t.Errorf("expected position %d to be remembered", i)
		}
	}

	got := m.Positions()
	for i, p := range got {
		if p.X != i+2 {
			t.Errorf("Positions()[%d] = %+v, want X=%d", i, p, i+2)
		}
	}
}

func TestMemoryZeroCapacity(t *testing.T) {
	m := NewMemory(0)
	m.Push(Position{X: 1, Y: 1})

	if m.Len() != 0 {
		t.Errorf("expected len 0, got %d", m.Len())
	}
	if m.Contains(Position{X: 1, Y: 1}) {
		t.Error("zero-capacity memory should contain nothing")
	}
	if len(m.Positions()) != 0 {
		t.Error("expected no positions")
	}

	var zero Memory
	zero.Push(Position{})
	if zero.Contains(Position{}) {
		t.Error("zero-value memory should contain nothing")
	}
}

func TestAgentMoveToAndTurn(t *testing.T) {
	pos := Position{X: 1, Y: 2}
	head := East
	mem := NewMemory(2)
	a := Agent{Pos: &pos, Heading: &head, Memory: &mem}

	a.MoveTo(Position{X: 2, Y: 2})
	a.Turn(SouthEast)

	if pos != (Position{X: 2, Y: 2}) {
		t.Errorf("expected position (2,2), got %+v", pos)
	}
	if head != SouthEast {
		t.Errorf("expected heading SE, got %s", head)
	}
	if !mem.Contains(Position{X: 1, Y: 2}) {
		t.Error("expected previous position in memory")
	}
	if mem.Contains(pos) {
		t.Error("current position should not be in memory yet")
	}
}

package components

// Position is an agent's grid cell. Coordinates are kept in [0,W)x[0,H) by
// whoever writes them; the field itself wraps any integer pair.
type Position struct {
	X, Y int
}

// Heading is one of the eight compass directions, stored as an index into
// the ring N, NE, E, SE, S, SW, W, NW.
type Heading uint8

const (
	North Heading = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest

	// NumHeadings is the size of the heading ring.
	NumHeadings = 8
)

// headingDeltas maps a heading to its unit step. +y points north.
var headingDeltas = [NumHeadings][2]int{
	North:     {0, 1},
	NorthEast: {1, 1},
	East:      {1, 0},
	SouthEast: {1, -1},
	South:     {0, -1},
	SouthWest: {-1, -1},
	West:      {-1, 0},
	NorthWest: {-1, 1},
}

var headingNames = [NumHeadings]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Delta returns the step taken when moving one cell along h.
func (h Heading) Delta() (dx, dy int) {
	d := headingDeltas[h%NumHeadings]
	return d[0], d[1]
}

// Left rotates h one position counter-clockwise (45 degrees).
func (h Heading) Left() Heading {
	return (h%NumHeadings + NumHeadings - 1) % NumHeadings
}

// Right rotates h one position clockwise (45 degrees).
func (h Heading) Right() Heading {
	return (h%NumHeadings + 1) % NumHeadings
}

// Valid reports whether h is one of the eight ring positions.
func (h Heading) Valid() bool {
	return h < NumHeadings
}

func (h Heading) String() string {
	if !h.Valid() {
		return "?"
	}
	return headingNames[h]
}

// Step returns p moved one cell along h, wrapped onto a w x h torus.
func (p Position) Step(dir Heading, w, h int) Position {
	dx, dy := dir.Delta()
	return Position{X: Wrap(p.X+dx, w), Y: Wrap(p.Y+dy, h)}
}

// Wrap returns a mod m in [0, m) (Go's % can return negative).
func Wrap(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

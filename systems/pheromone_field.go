package systems

import (
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/trails/components"
)

// PheromoneField is a toroidal grid of non-negative pheromone intensities.
// Every coordinate is taken modulo the grid size, so there are no
// out-of-range cells.
type PheromoneField struct {
	W, H int

	// Cells holds intensities row-major: index = y*W + x.
	Cells []float64

	// Scratch buffer for diffusion; swapped with Cells after each spread.
	tmp []float64
}

// NewPheromoneField creates an all-zero field. w and h must be > 0.
func NewPheromoneField(w, h int) *PheromoneField {
	return &PheromoneField{
		W:     w,
		H:     h,
		Cells: make([]float64, w*h),
		tmp:   make([]float64, w*h),
	}
}

// index maps any integer coordinate onto the grid.
func (f *PheromoneField) index(x, y int) int {
	return components.Wrap(y, f.H)*f.W + components.Wrap(x, f.W)
}

// Sample returns the intensity at (x, y).
func (f *PheromoneField) Sample(x, y int) float64 {
	return f.Cells[f.index(x, y)]
}

// SampleAt returns the intensity at p.
func (f *PheromoneField) SampleAt(p components.Position) float64 {
	return f.Sample(p.X, p.Y)
}

// Deposit adds amount to the cell at (x, y) in place. Negative amounts are
// ignored so intensities stay non-negative.
func (f *PheromoneField) Deposit(x, y int, amount float64) {
	if amount <= 0 {
		return
	}
	f.Cells[f.index(x, y)] += amount
}

// DepositAt adds amount at p.
func (f *PheromoneField) DepositAt(p components.Position, amount float64) {
	f.Deposit(p.X, p.Y, amount)
}

// Decay multiplies every cell by rate (evaporation). rate must be in [0,1].
func (f *PheromoneField) Decay(rate float64) {
	floats.Scale(rate, f.Cells)
}

// DiffuseAndSpread keeps rate of each cell in place and shares the rest
// equally among its 8 toroidal neighbours. The next state is computed
// entirely from the current buffer and then swapped in, so the result does
// not depend on visiting order and total mass is conserved.
func (f *PheromoneField) DiffuseAndSpread(rate float64) {
	w, h := f.W, f.H
	src := f.Cells
	dst := f.tmp
	share := (1 - rate) / 8

	for y := 0; y < h; y++ {
		yN := components.Wrap(y+1, h)
		yS := components.Wrap(y-1, h)
		for x := 0; x < w; x++ {
			xE := components.Wrap(x+1, w)
			xW := components.Wrap(x-1, w)

			sum := src[yN*w+xW] + src[yN*w+x] + src[yN*w+xE] +
				src[y*w+xW] + src[y*w+xE] +
				src[yS*w+xW] + src[yS*w+x] + src[yS*w+xE]

			dst[y*w+x] = rate*src[y*w+x] + share*sum
		}
	}

	f.Cells, f.tmp = dst, src
}

// Step applies the end-of-tick transform: diffuse-and-spread when spread is
// set, otherwise plain decay.
func (f *PheromoneField) Step(rate float64, spread bool) {
	if spread {
		f.DiffuseAndSpread(rate)
		return
	}
	f.Decay(rate)
}

// Mass returns the total intensity over the grid.
func (f *PheromoneField) Mass() float64 {
	return floats.Sum(f.Cells)
}

// Max returns the largest cell intensity.
func (f *PheromoneField) Max() float64 {
	return floats.Max(f.Cells)
}

// GridSize returns the grid dimensions.
func (f *PheromoneField) GridSize() (int, int) {
	return f.W, f.H
}

// Snapshot returns a deep copy of the field for export.
func (f *PheromoneField) Snapshot() FieldSnapshot {
	cells := make([]float64, len(f.Cells))
	copy(cells, f.Cells)
	return FieldSnapshot{Width: f.W, Height: f.H, Cells: cells}
}

// FieldSnapshot is a read-only copy of the field handed to exporters.
type FieldSnapshot struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Cells  []float64 `json:"cells"`
}

// At returns the value at (x, y) with toroidal wrap.
func (s FieldSnapshot) At(x, y int) float64 {
	return s.Cells[components.Wrap(y, s.Height)*s.Width+components.Wrap(x, s.Width)]
}

// Max returns the largest value, or 0 for an empty snapshot.
func (s FieldSnapshot) Max() float64 {
	if len(s.Cells) == 0 {
		return 0
	}
	return floats.Max(s.Cells)
}

// Mass returns the sum of all values.
func (s FieldSnapshot) Mass() float64 {
	return floats.Sum(s.Cells)
}

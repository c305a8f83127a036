package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/trails/rng"
)

const tolerance = 1e-9

func randomField(w, h int, seed uint64) *PheromoneField {
	f := NewPheromoneField(w, h)
	r := rng.New(seed)
	for i := range f.Cells {
		if r.IntN(3) == 0 {
			f.Cells[i] = r.Float64() * 100
		}
	}
	return f
}

func TestPheromoneFieldCreation(t *testing.T) {
	f := NewPheromoneField(7, 5)

	w, h := f.GridSize()
	if w != 7 || h != 5 {
		t.Errorf("expected grid size 7x5, got %dx%d", w, h)
	}
	if len(f.Cells) != 35 {
		t.Fatalf("expected 35 cells, got %d", len(f.Cells))
	}
	if f.Mass() != 0 {
		t.Errorf("expected empty field, got mass %f", f.Mass())
	}
}

func TestToroidalEquivalence(t *testing.T) {
	f := randomField(6, 4, 11)

	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			want := f.Sample(x, y)
			for k := -3; k <= 3; k++ {
				if got := f.Sample(x+k*f.W, y); got != want {
					t.Errorf("Sample(%d+%d*W, %d) = %f, want %f", x, k, y, got, want)
				}
				if got := f.Sample(x, y+k*f.H); got != want {
					t.Errorf("Sample(%d, %d+%d*H) = %f, want %f", x, y, k, got, want)
				}
			}
		}
	}
}

func TestDepositAccumulates(t *testing.T) {
	f := randomField(5, 5, 3)
	before := f.Snapshot()

	f.Deposit(2, 3, 2.5)
	f.Deposit(2+5, 3-5, 2.5) // same cell under wrap

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want := before.At(x, y)
			if x == 2 && y == 3 {
				want += 5
			}
			if got := f.Sample(x, y); math.Abs(got-want) > tolerance {
				t.Errorf("cell (%d,%d) = %f, want %f", x, y, got, want)
			}
		}
	}
}

func TestDepositIgnoresNegative(t *testing.T) {
	f := NewPheromoneField(3, 3)
	f.Deposit(1, 1, -4)
	if f.Sample(1, 1) != 0 {
		t.Errorf("expected negative deposit to be ignored, got %f", f.Sample(1, 1))
	}
}

func TestDecayMonotonic(t *testing.T) {
	for _, rate := range []float64{0, 0.25, 0.5, 0.99} {
		f := randomField(8, 8, 5)
		before := f.Snapshot()
		prevMass := f.Mass()

		f.Decay(rate)

		if mass := f.Mass(); mass > rate*prevMass+tolerance {
			t.Errorf("rate %.2f: mass %f exceeds %f", rate, mass, rate*prevMass)
		}
		for i, v := range f.Cells {
			if v > before.Cells[i] {
				t.Errorf("rate %.2f: cell %d increased from %f to %f", rate, i, before.Cells[i], v)
			}
			if v < 0 {
				t.Errorf("rate %.2f: cell %d negative", rate, i)
			}
		}
	}
}

func TestDiffusionConservesMass(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 3}, {3, 3}, {10, 7}}
	for _, sz := range sizes {
		for _, rate := range []float64{0, 0.25, 0.5, 1} {
			f := randomField(sz[0], sz[1], 17)
			before := f.Mass()

			for i := 0; i < 10; i++ {
				f.DiffuseAndSpread(rate)
			}

			after := f.Mass()
			if math.Abs(after-before) > 1e-9*math.Max(1, before) {
				t.Errorf("%dx%d rate %.2f: mass %f -> %f", sz[0], sz[1], rate, before, after)
			}
			for i, v := range f.Cells {
				if v < 0 {
					t.Errorf("%dx%d rate %.2f: cell %d negative (%f)", sz[0], sz[1], rate, i, v)
				}
			}
		}
	}
}

func TestDiffusionSingleCell(t *testing.T) {
	f := NewPheromoneField(3, 3)
	f.Deposit(1, 1, 8)

	f.DiffuseAndSpread(0.5)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			want := 0.5
			if x == 1 && y == 1 {
				want = 4
			}
			if got := f.Sample(x, y); math.Abs(got-want) > tolerance {
				t.Errorf("cell (%d,%d) = %f, want %f", x, y, got, want)
			}
		}
	}
	if math.Abs(f.Mass()-8) > tolerance {
		t.Errorf("expected mass 8, got %f", f.Mass())
	}
}

func TestDiffusionWrapsAtEdges(t *testing.T) {
	f := NewPheromoneField(5, 5)
	f.Deposit(0, 0, 8)

	f.DiffuseAndSpread(0)

	if f.Sample(0, 0) != 0 {
		t.Errorf("expected origin emptied, got %f", f.Sample(0, 0))
	}
	for _, p := range [][2]int{{4, 4}, {4, 0}, {0, 4}, {1, 1}, {4, 1}, {1, 4}, {1, 0}, {0, 1}} {
		if got := f.Sample(p[0], p[1]); math.Abs(got-1) > tolerance {
			t.Errorf("neighbour (%d,%d) = %f, want 1", p[0], p[1], got)
		}
	}
}

func TestDiffusionOrderIndependent(t *testing.T) {
	// A symmetric input must stay symmetric; in-place updates would skew it.
	f := NewPheromoneField(5, 5)
	f.Deposit(2, 2, 10)
	f.DiffuseAndSpread(0.3)
	f.DiffuseAndSpread(0.3)

	for d := 1; d <= 2; d++ {
		a := f.Sample(2-d, 2)
		b := f.Sample(2+d, 2)
		c := f.Sample(2, 2-d)
		e := f.Sample(2, 2+d)
		if math.Abs(a-b) > tolerance || math.Abs(a-c) > tolerance || math.Abs(a-e) > tolerance {
			t.Errorf("distance %d: asymmetric values %f %f %f %f", d, a, b, c, e)
		}
	}
}

func TestStepSelectsTransform(t *testing.T) {
	decay := NewPheromoneField(3, 3)
	decay.Deposit(1, 1, 8)
	decay.Step(0.5, false)
	if decay.Sample(1, 1) != 4 || decay.Sample(0, 0) != 0 {
		t.Errorf("decay step: got centre %f corner %f", decay.Sample(1, 1), decay.Sample(0, 0))
	}

	spread := NewPheromoneField(3, 3)
	spread.Deposit(1, 1, 8)
	spread.Step(0.5, true)
	if spread.Sample(1, 1) != 4 || spread.Sample(0, 0) != 0.5 {
		t.Errorf("spread step: got centre %f corner %f", spread.Sample(1, 1), spread.Sample(0, 0))
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	f := NewPheromoneField(2, 2)
	f.Deposit(0, 0, 3)
	snap := f.Snapshot()

	f.Deposit(0, 0, 3)
	f.DiffuseAndSpread(0.5)

	if snap.At(0, 0) != 3 {
		t.Errorf("snapshot changed with field: %f", snap.At(0, 0))
	}
	if snap.Max() != 3 || snap.Mass() != 3 {
		t.Errorf("unexpected snapshot max %f mass %f", snap.Max(), snap.Mass())
	}
	if (FieldSnapshot{}).Max() != 0 {
		t.Error("expected empty snapshot max 0")
	}
}

package renderer

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/trails/systems"
)

func TestIntensity(t *testing.T) {
	tests := []struct {
		name   string
		v, max float64
		want   uint8
	}{
		{"zero max", 5, 0, 0},
		{"zero value", 0, 10, 0},
		{"at max", 10, 10, 255},
		{"half rounds up", 5, 10, 128},
		{"third rounds down", 1, 3, 85},
		{"above max clamps", 12, 10, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intensity(tt.v, tt.max); got != tt.want {
				t.Errorf("Intensity(%v, %v) = %d, want %d", tt.v, tt.max, got, tt.want)
			}
		})
	}
}

func TestRasterScalesToMax(t *testing.T) {
	snap := systems.FieldSnapshot{Width: 3, Height: 2, Cells: []float64{0, 2, 4, 1, 0, 0}}
	img := Raster(snap)

	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("unexpected bounds %v", b)
	}
	checks := []struct {
		x, y int
		g    uint8
	}{
		{0, 0, 0},
		{1, 0, 128},
		{2, 0, 255},
		{0, 1, 64},
	}
	for _, c := range checks {
		px := img.RGBAAt(c.x, c.y)
		if px.G != c.g || px.R != 0 || px.B != 0 || px.A != 255 {
			t.Errorf("pixel (%d,%d) = %+v, want green %d", c.x, c.y, px, c.g)
		}
	}
}

func TestRasterEmptyField(t *testing.T) {
	img := Raster(systems.FieldSnapshot{Width: 2, Height: 2, Cells: make([]float64, 4)})
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if px := img.RGBAAt(x, y); px.G != 0 {
				t.Errorf("expected black at (%d,%d), got %+v", x, y, px)
			}
		}
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fungus.png")
	snap := systems.FieldSnapshot{Width: 4, Height: 3, Cells: []float64{0, 0, 0, 0, 0, 9, 0, 0, 0, 0, 0, 3}}

	if err := SavePNG(path, snap); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("unexpected bounds %v", b)
	}
	_, g, _, _ := img.At(1, 1).RGBA()
	if g>>8 != 255 {
		t.Errorf("expected brightest pixel at (1,1), got green %d", g>>8)
	}
}

func TestSavePNGReportsIOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "fungus.png")
	snap := systems.FieldSnapshot{Width: 1, Height: 1, Cells: []float64{1}}
	if err := SavePNG(path, snap); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}

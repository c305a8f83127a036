// Package renderer turns pheromone fields into pixels.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/pthm-cable/trails/systems"
)

// Intensity scales v against max onto 0..255. A non-positive max yields 0.
func Intensity(v, max float64) uint8 {
	if max <= 0 || v <= 0 {
		return 0
	}
	if v >= max {
		return 255
	}
	return uint8(math.Round(255 * v / max))
}

// TrailColor is the opaque pixel for an intensity: green on black.
func TrailColor(i uint8) color.RGBA {
	return color.RGBA{G: i, A: 255}
}

// Raster draws the snapshot with each cell scaled against the field maximum.
func Raster(snap systems.FieldSnapshot) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, snap.Width, snap.Height))
	max := snap.Max()
	for y := 0; y < snap.Height; y++ {
		row := snap.Cells[y*snap.Width : (y+1)*snap.Width]
		for x, v := range row {
			img.SetRGBA(x, y, TrailColor(Intensity(v, max)))
		}
	}
	return img
}

// SavePNG writes the rasterized snapshot to path.
func SavePNG(path string, snap systems.FieldSnapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image: %w", err)
	}
	if err := png.Encode(f, Raster(snap)); err != nil {
		f.Close()
		return fmt.Errorf("encoding png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing image: %w", err)
	}
	return nil
}

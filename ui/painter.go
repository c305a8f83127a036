// Package ui draws the in-window overlays for the graphical viewer: the
// status HUD, the perf panel and the raygui run controls.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme is the shared panel styling.
type Theme struct {
	PanelBg, PanelBorder     rl.Color
	Header, Label, Value     rl.Color
	BarBg, BarFill           rl.Color
	Padding, LineHeight      int32
	LabelWidth, BarHeight    int32
	FontSize, HeaderFontSize int32
}

// DefaultTheme is dark translucent panels with trail-green bars.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		Header:         rl.Yellow,
		Label:          rl.LightGray,
		Value:          rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 90, G: 200, B: 110, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// Painter draws themed panel primitives. The row helpers return the y of
// the next row.
type Painter struct {
	Theme Theme
}

// NewPainter returns a painter using DefaultTheme.
func NewPainter() *Painter {
	return &Painter{Theme: DefaultTheme()}
}

// Panel fills a bordered background rectangle.
func (p *Painter) Panel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, p.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, p.Theme.PanelBorder)
}

// Header draws a section title.
func (p *Painter) Header(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, p.Theme.HeaderFontSize, p.Theme.Header)
	return y + p.Theme.LineHeight
}

// Row draws "label: value" with the value aligned at LabelWidth.
func (p *Painter) Row(x, y int32, label, value string) int32 {
	t := p.Theme
	rl.DrawText(label+":", x, y, t.FontSize, t.Label)
	rl.DrawText(value, x+t.LabelWidth, y, t.FontSize, t.Value)
	return y + t.LineHeight
}

// Bar draws a labelled fill bar for a fraction in [0, 1]; out of range values are clamped.
func (p *Painter) Bar(x, y int32, label string, frac float32, width int32) int32 {
	t := p.Theme
	frac = min(max(frac, 0), 1)
	bx := x + t.LabelWidth
	bw := width - t.LabelWidth - 50

	rl.DrawText(label+":", x, y, t.FontSize, t.Label)
	rl.DrawRectangle(bx, y+2, bw, t.BarHeight, t.BarBg)
	rl.DrawRectangle(bx, y+2, int32(float32(bw)*frac), t.BarHeight, t.BarFill)
	rl.DrawText(fmt.Sprintf("%.2f", frac), bx+bw+5, y, t.FontSize, t.Value)
	return y + t.LineHeight + 2
}

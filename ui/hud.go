package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Tick     int
	Agents   int
	Mass     float64
	Max      float64
	Coverage float64
	Speed    int
	FPS      int32
	Paused   bool
	Spread   bool

	// Cell under the cursor
	Hover      bool
	HoverX     int
	HoverY     int
	HoverValue float64
}

// Lines returns the HUD text, top to bottom.
func (d HUDData) Lines() []string {
	mode := "decay"
	if d.Spread {
		mode = "spread"
	}
	status := "Running"
	if d.Paused {
		status = "PAUSED"
	}
	lines := []string{
		d.Title,
		fmt.Sprintf("Tick: %d | Agents: %d | Mode: %s", d.Tick, d.Agents, mode),
		fmt.Sprintf("Mass: %.1f | Max: %.1f | Coverage: %.1f%%", d.Mass, d.Max, d.Coverage*100),
		fmt.Sprintf("Speed: %dx | FPS: %d", d.Speed, d.FPS),
	}
	if d.Hover {
		lines = append(lines, fmt.Sprintf("Cell (%d, %d): %.2f", d.HoverX, d.HoverY, d.HoverValue))
	}
	return append(lines, status)
}

// HUD renders the main heads-up display.
type HUD struct {
	paint *Painter
}

// NewHUD creates the status overlay.
func NewHUD() *HUD {
	return &HUD{paint: NewPainter()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	lines := data.Lines()
	h.paint.Panel(5, 5, 330, int32(len(lines))*20+10)

	y := int32(10)
	for i, line := range lines {
		size, col := int32(16), rl.LightGray
		switch {
		case i == 0:
			size, col = 20, rl.White
		case i == len(lines)-1:
			col = rl.Yellow
		}
		rl.DrawText(line, 12, y, size, col)
		y += 20
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Phases []string
	Avg    map[string]time.Duration
	Pct    map[string]float64
	Total  time.Duration
	TPS    float64
}

// PerfPanel renders the per-phase step timings.
type PerfPanel struct {
	paint *Painter
	x, y  int32
	width int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{paint: NewPainter(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	r := p.paint
	pad := r.Theme.Padding
	height := int32(len(data.Phases)+2)*(r.Theme.LineHeight+2) + pad*2 + r.Theme.LineHeight
	r.Panel(p.x, p.y, p.width, height)

	x, y := p.x+pad, p.y+pad
	y = r.Header(x, y, "Step Performance")
	y = r.Row(x, y, "Tick", data.Total.Round(time.Microsecond).String())
	y = r.Row(x, y, "Ticks/s", fmt.Sprintf("%.0f", data.TPS))

	for _, name := range data.Phases {
		y = r.Bar(x, y, name, float32(data.Pct[name]/100), p.width-pad*2)
	}
}

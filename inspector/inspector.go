// Package inspector shows the trail and agents at a selected grid cell.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trails/camera"
	"github.com/pthm-cable/trails/ui"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorHighlight   = rl.Color{R: 255, G: 220, B: 80, A: 255}
)

// Inspector manages cell selection and panel rendering.
type Inspector struct {
	x, y     int
	selected bool

	panelX, panelY int32

	paint   *ui.Painter
	widgets widgets
}

// NewInspector creates an inspector whose panel sits at the right edge.
func NewInspector(screenWidth, panelY int32) *Inspector {
	p := ui.NewPainter()
	ins := &Inspector{paint: p, widgets: widgets{theme: p.Theme}}
	ins.SetPosition(screenWidth, panelY)
	return ins
}

// SetPosition re-anchors the panel for a new screen width.
func (ins *Inspector) SetPosition(screenWidth, panelY int32) {
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = panelY
}

// Select marks cell (x, y) for inspection.
func (ins *Inspector) Select(x, y int) {
	ins.x, ins.y = x, y
	ins.selected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.selected = false
}

// Selected returns the selected cell.
func (ins *Inspector) Selected() (x, y int, ok bool) {
	return ins.x, ins.y, ins.selected
}

// HandleInput selects the cell under a left click and clears the selection
// on right click or the close button.
func (ins *Inspector) HandleInput(cam *camera.Camera) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	mouse := rl.GetMousePosition()
	mx, my := int32(mouse.X), int32(mouse.Y)
	if ins.selected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if mx >= closeX && mx <= closeX+20 && my >= closeY && my <= closeY+20 {
			ins.Deselect()
			return
		}
		// Clicks inside the panel do not reselect
		if mx >= ins.panelX && mx <= ins.panelX+PanelWidth &&
			my >= ins.panelY && my <= ins.panelY+ins.panelHeight(CellInfo{}) {
			return
		}
	}

	ins.Select(cam.CellAt(mouse.X, mouse.Y))
}

// Draw renders the panel for info if a cell is selected.
func (ins *Inspector) Draw(info CellInfo) {
	if !ins.selected {
		return
	}

	height := ins.panelHeight(info)
	ins.paint.Panel(ins.panelX, ins.panelY, PanelWidth, height)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("CELL (%d, %d)", info.X, info.Y), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for _, f := range ExtractFields(info) {
		y += ins.widgets.field(x, y, f)
	}
}

// panelHeight computes the panel height for the fields of info.
func (ins *Inspector) panelHeight(info CellInfo) int32 {
	h := int32(HeaderHeight + 2*PanelPadding)
	for _, f := range ExtractFields(info) {
		h += ins.widgets.fieldHeight(f)
	}
	return h
}

// DrawSelectionHighlight outlines the selected cell on screen.
func (ins *Inspector) DrawSelectionHighlight(cam *camera.Camera) {
	if !ins.selected {
		return
	}
	sx, sy := cam.WorldToScreen(float32(ins.x), float32(ins.y))
	size := max(cam.Zoom, 3)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: sx - 1, Y: sy - 1, Width: size + 2, Height: size + 2}, 2, ColorHighlight)
}

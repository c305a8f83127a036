package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Speed limits for the steps-per-frame slider.
const (
	MinSpeed = 1
	MaxSpeed = 50
)

// ControlActions reports what the user asked for this frame.
type ControlActions struct {
	TogglePause bool
	SaveImage   bool
	Snapshot    bool
	Speed       int
}

// Controls is the raygui panel with run controls.
type Controls struct {
	paint   *Painter
	x, y    float32
	width   float32
	visible bool
}

// NewControls creates a controls panel anchored at (x, y).
func NewControls(x, y, width float32) *Controls {
	return &Controls{paint: NewPainter(), x: x, y: y, width: width, visible: true}
}

// SetPosition updates the panel position.
func (c *Controls) SetPosition(x, y float32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *Controls) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *Controls) IsVisible() bool {
	return c.visible
}

// Draw renders the panel and returns the actions triggered this frame.
// speed is the current steps-per-frame value.
func (c *Controls) Draw(paused bool, speed int) ControlActions {
	actions := ControlActions{Speed: speed}
	if !c.visible {
		return actions
	}

	pad := float32(c.paint.Theme.Padding)
	c.paint.Panel(int32(c.x), int32(c.y), int32(c.width), 110)

	y := c.y + pad
	btnW := (c.width - pad*3) / 2
	if gui.Button(rl.Rectangle{X: c.x + pad, Y: y, Width: btnW, Height: 24}, ToggleText(paused, "Resume", "Pause")) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: c.x + pad*2 + btnW, Y: y, Width: btnW, Height: 24}, "Save Image") {
		actions.SaveImage = true
	}
	y += 32

	if gui.Button(rl.Rectangle{X: c.x + pad, Y: y, Width: c.width - pad*2, Height: 24}, "Snapshot") {
		actions.Snapshot = true
	}
	y += 32

	newSpeed := gui.SliderBar(
		rl.Rectangle{X: c.x + pad + 40, Y: y, Width: c.width - pad*2 - 80, Height: 18},
		"Speed", fmt.Sprintf("%dx", speed),
		float32(speed), MinSpeed, MaxSpeed,
	)
	actions.Speed = ClampSpeed(int(newSpeed))

	return actions
}

// ClampSpeed keeps a steps-per-frame value within the slider range.
func ClampSpeed(s int) int {
	if s < MinSpeed {
		return MinSpeed
	}
	if s > MaxSpeed {
		return MaxSpeed
	}
	return s
}

// ToggleText picks the button label for a two-state control.
func ToggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}

// Trail preview tool - interactive parameter exploration with sliders.
//
// Usage: go run ./cmd/trailpreview
package main

import (
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trails/camera"
	"github.com/pthm-cable/trails/game"
	"github.com/pthm-cable/trails/ui"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 128
)

// panel lays out the slider column top to bottom.
type panel struct {
	x, y float32
}

// slider draws a labelled slider and returns the new value.
func (p *panel) slider(label string, value, lo, hi float32, format string) float32 {
	rl.DrawText(label, int32(p.x), int32(p.y), 14, rl.Gray)
	p.y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: p.x, Y: p.y, Width: panelWidth - 80, Height: 20},
		fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(p.x+panelWidth-70), int32(p.y+2), 16, rl.DarkGray)
	p.y += 35
	return next
}

func main() {
	defaults, err := defaultParams()
	if err != nil {
		slog.Error("failed to load defaults", "error", err)
		os.Exit(1)
	}
	// The preview grid is smaller than the default world; scale the population with it.
	defaults.Agents = defaults.Agents * gridSize * gridSize / (100 * 100)
	// Sliders work in float32
	defaults.Retention = float64(float32(defaults.Retention))
	defaults.Deposit = float64(float32(defaults.Deposit))
	params := defaults

	rl.InitWindow(windowWidth, windowHeight, "Trail Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	view := ui.NewFieldView(previewSize, previewSize)
	view.SetOrigin(10, 10)
	view.Init(gridSize, gridSize)
	defer view.Unload()
	cam := camera.New(previewSize, previewSize, gridSize, gridSize)

	var sim *game.Simulation
	running := true
	needsRestart := true

	for !rl.WindowShouldClose() {
		if needsRestart {
			if s, err := newSimulation(gridSize, gridSize, params); err != nil {
				slog.Error("invalid parameters", "error", err)
			} else {
				sim = s
			}
			needsRestart = false
		}
		if running && sim != nil {
			if err := sim.Iterate(); err != nil {
				slog.Error("iterate failed", "error", err)
				running = false
			}
		}
		if sim != nil {
			view.Update(sim.Field())
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		view.Draw(cam.View())
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		if sim != nil {
			field := sim.Field()
			statsY := int32(previewSize + 25)
			rl.DrawText(fmt.Sprintf("Tick: %d  Mass: %.1f  Max: %.2f", sim.Tick(), field.Mass(), field.Max()), 15, statsY, 16, rl.DarkGray)
			rl.DrawText(fmt.Sprintf("Agents: %d  Grid: %dx%d", sim.AgentCount(), gridSize, gridSize), 15, statsY+20, 16, rl.DarkGray)
		}

		p := panel{x: previewSize + 20, y: 10}
		rl.DrawText("Trail Parameters", int32(p.x), int32(p.y), 20, rl.DarkGray)
		p.y += 35

		prev := params
		params.Retention = float64(p.slider("Retention (kept per tick)", float32(params.Retention), 0, 1, "%.2f"))
		params.Deposit = float64(p.slider("Deposit (per agent per tick)", float32(params.Deposit), 0, 500, "%.0f"))
		params.Agents = int(p.slider("Agents", float32(params.Agents), 0, 10000, "%.0f"))
		params.Memory = int(p.slider("Memory (cells avoided)", float32(params.Memory), 0, 32, "%.0f"))
		params.Seed = uint64(p.slider("Seed", float32(params.Seed), 0, 99999, "%.0f"))
		params.Spread = gui.CheckBox(rl.Rectangle{X: p.x, Y: p.y, Width: 20, Height: 20}, "Diffuse and spread", params.Spread)
		p.y += 40
		if params != prev {
			needsRestart = true
		}

		if gui.Button(rl.Rectangle{X: p.x, Y: p.y, Width: 120, Height: 30}, ui.ToggleText(running, "Pause", "Run")) {
			running = !running
		}
		if gui.Button(rl.Rectangle{X: p.x + 130, Y: p.y, Width: 120, Height: 30}, "Restart") {
			needsRestart = true
		}
		p.y += 45

		if gui.Button(rl.Rectangle{X: p.x, Y: p.y, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = uint64(rl.GetRandomValue(0, 99999))
			needsRestart = true
		}
		if gui.Button(rl.Rectangle{X: p.x + 130, Y: p.y, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRestart = true
		}
		p.y += 55

		text, err := configYAML(params)
		if err != nil {
			text = err.Error()
		}
		rl.DrawText("YAML Config:", int32(p.x), int32(p.y), 16, rl.DarkGray)
		rl.DrawText(text, int32(p.x), int32(p.y)+25, 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(p.x), windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) && err == nil {
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

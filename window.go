package main

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trails/camera"
	"github.com/pthm-cable/trails/game"
	"github.com/pthm-cable/trails/inspector"
	"github.com/pthm-cable/trails/telemetry"
	"github.com/pthm-cable/trails/ui"
)

const controlsText = "SPACE: Pause | Arrows/Wheel: Pan/Zoom | HOME: Reset view | Click: Inspect | S: Save image | P: Snapshot | H: Controls | F3: Perf | ESC: Quit"

// window holds the raylib-side state of the graphical mode.
type window struct {
	g        *game.Game
	cam      *camera.Camera
	field    *ui.FieldView
	hud      *ui.HUD
	perf     *ui.PerfPanel
	controls *ui.Controls
	inspect  *inspector.Inspector
	showPerf bool
}

// runWindow opens a raylib window showing the live field. Closing the
// window or reaching the tick limit finishes the run.
func runWindow(opts game.Options) error {
	cfg := opts.Config
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Trails")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	w := newWindow(g)
	defer w.field.Unload()

	for !rl.WindowShouldClose() && !g.Done() {
		if err := w.update(); err != nil {
			return err
		}
		w.draw()
	}
	return g.Finish()
}

func newWindow(g *game.Game) *window {
	cfg := g.Config()
	width, height := g.Simulation().Size()
	w := &window{
		g:        g,
		cam:      camera.New(float32(cfg.Screen.Width), float32(cfg.Screen.Height), width, height),
		field:    ui.NewFieldView(int32(cfg.Screen.Width), int32(cfg.Screen.Height)),
		hud:      ui.NewHUD(),
		perf:     ui.NewPerfPanel(int32(cfg.Screen.Width)-230, 10, 220),
		controls: ui.NewControls(10, float32(cfg.Screen.Height)-150, 260),
		inspect:  inspector.NewInspector(int32(cfg.Screen.Width), 200),
	}
	w.field.Init(width, height)
	return w
}

// update handles input and advances the simulation.
func (w *window) update() error {
	if rl.IsWindowResized() {
		sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight()
		w.field.Resize(float32(sw), float32(sh))
		w.cam.Resize(float32(sw), float32(sh))
		w.perf.SetPosition(int32(sw)-230, 10)
		w.controls.SetPosition(10, float32(sh)-150)
		w.inspect.SetPosition(int32(sw), 200)
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		w.g.TogglePause()
	case rl.IsKeyPressed(rl.KeyS):
		w.saveImage()
	case rl.IsKeyPressed(rl.KeyP):
		w.saveSnapshot()
	case rl.IsKeyPressed(rl.KeyH):
		w.controls.Toggle()
	case rl.IsKeyPressed(rl.KeyF3):
		w.showPerf = !w.showPerf
	}

	w.handleCameraInput()
	w.inspect.HandleInput(w.cam)

	w.g.RecordFrame()
	return w.g.UpdateHeadless()
}

// handleCameraInput processes camera pan/zoom controls.
func (w *window) handleCameraInput() {
	// Pan speed in screen pixels
	const panSpeed = 8

	if rl.IsKeyDown(rl.KeyRight) {
		w.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		w.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		w.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		w.cam.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		w.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		w.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		w.cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		w.cam.Reset()
	}
}

func (w *window) draw() {
	sim := w.g.Simulation()
	w.field.Update(sim.Field())

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	w.field.Draw(w.cam.View())
	w.inspect.DrawSelectionHighlight(w.cam)

	field := sim.Field()
	params := sim.Params()
	mouse := rl.GetMousePosition()
	hx, hy := w.cam.CellAt(mouse.X, mouse.Y)
	w.hud.Draw(ui.HUDData{
		Title:    "Trails",
		Tick:     w.g.Tick(),
		Agents:   sim.AgentCount(),
		Mass:     field.Mass(),
		Max:      field.Max(),
		Coverage: w.g.LastStats().Coverage,
		Speed:    w.g.Speed(),
		FPS:      rl.GetFPS(),
		Paused:   w.g.Paused(),
		Spread:   params.SpreadEnabled,

		Hover:      rl.IsCursorOnScreen(),
		HoverX:     hx,
		HoverY:     hy,
		HoverValue: field.Sample(hx, hy),
	})

	if x, y, ok := w.inspect.Selected(); ok {
		w.inspect.Draw(inspector.InspectCell(field, sim.Agents(), x, y))
	}

	if w.showPerf {
		w.perf.Draw(perfPanelData(w.g.PerfStats()))
	}

	actions := w.controls.Draw(w.g.Paused(), w.g.Speed())
	if actions.TogglePause {
		w.g.TogglePause()
	}
	if actions.SaveImage {
		w.saveImage()
	}
	if actions.Snapshot {
		w.saveSnapshot()
	}
	w.g.SetSpeed(actions.Speed)

	w.hud.DrawControls(int32(rl.GetScreenHeight()), controlsText)
	rl.EndDrawing()
}

func (w *window) saveImage() {
	if err := w.g.SaveImage(); err != nil {
		slog.Error("failed to save image", "error", err)
	}
}

func (w *window) saveSnapshot() {
	path, err := w.g.SaveSnapshot()
	switch {
	case err != nil:
		slog.Error("failed to save snapshot", "error", err)
	case path == "":
		slog.Warn("snapshot skipped: no output directory")
	default:
		slog.Info("snapshot saved", "path", path, "tick", w.g.Tick())
	}
}

func perfPanelData(s telemetry.PerfStats) ui.PerfPanelData {
	return ui.PerfPanelData{
		Phases: telemetry.Phases(),
		Avg:    s.PhaseAvg,
		Pct:    s.PhasePct,
		Total:  s.AvgTickDuration,
		TPS:    s.TicksPerSecond,
	}
}

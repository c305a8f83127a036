package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trails/camera"
	"github.com/pthm-cable/trails/renderer"
	"github.com/pthm-cable/trails/systems"
)

// FieldView draws the live pheromone field as a screen-filling texture.
// Each cell is one texel; scaling is nearest-neighbour so cells stay crisp.
type FieldView struct {
	tex        rl.Texture2D
	texW, texH int
	pixels     []color.RGBA

	originX, originY float32
	screenW, screenH float32
	initialized      bool
}

// NewFieldView creates a view covering a screen of the given size.
func NewFieldView(screenW, screenH int32) *FieldView {
	return &FieldView{
		screenW: float32(screenW),
		screenH: float32(screenH),
	}
}

// Init allocates the texture (must be called after the raylib window is created).
func (v *FieldView) Init(gridW, gridH int) {
	if v.initialized {
		return
	}

	v.texW = gridW
	v.texH = gridH
	v.pixels = make([]color.RGBA, gridW*gridH)

	img := rl.GenImageColor(gridW, gridH, rl.Black)
	v.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(v.tex, rl.FilterPoint)
	rl.SetTextureWrap(v.tex, rl.WrapRepeat)
	rl.UnloadImage(img)

	v.initialized = true
}

// Resize updates the screen dimensions the texture is stretched over.
func (v *FieldView) Resize(w, h float32) {
	v.screenW = w
	v.screenH = h
}

// SetOrigin moves the top-left corner of the drawn area.
func (v *FieldView) SetOrigin(x, y float32) {
	v.originX = x
	v.originY = y
}

// Update uploads the current field to the GPU, scaled against its maximum.
func (v *FieldView) Update(field *systems.PheromoneField) {
	if !v.initialized {
		v.Init(field.W, field.H)
	}
	if len(field.Cells) != len(v.pixels) {
		return
	}

	max := field.Max()
	for i, val := range field.Cells {
		v.pixels[i] = renderer.TrailColor(renderer.Intensity(val, max))
	}
	rl.UpdateTexture(v.tex, v.pixels)
}

// Draw renders the visible part of the field over the view area. The
// texture repeats, so a view crossing the grid edge shows the wrapped cells.
func (v *FieldView) Draw(view camera.Rect) {
	if !v.initialized {
		return
	}
	src := rl.Rectangle{X: view.X, Y: view.Y, Width: view.W, Height: view.H}
	dst := rl.Rectangle{X: v.originX, Y: v.originY, Width: v.screenW, Height: v.screenH}
	rl.DrawTexturePro(v.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees GPU resources.
func (v *FieldView) Unload() {
	if !v.initialized {
		return
	}
	rl.UnloadTexture(v.tex)
	v.initialized = false
}

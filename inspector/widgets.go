package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trails/ui"
)

// Widget colors not covered by the UI theme
var (
	ColorBarLow  = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorBoolOn  = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// widgets draws inspect fields in the shared UI theme. Each draw returns
// the height it used.
type widgets struct {
	theme ui.Theme
}

func (w widgets) label(x, y int32, name string, value any, options map[string]string) int32 {
	t := w.theme
	rl.DrawText(name+":", x, y, t.FontSize, t.Label)
	rl.DrawText(FormatValue(value, options["fmt"]), x+t.LabelWidth+20, y, t.FontSize, t.Value)
	return t.LineHeight
}

func (w widgets) bar(x, y int32, name string, value float32, options map[string]string) int32 {
	t := w.theme
	ratio := clamp01(value / GetMax(options))
	barX := x + t.LabelWidth + 20
	barW := int32(120)

	rl.DrawText(name+":", x, y, t.FontSize, t.Label)
	rl.DrawRectangle(barX, y+2, barW, t.BarHeight, t.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barW)*ratio), t.BarHeight, lerpColor(ColorBarLow, t.BarFill, ratio))
	rl.DrawText(FormatValue(value, options["fmt"]), barX+barW+5, y, t.FontSize, t.Value)
	return t.LineHeight + 2
}

// barGroup draws one vertical mini-bar per element, filled from the bottom.
func (w widgets) barGroup(x, y int32, name string, values []float32, options map[string]string) int32 {
	const (
		barW   = int32(20)
		barH   = int32(30)
		gap    = int32(2)
		labelH = int32(10)
	)
	t := w.theme
	maxVal := GetMax(options)
	labels := Labels(options, len(values))

	rl.DrawText(name+":", x, y, t.FontSize, t.Label)
	barX := x + t.LabelWidth + 20
	for i, v := range values {
		bx := barX + int32(i)*(barW+gap)
		ratio := clamp01(v / maxVal)
		fill := int32(float32(barH) * ratio)
		rl.DrawRectangle(bx, y, barW, barH, t.BarBg)
		rl.DrawRectangle(bx, y+barH-fill, barW, fill, lerpColor(ColorBarLow, t.BarFill, ratio))

		if labels != nil {
			tw := rl.MeasureText(labels[i], 8)
			rl.DrawText(labels[i], bx+barW/2-tw/2, y+barH+2, 8, t.Label)
		}
	}

	h := barH + 4
	if labels != nil {
		h += labelH
	}
	return h
}

func (w widgets) boolean(x, y int32, name string, value bool) int32 {
	t := w.theme
	col, text := ColorBoolOff, "NO"
	if value {
		col, text = ColorBoolOn, "YES"
	}
	boxX := x + t.LabelWidth + 20
	rl.DrawText(name+":", x, y, t.FontSize, t.Label)
	rl.DrawRectangle(boxX, y+1, t.BarHeight, t.BarHeight, col)
	rl.DrawText(text, boxX+t.BarHeight+5, y, t.FontSize, col)
	return t.LineHeight
}

// field draws f with its widget, falling back to a label when the value
// does not fit the widget.
func (w widgets) field(x, y int32, f Field) int32 {
	switch f.Widget {
	case WidgetBar:
		if values, ok := GetFloatSlice(f.Value); ok {
			return w.barGroup(x, y, f.Name, values, f.Options)
		}
		if v, ok := GetFloatValue(f.Value); ok {
			return w.bar(x, y, f.Name, v, f.Options)
		}
	case WidgetBool:
		if v, ok := f.Value.(bool); ok {
			return w.boolean(x, y, f.Name, v)
		}
	}
	return w.label(x, y, f.Name, f.Value, f.Options)
}

// fieldHeight mirrors field's layout without drawing.
func (w widgets) fieldHeight(f Field) int32 {
	if f.Widget == WidgetBar {
		if values, ok := GetFloatSlice(f.Value); ok {
			h := int32(34)
			if Labels(f.Options, len(values)) != nil {
				h += 10
			}
			return h
		}
		if _, ok := GetFloatValue(f.Value); ok {
			return w.theme.LineHeight + 2
		}
	}
	return w.theme.LineHeight
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerpColor interpolates between two colors.
func lerpColor(a, b rl.Color, t float32) rl.Color {
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: 255,
	}
}

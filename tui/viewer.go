// Package tui renders a running simulation as a heat map in the terminal.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/trails/renderer"
	"github.com/pthm-cable/trails/systems"
)

// Frame is what the viewer draws after each step.
type Frame struct {
	Field  systems.FieldSnapshot
	Status string
}

// Stepper advances the simulation for the viewer.
type Stepper interface {
	// Step runs one update and reports whether the run has ended.
	Step() (done bool, err error)
	Frame() Frame
}

// Viewer owns a tcell screen and the pause state.
type Viewer struct {
	screen   tcell.Screen
	interval time.Duration
	paused   bool
}

// Open initializes the terminal and returns a viewer redrawing every interval.
func Open(interval time.Duration) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	return NewViewer(screen, interval), nil
}

// NewViewer wraps an initialized screen.
func NewViewer(screen tcell.Screen, interval time.Duration) *Viewer {
	if interval <= 0 {
		interval = 33 * time.Millisecond
	}
	return &Viewer{screen: screen, interval: interval}
}

// Paused reports whether stepping is suspended.
func (v *Viewer) Paused() bool { return v.paused }

// Close restores the terminal.
func (v *Viewer) Close() {
	v.screen.Fini()
}

// Run steps and redraws until the stepper is done, the user quits or ctx
// is cancelled.
func (v *Viewer) Run(ctx context.Context, s Stepper) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	v.Draw(s.Frame())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || v.HandleEvent(ev) {
				return nil
			}
			v.Draw(s.Frame())
		case <-ticker.C:
			if v.paused {
				continue
			}
			done, err := s.Step()
			if err != nil {
				return err
			}
			v.Draw(s.Frame())
			if done {
				return nil
			}
		}
	}
}

// HandleEvent applies a key or resize event and reports whether to quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return true
			case ' ':
				v.paused = !v.paused
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return false
}

// Draw paints the field over all rows but the last, which holds the status line.
func (v *Viewer) Draw(f Frame) {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	if rows > 1 {
		mapRows := rows - 1
		cells := Downsample(f.Field, cols, mapRows)
		max := 0.0
		for _, c := range cells {
			if c > max {
				max = c
			}
		}
		w := min(cols, f.Field.Width)
		for y := 0; y < min(mapRows, f.Field.Height); y++ {
			for x := 0; x < w; x++ {
				g := renderer.Intensity(cells[y*w+x], max)
				if g == 0 {
					continue
				}
				style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, int32(g), 0))
				v.screen.SetContent(x, y, '█', nil, style)
			}
		}
	}

	status := f.Status
	if v.paused {
		status = "[paused] " + status
	}
	drawText(v.screen, 0, rows-1, status, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	v.screen.Show()
}

// Downsample reduces the field to at most cols x rows cells, each holding
// the maximum of the block of field cells it covers. The result is
// row-major with width min(cols, field width).
func Downsample(snap systems.FieldSnapshot, cols, rows int) []float64 {
	w := min(cols, snap.Width)
	h := min(rows, snap.Height)
	if w <= 0 || h <= 0 {
		return nil
	}

	out := make([]float64, w*h)
	for y := 0; y < snap.Height; y++ {
		oy := y * h / snap.Height
		for x := 0; x < snap.Width; x++ {
			ox := x * w / snap.Width
			if v := snap.Cells[y*snap.Width+x]; v > out[oy*w+ox] {
				out[oy*w+ox] = v
			}
		}
	}
	return out
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

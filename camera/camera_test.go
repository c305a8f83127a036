package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsGrid(t *testing.T) {
	cam := New(900, 900, 100, 100)

	if cam.X != 50 || cam.Y != 50 {
		t.Errorf("expected camera at (50, 50), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 9 || cam.MinZoom != 9 {
		t.Errorf("expected fit zoom 9, got zoom=%f min=%f", cam.Zoom, cam.MinZoom)
	}

	v := cam.View()
	if !near(v.X, 0) || !near(v.Y, 0) || !near(v.W, 100) || !near(v.H, 100) {
		t.Errorf("expected full-grid view, got %+v", v)
	}
}

func TestNonSquareViewportNeverShowsMoreThanGrid(t *testing.T) {
	cam := New(1200, 600, 100, 100)
	v := cam.View()
	if v.W > 100.01 || v.H > 100.01 {
		t.Errorf("view %+v exceeds grid", v)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(900, 900, 100, 100)
	cam.ZoomBy(2)

	testCases := []struct{ sx, sy float32 }{
		{450, 450}, // center
		{100, 100}, // top-left
		{800, 700}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestCellAt(t *testing.T) {
	cam := New(900, 900, 100, 100)

	if x, y := cam.CellAt(0, 0); x != 0 || y != 0 {
		t.Errorf("expected (0,0) at top-left, got (%d,%d)", x, y)
	}
	if x, y := cam.CellAt(899.9, 899.9); x != 99 || y != 99 {
		t.Errorf("expected (99,99) at bottom-right, got (%d,%d)", x, y)
	}
	if x, y := cam.CellAt(455, 10); x != 50 || y != 1 {
		t.Errorf("expected (50,1), got (%d,%d)", x, y)
	}
}

func TestPanWraps(t *testing.T) {
	cam := New(900, 900, 100, 100)

	// 9 px per cell: 540 px is 60 cells
	cam.Pan(540, -540)
	if !near(cam.X, 10) || !near(cam.Y, 90) {
		t.Errorf("expected wrapped center (10, 90), got (%f, %f)", cam.X, cam.Y)
	}

	// View starts left of the grid; a repeating texture fills the gap
	v := cam.View()
	if !near(v.X, -40) {
		t.Errorf("expected view to start at x=-40, got %f", v.X)
	}

	// Cell at the left screen edge wraps to the right side of the grid
	if x, _ := cam.CellAt(0, 450); x != 60 {
		t.Errorf("expected wrapped cell x=60, got %d", x)
	}
}

func TestToroidalWorldToScreen(t *testing.T) {
	cam := New(900, 900, 100, 100)
	cam.X = 5

	// A cell at the far right is closer going left across the seam
	sx, _ := cam.WorldToScreen(98, 50)
	if sx >= 450 {
		t.Errorf("expected cell left of center, got x=%f", sx)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(900, 900, 100, 100)

	cam.SetZoom(1000)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}

	cam.SetZoom(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestResizeRaisesMinZoom(t *testing.T) {
	cam := New(900, 900, 100, 100)
	cam.Resize(1800, 900)

	if cam.MinZoom != 18 {
		t.Errorf("expected min zoom 18, got %f", cam.MinZoom)
	}
	if cam.Zoom != 18 {
		t.Errorf("expected zoom raised to 18, got %f", cam.Zoom)
	}
}

func TestReset(t *testing.T) {
	cam := New(900, 900, 100, 100)
	cam.Pan(100, 200)
	cam.ZoomBy(3)
	cam.Reset()

	if cam.X != 50 || cam.Y != 50 || cam.Zoom != cam.MinZoom {
		t.Errorf("expected reset to center and fit, got (%f,%f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}

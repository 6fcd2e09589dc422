package editor

import (
	"testing"

	"ui-analyzer/pkg/geometry"
)

func TestHandleRectsLayout(t *testing.T) {
	r := geometry.NewRect(100, 100, 200, 100)
	rects := HandleRects(r, 8)
	if len(rects) != 8 {
		t.Fatalf("expected 8 handles, got %d", len(rects))
	}

	want := map[Handle]geometry.Point2D{
		HandleTopLeft:     {X: 100, Y: 100},
		HandleTopRight:    {X: 300, Y: 100},
		HandleBottomLeft:  {X: 100, Y: 200},
		HandleBottomRight: {X: 300, Y: 200},
		HandleTop:         {X: 200, Y: 100},
		HandleBottom:      {X: 200, Y: 200},
		HandleLeft:        {X: 100, Y: 150},
		HandleRight:       {X: 300, Y: 150},
	}
	for _, hr := range rects {
		c := hr.Rect.Center()
		if c != want[hr.Handle] {
			t.Errorf("%s: centered at %v, want %v", hr.Handle, c, want[hr.Handle])
		}
		if hr.Rect.Width != 8 || hr.Rect.Height != 8 {
			t.Errorf("%s: size %vx%v, want 8x8", hr.Handle, hr.Rect.Width, hr.Rect.Height)
		}
	}
}

func TestHandleAt(t *testing.T) {
	r := geometry.NewRect(100, 100, 200, 100)

	if h := HandleAt(r, 8, geometry.Point2D{X: 300, Y: 200}); h != HandleBottomRight {
		t.Errorf("bottom-right corner: got %s", h)
	}
	if h := HandleAt(r, 8, geometry.Point2D{X: 200, Y: 99}); h != HandleTop {
		t.Errorf("top midpoint: got %s", h)
	}
	if h := HandleAt(r, 8, geometry.Point2D{X: 200, Y: 150}); h != HandleNone {
		t.Errorf("rect center should hit no handle, got %s", h)
	}
	if h := HandleAt(r, 8, geometry.Point2D{X: 0, Y: 0}); h != HandleNone {
		t.Errorf("far point should hit no handle, got %s", h)
	}
}

func TestHandleApply(t *testing.T) {
	orig := geometry.NewRect(50, 50, 100, 100)

	tests := []struct {
		handle Handle
		dx, dy float64
		want   geometry.Rect
	}{
		{HandleBottomRight, 20, 30, geometry.NewRect(50, 50, 120, 130)},
		{HandleTopLeft, 10, 10, geometry.NewRect(60, 60, 90, 90)},
		{HandleTopRight, 10, -10, geometry.NewRect(50, 40, 110, 110)},
		{HandleBottomLeft, -10, 10, geometry.NewRect(40, 50, 110, 110)},
		{HandleTop, 999, -10, geometry.NewRect(50, 40, 100, 110)},
		{HandleBottom, 999, 10, geometry.NewRect(50, 50, 100, 110)},
		{HandleLeft, -10, 999, geometry.NewRect(40, 50, 110, 100)},
		{HandleRight, 10, 999, geometry.NewRect(50, 50, 110, 100)},
	}

	for _, tt := range tests {
		got := tt.handle.Apply(orig, tt.dx, tt.dy)
		if got != tt.want {
			t.Errorf("%s.Apply(%v,%v) = %+v, want %+v", tt.handle, tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestHandleClampMinPinsMovingEdge(t *testing.T) {
	orig := geometry.NewRect(50, 50, 100, 100)

	// Dragging the left edge far past the right edge pins the left edge
	// at right-min; the right edge stays at 150.
	r := HandleLeft.Apply(orig, 300, 0)
	r = HandleLeft.ClampMin(r, orig, 10)
	if r.X != 140 || r.Width != 10 {
		t.Errorf("left clamp: got x=%v w=%v, want x=140 w=10", r.X, r.Width)
	}

	// Dragging the bottom-right handle past the top-left corner keeps
	// x,y fixed and pins width/height at the minimum.
	r = HandleBottomRight.Apply(orig, -200, -200)
	r = HandleBottomRight.ClampMin(r, orig, 10)
	if r != geometry.NewRect(50, 50, 10, 10) {
		t.Errorf("bottom-right clamp: got %+v, want {50 50 10 10}", r)
	}

	// Top-left: moving edges are pinned so the bottom-right corner of the
	// original stays at (150,150).
	r = HandleTopLeft.Apply(orig, 500, 500)
	r = HandleTopLeft.ClampMin(r, orig, 10)
	if r != geometry.NewRect(140, 140, 10, 10) {
		t.Errorf("top-left clamp: got %+v, want {140 140 10 10}", r)
	}
}

func TestHandleCursors(t *testing.T) {
	if HandleTopLeft.Cursor() != CursorResizeNWSE {
		t.Error("top-left should use NWSE cursor")
	}
	if HandleTopRight.Cursor() != CursorResizeNESW {
		t.Error("top-right should use NESW cursor")
	}
	if HandleTop.Cursor() != CursorResizeV {
		t.Error("top should use vertical resize cursor")
	}
	if HandleLeft.Cursor() != CursorResizeH {
		t.Error("left should use horizontal resize cursor")
	}
}

package editor

import (
	"ui-analyzer/pkg/geometry"
)

// Handle identifies one of the eight resize handles around a selected
// element, or HandleNone.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
	HandleTop
	HandleBottom
	HandleLeft
	HandleRight
)

// handleSpec describes one handle: where its square sits on the display
// rectangle and which edges of the rectangle it moves during a resize.
type handleSpec struct {
	handle Handle
	// anchor returns the handle's center point for a display rect.
	anchor func(r geometry.Rect) geometry.Point2D
	// edge movement flags
	movesLeft, movesRight, movesTop, movesBottom bool
}

// handleSpecs is iterated in order during hit-testing; corners come first
// so they win over the edge handles they touch.
var handleSpecs = []handleSpec{
	{HandleTopLeft, func(r geometry.Rect) geometry.Point2D { return r.TopLeft() }, true, false, true, false},
	{HandleTopRight, func(r geometry.Rect) geometry.Point2D { return geometry.Point2D{X: r.Right(), Y: r.Y} }, false, true, true, false},
	{HandleBottomLeft, func(r geometry.Rect) geometry.Point2D { return geometry.Point2D{X: r.X, Y: r.Bottom()} }, true, false, false, true},
	{HandleBottomRight, func(r geometry.Rect) geometry.Point2D { return r.BottomRight() }, false, true, false, true},
	{HandleTop, func(r geometry.Rect) geometry.Point2D { return geometry.Point2D{X: r.Center().X, Y: r.Y} }, false, false, true, false},
	{HandleBottom, func(r geometry.Rect) geometry.Point2D { return geometry.Point2D{X: r.Center().X, Y: r.Bottom()} }, false, false, false, true},
	{HandleLeft, func(r geometry.Rect) geometry.Point2D { return geometry.Point2D{X: r.X, Y: r.Center().Y} }, true, false, false, false},
	{HandleRight, func(r geometry.Rect) geometry.Point2D { return geometry.Point2D{X: r.Right(), Y: r.Center().Y} }, false, true, false, false},
}

func specFor(h Handle) handleSpec {
	for _, s := range handleSpecs {
		if s.handle == h {
			return s
		}
	}
	return handleSpec{handle: HandleNone}
}

// HandleRect is a handle together with its display-space hit square.
type HandleRect struct {
	Handle Handle
	Rect   geometry.Rect
}

// HandleRects returns the eight hit squares of side `size` centered on the
// corners and edge midpoints of a display rectangle.
func HandleRects(display geometry.Rect, size float64) []HandleRect {
	out := make([]HandleRect, 0, len(handleSpecs))
	half := size / 2
	for _, spec := range handleSpecs {
		c := spec.anchor(display)
		out = append(out, HandleRect{
			Handle: spec.handle,
			Rect:   geometry.NewRect(c.X-half, c.Y-half, size, size),
		})
	}
	return out
}

// HandleAt returns the handle whose hit square contains the display-space
// point, or HandleNone.
func HandleAt(display geometry.Rect, size float64, p geometry.Point2D) Handle {
	for _, hr := range HandleRects(display, size) {
		if hr.Rect.Contains(p) {
			return hr.Handle
		}
	}
	return HandleNone
}

// Apply moves the handle's edges of rect by an image-space delta and
// returns the result. The opposite edges stay where they were.
func (h Handle) Apply(rect geometry.Rect, dx, dy float64) geometry.Rect {
	spec := specFor(h)
	r := rect
	if spec.movesLeft {
		r.X += dx
		r.Width -= dx
	}
	if spec.movesRight {
		r.Width += dx
	}
	if spec.movesTop {
		r.Y += dy
		r.Height -= dy
	}
	if spec.movesBottom {
		r.Height += dy
	}
	return r
}

// ClampMin enforces the minimum box size after Apply. When a dimension
// falls below min, the moving edge is pinned so the dimension equals min
// while the opposite, non-moving edge of the original rect stays fixed.
func (h Handle) ClampMin(r, original geometry.Rect, min float64) geometry.Rect {
	spec := specFor(h)
	if r.Width < min {
		if spec.movesLeft {
			r.X = original.Right() - min
		}
		r.Width = min
	}
	if r.Height < min {
		if spec.movesTop {
			r.Y = original.Bottom() - min
		}
		r.Height = min
	}
	return r
}

// Cursor returns the cursor hint for hovering over this handle.
func (h Handle) Cursor() CursorHint {
	switch h {
	case HandleTopLeft, HandleBottomRight:
		return CursorResizeNWSE
	case HandleTopRight, HandleBottomLeft:
		return CursorResizeNESW
	case HandleTop, HandleBottom:
		return CursorResizeV
	case HandleLeft, HandleRight:
		return CursorResizeH
	default:
		return CursorDefault
	}
}

func (h Handle) String() string {
	switch h {
	case HandleTopLeft:
		return "top-left"
	case HandleTopRight:
		return "top-right"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleBottomRight:
		return "bottom-right"
	case HandleTop:
		return "top"
	case HandleBottom:
		return "bottom"
	case HandleLeft:
		return "left"
	case HandleRight:
		return "right"
	default:
		return "none"
	}
}

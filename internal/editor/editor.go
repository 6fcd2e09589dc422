package editor

import (
	"ui-analyzer/pkg/geometry"
)

// Options configures editing behavior.
type Options struct {
	// MinBoxSize is the smallest width/height (image units) a resize may
	// leave behind.
	MinBoxSize float64
	// HandleSize is the side of a resize handle's hit square, in display
	// pixels.
	HandleSize float64
	// ClampToImage keeps dragged and resized rectangles inside the image
	// bounds when the image size is known.
	ClampToImage bool
}

// DefaultOptions returns the stock editing options.
func DefaultOptions() Options {
	return Options{
		MinBoxSize:   10,
		HandleSize:   8,
		ClampToImage: true,
	}
}

// gestureState is the pointer state machine's current mode.
type gestureState int

const (
	stateIdle gestureState = iota
	stateDragging
	stateResizing
)

// Editor owns the ordered element collection (last element is topmost for
// hit-testing), the viewport transform, and the pointer gesture state.
// It must only be mutated from a single goroutine, the UI event loop.
type Editor struct {
	opts      Options
	elements  []*Element
	imageSize geometry.Size
	view      Viewport
	availSize geometry.Size

	selected *Element
	hovered  *Element

	state        gestureState
	active       *Element
	activeHandle Handle
	originalRect geometry.Rect    // image space, captured at resize start
	anchor       geometry.Point2D // display space, captured at resize start
	grabOffset   geometry.Point2D // display space, captured at drag start
	gestureView  Viewport         // viewport snapshot for the whole gesture

	lastCursor CursorHint
	nextID     int

	undoStack []deletedElement
	listeners map[EventType][]EventListener
}

// New creates an editor with the given options.
func New(opts Options) *Editor {
	return &Editor{
		opts:      opts,
		nextID:    1,
		listeners: make(map[EventType][]EventListener),
	}
}

// SetImageSize sets the natural pixel size of the loaded image and
// recomputes the viewport.
func (ed *Editor) SetImageSize(size geometry.Size) {
	ed.imageSize = size
	ed.view = FitViewport(ed.imageSize, ed.availSize)
}

// SetDisplaySize informs the editor of the available display area. The
// viewport is recomputed immediately, but a gesture in progress keeps
// using its snapshot so a mid-drag relayout cannot cause jitter.
func (ed *Editor) SetDisplaySize(avail geometry.Size) {
	ed.availSize = avail
	ed.view = FitViewport(ed.imageSize, ed.availSize)
}

// View returns the current viewport transform for rendering.
func (ed *Editor) View() Viewport {
	return ed.view
}

// ImageSize returns the natural size of the loaded image.
func (ed *Editor) ImageSize() geometry.Size {
	return ed.imageSize
}

// Options returns the editing options in effect.
func (ed *Editor) Options() Options {
	return ed.opts
}

// Elements returns the ordered element slice. Callers must not reorder it;
// index order is z-order.
func (ed *Editor) Elements() []*Element {
	return ed.elements
}

// Selected returns the currently selected element, or nil.
func (ed *Editor) Selected() *Element {
	return ed.selected
}

// Hovered returns the currently hovered element, or nil.
func (ed *Editor) Hovered() *Element {
	return ed.hovered
}

// displayRect returns an element's rectangle in display space under the
// given viewport.
func (ed *Editor) displayRect(e *Element, v Viewport) geometry.Rect {
	return v.RectToDisplay(e.Rect)
}

// hitTest returns the topmost element whose display rectangle contains p,
// or nil. Later elements win: the collection order is z-order.
func (ed *Editor) hitTest(p geometry.Point2D) *Element {
	for i := len(ed.elements) - 1; i >= 0; i-- {
		e := ed.elements[i]
		if ed.displayRect(e, ed.view).Contains(p) {
			return e
		}
	}
	return nil
}

// PointerDown starts a gesture at a display-space point: a resize when a
// handle of the selected element is hit, a drag when an element body is
// hit, a deselection otherwise.
func (ed *Editor) PointerDown(p geometry.Point2D) {
	if ed.selected != nil {
		dr := ed.displayRect(ed.selected, ed.view)
		if h := HandleAt(dr, ed.opts.HandleSize, p); h != HandleNone {
			ed.state = stateResizing
			ed.active = ed.selected
			ed.activeHandle = h
			ed.originalRect = ed.selected.Rect
			ed.anchor = p
			ed.gestureView = ed.view
			ed.selected.Resizing = true
			ed.selected.ActiveHandle = h
			return
		}
	}

	if hit := ed.hitTest(p); hit != nil {
		if ed.selected != nil && ed.selected != hit {
			ed.selected.Selected = false
		}
		hit.Selected = true
		ed.selected = hit
		ed.state = stateDragging
		ed.active = hit
		ed.gestureView = ed.view
		ed.grabOffset = p.Sub(ed.displayRect(hit, ed.gestureView).TopLeft())
		hit.Dragging = true
		ed.emit(EventSelectionChanged, hit)
		return
	}

	if ed.selected != nil {
		ed.selected.Selected = false
		ed.selected = nil
	}
	ed.emit(EventSelectionChanged, (*Element)(nil))
}

// PointerMove advances the active gesture, or recomputes hover state when
// no gesture is in progress.
func (ed *Editor) PointerMove(p geometry.Point2D) {
	switch ed.state {
	case stateResizing:
		ed.moveResize(p)
	case stateDragging:
		ed.moveDrag(p)
	default:
		ed.moveHover(p)
	}
}

func (ed *Editor) moveResize(p geometry.Point2D) {
	if ed.active == nil {
		return
	}
	delta := p.Sub(ed.anchor)
	dx := delta.X / ed.gestureView.Scale
	dy := delta.Y / ed.gestureView.Scale

	r := ed.activeHandle.Apply(ed.originalRect, dx, dy)
	if ed.opts.ClampToImage && ed.imageSize.Width > 0 && ed.imageSize.Height > 0 {
		r = clipToBounds(r, ed.imageSize)
	}
	r = ed.activeHandle.ClampMin(r, ed.originalRect, ed.opts.MinBoxSize)
	ed.active.Rect = r
}

func (ed *Editor) moveDrag(p geometry.Point2D) {
	if ed.active == nil {
		return
	}
	topLeft := ed.gestureView.ToImage(p.Sub(ed.grabOffset))
	if ed.opts.ClampToImage && ed.imageSize.Width > 0 && ed.imageSize.Height > 0 {
		maxX := ed.imageSize.Width - ed.active.Rect.Width
		maxY := ed.imageSize.Height - ed.active.Rect.Height
		topLeft.X = clamp(topLeft.X, 0, maxX)
		topLeft.Y = clamp(topLeft.Y, 0, maxY)
	}
	ed.active.Rect.X = topLeft.X
	ed.active.Rect.Y = topLeft.Y
}

func (ed *Editor) moveHover(p geometry.Point2D) {
	hit := ed.hitTest(p)

	cursor := CursorDefault
	if ed.selected != nil {
		dr := ed.displayRect(ed.selected, ed.view)
		if h := HandleAt(dr, ed.opts.HandleSize, p); h != HandleNone {
			cursor = h.Cursor()
		}
	}
	if cursor == CursorDefault && hit != nil {
		cursor = CursorPointer
	}

	if hit == ed.hovered && cursor == ed.lastCursor {
		return
	}
	if ed.hovered != nil && ed.hovered != hit {
		ed.hovered.Hovered = false
	}
	if hit != nil {
		hit.Hovered = true
	}
	ed.hovered = hit
	ed.lastCursor = cursor
	ed.emit(EventHoverChanged, HoverInfo{Element: hit, Cursor: cursor})
}

// PointerUp ends the active gesture. Hover state is recomputed by the
// next move event.
func (ed *Editor) PointerUp() {
	if ed.active != nil {
		ed.active.clearGesture()
	}
	ed.active = nil
	ed.activeHandle = HandleNone
	ed.state = stateIdle
}

// Gesturing reports whether a drag or resize is in progress.
func (ed *Editor) Gesturing() bool {
	return ed.state != stateIdle
}

// PointerSecondary selects the element under a display-space point without
// starting a drag, and returns it so the UI can show a context menu.
// Returns nil when the point hits nothing; the selection is left alone in
// that case.
func (ed *Editor) PointerSecondary(p geometry.Point2D) *Element {
	hit := ed.hitTest(p)
	if hit == nil {
		return nil
	}
	if ed.selected != nil && ed.selected != hit {
		ed.selected.Selected = false
	}
	hit.Selected = true
	ed.selected = hit
	ed.emit(EventSelectionChanged, hit)
	return hit
}

// SelectByID selects the element with the given id (for list-panel
// clicks). A missing id deselects.
func (ed *Editor) SelectByID(id int) {
	var target *Element
	for _, e := range ed.elements {
		if e.ID == id {
			target = e
			break
		}
	}
	if ed.selected != nil && ed.selected != target {
		ed.selected.Selected = false
	}
	ed.selected = target
	if target != nil {
		target.Selected = true
	}
	ed.emit(EventSelectionChanged, target)
}

// SelectedHandleRects returns the display-space handle squares of the
// selected element, or nil when nothing is selected.
func (ed *Editor) SelectedHandleRects() []HandleRect {
	if ed.selected == nil {
		return nil
	}
	return HandleRects(ed.displayRect(ed.selected, ed.view), ed.opts.HandleSize)
}

// clipToBounds truncates the rectangle's edges to stay within the image.
func clipToBounds(r geometry.Rect, img geometry.Size) geometry.Rect {
	if r.X < 0 {
		r.Width += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.Height += r.Y
		r.Y = 0
	}
	if r.Right() > img.Width {
		r.Width = img.Width - r.X
	}
	if r.Bottom() > img.Height {
		r.Height = img.Height - r.Y
	}
	return r
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

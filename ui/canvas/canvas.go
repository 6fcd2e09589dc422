// Package canvas provides the bounding-box editing surface: the loaded
// screenshot scaled to fit, with the element overlay drawn on top and
// pointer gestures routed into the editor.
package canvas

import (
	"image"

	"ui-analyzer/internal/editor"
	"ui-analyzer/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"
)

// EditorCanvas displays the screenshot and its element boxes. All pointer
// events are translated to display-space points and handed to the editor;
// the widget itself holds no interaction state.
type EditorCanvas struct {
	widget.BaseWidget

	ed     *editor.Editor
	img    image.Image
	raster *fynecanvas.Raster

	// scaled image cache, keyed by the output size it was built for
	scaledImg  *image.RGBA
	scaledSize image.Point

	cursor desktop.Cursor

	// onContextMenu is called on a secondary click over an element.
	onContextMenu func(e *editor.Element, pos fyne.Position)

	// onGestureEnd is called after a drag or resize finishes.
	onGestureEnd func()
}

var _ desktop.Mouseable = (*EditorCanvas)(nil)
var _ desktop.Hoverable = (*EditorCanvas)(nil)
var _ desktop.Cursorable = (*EditorCanvas)(nil)
var _ fyne.Draggable = (*EditorCanvas)(nil)

// NewEditorCanvas creates the editing surface for the given editor.
func NewEditorCanvas(ed *editor.Editor) *EditorCanvas {
	ec := &EditorCanvas{
		ed:     ed,
		cursor: desktop.DefaultCursor,
	}
	ec.raster = fynecanvas.NewRaster(ec.draw)
	ec.ExtendBaseWidget(ec)

	// Cursor updates arrive through hover events.
	ed.On(editor.EventHoverChanged, func(data interface{}) {
		if info, ok := data.(editor.HoverInfo); ok {
			ec.cursor = cursorFor(info.Cursor)
		}
	})
	return ec
}

// CreateRenderer builds the widget renderer.
func (ec *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ec.raster)
}

// MinSize keeps the surface usable even before an image is loaded.
func (ec *EditorCanvas) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// SetImage swaps the displayed screenshot and resets the viewport.
func (ec *EditorCanvas) SetImage(img image.Image) {
	ec.img = img
	ec.scaledImg = nil
	if img == nil {
		ec.ed.SetImageSize(geometry.Size{})
	} else {
		b := img.Bounds()
		ec.ed.SetImageSize(geometry.Size{Width: float64(b.Dx()), Height: float64(b.Dy())})
	}
	ec.Refresh()
}

// OnContextMenu sets the callback for a secondary click on an element.
func (ec *EditorCanvas) OnContextMenu(callback func(e *editor.Element, pos fyne.Position)) {
	ec.onContextMenu = callback
}

// OnGestureEnd sets the callback invoked after a drag or resize ends.
func (ec *EditorCanvas) OnGestureEnd(callback func()) {
	ec.onGestureEnd = callback
}

// Refresh redraws the surface.
func (ec *EditorCanvas) Refresh() {
	ec.raster.Refresh()
	ec.BaseWidget.Refresh()
}

// Cursor implements desktop.Cursorable.
func (ec *EditorCanvas) Cursor() desktop.Cursor {
	return ec.cursor
}

// MouseDown starts a gesture.
func (ec *EditorCanvas) MouseDown(ev *desktop.MouseEvent) {
	p := toPoint(ev.Position)
	if ev.Button == desktop.MouseButtonSecondary {
		if hit := ec.ed.PointerSecondary(p); hit != nil && ec.onContextMenu != nil {
			ec.onContextMenu(hit, ev.AbsolutePosition)
		}
		ec.Refresh()
		return
	}
	ec.ed.PointerDown(p)
	ec.Refresh()
}

// MouseUp ends the active gesture.
func (ec *EditorCanvas) MouseUp(*desktop.MouseEvent) {
	gesturing := ec.ed.Gesturing()
	ec.ed.PointerUp()
	if gesturing && ec.onGestureEnd != nil {
		ec.onGestureEnd()
	}
	ec.Refresh()
}

// MouseIn implements desktop.Hoverable.
func (ec *EditorCanvas) MouseIn(ev *desktop.MouseEvent) {
	ec.ed.PointerMove(toPoint(ev.Position))
}

// MouseMoved feeds hover tracking while no button is held. Mid-gesture
// movement arrives through Dragged instead.
func (ec *EditorCanvas) MouseMoved(ev *desktop.MouseEvent) {
	ec.ed.PointerMove(toPoint(ev.Position))
	ec.Refresh()
}

// MouseOut clears hover state when the pointer leaves the surface.
func (ec *EditorCanvas) MouseOut() {
	ec.ed.PointerMove(geometry.Point2D{X: -1, Y: -1})
	ec.cursor = desktop.DefaultCursor
	ec.Refresh()
}

// Dragged advances a drag or resize gesture.
func (ec *EditorCanvas) Dragged(ev *fyne.DragEvent) {
	ec.ed.PointerMove(toPoint(ev.Position))
	ec.Refresh()
}

// DragEnd ends the gesture when the drag is released.
func (ec *EditorCanvas) DragEnd() {
	gesturing := ec.ed.Gesturing()
	ec.ed.PointerUp()
	if gesturing && ec.onGestureEnd != nil {
		ec.onGestureEnd()
	}
	ec.Refresh()
}

// draw renders the screenshot and overlay at the requested pixel size.
// Pointer events arrive in device-independent units, so the viewport is
// sized from the widget's logical size; on a HiDPI display the raster is
// larger than that by the device scale, and only the painting stretches.
func (ec *EditorCanvas) draw(w, h int) image.Image {
	logical := ec.Size()
	if logical.Width <= 0 || logical.Height <= 0 {
		logical = fyne.NewSize(float32(w), float32(h))
	}
	ec.ed.SetDisplaySize(geometry.Size{Width: float64(logical.Width), Height: float64(logical.Height)})

	px := 1.0
	if logical.Width > 0 {
		px = float64(w) / float64(logical.Width)
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fillBackground(output)

	if ec.img != nil {
		ec.drawImage(output, px)
	}
	ec.drawElements(output, px)
	return output
}

// drawImage blits the scaled screenshot into its viewport rectangle.
func (ec *EditorCanvas) drawImage(output *image.RGBA, px float64) {
	view := ec.ed.View()
	imgSize := ec.ed.ImageSize()
	dw := int(imgSize.Width * view.Scale * px)
	dh := int(imgSize.Height * view.Scale * px)
	if dw <= 0 || dh <= 0 {
		return
	}

	if ec.scaledImg == nil || ec.scaledSize != image.Pt(dw, dh) {
		scaled := image.NewRGBA(image.Rect(0, 0, dw, dh))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), ec.img, ec.img.Bounds(), xdraw.Src, nil)
		ec.scaledImg = scaled
		ec.scaledSize = image.Pt(dw, dh)
	}

	ox, oy := int(view.Offset.X*px), int(view.Offset.Y*px)
	dst := image.Rect(ox, oy, ox+dw, oy+dh).Intersect(output.Bounds())
	xdraw.Draw(output, dst, ec.scaledImg, image.Pt(dst.Min.X-ox, dst.Min.Y-oy), xdraw.Src)
}

func fillBackground(output *image.RGBA) {
	// opaque near-black
	for i := 0; i < len(output.Pix); i += 4 {
		output.Pix[i] = 24
		output.Pix[i+1] = 24
		output.Pix[i+2] = 24
		output.Pix[i+3] = 255
	}
}

func toPoint(pos fyne.Position) geometry.Point2D {
	return geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)}
}

// cursorFor maps editor cursor hints to desktop cursors. Fyne has no
// diagonal resize cursor, so corner handles fall back to crosshair.
func cursorFor(hint editor.CursorHint) desktop.Cursor {
	switch hint {
	case editor.CursorPointer:
		return desktop.PointerCursor
	case editor.CursorMove:
		return desktop.CrosshairCursor
	case editor.CursorResizeH:
		return desktop.HResizeCursor
	case editor.CursorResizeV:
		return desktop.VResizeCursor
	case editor.CursorResizeNWSE, editor.CursorResizeNESW:
		return desktop.CrosshairCursor
	default:
		return desktop.DefaultCursor
	}
}

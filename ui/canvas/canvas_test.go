package canvas

import (
	"image"
	"testing"

	"ui-analyzer/internal/editor"
	"ui-analyzer/pkg/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

func newTestCanvas(t *testing.T) (*EditorCanvas, *editor.Editor) {
	t.Helper()
	test.NewApp()
	t.Cleanup(func() { test.NewApp() })

	ed := editor.New(editor.DefaultOptions())
	return NewEditorCanvas(ed), ed
}

// On a HiDPI display the raster callback receives the surface size in
// physical pixels. The viewport must still be computed from the widget's
// logical size so hit-testing matches pointer coordinates, which arrive
// in device-independent units.
func TestDrawKeepsViewportInLogicalUnits(t *testing.T) {
	ec, ed := newTestCanvas(t)
	ec.Resize(fyne.NewSize(200, 150))
	ec.SetImage(image.NewRGBA(image.Rect(0, 0, 100, 75)))

	out := ec.draw(400, 300) // device scale 2
	if got := out.Bounds(); got.Dx() != 400 || got.Dy() != 300 {
		t.Fatalf("raster bounds = %v, want 400x300", got)
	}

	view := ed.View()
	if view.Scale != 2 {
		t.Errorf("viewport scale = %v, want 2 (100x75 image in a 200x150 widget)", view.Scale)
	}
	if view.Offset.X != 0 || view.Offset.Y != 0 {
		t.Errorf("viewport offset = %+v, want origin", view.Offset)
	}

	p := view.ToImage(geometry.Point2D{X: 100, Y: 75})
	if p.X != 50 || p.Y != 37.5 {
		t.Errorf("logical center maps to %+v, want {50 37.5}", p)
	}
}

// Before the first layout the widget size is zero; the raster size is
// the only measure available and the draw falls back to it.
func TestDrawBeforeLayoutUsesRasterSize(t *testing.T) {
	ec, ed := newTestCanvas(t)
	ec.SetImage(image.NewRGBA(image.Rect(0, 0, 100, 75)))

	ec.draw(400, 300)
	if got := ed.View().Scale; got != 4 {
		t.Errorf("fallback viewport scale = %v, want 4", got)
	}
}

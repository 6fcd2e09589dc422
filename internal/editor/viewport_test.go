package editor

import (
	"math"
	"testing"

	"ui-analyzer/pkg/geometry"
)

func TestFitViewportRoundTrip(t *testing.T) {
	cases := []struct {
		img, avail geometry.Size
	}{
		{geometry.NewSize(800, 600), geometry.NewSize(400, 300)},
		{geometry.NewSize(100, 100), geometry.NewSize(1000, 50)},
		{geometry.NewSize(1920, 1080), geometry.NewSize(640, 480)},
		{geometry.NewSize(33, 77), geometry.NewSize(201, 99)},
	}
	points := []geometry.Point2D{
		{X: 0, Y: 0}, {X: 13.5, Y: 27.25}, {X: 799, Y: 599},
	}

	for _, c := range cases {
		v := FitViewport(c.img, c.avail)
		for _, p := range points {
			back := v.ToImage(v.ToDisplay(p))
			if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
				t.Errorf("img=%v avail=%v: round trip of %v gave %v", c.img, c.avail, p, back)
			}
		}
		if v.Scale <= 0 || math.IsInf(v.Scale, 0) || math.IsNaN(v.Scale) {
			t.Errorf("img=%v avail=%v: scale %v not finite positive", c.img, c.avail, v.Scale)
		}
	}
}

func TestFitViewportZeroImage(t *testing.T) {
	v := FitViewport(geometry.NewSize(0, 0), geometry.NewSize(400, 300))
	if v.Scale != 1 {
		t.Fatalf("zero-size image: scale = %v, want 1", v.Scale)
	}
	// The transform must stay invertible.
	p := geometry.Point2D{X: 10, Y: 20}
	back := v.ToImage(v.ToDisplay(p))
	if back != p {
		t.Fatalf("zero-size image: round trip of %v gave %v", p, back)
	}

	v = FitViewport(geometry.NewSize(800, 0), geometry.NewSize(400, 300))
	if v.Scale != 1 {
		t.Fatalf("zero-height image: scale = %v, want 1", v.Scale)
	}
}

func TestFitViewportZeroDisplayArea(t *testing.T) {
	// Before the first layout the display area is zero; the scale must
	// stay positive so ToImage never divides by zero.
	v := FitViewport(geometry.NewSize(800, 600), geometry.Size{})
	if v.Scale != 1 {
		t.Fatalf("zero display area: scale = %v, want 1", v.Scale)
	}
	p := v.ToImage(geometry.Point2D{X: 10, Y: 20})
	if math.IsInf(p.X, 0) || math.IsNaN(p.X) || math.IsInf(p.Y, 0) || math.IsNaN(p.Y) {
		t.Fatalf("zero display area: ToImage gave %v", p)
	}
}

func TestFitViewportHalfScaleCentered(t *testing.T) {
	// 800x600 into 400x300 scales by exactly 0.5 with no letterbox offset.
	v := FitViewport(geometry.NewSize(800, 600), geometry.NewSize(400, 300))
	if v.Scale != 0.5 {
		t.Fatalf("scale = %v, want 0.5", v.Scale)
	}
	if v.Offset.X != 0 || v.Offset.Y != 0 {
		t.Fatalf("offset = %v, want (0,0)", v.Offset)
	}
}

func TestFitViewportLetterboxOffset(t *testing.T) {
	// A wide display area centers the image horizontally.
	v := FitViewport(geometry.NewSize(100, 100), geometry.NewSize(300, 100))
	if v.Scale != 1 {
		t.Fatalf("scale = %v, want 1", v.Scale)
	}
	if v.Offset.X != 100 || v.Offset.Y != 0 {
		t.Fatalf("offset = %v, want (100,0)", v.Offset)
	}
}

func TestRectMapping(t *testing.T) {
	v := FitViewport(geometry.NewSize(800, 600), geometry.NewSize(400, 300))
	r := geometry.NewRect(100, 100, 200, 100)
	d := v.RectToDisplay(r)
	if d.X != 50 || d.Y != 50 || d.Width != 100 || d.Height != 50 {
		t.Fatalf("RectToDisplay = %+v", d)
	}
	back := v.RectToImage(d)
	if back != r {
		t.Fatalf("RectToImage(RectToDisplay(r)) = %+v, want %+v", back, r)
	}
}

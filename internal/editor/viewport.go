package editor

import (
	"ui-analyzer/pkg/geometry"
)

// Viewport maps image-pixel coordinates into the display area the pointer
// events arrive in: a uniform scale that fits the image into the available
// area plus a centering offset.
type Viewport struct {
	Scale  float64
	Offset geometry.Point2D
}

// FitViewport computes the viewport for an image of the given natural size
// shown in the given display area. A zero-size image or display area yields
// scale 1 so the transform stays invertible.
func FitViewport(img, avail geometry.Size) Viewport {
	scale := 1.0
	if img.Width > 0 && img.Height > 0 {
		sx := avail.Width / img.Width
		sy := avail.Height / img.Height
		scale = sx
		if sy < sx {
			scale = sy
		}
	}
	if scale <= 0 {
		// display area not laid out yet
		scale = 1
	}
	return Viewport{
		Scale: scale,
		Offset: geometry.Point2D{
			X: (avail.Width - img.Width*scale) / 2,
			Y: (avail.Height - img.Height*scale) / 2,
		},
	}
}

// ToDisplay converts an image-space point to display space.
func (v Viewport) ToDisplay(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: v.Offset.X + p.X*v.Scale,
		Y: v.Offset.Y + p.Y*v.Scale,
	}
}

// ToImage converts a display-space point back to image space.
func (v Viewport) ToImage(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: (p.X - v.Offset.X) / v.Scale,
		Y: (p.Y - v.Offset.Y) / v.Scale,
	}
}

// RectToDisplay converts an image-space rectangle to display space.
func (v Viewport) RectToDisplay(r geometry.Rect) geometry.Rect {
	return geometry.Rect{
		X:      v.Offset.X + r.X*v.Scale,
		Y:      v.Offset.Y + r.Y*v.Scale,
		Width:  r.Width * v.Scale,
		Height: r.Height * v.Scale,
	}
}

// RectToImage converts a display-space rectangle to image space.
func (v Viewport) RectToImage(r geometry.Rect) geometry.Rect {
	return geometry.Rect{
		X:      (r.X - v.Offset.X) / v.Scale,
		Y:      (r.Y - v.Offset.Y) / v.Scale,
		Width:  r.Width / v.Scale,
		Height: r.Height / v.Scale,
	}
}

// Package colorutil provides shared color utilities for overlay drawing.
package colorutil

import "image/color"

// Common overlay colors used throughout the application.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Green  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Amber  = color.RGBA{R: 255, G: 214, B: 0, A: 255}
	Mint   = color.RGBA{R: 0, G: 230, B: 118, A: 255}
	Blue   = color.RGBA{R: 66, G: 165, B: 245, A: 255}
	Cyan   = color.RGBA{R: 0, G: 229, B: 255, A: 255}
	Orange = color.RGBA{R: 255, G: 152, B: 0, A: 255}
	Purple = color.RGBA{R: 171, G: 71, B: 188, A: 255}
	Pink   = color.RGBA{R: 236, G: 64, B: 122, A: 255}
	Slate  = color.RGBA{R: 120, G: 144, B: 156, A: 255}
)

// typePalette maps element type labels to their overlay box color.
// Unknown labels fall back to Green.
var typePalette = map[string]color.RGBA{
	"button":    Blue,
	"input":     Green,
	"label":     Slate,
	"image":     Purple,
	"link":      Cyan,
	"menu":      Orange,
	"checkbox":  Green,
	"radio":     Green,
	"dropdown":  Orange,
	"icon":      Pink,
	"container": Amber,
	"text":      Slate,
}

// ForLabel returns the overlay color for an element type label.
func ForLabel(label string) color.RGBA {
	if c, ok := typePalette[label]; ok {
		return c
	}
	return Green
}

// WithAlpha returns c with its alpha channel replaced.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

// Blend alpha-composites fg over bg using fg's alpha channel.
func Blend(bg, fg color.RGBA) color.RGBA {
	a := uint32(fg.A)
	inv := 255 - a
	return color.RGBA{
		R: uint8((uint32(fg.R)*a + uint32(bg.R)*inv) / 255),
		G: uint8((uint32(fg.G)*a + uint32(bg.G)*inv) / 255),
		B: uint8((uint32(fg.B)*a + uint32(bg.B)*inv) / 255),
		A: 255,
	}
}

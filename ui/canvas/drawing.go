// Element overlay drawing primitives for the editing surface.
package canvas

import (
	"image"
	"image/color"
	"strconv"

	"ui-analyzer/pkg/colorutil"
	"ui-analyzer/pkg/geometry"
)

var (
	hoverColor    = colorutil.Amber
	selectedColor = colorutil.Mint
	handleFill    = colorutil.White
	handleBorder  = color.RGBA{R: 32, G: 32, B: 32, A: 255}
	labelColor    = colorutil.Black
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9.
// Each digit is represented as 5 rows of 3 bits.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// drawElements paints every element box, the hover/selection highlights,
// the selected element's handles, and the id tags. px maps display units
// to raster pixels.
func (ec *EditorCanvas) drawElements(output *image.RGBA, px float64) {
	view := ec.ed.View()

	for _, e := range ec.ed.Elements() {
		r := toPixels(view.RectToDisplay(e.Rect), px)

		col := colorutil.ForLabel(string(e.Type()))
		thickness := 2
		switch {
		case e.Selected:
			col = selectedColor
			thickness = 3
		case e.Hovered:
			col = hoverColor
		}

		if e.Hovered || e.Selected {
			fillRect(output, r, colorutil.WithAlpha(col, 40))
		}
		strokeRect(output, r, col, thickness)
		ec.drawIDTag(output, e.ID, r, col)
	}

	for _, hr := range ec.ed.SelectedHandleRects() {
		pr := toPixels(hr.Rect, px)
		fillRect(output, pr, handleFill)
		strokeRect(output, pr, handleBorder, 1)
	}
}

// toPixels maps a display-space rectangle into raster pixels.
func toPixels(r geometry.Rect, px float64) geometry.Rect {
	return geometry.Rect{
		X:      r.X * px,
		Y:      r.Y * px,
		Width:  r.Width * px,
		Height: r.Height * px,
	}
}

// drawIDTag draws the element id on a small solid tab at the box's
// top-left corner.
func (ec *EditorCanvas) drawIDTag(output *image.RGBA, id int, r geometry.Rect, col color.RGBA) {
	label := strconv.Itoa(id)

	const scale = 2
	charW, charH := 3*scale, 5*scale
	pad := 2
	tagW := len(label)*charW + (len(label)-1)*scale + 2*pad
	tagH := charH + 2*pad

	tag := geometry.NewRect(r.X, r.Y-float64(tagH), float64(tagW), float64(tagH))
	if tag.Y < 0 {
		tag.Y = r.Y
	}
	fillRect(output, tag, col)
	drawDigits(output, label, int(tag.X)+pad, int(tag.Y)+pad, scale, labelColor)
}

// drawDigits renders a numeric string with the 3x5 bitmap font.
func drawDigits(output *image.RGBA, label string, startX, startY, scale int, col color.RGBA) {
	bounds := output.Bounds()
	charW := 3 * scale

	for i, ch := range label {
		if ch < '0' || ch > '9' {
			continue
		}
		pattern := digitPatterns[ch-'0']
		charX := startX + i*(charW+scale)

		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if pattern[row]&(1<<(2-c)) == 0 {
					continue
				}
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						px := charX + c*scale + dx
						py := startY + row*scale + dy
						if px >= bounds.Min.X && px < bounds.Max.X &&
							py >= bounds.Min.Y && py < bounds.Max.Y {
							output.Set(px, py, col)
						}
					}
				}
			}
		}
	}
}

// strokeRect draws an axis-aligned rectangle outline.
func strokeRect(output *image.RGBA, r geometry.Rect, col color.RGBA, thickness int) {
	x1, y1 := int(r.X), int(r.Y)
	x2, y2 := int(r.Right()), int(r.Bottom())

	for t := 0; t < thickness; t++ {
		drawHLine(output, x1, x2, y1+t, col)
		drawHLine(output, x1, x2, y2-t, col)
		drawVLine(output, x1+t, y1, y2, col)
		drawVLine(output, x2-t, y1, y2, col)
	}
}

// fillRect fills a rectangle, alpha-blending when the color is
// translucent.
func fillRect(output *image.RGBA, r geometry.Rect, col color.RGBA) {
	bounds := output.Bounds()
	x1, y1 := clampInt(int(r.X), bounds.Min.X, bounds.Max.X), clampInt(int(r.Y), bounds.Min.Y, bounds.Max.Y)
	x2, y2 := clampInt(int(r.Right()), bounds.Min.X, bounds.Max.X), clampInt(int(r.Bottom()), bounds.Min.Y, bounds.Max.Y)

	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			if col.A == 255 {
				output.SetRGBA(x, y, col)
				continue
			}
			blendPixel(output, x, y, col)
		}
	}
}

func blendPixel(output *image.RGBA, x, y int, col color.RGBA) {
	output.SetRGBA(x, y, colorutil.Blend(output.RGBAAt(x, y), col))
}

func drawHLine(output *image.RGBA, x1, x2, y int, col color.RGBA) {
	bounds := output.Bounds()
	if y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	for x := clampInt(x1, bounds.Min.X, bounds.Max.X); x < clampInt(x2+1, bounds.Min.X, bounds.Max.X); x++ {
		output.SetRGBA(x, y, col)
	}
}

func drawVLine(output *image.RGBA, x, y1, y2 int, col color.RGBA) {
	bounds := output.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X {
		return
	}
	for y := clampInt(y1, bounds.Min.Y, bounds.Max.Y); y < clampInt(y2+1, bounds.Min.Y, bounds.Max.Y); y++ {
		output.SetRGBA(x, y, col)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

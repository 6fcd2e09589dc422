// Package ocr reads text out of screenshot regions with Tesseract. The
// result is offered as a description suggestion for an annotated element,
// never applied without the user accepting it.
package ocr

import (
	"fmt"
	"image"
	"strings"

	"ui-analyzer/pkg/geometry"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// Engine provides OCR functionality using Tesseract.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates a new OCR engine.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// ReadRegion performs OCR on one element's region of the screenshot and
// returns the recognized text with whitespace collapsed. An empty string
// with a nil error means the region contains no readable text.
func (e *Engine) ReadRegion(img image.Image, bounds geometry.Rect) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no image loaded")
	}

	mat, err := matFromImage(img)
	if err != nil {
		return "", err
	}
	defer mat.Close()

	x, y := int(bounds.X), int(bounds.Y)
	w, h := int(bounds.Width), int(bounds.Height)
	imgH, imgW := mat.Rows(), mat.Cols()

	x = max(0, x)
	y = max(0, y)
	w = min(w, imgW-x)
	h = min(h, imgH-y)
	if w <= 0 || h <= 0 {
		return "", fmt.Errorf("region lies outside the image")
	}

	region := mat.Region(image.Rect(x, y, x+w, y+h))
	defer region.Close()

	processed := preprocessForOCR(region)
	defer processed.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, processed)
	if err != nil {
		return "", fmt.Errorf("failed to encode region: %w", err)
	}
	defer buf.Close()

	// PSM 6 = assume a single uniform block of text
	if err := e.client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("failed to set PSM: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	text = strings.TrimSpace(text)
	text = strings.Join(strings.Fields(text), " ")
	return text, nil
}

// SuggestDescription turns recognized region text into a description
// candidate, or returns the empty string when there is nothing to say.
func (e *Engine) SuggestDescription(img image.Image, bounds geometry.Rect) (string, error) {
	text, err := e.ReadRegion(img, bounds)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", nil
	}
	return fmt.Sprintf("Element with text '%s'", text), nil
}

// preprocessForOCR prepares a screenshot region for Tesseract: upscale
// small crops, boost contrast, binarize, and flip light-on-dark text.
func preprocessForOCR(region gocv.Mat) gocv.Mat {
	h, w := region.Rows(), region.Cols()

	var scaled gocv.Mat
	minDim := min(h, w)
	if minDim < 150 {
		scale := 150.0 / float64(minDim)
		scaled = gocv.NewMat()
		gocv.Resize(region, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	} else {
		scaled = region.Clone()
	}

	gray := gocv.NewMat()
	gocv.CvtColor(scaled, &gray, gocv.ColorBGRToGray)
	scaled.Close()

	clahe := gocv.NewCLAHEWithParams(2.0, image.Point{8, 8})
	defer clahe.Close()

	enhanced := gocv.NewMat()
	clahe.Apply(gray, &enhanced)
	gray.Close()

	binary := gocv.NewMat()
	gocv.Threshold(enhanced, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	enhanced.Close()

	// Tesseract expects dark text on a light background; dark-theme UI
	// crops come out inverted after Otsu.
	whiteCount := gocv.CountNonZero(binary)
	totalPixels := binary.Rows() * binary.Cols()
	if totalPixels > 0 && float64(whiteCount)/float64(totalPixels) > 0.5 {
		gocv.BitwiseNot(binary, &binary)
	}

	result := gocv.NewMat()
	gocv.CvtColor(binary, &result, gocv.ColorGrayToBGR)
	binary.Close()

	return result
}

// matFromImage converts a Go image.Image to a BGR gocv.Mat.
func matFromImage(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return gocv.Mat{}, fmt.Errorf("image has zero size")
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}
	return mat, nil
}

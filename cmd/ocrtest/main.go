// Command ocrtest reads text from a region of a screenshot. Useful for
// checking the preprocessing pipeline against a real tesseract install.
//
// Usage: ocrtest -image <path> [-box x,y,w,h]
package main

import (
	"flag"
	"fmt"
	"os"

	"ui-analyzer/internal/imagefile"
	"ui-analyzer/internal/ocr"
	"ui-analyzer/pkg/geometry"
)

func main() {
	imagePath := flag.String("image", "", "Path to a screenshot")
	x := flag.Float64("x", 0, "Region left edge")
	y := flag.Float64("y", 0, "Region top edge")
	w := flag.Float64("w", 0, "Region width (0 = full image)")
	h := flag.Float64("h", 0, "Region height (0 = full image)")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: ocrtest -image <path> [-x N -y N -w N -h N]")
		os.Exit(1)
	}

	img, err := imagefile.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	bounds := img.Bounds()
	box := geometry.NewRect(*x, *y, *w, *h)
	if box.Width == 0 || box.Height == 0 {
		box = geometry.NewRect(0, 0, float64(bounds.Dx()), float64(bounds.Dy()))
	}

	engine, err := ocr.NewEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize OCR: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	text, err := engine.ReadRegion(img, box)
	if err != nil {
		fmt.Fprintf(os.Stderr, "OCR failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Region: %.0f,%.0f %.0fx%.0f\n", box.X, box.Y, box.Width, box.Height)
	if text == "" {
		fmt.Println("No text found")
		return
	}
	fmt.Printf("Text: %q\n", text)

	if suggestion, err := engine.SuggestDescription(img, box); err == nil {
		fmt.Printf("Suggested description: %s\n", suggestion)
	}
}

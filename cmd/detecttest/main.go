// Command detecttest runs element detection on a screenshot and prints
// the results, optionally writing the standard export files. It is the
// headless harness used to tune prompts and backends without the GUI.
//
// Usage: detecttest -image <path> [-backend ollama|local] [options]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"ui-analyzer/internal/detect"
	"ui-analyzer/internal/editor"
	"ui-analyzer/internal/export"
	"ui-analyzer/internal/imagefile"
	"ui-analyzer/pkg/geometry"
)

func main() {
	imagePath := flag.String("image", "", "Path to a screenshot (PNG, JPEG, WebP, ...)")
	backend := flag.String("backend", "ollama", "Detection backend: ollama or local")
	ollamaURL := flag.String("url", "http://localhost:11434", "Ollama server URL")
	model := flag.String("model", "llava:13b", "Vision model name")
	timeout := flag.Duration("timeout", 5*time.Minute, "Model call timeout")
	maxDim := flag.Int("max-dim", 1568, "Downscale longest image side before submission (0 = off)")
	exportDir := flag.String("export", "", "Write JSON and report exports to this directory")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: detecttest -image <path> [-backend ollama|local] [options]")
		os.Exit(1)
	}

	img, err := imagefile.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	bounds := img.Bounds()
	fmt.Printf("Loaded image: %dx%d pixels\n", bounds.Dx(), bounds.Dy())

	scaled := imagefile.Downscale(img, *maxDim)
	factor := imagefile.ScaleFactor(img, scaled)
	if factor != 1 {
		sb := scaled.Bounds()
		fmt.Printf("Submitting at %dx%d (scale back factor %.3f)\n", sb.Dx(), sb.Dy(), factor)
	}

	var (
		elements []detect.Element
		start    = time.Now()
	)
	switch *backend {
	case "ollama":
		opts := detect.DefaultClientOptions()
		opts.Model = *model
		opts.Timeout = *timeout
		client, err := detect.NewClient(*ollamaURL, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create client: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Analyzing with %s at %s...\n", *model, *ollamaURL)
		elements, err = client.Detect(context.Background(), scaled)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
			os.Exit(1)
		}
	case "local":
		fmt.Println("Analyzing with local contour detection...")
		elements, err = detect.NewLocalDetector(detect.DefaultLocalOptions()).Detect(scaled)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown backend %q\n", *backend)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	fmt.Printf("\nDetected %d elements in %s:\n", len(elements), elapsed.Round(time.Millisecond))
	fmt.Printf("%-5s %-24s %-10s %s\n", "ID", "Box", "Type", "Description")
	for _, e := range elements {
		box := fmt.Sprintf("[%d,%d,%d,%d]",
			int(float64(e.Box[0])*factor), int(float64(e.Box[1])*factor),
			int(float64(e.Box[2])*factor), int(float64(e.Box[3])*factor))
		fmt.Printf("%-5d %-24s %-10s %s\n", e.ID, box, editor.Classify(e.Description), e.Description)
	}

	if *exportDir == "" {
		return
	}

	ed := editor.New(editor.DefaultOptions())
	ed.SetImageSize(geometry.Size{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())})
	ed.Ingest(toDetections(elements, factor))

	x := export.New(*exportDir, *model)
	jsonPath, err := x.WriteJSON(ed.Export(), ed.ImageSize())
	if err != nil {
		fmt.Fprintf(os.Stderr, "JSON export failed: %v\n", err)
		os.Exit(1)
	}
	reportPath, err := x.WriteReport(ed.Export(), ed.ImageSize())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Report export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nWrote %s\n", jsonPath)
	fmt.Printf("Wrote %s\n", reportPath)
}

func toDetections(elements []detect.Element, factor float64) []editor.Detection {
	detections := make([]editor.Detection, 0, len(elements))
	for _, e := range elements {
		d := editor.Detection{ID: e.ID, Description: e.Description}
		for i, v := range e.Box {
			d.Box[i] = int(float64(v) * factor)
		}
		detections = append(detections, d)
	}
	return detections
}

// Package export writes analysis results to disk: a JSON document, a
// plain-text report, or a standalone HTML visualization.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ui-analyzer/internal/editor"
	"ui-analyzer/pkg/geometry"
)

// Metadata describes the analysis an export came from.
type Metadata struct {
	ExportTime   time.Time `json:"export_time"`
	ImageSize    [2]int    `json:"image_size"`
	Model        string    `json:"model,omitempty"`
	ElementCount int       `json:"element_count"`
}

// Document is the exported JSON shape.
type Document struct {
	Metadata Metadata                 `json:"metadata"`
	Elements []editor.ExportedElement `json:"elements"`
}

// Exporter writes timestamped analysis files into a directory.
type Exporter struct {
	Dir   string
	Model string

	// now is swappable for tests.
	now func() time.Time
}

// New creates an exporter writing into dir.
func New(dir, model string) *Exporter {
	return &Exporter{Dir: dir, Model: model, now: time.Now}
}

func (x *Exporter) timestamp() time.Time {
	if x.now != nil {
		return x.now()
	}
	return time.Now()
}

func (x *Exporter) path(ext string) string {
	name := "ui_analysis_" + x.timestamp().Format("20060102_150405") + ext
	return filepath.Join(x.Dir, name)
}

// WriteJSON writes the element list as a JSON document and returns the
// file path. Non-ASCII text is written as-is.
func (x *Exporter) WriteJSON(elements []editor.ExportedElement, imageSize geometry.Size) (string, error) {
	doc := Document{
		Metadata: Metadata{
			ExportTime:   x.timestamp(),
			ImageSize:    [2]int{int(imageSize.Width), int(imageSize.Height)},
			Model:        x.Model,
			ElementCount: len(elements),
		},
		Elements: elements,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encode analysis: %w", err)
	}

	path := x.path(".json")
	if err := x.write(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

// WriteReport writes a human-readable text report and returns the file
// path.
func (x *Exporter) WriteReport(elements []editor.ExportedElement, imageSize geometry.Size) (string, error) {
	var b strings.Builder
	b.WriteString("UI/UX Analysis Report\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "Analysis Date: %s\n", x.timestamp().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Image Size: %dx%d\n", int(imageSize.Width), int(imageSize.Height))
	if x.Model != "" {
		fmt.Fprintf(&b, "Model: %s\n", x.Model)
	}
	fmt.Fprintf(&b, "Elements Found: %d\n\n", len(elements))

	for _, e := range elements {
		fmt.Fprintf(&b, "Element %d\n", e.ID)
		b.WriteString(strings.Repeat("-", 30) + "\n")
		fmt.Fprintf(&b, "Type: %s\n", e.Type)
		fmt.Fprintf(&b, "Position: (%d, %d)\n", e.Box[0], e.Box[1])
		fmt.Fprintf(&b, "Size: %dx%d\n", e.Box[2]-e.Box[0], e.Box[3]-e.Box[1])
		fmt.Fprintf(&b, "Description: %s\n", e.Description)
		if e.Feedback != "" {
			fmt.Fprintf(&b, "Feedback: %s\n", e.Feedback)
		}
		b.WriteString("\n")
	}

	path := x.path(".txt")
	if err := x.write(path, []byte(b.String())); err != nil {
		return "", err
	}
	return path, nil
}

func (x *Exporter) write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

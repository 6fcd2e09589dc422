// Package project provides project file handling and persistence.
package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Ext is the project file extension.
const Ext = ".uiproj"

// Element is one annotation as persisted in a project file: geometry,
// description, and feedback only. Interaction state is never saved.
type Element struct {
	ID          int    `json:"id"`
	Box         [4]int `json:"box"`
	Description string `json:"description"`
	Feedback    string `json:"feedback,omitempty"`
}

// Analysis is an embedded analysis result.
type Analysis struct {
	Model    string    `json:"model,omitempty"`
	RunAt    time.Time `json:"run_at,omitempty"`
	Elements []Element `json:"elements"`
}

// File represents a UI analyzer project file (.uiproj).
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created_at"`
	Modified time.Time `json:"modified_at"`

	// ImagePath is relative to the project file when possible.
	ImagePath string `json:"image_path,omitempty"`

	// Analysis is the last detection result, if any.
	Analysis *Analysis `json:"analysis,omitempty"`
}

// New creates a new project file.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
	}
}

// Load loads a project from a .uiproj file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	return &proj, nil
}

// Save saves the project to a file and bumps the modified timestamp.
// Description and feedback text is written as-is, not ASCII-escaped.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return nil
}

// SetImage sets the image path, stored relative to the project file when
// both share a common root.
func (p *File) SetImage(projectPath, imagePath string) {
	rel, err := filepath.Rel(filepath.Dir(projectPath), imagePath)
	if err != nil {
		p.ImagePath = imagePath
	} else {
		p.ImagePath = rel
	}
	p.Modified = time.Now()
}

// GetImagePath returns the absolute path to the screenshot.
func (p *File) GetImagePath(projectPath string) string {
	if p.ImagePath == "" {
		return ""
	}
	if filepath.IsAbs(p.ImagePath) {
		return p.ImagePath
	}
	return filepath.Join(filepath.Dir(projectPath), p.ImagePath)
}

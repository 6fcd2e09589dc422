// Package config holds the application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration.
type Config struct {
	Model  ModelConfig  `json:"model"`
	Editor EditorConfig `json:"editor"`
	Export ExportConfig `json:"export"`
}

// ModelConfig configures the vision-model backend.
type ModelConfig struct {
	// Backend is "ollama" or "local" (offline contour detector).
	Backend string `json:"backend"`
	// OllamaURL is the base URL of the Ollama server.
	OllamaURL string `json:"ollama_url"`
	// Name is the vision model to use.
	Name string `json:"name"`
	// TimeoutSeconds bounds one detection call.
	TimeoutSeconds int `json:"timeout_seconds"`
	// MaxImageDim downscales screenshots before submission; 0 disables.
	MaxImageDim int `json:"max_image_dim"`
}

// EditorConfig configures the bounding-box editing surface.
type EditorConfig struct {
	// MinBoxSize is the smallest width/height (image pixels) a resize
	// may leave behind.
	MinBoxSize float64 `json:"min_box_size"`
	// HandleSize is the side of a resize handle, in display pixels.
	HandleSize float64 `json:"handle_size"`
	// ClampToImage keeps boxes inside the image when dragging/resizing.
	ClampToImage bool `json:"clamp_to_image"`
}

// ExportConfig configures analysis export.
type ExportConfig struct {
	// Dir is where exported analyses are written.
	Dir string `json:"dir"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Backend:        "ollama",
			OllamaURL:      "http://localhost:11434",
			Name:           "llava:13b",
			TimeoutSeconds: 300,
			MaxImageDim:    1568,
		},
		Editor: EditorConfig{
			MinBoxSize:   10,
			HandleSize:   8,
			ClampToImage: true,
		},
		Export: ExportConfig{
			Dir: "exports",
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "ui-analyzer", "config.json")
}

// Load reads configuration from a JSON file, falling back to defaults
// for a missing file. Unknown fields are ignored; missing fields keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes configuration to a JSON file, creating the directory if
// needed.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Model.Backend != def.Model.Backend || cfg.Editor.MinBoxSize != def.Editor.MinBoxSize {
		t.Errorf("missing file did not yield defaults: %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.json")

	cfg := Default()
	cfg.Model.Name = "minicpm-v"
	cfg.Editor.ClampToImage = false
	cfg.Editor.MinBoxSize = 20

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Model.Name != "minicpm-v" {
		t.Errorf("model name = %q", got.Model.Name)
	}
	if got.Editor.ClampToImage {
		t.Errorf("clamp_to_image not persisted")
	}
	if got.Editor.MinBoxSize != 20 {
		t.Errorf("min_box_size = %v", got.Editor.MinBoxSize)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"model":{"name":"llava:7b"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model.Name != "llava:7b" {
		t.Errorf("model name = %q", cfg.Model.Name)
	}
	if cfg.Editor.MinBoxSize != Default().Editor.MinBoxSize {
		t.Errorf("unset editor fields lost their defaults: %+v", cfg.Editor)
	}
}

func TestLoadRejectsBrokenJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"model":`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load accepted broken JSON")
	}
}

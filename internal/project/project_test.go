package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "login-screen"+Ext)

	p := New("login-screen")
	p.SetImage(path, filepath.Join(dir, "shots", "login.png"))
	p.Analysis = &Analysis{
		Model: "llava:13b",
		RunAt: time.Now(),
		Elements: []Element{
			{ID: 1, Box: [4]int{10, 20, 100, 50}, Description: "Submit button", Feedback: "too small"},
			{ID: 2, Box: [4]int{120, 25, 140, 45}, Description: "Info icon"},
		},
	}

	if err := p.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "login-screen" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Analysis == nil || len(got.Analysis.Elements) != 2 {
		t.Fatalf("analysis not round-tripped: %+v", got.Analysis)
	}
	e := got.Analysis.Elements[0]
	if e.ID != 1 || e.Box != [4]int{10, 20, 100, 50} || e.Feedback != "too small" {
		t.Errorf("element = %+v", e)
	}
	if got.Created.IsZero() || got.Modified.IsZero() {
		t.Errorf("timestamps not persisted")
	}
}

func TestSavePreservesNonASCIIText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p"+Ext)

	p := New("пример")
	p.Analysis = &Analysis{Elements: []Element{
		{ID: 1, Box: [4]int{0, 0, 10, 10}, Description: "Кнопка «Отправить»"},
	}}
	if err := p.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Кнопка «Отправить»") {
		t.Errorf("non-ASCII text was escaped:\n%s", data)
	}
}

func TestImagePathRelative(t *testing.T) {
	dir := t.TempDir()
	projPath := filepath.Join(dir, "p"+Ext)
	imgPath := filepath.Join(dir, "img", "shot.png")

	p := New("p")
	p.SetImage(projPath, imgPath)

	if filepath.IsAbs(p.ImagePath) {
		t.Errorf("image path stored absolute: %q", p.ImagePath)
	}
	if got := p.GetImagePath(projPath); got != imgPath {
		t.Errorf("GetImagePath = %q, want %q", got, imgPath)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent"+Ext)); err == nil {
		t.Fatalf("Load of missing file succeeded")
	}
}

package app

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ui-analyzer/internal/config"
	"ui-analyzer/internal/detect"
	"ui-analyzer/internal/editor"
)

type fakeDetector struct {
	elements []detect.Element
	err      error
}

func (f *fakeDetector) Detect(_ context.Context, _ image.Image) ([]detect.Element, error) {
	return f.elements, f.err
}

// blockingDetector holds the analysis open until release is closed.
type blockingDetector struct {
	release chan struct{}
}

func (b blockingDetector) Detect(_ context.Context, _ image.Image) ([]detect.Element, error) {
	<-b.release
	return nil, nil
}

func editorDetections(t *testing.T) []editor.Detection {
	t.Helper()
	return []editor.Detection{
		{ID: 1, Box: [4]int{10, 10, 50, 30}, Description: "OK button"},
	}
}

func testState(t *testing.T, d Detector) *State {
	t.Helper()
	cfg := config.Default()
	cfg.Model.MaxImageDim = 0 // keep coordinates 1:1 in tests
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewState(cfg, d, log)
}

func writeTestImage(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "shot.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 200, 100))); err != nil {
		t.Fatal(err)
	}
	return path
}

func waitForOutcome(t *testing.T, ch <-chan AnalysisOutcome) AnalysisOutcome {
	t.Helper()
	select {
	case out := <-ch:
		return out
	case <-time.After(5 * time.Second):
		t.Fatal("analysis never completed")
		return AnalysisOutcome{}
	}
}

func TestAnalyzeDeliversDetections(t *testing.T) {
	d := &fakeDetector{elements: []detect.Element{
		{ID: 1, Box: [4]int{10, 10, 50, 30}, Description: "OK button"},
	}}
	s := testState(t, d)
	if err := s.LoadImage(writeTestImage(t, t.TempDir())); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}

	ch := make(chan AnalysisOutcome, 1)
	s.On(EventAnalysisComplete, func(data interface{}) {
		ch <- data.(AnalysisOutcome)
	})

	if err := s.Analyze(context.Background()); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	out := waitForOutcome(t, ch)

	if out.Err != nil {
		t.Fatalf("outcome error: %v", out.Err)
	}
	if len(out.Detections) != 1 || out.Detections[0].Box != [4]int{10, 10, 50, 30} {
		t.Errorf("detections = %+v", out.Detections)
	}
	if out.Status != "Analysis complete: found 1 elements" {
		t.Errorf("status = %q", out.Status)
	}
	if s.Analyzing() {
		t.Errorf("still marked analyzing after completion")
	}
}

func TestAnalyzeFailureLeavesCollectionAlone(t *testing.T) {
	d := &fakeDetector{err: fmt.Errorf("model call failed: connection refused")}
	s := testState(t, d)
	if err := s.LoadImage(writeTestImage(t, t.TempDir())); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	s.Editor.Ingest(editorDetections(t))

	ch := make(chan AnalysisOutcome, 1)
	s.On(EventAnalysisComplete, func(data interface{}) {
		ch <- data.(AnalysisOutcome)
	})
	if err := s.Analyze(context.Background()); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	out := waitForOutcome(t, ch)

	if out.Err == nil || out.Detections != nil {
		t.Fatalf("failure outcome = %+v", out)
	}
	if out.Status == "" {
		t.Errorf("failure produced no status text")
	}
	if len(s.Editor.Elements()) != 1 {
		t.Errorf("failed analysis disturbed the element collection")
	}
}

func TestAnalyzeWithoutImage(t *testing.T) {
	s := testState(t, &fakeDetector{})
	if err := s.Analyze(context.Background()); err == nil {
		t.Fatalf("Analyze without an image succeeded")
	}
}

func TestAnalyzeRejectsConcurrentRun(t *testing.T) {
	block := make(chan struct{})
	d := blockingDetector{release: block}
	s := testState(t, d)
	if err := s.LoadImage(writeTestImage(t, t.TempDir())); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}

	done := make(chan struct{})
	s.On(EventAnalysisComplete, func(interface{}) { close(done) })

	if err := s.Analyze(context.Background()); err != nil {
		t.Fatalf("first Analyze: %v", err)
	}
	if err := s.Analyze(context.Background()); err == nil {
		t.Fatalf("second Analyze while in flight succeeded")
	}
	close(block)
	<-done
}

func TestProjectRoundTripRestoresElements(t *testing.T) {
	s := testState(t, &fakeDetector{})
	dir := t.TempDir()
	imgPath := writeTestImage(t, dir)
	if err := s.LoadImage(imgPath); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	s.Editor.Ingest(editorDetections(t))
	s.Editor.Elements()[0].Feedback = "contrast too low"
	s.Editor.SelectByID(1)

	projPath := filepath.Join(dir, "review.uiproj")
	if err := s.SaveProject(projPath); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}

	// Fresh state, as after a restart.
	s2 := testState(t, &fakeDetector{})
	if err := s2.LoadProject(projPath); err != nil {
		t.Fatalf("LoadProject: %v", err)
	}

	els := s2.Editor.Elements()
	if len(els) != 1 {
		t.Fatalf("restored %d elements, want 1", len(els))
	}
	if els[0].Feedback != "contrast too low" {
		t.Errorf("feedback = %q", els[0].Feedback)
	}
	if els[0].Selected || s2.Editor.Selected() != nil {
		t.Errorf("transient selection state was persisted")
	}
	if s2.Image() == nil {
		t.Errorf("project image not loaded")
	}
}

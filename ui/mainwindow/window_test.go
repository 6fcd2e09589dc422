package mainwindow

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"ui-analyzer/internal/app"
	"ui-analyzer/internal/config"
	"ui-analyzer/internal/editor"
	"ui-analyzer/pkg/geometry"

	"fyne.io/fyne/v2/test"
)

func newTestWindow(t *testing.T) (*MainWindow, *app.State) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(func() { test.NewApp() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	state := app.NewState(config.Default(), nil, log)
	return New(a, state), state
}

// The analysis outcome is emitted on a background goroutine; the window
// must apply it through the UI goroutine and leave the editor consistent.
func TestAnalysisOutcomeAppliedOnCompletion(t *testing.T) {
	mw, state := newTestWindow(t)

	state.Editor.SetImageSize(geometry.Size{Width: 800, Height: 600})
	state.Emit(app.EventAnalysisStarted, nil)
	if !mw.analyzeItem.Disabled {
		t.Fatalf("analyze item enabled while analysis in flight")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		state.Emit(app.EventAnalysisComplete, app.AnalysisOutcome{
			Detections: []editor.Detection{
				{ID: 1, Box: [4]int{10, 10, 110, 90}, Description: "login button"},
				{ID: 2, Box: [4]int{10, 120, 110, 200}, Description: "username input"},
			},
			Status: "Analysis complete: found 2 elements",
		})
		state.Emit(app.EventStatus, "Analysis complete: found 2 elements")
	}()
	<-done

	els := state.Editor.Elements()
	if len(els) != 2 || els[0].ID != 1 || els[1].ID != 2 {
		t.Fatalf("elements after completion = %d, want 2", len(els))
	}
	if mw.analyzeItem.Disabled {
		t.Errorf("analyze item still disabled after completion")
	}
	if !state.IsModified() {
		t.Errorf("project not marked modified after ingest")
	}
	if got := mw.statusBar.Text; got != "Analysis complete: found 2 elements" {
		t.Errorf("status bar = %q", got)
	}
}

func TestAnalysisFailureLeavesCollection(t *testing.T) {
	mw, state := newTestWindow(t)

	state.Editor.Ingest([]editor.Detection{
		{ID: 7, Box: [4]int{0, 0, 50, 50}, Description: "icon"},
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		state.Emit(app.EventAnalysisComplete, app.AnalysisOutcome{
			Status: "Analysis failed: model timed out",
			Err:    errors.New("model timed out"),
		})
	}()
	<-done

	els := state.Editor.Elements()
	if len(els) != 1 || els[0].ID != 7 {
		t.Fatalf("collection changed by failed analysis: %d elements", len(els))
	}
	if mw.analyzeItem.Disabled {
		t.Errorf("analyze item still disabled after failure")
	}
	if state.IsModified() {
		t.Errorf("failed analysis marked the project modified")
	}
}

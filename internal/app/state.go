// Package app provides application lifecycle management and events.
package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"ui-analyzer/internal/config"
	"ui-analyzer/internal/detect"
	"ui-analyzer/internal/editor"
	"ui-analyzer/internal/imagefile"
	"ui-analyzer/internal/project"
	"ui-analyzer/pkg/geometry"
)

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventImageLoaded
	EventAnalysisStarted
	EventAnalysisComplete // data: AnalysisOutcome
	EventStatus           // data: string
	EventModified         // data: bool
)

// EventListener is called when an event occurs. Listeners may run on a
// background goroutine; UI code must hop onto the UI thread itself.
type EventListener func(data interface{})

// AnalysisOutcome is delivered on EventAnalysisComplete. Detections is
// nil when the analysis failed; Status carries the human-readable result
// either way.
type AnalysisOutcome struct {
	Detections []editor.Detection
	Status     string
	Err        error
}

// Detector is the detection backend: the Ollama-served vision model or
// the local contour fallback.
type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]detect.Element, error)
}

// localAdapter gives LocalDetector the context-taking shape.
type localAdapter struct {
	d *detect.LocalDetector
}

func (a localAdapter) Detect(_ context.Context, img image.Image) ([]detect.Element, error) {
	return a.d.Detect(img)
}

// NewDetector builds the detection backend named by the configuration.
func NewDetector(cfg config.ModelConfig) (Detector, error) {
	switch cfg.Backend {
	case "local":
		return localAdapter{d: detect.NewLocalDetector(detect.DefaultLocalOptions())}, nil
	case "ollama", "":
		opts := detect.DefaultClientOptions()
		if cfg.Name != "" {
			opts.Model = cfg.Name
		}
		if cfg.TimeoutSeconds > 0 {
			opts.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		return detect.NewClient(cfg.OllamaURL, opts)
	default:
		return nil, fmt.Errorf("unknown detection backend %q", cfg.Backend)
	}
}

// State holds the application state: the open project, the loaded
// screenshot, and the element editor. The editor itself must only be
// touched from the UI goroutine; State's own fields are mutex-guarded
// because analysis completes on a background goroutine.
type State struct {
	mu sync.RWMutex

	Config *config.Config
	Editor *editor.Editor

	log      *slog.Logger
	detector Detector

	projectPath string
	proj        *project.File
	modified    bool

	imagePath string
	img       image.Image

	analyzing bool

	listeners map[EventType][]EventListener
}

// NewState creates the application state.
func NewState(cfg *config.Config, detector Detector, log *slog.Logger) *State {
	ed := editor.New(editor.Options{
		MinBoxSize:   cfg.Editor.MinBoxSize,
		HandleSize:   cfg.Editor.HandleSize,
		ClampToImage: cfg.Editor.ClampToImage,
	})
	return &State{
		Config:    cfg,
		Editor:    ed,
		log:       log,
		detector:  detector,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	changed := s.modified != modified
	s.modified = modified
	s.mu.Unlock()
	if changed {
		s.Emit(EventModified, modified)
	}
}

// IsModified reports whether there are unsaved changes.
func (s *State) IsModified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// Image returns the loaded screenshot, or nil.
func (s *State) Image() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img
}

// ImagePath returns the path of the loaded screenshot.
func (s *State) ImagePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.imagePath
}

// ProjectPath returns the path of the open project file, or "".
func (s *State) ProjectPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectPath
}

// ProjectName returns a display name for the open project.
func (s *State) ProjectName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.proj != nil {
		return s.proj.Name
	}
	return ""
}

// LoadImage loads a screenshot from disk. The element collection is left
// alone; a following analysis or project load replaces it.
func (s *State) LoadImage(path string) error {
	img, err := imagefile.Load(path)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}

	s.mu.Lock()
	s.img = img
	s.imagePath = path
	s.mu.Unlock()

	b := img.Bounds()
	s.Editor.SetImageSize(geometry.Size{Width: float64(b.Dx()), Height: float64(b.Dy())})
	s.log.Info("image loaded", "path", path, "width", b.Dx(), "height", b.Dy())
	s.Emit(EventImageLoaded, img)
	return nil
}

// Analyzing reports whether a detection request is in flight.
func (s *State) Analyzing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzing
}

// Analyze sends the loaded screenshot to the detection backend on a
// background goroutine. The outcome arrives later as a single
// EventAnalysisComplete; the editing surface stays responsive and its
// collection is untouched until the caller ingests the result.
func (s *State) Analyze(ctx context.Context) error {
	s.mu.Lock()
	if s.img == nil {
		s.mu.Unlock()
		return fmt.Errorf("no image loaded")
	}
	if s.analyzing {
		s.mu.Unlock()
		return fmt.Errorf("analysis already running")
	}
	if s.detector == nil {
		s.mu.Unlock()
		return fmt.Errorf("no detection backend configured")
	}
	s.analyzing = true
	img := s.img
	maxDim := s.Config.Model.MaxImageDim
	s.mu.Unlock()

	s.Emit(EventAnalysisStarted, nil)
	s.Emit(EventStatus, "Analyzing image...")

	go func() {
		start := time.Now()
		outcome := s.runAnalysis(ctx, img, maxDim)

		s.mu.Lock()
		s.analyzing = false
		s.mu.Unlock()

		if outcome.Err != nil {
			s.log.Error("analysis failed", "error", outcome.Err, "elapsed", time.Since(start))
		} else {
			s.log.Info("analysis complete", "elements", len(outcome.Detections), "elapsed", time.Since(start))
		}
		s.Emit(EventAnalysisComplete, outcome)
		s.Emit(EventStatus, outcome.Status)
	}()
	return nil
}

// runAnalysis downsizes the screenshot for the model, runs detection,
// and maps the boxes back to original image coordinates.
func (s *State) runAnalysis(ctx context.Context, img image.Image, maxDim int) AnalysisOutcome {
	scaled := imagefile.Downscale(img, maxDim)
	factor := imagefile.ScaleFactor(img, scaled)

	found, err := s.detector.Detect(ctx, scaled)
	if err != nil {
		return AnalysisOutcome{
			Status: fmt.Sprintf("Analysis failed: %v", err),
			Err:    err,
		}
	}

	detections := make([]editor.Detection, 0, len(found))
	for _, e := range found {
		d := editor.Detection{
			ID:          e.ID,
			Description: e.Description,
		}
		for i, v := range e.Box {
			d.Box[i] = int(float64(v) * factor)
		}
		detections = append(detections, d)
	}

	return AnalysisOutcome{
		Detections: detections,
		Status:     fmt.Sprintf("Analysis complete: found %d elements", len(detections)),
	}
}

// NewProject starts a fresh project around the loaded screenshot.
func (s *State) NewProject(name string) {
	s.mu.Lock()
	s.proj = project.New(name)
	s.projectPath = ""
	s.modified = false
	s.mu.Unlock()
	s.Emit(EventProjectLoaded, name)
}

// SaveProject writes the project, its image reference, and the current
// element collection to path. Must be called from the UI goroutine since
// it reads the editor.
func (s *State) SaveProject(path string) error {
	s.mu.Lock()
	if s.proj == nil {
		s.proj = project.New(projectNameFromPath(path))
	}
	proj := s.proj
	imagePath := s.imagePath
	s.mu.Unlock()

	if imagePath != "" {
		proj.SetImage(path, imagePath)
	}

	exported := s.Editor.Export()
	if len(exported) > 0 {
		analysis := &project.Analysis{
			Model:    s.Config.Model.Name,
			RunAt:    time.Now(),
			Elements: make([]project.Element, 0, len(exported)),
		}
		for _, e := range exported {
			analysis.Elements = append(analysis.Elements, project.Element{
				ID:          e.ID,
				Box:         e.Box,
				Description: e.Description,
				Feedback:    e.Feedback,
			})
		}
		proj.Analysis = analysis
	} else {
		proj.Analysis = nil
	}

	if err := proj.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.projectPath = path
	s.modified = false
	s.mu.Unlock()

	s.log.Info("project saved", "path", path)
	s.Emit(EventProjectSaved, path)
	s.Emit(EventModified, false)
	return nil
}

// LoadProject reads a project file, loads its screenshot, and rebuilds
// the element collection without any transient interaction state. Must
// be called from the UI goroutine.
func (s *State) LoadProject(path string) error {
	proj, err := project.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.proj = proj
	s.projectPath = path
	s.modified = false
	s.mu.Unlock()

	if imgPath := proj.GetImagePath(path); imgPath != "" {
		if err := s.LoadImage(imgPath); err != nil {
			return err
		}
	}

	var detections []editor.Detection
	if proj.Analysis != nil {
		detections = make([]editor.Detection, 0, len(proj.Analysis.Elements))
		for _, e := range proj.Analysis.Elements {
			detections = append(detections, editor.Detection{
				ID:          e.ID,
				Box:         e.Box,
				Description: e.Description,
			})
		}
	}
	s.Editor.Ingest(detections)

	// Feedback is not part of the detection row; restore it after the
	// elements exist.
	if proj.Analysis != nil {
		els := s.Editor.Elements()
		for i, e := range proj.Analysis.Elements {
			if i < len(els) {
				els[i].Feedback = e.Feedback
			}
		}
	}

	s.log.Info("project loaded", "path", path, "elements", len(detections))
	s.Emit(EventProjectLoaded, proj.Name)
	return nil
}

func projectNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

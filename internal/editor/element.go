// Package editor implements the interactive bounding-box editing core:
// the element collection, the viewport transform between image and display
// coordinates, and the pointer-driven select/drag/resize state machine.
// It has no UI dependencies; the Fyne layer renders its state and feeds it
// pointer events.
package editor

import (
	"ui-analyzer/pkg/geometry"
)

// Element is one detected or user-annotated UI region. Rect is always in
// image-pixel coordinates; the viewport transform produces display
// rectangles on demand.
type Element struct {
	ID          int
	Rect        geometry.Rect
	Description string
	Feedback    string

	// Transient interaction flags. Never persisted; reset on load.
	Selected     bool
	Hovered      bool
	Dragging     bool
	Resizing     bool
	ActiveHandle Handle
}

// Type classifies the element from its current description. The result is
// recomputed on every call so edits to the description take effect
// immediately.
func (e *Element) Type() ElementType {
	return Classify(e.Description)
}

// clearGesture resets the in-gesture flags after pointer release.
func (e *Element) clearGesture() {
	e.Dragging = false
	e.Resizing = false
	e.ActiveHandle = HandleNone
}

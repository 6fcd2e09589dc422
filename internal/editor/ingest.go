package editor

import (
	"ui-analyzer/pkg/geometry"
)

// Detection is one raw detection row as produced by the vision model:
// a [x1,y1,x2,y2] box in image pixels plus a free-text description.
type Detection struct {
	ID          int
	Box         [4]int
	Description string
}

// Ingest replaces the element collection with the given detections. A
// detection's id is kept when positive; otherwise a 1-based sequence index
// is assigned. Boxes are converted from corner form to x/y/width/height.
// Selection, hover, and the undo stack are reset.
func (ed *Editor) Ingest(detections []Detection) {
	elements := make([]*Element, 0, len(detections))
	for i, d := range detections {
		id := d.ID
		if id <= 0 {
			id = i + 1
		}
		elements = append(elements, &Element{
			ID: id,
			Rect: geometry.Rect{
				X:      float64(d.Box[0]),
				Y:      float64(d.Box[1]),
				Width:  float64(d.Box[2] - d.Box[0]),
				Height: float64(d.Box[3] - d.Box[1]),
			},
			Description: d.Description,
		})
	}

	ed.elements = elements
	ed.selected = nil
	ed.hovered = nil
	ed.active = nil
	ed.state = stateIdle
	ed.undoStack = nil
	if len(elements) > 0 {
		ed.nextID = elements[len(elements)-1].ID + 1
	} else {
		ed.nextID = 1
	}

	ed.emit(EventSelectionChanged, (*Element)(nil))
	ed.emit(EventListChanged, nil)
}

// Add appends a hand-drawn element covering rect and selects it. Used
// for regions the model missed; the description starts empty for the
// user to fill in.
func (ed *Editor) Add(rect geometry.Rect) *Element {
	e := &Element{
		ID:   ed.nextID,
		Rect: HandleBottomRight.ClampMin(rect, rect, ed.opts.MinBoxSize),
	}
	ed.nextID++
	ed.elements = append(ed.elements, e)

	if ed.selected != nil {
		ed.selected.Selected = false
	}
	e.Selected = true
	ed.selected = e

	ed.emit(EventListChanged, nil)
	ed.emit(EventSelectionChanged, e)
	return e
}

// ExportedElement is the outward shape of one element: the box is rebuilt
// in corner form from the current, possibly edited geometry.
type ExportedElement struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Box         [4]int `json:"box"`
	Feedback    string `json:"feedback"`
	Type        string `json:"type"`
}

// Export returns the current collection in export form, in z-order.
func (ed *Editor) Export() []ExportedElement {
	out := make([]ExportedElement, 0, len(ed.elements))
	for _, e := range ed.elements {
		out = append(out, ExportedElement{
			ID:          e.ID,
			Description: e.Description,
			Box: [4]int{
				int(e.Rect.X),
				int(e.Rect.Y),
				int(e.Rect.Right()),
				int(e.Rect.Bottom()),
			},
			Feedback: e.Feedback,
			Type:     string(e.Type()),
		})
	}
	return out
}

package editor

// EventType identifies editor events the UI layer can subscribe to.
type EventType int

const (
	EventSelectionChanged EventType = iota // data: *Element or nil
	EventHoverChanged                      // data: HoverInfo
	EventListChanged                       // data: nil
	EventStatusChanged                     // data: string
)

// CursorHint tells the UI which pointer cursor to show.
type CursorHint int

const (
	CursorDefault CursorHint = iota
	CursorPointer
	CursorMove
	CursorResizeH
	CursorResizeV
	CursorResizeNWSE
	CursorResizeNESW
)

// HoverInfo accompanies EventHoverChanged.
type HoverInfo struct {
	Element *Element // nil when nothing is hovered
	Cursor  CursorHint
}

// EventListener is called when an event occurs. Listeners run on the
// goroutine that mutated the editor (the UI event loop).
type EventListener func(data interface{})

// On registers an event listener for the specified event type.
func (ed *Editor) On(event EventType, listener EventListener) {
	ed.listeners[event] = append(ed.listeners[event], listener)
}

// emit triggers all listeners for the specified event type.
func (ed *Editor) emit(event EventType, data interface{}) {
	for _, listener := range ed.listeners[event] {
		listener(data)
	}
}

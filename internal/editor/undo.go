package editor

// deletedElement records an element removed from the collection together
// with the index it occupied, so a later undo can put it back in place.
type deletedElement struct {
	element *Element
	index   int
}

// Delete removes an element from the collection and pushes it onto the
// undo stack. Deleting the selected element clears the selection.
func (ed *Editor) Delete(e *Element) {
	idx := -1
	for i, el := range ed.elements {
		if el == e {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	ed.elements = append(ed.elements[:idx], ed.elements[idx+1:]...)
	ed.undoStack = append(ed.undoStack, deletedElement{element: e, index: idx})

	if ed.hovered == e {
		ed.hovered = nil
	}
	if ed.selected == e {
		e.Selected = false
		ed.selected = nil
		ed.emit(EventSelectionChanged, (*Element)(nil))
	}
	ed.emit(EventListChanged, nil)
}

// UndoDelete restores the most recently deleted element at its original
// index. A no-op when nothing has been deleted.
func (ed *Editor) UndoDelete() {
	n := len(ed.undoStack)
	if n == 0 {
		return
	}
	entry := ed.undoStack[n-1]
	ed.undoStack = ed.undoStack[:n-1]

	idx := entry.index
	if idx > len(ed.elements) {
		idx = len(ed.elements)
	}
	ed.elements = append(ed.elements, nil)
	copy(ed.elements[idx+1:], ed.elements[idx:])
	ed.elements[idx] = entry.element

	ed.emit(EventListChanged, nil)
}

// CanUndo reports whether the undo stack is non-empty.
func (ed *Editor) CanUndo() bool {
	return len(ed.undoStack) > 0
}

// Package panels provides UI panels for the application.
package panels

import (
	"fmt"

	"ui-analyzer/internal/app"
	"ui-analyzer/internal/editor"
	"ui-analyzer/internal/ocr"
	"ui-analyzer/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SidePanel lists the detected elements and edits the selected one's
// description and feedback.
type SidePanel struct {
	state  *app.State
	canvas *canvas.EditorCanvas
	window fyne.Window

	list *widget.List

	idLabel     *widget.Label
	typeLabel   *widget.Label
	posLabel    *widget.Label
	description *widget.Entry
	feedback    *widget.Entry

	deleteBtn  *widget.Button
	undoBtn    *widget.Button
	suggestBtn *widget.Button

	ocrEngine *ocr.Engine

	content fyne.CanvasObject

	// updating suppresses entry-change handlers while the panel itself
	// writes into the entries.
	updating bool
}

// NewSidePanel creates the element panel.
func NewSidePanel(state *app.State, ec *canvas.EditorCanvas) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: ec,
	}
	sp.buildList()
	sp.buildDetail()
	sp.buildLayout()
	sp.bindEvents()
	return sp
}

// SetWindow provides the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.window = w
}

// SetOCREngine enables the description-suggestion button. A nil engine
// keeps it disabled.
func (sp *SidePanel) SetOCREngine(engine *ocr.Engine) {
	sp.ocrEngine = engine
	if engine != nil && sp.state.Editor.Selected() != nil {
		sp.suggestBtn.Enable()
	}
}

// Container returns the panel for embedding in the window layout.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.content
}

func (sp *SidePanel) buildList() {
	sp.list = widget.NewList(
		func() int {
			return len(sp.state.Editor.Elements())
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("element")
		},
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			els := sp.state.Editor.Elements()
			if i >= len(els) {
				return
			}
			e := els[i]
			obj.(*widget.Label).SetText(fmt.Sprintf("#%d %s — %s", e.ID, e.Type(), truncate(e.Description, 40)))
		},
	)
	sp.list.OnSelected = func(i widget.ListItemID) {
		els := sp.state.Editor.Elements()
		if i < len(els) {
			sp.state.Editor.SelectByID(els[i].ID)
			sp.canvas.Refresh()
		}
	}
}

func (sp *SidePanel) buildDetail() {
	sp.idLabel = widget.NewLabel("")
	sp.typeLabel = widget.NewLabel("")
	sp.posLabel = widget.NewLabel("")

	sp.description = widget.NewMultiLineEntry()
	sp.description.Wrapping = fyne.TextWrapWord
	sp.description.SetMinRowsVisible(4)
	sp.description.OnChanged = func(text string) {
		if sp.updating {
			return
		}
		if e := sp.state.Editor.Selected(); e != nil {
			e.Description = text
			sp.state.SetModified(true)
			sp.list.Refresh()
			sp.typeLabel.SetText(string(e.Type()))
		}
	}

	sp.feedback = widget.NewMultiLineEntry()
	sp.feedback.Wrapping = fyne.TextWrapWord
	sp.feedback.SetMinRowsVisible(3)
	sp.feedback.OnChanged = func(text string) {
		if sp.updating {
			return
		}
		if e := sp.state.Editor.Selected(); e != nil {
			e.Feedback = text
			sp.state.SetModified(true)
		}
	}

	sp.deleteBtn = widget.NewButton("Delete", func() {
		if e := sp.state.Editor.Selected(); e != nil {
			sp.state.Editor.Delete(e)
			sp.state.SetModified(true)
			sp.canvas.Refresh()
		}
	})
	sp.undoBtn = widget.NewButton("Undo Delete", func() {
		sp.state.Editor.UndoDelete()
		sp.state.SetModified(true)
		sp.canvas.Refresh()
	})
	sp.suggestBtn = widget.NewButton("Suggest from Text", sp.onSuggestDescription)

	sp.deleteBtn.Disable()
	sp.suggestBtn.Disable()
	sp.undoBtn.Disable()
}

func (sp *SidePanel) buildLayout() {
	detail := container.NewVBox(
		container.NewHBox(sp.idLabel, sp.typeLabel),
		sp.posLabel,
		widget.NewLabel("Description:"),
		sp.description,
		widget.NewLabel("Feedback:"),
		sp.feedback,
		container.NewHBox(sp.suggestBtn, sp.deleteBtn, sp.undoBtn),
	)

	sp.content = container.NewVSplit(
		sp.list,
		container.NewVScroll(detail),
	)
	sp.content.(*container.Split).SetOffset(0.45)
}

func (sp *SidePanel) bindEvents() {
	ed := sp.state.Editor

	ed.On(editor.EventListChanged, func(interface{}) {
		sp.list.Refresh()
		if ed.CanUndo() {
			sp.undoBtn.Enable()
		} else {
			sp.undoBtn.Disable()
		}
	})

	ed.On(editor.EventSelectionChanged, func(data interface{}) {
		e, _ := data.(*editor.Element)
		sp.showElement(e)
		sp.syncListSelection(e)
	})
}

// showElement fills the detail pane, or clears it for nil.
func (sp *SidePanel) showElement(e *editor.Element) {
	sp.updating = true
	defer func() { sp.updating = false }()

	if e == nil {
		sp.idLabel.SetText("")
		sp.typeLabel.SetText("")
		sp.posLabel.SetText("")
		sp.description.SetText("")
		sp.feedback.SetText("")
		sp.deleteBtn.Disable()
		sp.suggestBtn.Disable()
		return
	}

	sp.idLabel.SetText(fmt.Sprintf("Element #%d", e.ID))
	sp.typeLabel.SetText(string(e.Type()))
	sp.posLabel.SetText(fmt.Sprintf("(%d, %d)  %dx%d",
		int(e.Rect.X), int(e.Rect.Y), int(e.Rect.Width), int(e.Rect.Height)))
	sp.description.SetText(e.Description)
	sp.feedback.SetText(e.Feedback)
	sp.deleteBtn.Enable()
	if sp.ocrEngine != nil {
		sp.suggestBtn.Enable()
	}
}

func (sp *SidePanel) syncListSelection(e *editor.Element) {
	if e == nil {
		sp.list.UnselectAll()
		return
	}
	for i, el := range sp.state.Editor.Elements() {
		if el == e {
			sp.list.Select(i)
			return
		}
	}
}

// onSuggestDescription OCRs the selected element's region and offers the
// result as the description.
func (sp *SidePanel) onSuggestDescription() {
	e := sp.state.Editor.Selected()
	img := sp.state.Image()
	if e == nil || img == nil || sp.ocrEngine == nil {
		return
	}

	suggestion, err := sp.ocrEngine.SuggestDescription(img, e.Rect)
	if err != nil {
		sp.state.Emit(app.EventStatus, fmt.Sprintf("OCR failed: %v", err))
		return
	}
	if suggestion == "" {
		sp.state.Emit(app.EventStatus, "No readable text in the selected region")
		return
	}

	sp.description.SetText(suggestion)
	sp.state.Emit(app.EventStatus, "Description suggested from region text")
}

// FocusDescription moves keyboard focus into the description entry.
func (sp *SidePanel) FocusDescription() {
	if sp.window != nil {
		sp.window.Canvas().Focus(sp.description)
	}
}

// SuggestDescription runs the OCR suggestion for the selected element, as
// the context menu's entry point to the panel's button action.
func (sp *SidePanel) SuggestDescription() {
	sp.onSuggestDescription()
}

// RefreshSelected re-reads the selected element's geometry into the
// detail pane, for updates after a drag or resize.
func (sp *SidePanel) RefreshSelected() {
	if e := sp.state.Editor.Selected(); e != nil {
		sp.posLabel.SetText(fmt.Sprintf("(%d, %d)  %dx%d",
			int(e.Rect.X), int(e.Rect.Y), int(e.Rect.Width), int(e.Rect.Height)))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

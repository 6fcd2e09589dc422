// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"fmt"
	"path/filepath"

	"ui-analyzer/internal/app"
	"ui-analyzer/internal/editor"
	"ui-analyzer/internal/export"
	"ui-analyzer/internal/imagefile"
	"ui-analyzer/internal/ocr"
	"ui-analyzer/internal/project"
	"ui-analyzer/internal/version"
	"ui-analyzer/pkg/geometry"
	"ui-analyzer/ui/canvas"
	"ui-analyzer/ui/panels"
	"ui-analyzer/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.EditorCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label
	split     *container.Split

	analyzeItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State) *MainWindow {
	win := fyneApp.NewWindow("UI Analyzer")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  prefs.Load(),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()

	w := mw.prefs.FloatWithFallback(prefs.KeyWindowWidth, 1280)
	h := mw.prefs.FloatWithFallback(prefs.KeyWindowHeight, 800)
	win.Resize(fyne.NewSize(float32(w), float32(h)))
	win.SetCloseIntercept(mw.onClose)
	return mw
}

// onClose persists window geometry before exiting.
func (mw *MainWindow) onClose() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	mw.prefs.SetFloat(prefs.KeySplitOffset, mw.split.Offset)
	_ = mw.prefs.Save()
	mw.app.Quit()
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewEditorCanvas(mw.state.Editor)
	mw.canvas.OnContextMenu(mw.showElementMenu)

	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas)
	mw.canvas.OnGestureEnd(func() {
		mw.sidePanel.RefreshSelected()
		mw.state.SetModified(true)
	})
	mw.sidePanel.SetWindow(mw.Window)

	// OCR is optional; without a tesseract install the suggestion
	// button simply stays disabled.
	if engine, err := ocr.NewEngine(); err == nil {
		mw.sidePanel.SetOCREngine(engine)
	}

	mw.statusBar = widget.NewLabel("Ready")

	mw.split = container.NewHSplit(
		mw.sidePanel.Container(),
		mw.canvas,
	)
	mw.split.SetOffset(mw.prefs.FloatWithFallback(prefs.KeySplitOffset, 0.28))

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		mw.split,
	)
	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Project...", mw.onOpenProject),
		fyne.NewMenuItem("Save Project", mw.onSaveProject),
		fyne.NewMenuItem("Save Project As...", mw.onSaveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export JSON...", mw.onExportJSON),
		fyne.NewMenuItem("Export Report...", mw.onExportReport),
		fyne.NewMenuItem("Export HTML...", mw.onExportHTML),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Add Element", mw.onAddElement),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Delete Element", mw.onDeleteSelected),
		fyne.NewMenuItem("Undo Delete", mw.onUndoDelete),
	)

	mw.analyzeItem = fyne.NewMenuItem("Analyze Image", mw.onAnalyze)
	analysisMenu := fyne.NewMenu("Analysis",
		mw.analyzeItem,
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, analysisMenu, helpMenu))
}

// setupShortcuts wires Delete and Ctrl+Z onto the editing surface.
func (mw *MainWindow) setupShortcuts() {
	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			mw.onDeleteSelected()
		}
	})
	mw.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyZ,
		Modifier: fyne.KeyModifierControl,
	}, func(fyne.Shortcut) {
		mw.onUndoDelete()
	})
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		mw.canvas.SetImage(mw.state.Image())
		mw.updateStatus("Image loaded: " + filepath.Base(mw.state.ImagePath()))
	})

	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		if name, ok := data.(string); ok && name != "" {
			mw.SetTitle("UI Analyzer - " + name)
		}
		mw.canvas.Refresh()
	})

	// Status text also arrives from the analysis goroutine.
	mw.state.On(app.EventStatus, func(data interface{}) {
		if text, ok := data.(string); ok {
			fyne.Do(func() { mw.updateStatus(text) })
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})

	mw.state.On(app.EventAnalysisStarted, func(interface{}) {
		mw.analyzeItem.Disabled = true
	})

	// Completion is emitted on the analysis goroutine; only the UI
	// goroutine may touch the editor, so the ingest hops over first.
	mw.state.On(app.EventAnalysisComplete, func(data interface{}) {
		outcome, ok := data.(app.AnalysisOutcome)
		if !ok {
			return
		}
		fyne.Do(func() {
			mw.analyzeItem.Disabled = false
			if outcome.Err != nil {
				// collection left untouched on failure
				mw.canvas.Refresh()
				return
			}
			mw.state.Editor.Ingest(outcome.Detections)
			mw.state.SetModified(true)
			mw.canvas.Refresh()
		})
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(filePath))
	_ = mw.prefs.Save()
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(imagefile.Extensions))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onOpenProject() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.canvas.SetImage(mw.state.Image())
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{project.Ext}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveProject() {
	if path := mw.state.ProjectPath(); path != "" {
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.SetTitle("UI Analyzer - " + mw.state.ProjectName())
		mw.updateStatus("Project saved")
		return
	}
	mw.onSaveProjectAs()
}

func (mw *MainWindow) onSaveProjectAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != project.Ext {
			path += project.Ext
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.SetTitle("UI Analyzer - " + mw.state.ProjectName())
		mw.updateStatus("Project saved: " + filepath.Base(path))
	}, mw.Window)
	fd.SetFileName("analysis" + project.Ext)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) exporter() *export.Exporter {
	return export.New(mw.state.Config.Export.Dir, mw.state.Config.Model.Name)
}

func (mw *MainWindow) onExportJSON() {
	path, err := mw.exporter().WriteJSON(mw.state.Editor.Export(), mw.state.Editor.ImageSize())
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.updateStatus("Exported: " + path)
}

func (mw *MainWindow) onExportReport() {
	path, err := mw.exporter().WriteReport(mw.state.Editor.Export(), mw.state.Editor.ImageSize())
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.updateStatus("Exported: " + path)
}

func (mw *MainWindow) onExportHTML() {
	path, err := mw.exporter().WriteHTML(mw.state.Image(), mw.state.Editor.Export())
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.updateStatus("Exported: " + path)
}

func (mw *MainWindow) onAnalyze() {
	if err := mw.state.Analyze(context.Background()); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

// onAddElement drops a hand-drawn box in the middle of the image for the
// user to move and resize.
func (mw *MainWindow) onAddElement() {
	size := mw.state.Editor.ImageSize()
	if size.Width <= 0 || size.Height <= 0 {
		mw.updateStatus("Load an image before adding elements")
		return
	}
	w := size.Width / 4
	h := size.Height / 4
	mw.state.Editor.Add(geometry.NewRect((size.Width-w)/2, (size.Height-h)/2, w, h))
	mw.state.SetModified(true)
	mw.canvas.Refresh()
}

func (mw *MainWindow) onDeleteSelected() {
	if e := mw.state.Editor.Selected(); e != nil {
		mw.state.Editor.Delete(e)
		mw.state.SetModified(true)
		mw.canvas.Refresh()
	}
}

func (mw *MainWindow) onUndoDelete() {
	if mw.state.Editor.CanUndo() {
		mw.state.Editor.UndoDelete()
		mw.state.SetModified(true)
		mw.canvas.Refresh()
	}
}

// showElementMenu pops a context menu for a right-clicked element.
func (mw *MainWindow) showElementMenu(e *editor.Element, pos fyne.Position) {
	items := []*fyne.MenuItem{
		fyne.NewMenuItem("Edit Description", func() {
			mw.sidePanel.FocusDescription()
		}),
		fyne.NewMenuItem("Suggest Description (OCR)", func() {
			mw.sidePanel.SuggestDescription()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(fmt.Sprintf("Delete element #%d", e.ID), func() {
			mw.state.Editor.Delete(e)
			mw.state.SetModified(true)
			mw.canvas.Refresh()
		}),
	}
	widget.ShowPopUpMenuAtPosition(fyne.NewMenu("", items...), mw.Canvas(), pos)
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About",
		fmt.Sprintf("UI Analyzer %s\n\nScreenshot element detection and review.", version.Version),
		mw.Window)
}

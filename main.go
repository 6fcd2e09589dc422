// Package main provides the entry point for the UI Analyzer application.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ui-analyzer/internal/app"
	"ui-analyzer/internal/config"
	"ui-analyzer/internal/project"
	"ui-analyzer/internal/version"
	"ui-analyzer/ui/mainwindow"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const appTitle = "UI Analyzer"

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	log.Info("starting", "app", appTitle, "version", version.Version)

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		log.Warn("config load failed, using defaults", "error", err)
		cfg = config.Default()
	}

	detector, err := app.NewDetector(cfg.Model)
	if err != nil {
		log.Warn("detection backend unavailable", "backend", cfg.Model.Backend, "error", err)
	}

	state := app.NewState(cfg, detector, log)

	fyneApp := fyneapp.NewWithID("ui-analyzer")
	fyneApp.Settings().SetTheme(&app.AnalyzerTheme{})

	win := mainwindow.New(fyneApp, state)
	win.SetTitle(appTitle)

	// Opening a project or image from the command line.
	if len(os.Args) > 1 {
		path := os.Args[1]
		var err error
		if filepath.Ext(path) == project.Ext {
			err = state.LoadProject(path)
		} else {
			err = state.LoadImage(path)
		}
		if err != nil {
			log.Error("failed to open", "path", path, "error", err)
		}
	}

	setupHotReload(win, log)

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary
// is recompiled.
func setupHotReload(win *mainwindow.MainWindow, log *slog.Logger) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Info("hot reload disabled: unable to determine executable path")
		return
	}

	// The watcher runs on its own goroutine; the prompt belongs to the
	// UI goroutine.
	reloader.OnNewBinary(func() {
		log.Info("hot reload: newer binary detected")
		fyne.Do(func() { promptRestart(reloader, win, log) })
	})

	reloader.Start()
}

func promptRestart(reloader *app.HotReloader, win *mainwindow.MainWindow, log *slog.Logger) {
	dialog.ShowConfirm("New Version Available",
		"The application binary has been updated.\nRestart now?",
		func(restart bool) {
			if restart {
				log.Info("hot reload: restarting")
				if err := reloader.Restart(); err != nil {
					log.Error("hot reload: restart failed", "error", err)
				}
				return
			}
			reloader.ResetBaseline()
			reloader.Start()
		}, win)
}

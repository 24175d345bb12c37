package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"plateinspect/internal/export"
	"plateinspect/internal/importer"
	"plateinspect/internal/model"
	"plateinspect/internal/project"
	"plateinspect/internal/sector"
	"plateinspect/internal/simulate"
	"plateinspect/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	window fyne.Window
	config model.AppConfig
	plate  model.Plate
	coord  *sector.Coordinator
	runner *simulate.Runner

	// UI references for dynamic updates
	plateCanvas   *widgets.PlateCanvas
	sectorCanvas  *widgets.SectorCanvas
	sectorButtons [4]*widget.Button
	statsLabels   map[string]*widget.Label
	statusLabel   *widget.Label
	progressBar   *widget.ProgressBar
	runButton     *widget.Button
	pauseButton   *widget.Button
}

func NewApp(window fyne.Window, config model.AppConfig) *App {
	a := &App{
		window: window,
		config: config,
		coord:  sector.NewCoordinator(),
	}
	a.runner = simulate.NewRunner(a.runnerConfig(), a.onDetectionEvent)
	return a
}

func (a *App) runnerConfig() simulate.Config {
	cfg := simulate.DefaultConfig()
	if a.config.DefaultTickMillis > 0 {
		cfg.Interval = time.Duration(a.config.DefaultTickMillis) * time.Millisecond
	}
	if a.config.DefaultQualifiedRate > 0 {
		cfg.QualifiedRate = a.config.DefaultQualifiedRate
	}
	cfg.BlindRate = a.config.DefaultBlindRate
	return cfg
}

// onDetectionEvent receives events on the runner goroutine and marshals them
// onto the UI thread, where the coordinator lives.
func (a *App) onDetectionEvent(ev model.StatusChangeEvent) {
	fyne.Do(func() {
		a.coord.OnStatusChange(ev)
		a.plateCanvas.Refresh()
		a.refreshRunStatus()
	})
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	// File Menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Import DXF...", func() {
			a.importFile("dxf")
		}),
		fyne.NewMenuItem("Import CSV...", func() {
			a.importFile("csv")
		}),
		fyne.NewMenuItem("Import Excel...", func() {
			a.importFile("xlsx")
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Session...", func() {
			a.openSession()
		}),
		fyne.NewMenuItem("Save Session...", func() {
			a.saveSession()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Report (PDF)...", func() {
			a.exportReport("pdf")
		}),
		fyne.NewMenuItem("Export Workbook (Excel)...", func() {
			a.exportReport("xlsx")
		}),
		fyne.NewMenuItem("Export Sector Labels...", func() {
			a.exportReport("labels")
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	// Inspection Menu
	inspectionMenu := fyne.NewMenu("Inspection",
		fyne.NewMenuItem("Start Run", func() {
			a.startRun()
		}),
		fyne.NewMenuItem("Pause / Resume", func() {
			a.togglePause()
		}),
		fyne.NewMenuItem("Stop Run", func() {
			a.stopRun()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Sector Selection", func() {
			a.coord.Clear()
		}),
	)

	// View Menu
	showLabels := fyne.NewMenuItem("Show Sector Labels", nil)
	showLabels.Checked = a.config.ShowSectorLabels
	showLabels.Action = func() {
		a.config.ShowSectorLabels = !a.config.ShowSectorLabels
		showLabels.Checked = a.config.ShowSectorLabels
		a.plateCanvas.SetShowLabels(a.config.ShowSectorLabels)
		a.saveConfig()
	}
	viewMenu := fyne.NewMenu("View", showLabels)

	// Help Menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, inspectionMenu, viewMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About PlateInspect",
		"PlateInspect — Tube Sheet Inspection Console\n\n"+
			"A cross-platform desktop application for tracking hole\n"+
			"inspection across the four sectors of a drilled plate.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.plateCanvas = widgets.NewPlateCanvas(a.coord)
	a.plateCanvas.SetShowLabels(a.config.ShowSectorLabels)
	a.plateCanvas.OnSectorTapped = a.coord.Select
	a.sectorCanvas = widgets.NewSectorCanvas(a.coord)

	a.statusLabel = widget.NewLabel("No plate loaded.")
	a.progressBar = widget.NewProgressBar()
	a.progressBar.Hide()

	a.wireCoordinatorEvents()

	left := a.buildSectorPanel()
	right := container.NewBorder(nil, a.buildStatsPanel(), nil, nil, a.sectorCanvas)
	statusBar := container.NewBorder(nil, nil, nil, a.progressBar, a.statusLabel)

	split := container.NewHSplit(a.plateCanvas, right)
	split.SetOffset(0.62)

	return container.NewBorder(
		a.buildToolbar(),
		statusBar,
		left,
		nil,
		split,
	)
}

// wireCoordinatorEvents subscribes every view to the coordinator. The views
// never talk to each other; all agreement flows through these events.
func (a *App) wireCoordinatorEvents() {
	a.coord.On(sector.EventAssignmentUpdated, func(data any) {
		ev := data.(sector.AssignmentUpdated)
		a.plateCanvas.Refresh()
		a.sectorCanvas.ClearSector()
		a.refreshSectorButtons()
		a.clearStatsLabels()
		a.statusLabel.SetText(fmt.Sprintf("%s: %d holes, center (%.1f, %.1f)",
			a.plate.Name, ev.Total, ev.Center.X, ev.Center.Y))
	})

	a.coord.On(sector.EventSectorSelected, func(data any) {
		ev := data.(sector.SectorSelected)
		a.sectorCanvas.SetSector(ev.Quadrant)
		a.plateCanvas.Refresh()
		a.refreshSectorButtons()
	})

	a.coord.On(sector.EventSectorCleared, func(any) {
		a.sectorCanvas.ClearSector()
		a.plateCanvas.Refresh()
		a.refreshSectorButtons()
		a.clearStatsLabels()
	})

	a.coord.On(sector.EventSectorStatsUpdated, func(data any) {
		ev := data.(sector.SectorStatsUpdated)
		a.setStatsLabels(ev.Quadrant, ev.Stats)
		a.sectorCanvas.Refresh()
	})
}

// ─── Toolbar ───────────────────────────────────────────────

func (a *App) buildToolbar() fyne.CanvasObject {
	openBtn := newIconButtonWithTooltip(theme.FolderOpenIcon(), "Import hole pattern (DXF, CSV, Excel)", func() {
		a.importFile("dxf")
	})
	saveBtn := newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save inspection session", func() {
		a.saveSession()
	})
	exportBtn := newIconButtonWithTooltip(theme.MailForwardIcon(), "Export PDF report", func() {
		a.exportReport("pdf")
	})

	a.runButton = widget.NewButtonWithIcon("Start Run", theme.MediaPlayIcon(), func() {
		a.startRun()
	})
	a.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() {
		a.togglePause()
	})
	a.pauseButton.Disable()
	stopBtn := widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() {
		a.stopRun()
	})

	return container.NewHBox(
		openBtn, saveBtn, exportBtn,
		widget.NewSeparator(),
		a.runButton, a.pauseButton, stopBtn,
	)
}

// ─── Sector Panel ──────────────────────────────────────────

func (a *App) buildSectorPanel() fyne.CanvasObject {
	box := container.NewVBox(
		widget.NewLabelWithStyle("Sectors", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for i, q := range sector.Quadrants {
		quad := q
		btn := widget.NewButton(q.String(), func() {
			a.coord.Select(quad)
		})
		a.sectorButtons[i] = btn
		box.Add(btn)
	}

	clearBtn := widget.NewButtonWithIcon("Overview", theme.ZoomFitIcon(), func() {
		a.coord.Clear()
	})
	box.Add(widget.NewSeparator())
	box.Add(clearBtn)

	return box
}

func (a *App) refreshSectorButtons() {
	selected, hasSelected := a.coord.Selected()
	for i, q := range sector.Quadrants {
		btn := a.sectorButtons[i]
		count := a.coord.Counts()[i]
		btn.SetText(fmt.Sprintf("%s (%d)", q.String(), count))
		if hasSelected && q == selected {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

// ─── Stats Panel ───────────────────────────────────────────

// statsFields lists the rows of the per-sector stats card, display order.
var statsFields = []string{
	"Sector", "Holes", "Pending", "Processing",
	"Qualified", "Defective", "Blind", "Tie Rod",
	"Progress", "Qualified Rate",
}

func (a *App) buildStatsPanel() fyne.CanvasObject {
	a.statsLabels = make(map[string]*widget.Label, len(statsFields))

	grid := container.NewGridWithColumns(2)
	for _, field := range statsFields {
		grid.Add(widget.NewLabelWithStyle(field, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		value := widget.NewLabel("—")
		a.statsLabels[field] = value
		grid.Add(value)
	}

	return widget.NewCard("Sector Statistics", "", grid)
}

func (a *App) setStatsLabels(q sector.Quadrant, st model.SectorStats) {
	values := map[string]string{
		"Sector":         q.String(),
		"Holes":          fmt.Sprintf("%d", st.Total),
		"Pending":        fmt.Sprintf("%d", st.Pending),
		"Processing":     fmt.Sprintf("%d", st.Processing),
		"Qualified":      fmt.Sprintf("%d", st.Qualified),
		"Defective":      fmt.Sprintf("%d", st.Defective),
		"Blind":          fmt.Sprintf("%d", st.Blind),
		"Tie Rod":        fmt.Sprintf("%d", st.TieRod),
		"Progress":       fmt.Sprintf("%.1f%%", st.Progress()),
		"Qualified Rate": fmt.Sprintf("%.1f%%", st.QualifiedRate()),
	}
	for field, text := range values {
		a.statsLabels[field].SetText(text)
	}
}

func (a *App) clearStatsLabels() {
	for _, label := range a.statsLabels {
		label.SetText("—")
	}
}

// ─── Detection Run ─────────────────────────────────────────

func (a *App) startRun() {
	if a.coord.State() == sector.StateUnloaded {
		dialog.ShowInformation("No plate loaded", "Import a hole pattern first.", a.window)
		return
	}
	if a.runner.Running() {
		return
	}
	a.runner = simulate.NewRunner(a.runnerConfig(), a.onDetectionEvent)
	if err := a.runner.Start(a.coord.Snapshot(), a.coord.Generation()); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.runButton.Disable()
	a.pauseButton.Enable()
	a.progressBar.Show()
	a.refreshRunStatus()
}

func (a *App) togglePause() {
	if !a.runner.Running() {
		return
	}
	if a.runner.Paused() {
		a.runner.Resume()
		a.pauseButton.SetText("Pause")
	} else {
		a.runner.Pause()
		a.pauseButton.SetText("Resume")
	}
}

func (a *App) stopRun() {
	a.runner.Stop()
	a.runButton.Enable()
	a.pauseButton.Disable()
	a.pauseButton.SetText("Pause")
	a.refreshRunStatus()
}

func (a *App) refreshRunStatus() {
	inspected, total := a.runner.Progress()
	if total == 0 {
		return
	}
	a.progressBar.SetValue(float64(inspected) / float64(total))
	if !a.runner.Running() {
		a.runButton.Enable()
		a.pauseButton.Disable()
		if inspected == total {
			a.statusLabel.SetText(fmt.Sprintf("Inspection complete: %d holes probed.", inspected))
		}
	}
}

// ─── Import / Sessions ─────────────────────────────────────

func (a *App) importFile(kind string) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		var result importer.ImportResult
		switch strings.ToLower(strings.TrimPrefix(reader.URI().Extension(), ".")) {
		case "dxf":
			result = importer.ImportDXF(path)
		case "xlsx":
			result = importer.ImportExcel(path)
		default:
			result = importer.ImportCSV(path)
		}
		a.handleImportResult(path, result)
	}, a.window)

	switch kind {
	case "dxf":
		d.SetFilter(storage.NewExtensionFileFilter([]string{".dxf"}))
	case "csv":
		d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".txt"}))
	case "xlsx":
		d.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx"}))
	}
	d.Show()
}

func (a *App) handleImportResult(path string, result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}
	if len(result.Warnings) > 0 {
		log.Printf("import warnings: %v", result.Warnings)
	}
	if len(result.Holes) == 0 {
		return
	}

	a.stopRun()
	a.plate = result.Plate
	a.coord.Load(result.Holes)

	a.config.AddRecentFile(path, 10)
	a.saveConfig()

	msg := fmt.Sprintf("Loaded %d holes from %s.", len(result.Holes), result.Plate.Name)
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

func (a *App) saveSession() {
	if a.coord.State() == sector.StateUnloaded {
		dialog.ShowInformation("Nothing to save", "Import a hole pattern first.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		session := project.NewSession(a.plate, a.coord.Snapshot())
		if err := project.SaveSession(writer.URI().Path(), session); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName(a.plate.Name + ".json")
	d.Show()
}

func (a *App) openSession() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		session, err := project.LoadSession(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.stopRun()
		a.plate = session.Plate
		a.coord.Load(session.Holes)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

// ─── Export ────────────────────────────────────────────────

func (a *App) exportReport(kind string) {
	if a.coord.State() == sector.StateUnloaded {
		dialog.ShowInformation("Nothing to export", "Import a hole pattern first.", a.window)
		return
	}

	rep := export.Report{
		Plate: a.plate,
		Holes: a.coord.Snapshot(),
		Index: sector.BuildIndex(a.coord.Snapshot(), a.coord.Center()),
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()

		var exportErr error
		switch kind {
		case "xlsx":
			exportErr = export.ExportWorkbook(path, rep)
		case "labels":
			exportErr = export.ExportLabels(path, rep)
		default:
			exportErr = export.ExportPDF(path, rep)
		}

		if exportErr != nil {
			dialog.ShowError(exportErr, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)

	switch kind {
	case "xlsx":
		d.SetFileName(a.plate.Name + "-report.xlsx")
	case "labels":
		d.SetFileName(a.plate.Name + "-labels.pdf")
	default:
		d.SetFileName(a.plate.Name + "-report.pdf")
	}
	d.Show()
}

// ─── Config ────────────────────────────────────────────────

func (a *App) saveConfig() {
	if err := project.SaveAppConfig(project.DefaultConfigPath(), a.config); err != nil {
		log.Printf("failed to save config: %v", err)
	}
}

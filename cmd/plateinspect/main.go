// PlateInspect — Tube Sheet Inspection Console
//
// A cross-platform desktop application for tracking hole inspection across
// the four sectors of a drilled plate.
//
// Build:
//   go build -o plateinspect ./cmd/plateinspect
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o plateinspect.exe ./cmd/plateinspect
//   GOOS=darwin  GOARCH=amd64 go build -o plateinspect-darwin ./cmd/plateinspect
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"

	"plateinspect/internal/model"
	"plateinspect/internal/project"
	"plateinspect/internal/ui"
)

func main() {
	application := app.NewWithID("io.plateinspect.console")

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Printf("failed to load config, using defaults: %v", err)
		config = model.DefaultAppConfig()
	}

	switch config.Theme {
	case "light":
		application.Settings().SetTheme(ui.NewPlateInspectThemeWithVariant(theme.VariantLight))
	case "dark":
		application.Settings().SetTheme(ui.NewPlateInspectThemeWithVariant(theme.VariantDark))
	default:
		application.Settings().SetTheme(ui.NewPlateInspectTheme())
	}

	window := application.NewWindow("PlateInspect — Tube Sheet Inspection Console")

	appUI := ui.NewApp(window, config)
	appUI.SetupMenus() // Setup the native menu bar
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}

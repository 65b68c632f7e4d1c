package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/catswipe/internal/compress"
	"github.com/ytget/catswipe/internal/config"
	"github.com/ytget/catswipe/internal/download"
	"github.com/ytget/catswipe/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.catswipe"
	AppName = "CatSwipe"
)

func main() {
	// Log version information
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCatTheme())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	downloadSvc := download.NewService(
		settings.GetImageEndpoint(),
		settings.GetMaxParallelFetches(),
		settings.GetRequestTimeout(),
	)
	compressSvc := compress.NewService()

	// Create and setup UI
	rootUI := ui.NewRootUI(myWindow, myApp, downloadSvc, compressSvc)

	// The first deck is requested once the event loop runs
	myApp.Lifecycle().SetOnStarted(rootUI.Start)
	myWindow.SetOnClosed(func() {
		log.Printf("Window closed, releasing deck")
		rootUI.Close()
	})

	// Show and run
	myWindow.ShowAndRun()
}

package ui

import (
	"image/color"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/catswipe/internal/compress"
	"github.com/ytget/catswipe/internal/config"
	"github.com/ytget/catswipe/internal/deck"
	"github.com/ytget/catswipe/internal/download"
	"github.com/ytget/catswipe/internal/model"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	source       download.Fetcher
	thumbnails   compress.Thumbnailer
	settings     *config.Settings
	localization *Localization
	mobile       *MobileUI
	deck         *deck.Controller

	// Screens, one visible at a time
	loadingView fyne.CanvasObject
	activeView  fyne.CanvasObject
	summary     *SummaryView
	state       model.DeckState

	// Loading screen
	loadingLabel    *widget.Label
	loadingProgress *widget.ProgressBar
	loadingDetail   *widget.Label

	// Active screen
	titleLabel    *widget.Label
	progressBar   *widget.ProgressBar
	progressLabel *widget.Label
	frontCard     *SwipeCard
	previewCard   *SwipeCard
	feedbackBox   *fyne.Container
	feedbackText  *canvas.Text
	likeBtn       *ActionButton
	dislikeBtn    *ActionButton

	// Batch progress debouncing
	lastProgressUpdate time.Time
	progressMutex      sync.Mutex
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, source download.Fetcher, thumbnails compress.Thumbnailer) *RootUI {
	return newRootUI(window, app, source, thumbnails, deck.Options{})
}

// newRootUI builds the UI around a deck controller configured with opts;
// deck size and feedback messages come from settings and localization
func newRootUI(window fyne.Window, app fyne.App, source download.Fetcher, thumbnails compress.Thumbnailer, opts deck.Options) *RootUI {
	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	opts.DeckSize = settings.GetDeckSize()
	opts.Messages = localization.FeedbackMessages()

	ui := &RootUI{
		window:       window,
		source:       source,
		thumbnails:   thumbnails,
		settings:     settings,
		localization: localization,
		mobile:       NewMobileUI(app),
		deck:         deck.New(source, opts),
		state:        model.DeckStateLoading,
	}

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	// Batch progress drives the loading screen
	ui.source.SetUpdateCallback(ui.onBatchProgress)

	// Deck transitions may arrive from background goroutines
	ui.deck.SetChangeCallback(func(s deck.Snapshot) {
		fyne.Do(func() {
			ui.render(s)
		})
	})

	ui.setupUI()
	log.Printf("RootUI initialized: deck size %d, language %s", opts.DeckSize, localization.GetCurrentLanguage())
	return ui
}

// Start requests the first deck
func (ui *RootUI) Start() {
	ui.deck.Start()
}

// Close stops pending work and releases the current deck
func (ui *RootUI) Close() {
	ui.deck.Close()
	log.Printf("Releasing %d cached thumbnails", ui.thumbnails.Len())
	ui.thumbnails.Purge()
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.loadingView = ui.createLoadingView()
	ui.activeView = ui.createActiveView()
	ui.summary = NewSummaryView(ui.localization, ui.thumbnails, ui.mobile, ui.onRestart)

	ui.activeView.Hide()
	ui.summary.Container().Hide()

	content := container.NewStack(ui.loadingView, ui.activeView, ui.summary.Container())
	ui.window.SetContent(container.NewPadded(content))

	// Arrow keys swipe the front card
	ui.window.Canvas().SetOnTypedKey(ui.onTypedKey)

	ui.refreshUITexts()
}

// createLoadingView creates the screen shown while a batch is fetched
func (ui *RootUI) createLoadingView() fyne.CanvasObject {
	icon := canvas.NewText(IconCat, theme.ForegroundColor())
	icon.TextSize = LoadingIconSize
	icon.Alignment = fyne.TextAlignCenter

	ui.loadingLabel = widget.NewLabel("")
	ui.loadingLabel.Alignment = fyne.TextAlignCenter

	ui.loadingProgress = widget.NewProgressBar()

	ui.loadingDetail = widget.NewLabel("")
	ui.loadingDetail.Alignment = fyne.TextAlignCenter

	return container.NewVBox(
		layout.NewSpacer(),
		icon,
		ui.loadingLabel,
		ui.loadingProgress,
		ui.loadingDetail,
		layout.NewSpacer(),
	)
}

// createActiveView creates the swiping screen
func (ui *RootUI) createActiveView() fyne.CanvasObject {
	// Header: title, progress bar, "i of N cats"
	ui.titleLabel = widget.NewLabel("")
	ui.titleLabel.Alignment = fyne.TextAlignCenter
	ui.titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.TextFormatter = func() string { return "" }

	ui.progressLabel = widget.NewLabel("")
	ui.progressLabel.Alignment = fyne.TextAlignCenter

	header := container.NewVBox(
		container.NewBorder(nil, nil, nil, settingsBtn, ui.titleLabel),
		ui.progressBar,
		ui.progressLabel,
	)

	// Cards: preview behind the front card, feedback above both
	cardSize := ui.mobile.CardSize()
	ui.previewCard = NewPreviewCard(cardSize)
	ui.frontCard = NewSwipeCard(cardSize, ui.swipe)

	ui.feedbackText = canvas.NewText("", theme.PrimaryColor())
	ui.feedbackText.TextSize = FeedbackTextSize
	ui.feedbackText.TextStyle = fyne.TextStyle{Bold: true}
	ui.feedbackText.Alignment = fyne.TextAlignCenter

	feedbackBackground := canvas.NewRectangle(CardColor)
	feedbackBackground.CornerRadius = CardCornerRadius
	ui.feedbackBox = container.NewStack(
		feedbackBackground,
		container.NewPadded(ui.feedbackText),
	)
	ui.feedbackBox.Hide()

	cards := container.NewStack(
		container.NewCenter(ui.previewCard),
		container.NewCenter(ui.frontCard),
		container.NewCenter(ui.feedbackBox),
	)

	// Action buttons
	buttonSize := ui.mobile.ActionButtonSize()
	ui.dislikeBtn = NewActionButton(IconDislike, widget.DangerImportance, buttonSize, func() {
		ui.swipeFromButton(model.DirectionLeft)
	})
	ui.likeBtn = NewActionButton(IconLike, widget.SuccessImportance, buttonSize, func() {
		ui.swipeFromButton(model.DirectionRight)
	})

	spacing := canvas.NewRectangle(color.Transparent)
	spacing.SetMinSize(fyne.NewSize(ui.mobile.GetMobileSpacing()*4, 0))

	buttons := container.NewHBox(
		layout.NewSpacer(),
		ui.dislikeBtn,
		spacing,
		ui.likeBtn,
		layout.NewSpacer(),
	)

	return container.NewBorder(header, container.NewPadded(buttons), nil, nil, cards)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	newDeckItem := fyne.NewMenuItem(ui.localization.GetText(KeyNewDeck), ui.onRestart)
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for _, code := range []string{"en", "ru", "pt"} {
		name, ok := availableLanguages[code]
		if !ok {
			continue
		}
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), newDeckItem, settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	// Feedback for the next decision uses the new language
	ui.deck.SetMessages(ui.localization.FeedbackMessages())

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization

	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.titleLabel.SetText(IconCat + " " + l.GetText(KeyAppTitle))
	ui.loadingLabel.SetText(l.GetText(KeyLoading))
	ui.frontCard.SetOverlayTexts(l.GetText(KeyOverlayLike), l.GetText(KeyOverlayDislike))
	ui.likeBtn.SetText(IconLike + " " + l.GetText(KeyLike))
	ui.dislikeBtn.SetText(IconDislike + " " + l.GetText(KeyDislike))
	ui.summary.RefreshTexts()

	ui.render(ui.deck.Snapshot())
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.onSettingsSaved)
}

// onSettingsSaved pushes saved settings to the services; deck settings apply
// from the next deck on
func (ui *RootUI) onSettingsSaved() {
	ui.source.SetEndpoint(ui.settings.GetImageEndpoint())
	ui.source.SetMaxParallel(ui.settings.GetMaxParallelFetches())
	ui.source.SetTimeout(ui.settings.GetRequestTimeout())
	ui.deck.SetDeckSize(ui.settings.GetDeckSize())

	if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
		ui.onLanguageChange(lang)
	}

	widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeySettingsSaved)), ui.window.Canvas())
}

// onRestart discards the current deck and fetches a new one
func (ui *RootUI) onRestart() {
	ui.deck.Restart()
}

// onTypedKey maps arrow keys to swipes and Enter to restart
func (ui *RootUI) onTypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyLeft:
		ui.swipeFromButton(model.DirectionLeft)
	case fyne.KeyRight:
		ui.swipeFromButton(model.DirectionRight)
	case fyne.KeyReturn, fyne.KeyEnter:
		// Enter starts a new deck once the current one is finished
		if ui.deck.State().IsTerminal() {
			ui.onRestart()
		}
	}
}

// swipe forwards a committed gesture to the deck
func (ui *RootUI) swipe(direction model.Direction) bool {
	return ui.deck.Swipe(direction)
}

// swipeFromButton records a decision without a drag and flies the card out
func (ui *RootUI) swipeFromButton(direction model.Direction) {
	if ui.frontCard.Interpreter().Dragging() {
		return
	}
	if ui.swipe(direction) {
		ui.frontCard.flyOut(direction)
	}
}

// shouldUpdateProgress limits loading screen updates; the final one always passes
func (ui *RootUI) shouldUpdateProgress(done, total int) bool {
	ui.progressMutex.Lock()
	defer ui.progressMutex.Unlock()

	now := time.Now()
	if done < total && now.Sub(ui.lastProgressUpdate) < ProgressUpdateDebounce {
		return false
	}

	ui.lastProgressUpdate = now
	return true
}

// onBatchProgress handles per-image progress from the image source
func (ui *RootUI) onBatchProgress(done, total int) {
	if !ui.shouldUpdateProgress(done, total) {
		return
	}

	fyne.Do(func() {
		ui.setLoadingProgress(done, total)
	})
}

func (ui *RootUI) setLoadingProgress(done, total int) {
	if total <= 0 {
		ui.loadingProgress.SetValue(0)
		ui.loadingDetail.SetText("")
		return
	}
	ui.loadingProgress.SetValue(float64(done) / float64(total))
	ui.loadingDetail.SetText(ui.localization.GetTextWithData(KeyLoadingProgress, map[string]any{
		"Done":  done,
		"Total": total,
	}))
}

// render shows the screen for the snapshot's state. It must run on the UI goroutine.
func (ui *RootUI) render(s deck.Snapshot) {
	if s.State == model.DeckStateLoading && ui.state != model.DeckStateLoading {
		// A new deck is on its way; previous thumbnails are stale
		ui.thumbnails.Purge()
		ui.setLoadingProgress(0, 0)
	}
	ui.state = s.State

	switch s.State {
	case model.DeckStateLoading:
		ui.frontCard.SetCandidate(nil)
		ui.previewCard.SetCandidate(nil)
		ui.showView(ui.loadingView)

	case model.DeckStateActive:
		ui.renderActive(s)
		ui.showView(ui.activeView)

	case model.DeckStateSummary:
		ui.frontCard.SetCandidate(nil)
		ui.previewCard.SetCandidate(nil)
		ui.summary.Update(s.Liked, s.Seen())
		ui.showView(ui.summary.Container())
	}
}

func (ui *RootUI) renderActive(s deck.Snapshot) {
	ui.frontCard.SetCandidate(s.Current)
	ui.previewCard.SetCandidate(s.Next)
	if s.Next == nil {
		ui.previewCard.Hide()
	} else {
		ui.previewCard.Show()
	}

	if value, ok := s.Progress(); ok {
		ui.progressBar.SetValue(value)
	}
	ui.progressLabel.SetText(ui.localization.GetTextWithData(KeyProgress, map[string]any{
		"Current": s.Index + 1,
		"Total":   s.Total,
	}))

	if s.Feedback != "" {
		ui.feedbackText.Text = s.Feedback
		ui.feedbackText.Refresh()
		ui.feedbackBox.Show()
	} else {
		ui.feedbackBox.Hide()
	}

	// Decisions are locked while feedback is shown
	ui.frontCard.SetInteractive(!s.Processing)
	ui.likeBtn.SetEnabled(!s.Processing)
	ui.dislikeBtn.SetEnabled(!s.Processing)
}

// showView makes view the only visible screen
func (ui *RootUI) showView(view fyne.CanvasObject) {
	for _, v := range []fyne.CanvasObject{ui.loadingView, ui.activeView, ui.summary.Container()} {
		if v == view {
			v.Show()
		} else {
			v.Hide()
		}
	}
}

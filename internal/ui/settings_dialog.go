package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/catswipe/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	deckSizeEntry    *widget.Entry
	maxParallelEntry *widget.Entry
	endpointEntry    *widget.Entry
	timeoutEntry     *widget.Entry
	languageSelect   *widget.Select

	// language display name -> code
	languageCodes map[string]string
}

// ShowSettingsDialog creates and shows the settings dialog. onSaved runs
// after the settings have been written.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window)
	sd.onSaved = onSaved
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.deckSizeEntry = widget.NewEntry()
	sd.deckSizeEntry.SetPlaceHolder(fmt.Sprintf("%d-%d", config.MinDeckSize, config.MaxDeckSize))
	sd.deckSizeEntry.Validator = intRangeValidator(config.MinDeckSize, config.MaxDeckSize)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder(fmt.Sprintf("%d-%d", config.MinParallel, config.MaxParallel))
	sd.maxParallelEntry.Validator = intRangeValidator(config.MinParallel, config.MaxParallel)

	sd.endpointEntry = widget.NewEntry()
	sd.endpointEntry.SetPlaceHolder(config.DefaultImageEndpoint)

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder(fmt.Sprintf("%d-%d", config.MinTimeoutSeconds, config.MaxTimeoutSeconds))
	sd.timeoutEntry.Validator = intRangeValidator(config.MinTimeoutSeconds, config.MaxTimeoutSeconds)

	// Language selection shows display names, stores codes
	sd.languageCodes = map[string]string{}
	languageOptions := []string{}
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageOptions = append(languageOptions, name)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyDeckSettings)),
		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeyDeckSize)+":"),
		sd.deckSizeEntry,

		widget.NewLabel(l.GetText(KeyMaxParallel)+":"),
		sd.maxParallelEntry,

		widget.NewLabel(l.GetText(KeyImageEndpoint)+":"),
		sd.endpointEntry,

		widget.NewLabel(l.GetText(KeyRequestTimeout)+":"),
		sd.timeoutEntry,

		widget.NewSeparator(),
		widget.NewLabel(l.GetText(KeyInterfaceSettings)),
		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(420, 520))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.deckSizeEntry.SetText(strconv.Itoa(sd.settings.GetDeckSize()))
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelFetches()))
	sd.endpointEntry.SetText(sd.settings.GetImageEndpoint())
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetRequestTimeout() / time.Second)))

	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
			break
		}
	}
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()

	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// apply writes the entered values; invalid numbers keep the stored value
func (sd *SettingsDialog) apply() {
	if n, err := strconv.Atoi(strings.TrimSpace(sd.deckSizeEntry.Text)); err == nil {
		sd.settings.SetDeckSize(n)
	}

	if n, err := strconv.Atoi(strings.TrimSpace(sd.maxParallelEntry.Text)); err == nil {
		sd.settings.SetMaxParallelFetches(n)
	}

	sd.settings.SetImageEndpoint(sd.endpointEntry.Text)

	if n, err := strconv.Atoi(strings.TrimSpace(sd.timeoutEntry.Text)); err == nil {
		sd.settings.SetRequestTimeout(time.Duration(n) * time.Second)
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
}

// intRangeValidator accepts integers within [lo, hi]
func intRangeValidator(lo, hi int) fyne.StringValidator {
	return func(text string) error {
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("not a number: %w", err)
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

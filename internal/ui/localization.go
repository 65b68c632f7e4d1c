package ui

import (
	"embed"
	"encoding/json"
	"log"

	"fyne.io/fyne/v2/lang"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/ytget/catswipe/internal/deck"
)

//go:embed locales/*.json
var localesFS embed.FS

// Text keys for localization
const (
	KeyAppTitle             = "app_title"
	KeyLoading              = "loading"
	KeyLoadingProgress      = "loading_progress"
	KeyProgress             = "progress"
	KeyLike                 = "like"
	KeyDislike              = "dislike"
	KeyOverlayLike          = "overlay_like"
	KeyOverlayDislike       = "overlay_dislike"
	KeySummaryTitle         = "summary_title"
	KeySummaryLiked         = "summary_liked"
	KeySummarySeen          = "summary_seen"
	KeySummaryEmptyTitle    = "summary_empty_title"
	KeySummaryEmptySubtitle = "summary_empty_subtitle"
	KeyRestart              = "restart"
	KeyNewDeck              = "new_deck"
	KeyFile                 = "file"
	KeySettings             = "settings"
	KeyLanguage             = "language"
	KeySave                 = "save"
	KeyCancel               = "cancel"
	KeySettingsSaved        = "settings_saved"
	KeyDeckSettings         = "deck_settings"
	KeyInterfaceSettings    = "interface_settings"
	KeyDeckSize             = "deck_size"
	KeyMaxParallel          = "max_parallel"
	KeyImageEndpoint        = "image_endpoint"
	KeyRequestTimeout       = "request_timeout"
)

// Feedback message keys, per direction
var (
	likeFeedbackKeys    = []string{"feedback_like_1", "feedback_like_2", "feedback_like_3"}
	dislikeFeedbackKeys = []string{"feedback_dislike_1", "feedback_dislike_2", "feedback_dislike_3"}
)

// Supported languages, English first as the fallback
var supportedLanguages = []language.Tag{
	language.English,
	language.Russian,
	language.Portuguese,
}

// Localization manages UI text translations
type Localization struct {
	bundle          *i18n.Bundle
	localizer       *i18n.Localizer
	currentLanguage string
}

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, tag := range supportedLanguages {
		file := "locales/" + tag.String() + ".json"
		data, err := localesFS.ReadFile(file)
		if err != nil {
			log.Printf("Warning: failed to read locale file %s: %v", file, err)
			continue
		}
		if _, err := bundle.ParseMessageFileBytes(data, tag.String()+".json"); err != nil {
			log.Printf("Warning: failed to parse locale file %s: %v", file, err)
		}
	}

	l := &Localization{bundle: bundle}
	l.use("en")
	return l
}

// SetLanguage sets the current language. "system" resolves the device
// locale; unsupported languages are ignored.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
	}

	if _, exists := l.GetAvailableLanguages()[lang]; exists {
		l.use(lang)
	}
}

func (l *Localization) use(lang string) {
	l.currentLanguage = lang
	l.localizer = i18n.NewLocalizer(l.bundle, lang, language.English.String())
}

// GetText returns localized text for the given key, or the key itself
func (l *Localization) GetText(key string) string {
	return l.localize(&i18n.LocalizeConfig{MessageID: key})
}

// GetTextWithData returns localized text with template data filled in
func (l *Localization) GetTextWithData(key string, data map[string]any) string {
	return l.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

// GetPlural returns the plural form of key for count; {{.Count}} is available
func (l *Localization) GetPlural(key string, count int) string {
	return l.localize(&i18n.LocalizeConfig{
		MessageID:    key,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (l *Localization) localize(cfg *i18n.LocalizeConfig) string {
	text, err := l.localizer.Localize(cfg)
	if err != nil || text == "" {
		// Final fallback - return key itself
		return cfg.MessageID
	}
	return text
}

// FeedbackMessages returns the localized feedback sets for the deck controller
func (l *Localization) FeedbackMessages() deck.Messages {
	messages := deck.Messages{}
	for _, key := range likeFeedbackKeys {
		messages.Like = append(messages.Like, l.GetText(key))
	}
	for _, key := range dislikeFeedbackKeys {
		messages.Dislike = append(messages.Dislike, l.GetText(key))
	}
	return messages
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// systemLanguage matches the device locale against the supported languages
func systemLanguage() string {
	return matchLanguage(lang.SystemLocale().LanguageString())
}

// matchLanguage maps a BCP 47 locale such as "pt-BR" onto a supported base language
func matchLanguage(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English.String()
	}
	matcher := language.NewMatcher(supportedLanguages)
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.English.String()
	}
	return supportedLanguages[index].String()
}

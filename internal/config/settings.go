package config

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyDeckSize       = "deck_size"
	KeyMaxParallel    = "max_parallel_fetches"
	KeyImageEndpoint  = "image_endpoint"
	KeyRequestTimeout = "request_timeout_seconds"
	KeyLanguage       = "app_language"
)

// Default values
const (
	DefaultDeckSize       = 15
	DefaultMaxParallel    = 5
	DefaultImageEndpoint  = "https://cataas.com/cat"
	DefaultRequestTimeout = 20 * time.Second
	DefaultLanguage       = "system"
)

// Bounds
const (
	MinDeckSize       = 1
	MaxDeckSize       = 50
	MinParallel       = 1
	MaxParallel       = 15
	MinTimeoutSeconds = 1
	MaxTimeoutSeconds = 120
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDeckSize returns how many cats are fetched per deck
func (s *Settings) GetDeckSize() int {
	value := s.app.Preferences().Int(KeyDeckSize)
	if value <= 0 {
		s.SetDeckSize(DefaultDeckSize)
		return DefaultDeckSize
	}
	return value
}

// SetDeckSize sets how many cats are fetched per deck
func (s *Settings) SetDeckSize(count int) {
	s.app.Preferences().SetInt(KeyDeckSize, clamp(count, MinDeckSize, MaxDeckSize))
}

// GetMaxParallelFetches returns the maximum number of concurrent image requests
func (s *Settings) GetMaxParallelFetches() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelFetches(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelFetches sets the maximum number of concurrent image requests
func (s *Settings) SetMaxParallelFetches(count int) {
	s.app.Preferences().SetInt(KeyMaxParallel, clamp(count, MinParallel, MaxParallel))
}

// GetImageEndpoint returns the remote image provider endpoint
func (s *Settings) GetImageEndpoint() string {
	endpoint := s.app.Preferences().String(KeyImageEndpoint)
	if endpoint == "" {
		s.SetImageEndpoint(DefaultImageEndpoint)
		return DefaultImageEndpoint
	}
	return endpoint
}

// SetImageEndpoint sets the remote image provider endpoint.
// An empty value restores the default.
func (s *Settings) SetImageEndpoint(endpoint string) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultImageEndpoint
	}
	s.app.Preferences().SetString(KeyImageEndpoint, endpoint)
}

// GetRequestTimeout returns the per-image request timeout
func (s *Settings) GetRequestTimeout() time.Duration {
	seconds := s.app.Preferences().Int(KeyRequestTimeout)
	if seconds <= 0 {
		s.SetRequestTimeout(DefaultRequestTimeout)
		return DefaultRequestTimeout
	}
	return time.Duration(seconds) * time.Second
}

// SetRequestTimeout sets the per-image request timeout, rounded to seconds
func (s *Settings) SetRequestTimeout(timeout time.Duration) {
	seconds := clamp(int(timeout/time.Second), MinTimeoutSeconds, MaxTimeoutSeconds)
	s.app.Preferences().SetInt(KeyRequestTimeout, seconds)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

package config

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestDeckSize(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	size := settings.GetDeckSize()
	if size != DefaultDeckSize {
		t.Errorf("Expected default deck size %d, got %d", DefaultDeckSize, size)
	}

	settings.SetDeckSize(3)
	if settings.GetDeckSize() != 3 {
		t.Errorf("Expected deck size 3, got %d", settings.GetDeckSize())
	}

	// Test boundary values
	settings.SetDeckSize(0)
	if settings.GetDeckSize() != MinDeckSize {
		t.Errorf("Deck size should be clamped to minimum %d", MinDeckSize)
	}

	settings.SetDeckSize(500)
	if settings.GetDeckSize() != MaxDeckSize {
		t.Errorf("Deck size should be clamped to maximum %d", MaxDeckSize)
	}
}

func TestMaxParallelFetches(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	maxParallel := settings.GetMaxParallelFetches()
	if maxParallel != DefaultMaxParallel {
		t.Errorf("Expected default max parallel %d, got %d", DefaultMaxParallel, maxParallel)
	}

	settings.SetMaxParallelFetches(8)
	if settings.GetMaxParallelFetches() != 8 {
		t.Errorf("Expected max parallel 8, got %d", settings.GetMaxParallelFetches())
	}

	settings.SetMaxParallelFetches(-3)
	if settings.GetMaxParallelFetches() != MinParallel {
		t.Error("Max parallel should be clamped to minimum 1")
	}

	settings.SetMaxParallelFetches(99)
	if settings.GetMaxParallelFetches() != MaxParallel {
		t.Errorf("Max parallel should be clamped to maximum %d", MaxParallel)
	}
}

func TestImageEndpoint(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetImageEndpoint() != DefaultImageEndpoint {
		t.Errorf("Expected default endpoint %s, got %s", DefaultImageEndpoint, settings.GetImageEndpoint())
	}

	settings.SetImageEndpoint("  https://example.com/cat  ")
	if settings.GetImageEndpoint() != "https://example.com/cat" {
		t.Errorf("Expected trimmed endpoint, got %q", settings.GetImageEndpoint())
	}

	// Empty endpoint defaults back
	settings.SetImageEndpoint("")
	if settings.GetImageEndpoint() != DefaultImageEndpoint {
		t.Errorf("Empty endpoint should default to %s, got %s", DefaultImageEndpoint, settings.GetImageEndpoint())
	}
}

func TestRequestTimeout(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetRequestTimeout() != DefaultRequestTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultRequestTimeout, settings.GetRequestTimeout())
	}

	settings.SetRequestTimeout(7 * time.Second)
	if settings.GetRequestTimeout() != 7*time.Second {
		t.Errorf("Expected timeout 7s, got %v", settings.GetRequestTimeout())
	}

	settings.SetRequestTimeout(10 * time.Millisecond)
	if settings.GetRequestTimeout() != MinTimeoutSeconds*time.Second {
		t.Errorf("Timeout should be clamped to %ds, got %v", MinTimeoutSeconds, settings.GetRequestTimeout())
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("pt")
	if settings.GetLanguage() != "pt" {
		t.Errorf("Expected language 'pt', got %s", settings.GetLanguage())
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru", "pt"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}

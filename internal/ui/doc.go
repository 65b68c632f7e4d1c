package ui

// Package ui contains the Fyne-based user interface for the application.
// It renders the deck (swipe cards, progress header, action buttons, feedback,
// summary grid), wires user gestures to the deck controller, and hosts the
// settings dialog. All UI strings are localized via Localization.

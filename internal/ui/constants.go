package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconLike     = "♥"
	IconDislike  = "✕"
	IconCat      = "🐱"
	IconRestart  = "↻"
)

// Card sizing
const (
	CardWidth  float32 = 340
	CardHeight float32 = 440

	MobileCardWidth  float32 = 300
	MobileCardHeight float32 = 400

	CardCornerRadius float32 = 16
	CardPadding      float32 = 6

	// Preview card rendering
	PreviewScale        float32 = 0.95
	PreviewTranslucency         = 0.2

	// Overlay label
	OverlayTextSize  float32 = 36
	OverlayMaxAlpha  float32 = 160
	OverlayTextInset float32 = 24
)

// Touch target minimum sizes (iOS/Android guidelines)
const (
	MinTouchTargetSize float32 = 44
	ActionButtonSize   float32 = 64
	MobileButtonSize   float32 = 72
)

// Feedback message
const (
	FeedbackTextSize float32 = 28
)

// Summary grid
const (
	SummaryTileSize  float32 = 150
	SummaryBadgeSize float32 = 28
	SummaryIconSize  float32 = 48
)

// Loading screen
const (
	LoadingIconSize float32 = 64
)

// Window
const (
	WindowWidth  float32 = 480
	WindowHeight float32 = 720
)

// Debounce durations
const (
	ProgressUpdateDebounce = 50 * time.Millisecond
)

// Animation durations
const (
	FlyOutDuration = 250 * time.Millisecond
	FlyOutDistance = 1.5 // multiples of the card width
)

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Overlay and accent colors
var (
	LikeColor    = color.NRGBA{R: 34, G: 197, B: 94, A: 255}  // green
	DislikeColor = color.NRGBA{R: 239, G: 68, B: 68, A: 255}  // red
	BadgeColor   = color.NRGBA{R: 236, G: 72, B: 153, A: 255} // pink
	CardColor    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// CatTheme defines a warm theme for the UI with rounded, roomy controls
type CatTheme struct{}

// NewCatTheme creates a new cat theme
func NewCatTheme() fyne.Theme {
	return &CatTheme{}
}

// Color returns theme colors
func (t *CatTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return LikeColor
	case theme.ColorNameError:
		return DislikeColor
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 249, G: 115, B: 22, A: 255} // Orange for primary actions
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.NRGBA{R: 28, G: 22, B: 20, A: 255} // Warm dark
		}
		return color.NRGBA{R: 255, G: 247, B: 237, A: 255} // Warm light
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.NRGBA{R: 41, G: 37, B: 36, A: 255}
	}

	// Use default colors for everything else
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CatTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CatTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *CatTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameInputRadius:
		return 10
	case theme.SizeNameSelectionRadius:
		return 8
	case theme.SizeNameHeadingText:
		return 26
	}

	return theme.DefaultTheme().Size(name)
}

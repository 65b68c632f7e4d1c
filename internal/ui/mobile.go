package ui

import (
	"fyne.io/fyne/v2"
)

// MobileUI provides mobile-specific sizing for the swipe screens
type MobileUI struct {
	app fyne.App
}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI(app fyne.App) *MobileUI {
	return &MobileUI{app: app}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return fyne.CurrentDevice().IsMobile()
}

// CardSize returns the swipe card size for the current device
func (m *MobileUI) CardSize() fyne.Size {
	if m.IsMobileDevice() {
		return fyne.NewSize(MobileCardWidth, MobileCardHeight)
	}
	return fyne.NewSize(CardWidth, CardHeight)
}

// ActionButtonSize returns the like/dislike button size
func (m *MobileUI) ActionButtonSize() float32 {
	if m.IsMobileDevice() {
		return MobileButtonSize
	}
	return ActionButtonSize
}

// GetMobileSpacing returns appropriate spacing for mobile devices
func (m *MobileUI) GetMobileSpacing() float32 {
	if m.IsMobileDevice() {
		return 16 // Larger spacing for mobile
	}
	return 8 // Standard spacing for desktop
}

// GetDeviceOrientation returns the current device orientation
func (m *MobileUI) GetDeviceOrientation() fyne.DeviceOrientation {
	return fyne.CurrentDevice().Orientation()
}

// IsLandscape returns true if device is in landscape orientation
func (m *MobileUI) IsLandscape() bool {
	orientation := m.GetDeviceOrientation()
	return orientation == fyne.OrientationHorizontalLeft || orientation == fyne.OrientationHorizontalRight
}

// SummaryColumns returns how many thumbnails fit in a summary grid row
func (m *MobileUI) SummaryColumns() int {
	if m.IsMobileDevice() && !m.IsLandscape() {
		return 2
	}
	return 3
}

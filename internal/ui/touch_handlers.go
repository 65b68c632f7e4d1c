package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// ActionButton is a like/dislike button with a touch-friendly minimum size.
// Taps go through the embedded button; touch events only drive the pressed look.
type ActionButton struct {
	widget.Button

	size       float32
	importance widget.Importance
	pressed    bool
}

var _ mobile.Touchable = (*ActionButton)(nil)

// NewActionButton creates a new action button with the given square size
func NewActionButton(label string, importance widget.Importance, size float32, onTapped func()) *ActionButton {
	if size < MinTouchTargetSize {
		size = MinTouchTargetSize
	}

	btn := &ActionButton{
		size:       size,
		importance: importance,
	}
	btn.Text = label
	btn.Importance = importance
	btn.OnTapped = onTapped
	btn.ExtendBaseWidget(btn)
	return btn
}

// MinSize enforces the touch target size
func (b *ActionButton) MinSize() fyne.Size {
	return b.Button.MinSize().Max(fyne.NewSize(b.size, b.size))
}

// SetEnabled enables or disables the button
func (b *ActionButton) SetEnabled(enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.release()
		b.Disable()
	}
}

// TouchDown handles touch down events
func (b *ActionButton) TouchDown(*mobile.TouchEvent) {
	if b.Disabled() || b.pressed {
		return
	}
	b.pressed = true
	b.Importance = widget.HighImportance
	b.Refresh()
}

// TouchUp handles touch up events
func (b *ActionButton) TouchUp(*mobile.TouchEvent) {
	b.release()
}

// TouchCancel handles touch cancel events
func (b *ActionButton) TouchCancel(*mobile.TouchEvent) {
	b.release()
}

func (b *ActionButton) release() {
	if !b.pressed {
		return
	}
	b.pressed = false
	b.Importance = b.importance
	b.Refresh()
}

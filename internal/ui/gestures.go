package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/catswipe/internal/gesture"
	"github.com/ytget/catswipe/internal/model"
)

// SwipeCard shows one candidate and turns pointer drags or touches on it
// into like/dislike decisions. A preview card renders the next candidate
// behind the front card and ignores all input.
type SwipeCard struct {
	widget.BaseWidget

	interpreter *gesture.Interpreter
	candidate   *model.Candidate
	image       *canvas.Image
	size        fyne.Size
	preview     bool

	likeText    string
	dislikeText string

	// onSwipe reports a committed decision; false means it was rejected
	// and the card snaps back
	onSwipe func(model.Direction) bool

	exiting   bool
	exit      fyne.Delta
	animation *fyne.Animation
}

var (
	_ fyne.Draggable   = (*SwipeCard)(nil)
	_ mobile.Touchable = (*SwipeCard)(nil)
	_ fyne.Widget      = (*SwipeCard)(nil)
)

// NewSwipeCard creates the interactive front card
func NewSwipeCard(size fyne.Size, onSwipe func(model.Direction) bool) *SwipeCard {
	card := &SwipeCard{
		interpreter: gesture.New(true),
		size:        size,
		onSwipe:     onSwipe,
		likeText:    "LIKE",
		dislikeText: "NOPE",
	}
	card.ExtendBaseWidget(card)
	return card
}

// NewPreviewCard creates the non-interactive card shown behind the front card
func NewPreviewCard(size fyne.Size) *SwipeCard {
	card := &SwipeCard{
		interpreter: gesture.New(false),
		size:        size,
		preview:     true,
	}
	card.ExtendBaseWidget(card)
	return card
}

// SetCandidate shows c on the card and resets any gesture in progress
func (c *SwipeCard) SetCandidate(candidate *model.Candidate) {
	if c.candidate == candidate {
		return
	}

	c.stopAnimation()
	c.interpreter.Cancel()
	c.candidate = candidate
	c.image = nil
	if candidate != nil {
		c.image = candidateImage(candidate)
	}
	c.Refresh()
}

// Candidate returns the candidate shown on the card
func (c *SwipeCard) Candidate() *model.Candidate {
	return c.candidate
}

// SetInteractive enables or disables gesture input; previews never accept input
func (c *SwipeCard) SetInteractive(interactive bool) {
	if c.preview {
		return
	}
	if !interactive && c.interpreter.Dragging() {
		c.interpreter.Cancel()
		c.Refresh()
	}
	c.interpreter.SetInteractive(interactive)
}

// SetOverlayTexts sets the localized LIKE / NOPE overlay labels
func (c *SwipeCard) SetOverlayTexts(like, dislike string) {
	c.likeText = like
	c.dislikeText = dislike
	c.Refresh()
}

// Interpreter exposes the card's gesture state
func (c *SwipeCard) Interpreter() *gesture.Interpreter {
	return c.interpreter
}

// Dragged handles pointer drag events
func (c *SwipeCard) Dragged(ev *fyne.DragEvent) {
	if !c.interpreter.Dragging() {
		if c.exiting || !c.interpreter.Begin(ev.AbsolutePosition.Subtract(ev.Dragged)) {
			return
		}
	}
	c.interpreter.Update(ev.AbsolutePosition)
	c.Refresh()
}

// DragEnd handles the end of a pointer drag
func (c *SwipeCard) DragEnd() {
	c.finish()
}

// TouchDown handles touch down events
func (c *SwipeCard) TouchDown(ev *mobile.TouchEvent) {
	if c.exiting {
		return
	}
	if c.interpreter.Begin(ev.AbsolutePosition) {
		c.Refresh()
	}
}

// TouchUp handles touch up events
func (c *SwipeCard) TouchUp(ev *mobile.TouchEvent) {
	c.interpreter.Update(ev.AbsolutePosition)
	c.finish()
}

// TouchCancel handles touch cancel events
func (c *SwipeCard) TouchCancel(*mobile.TouchEvent) {
	c.interpreter.Cancel()
	c.Refresh()
}

// finish ends the gesture and reports a committed direction
func (c *SwipeCard) finish() {
	outcome := c.interpreter.End()
	switch outcome.Decision {
	case gesture.DecisionCommit:
		if c.onSwipe != nil && c.onSwipe(outcome.Direction) {
			c.flyOut(outcome.Direction)
			return
		}
		c.interpreter.Cancel()
		c.Refresh()
	case gesture.DecisionCancel:
		c.Refresh()
	}
}

// flyOut moves the card off screen in the committed direction
func (c *SwipeCard) flyOut(direction model.Direction) {
	start := c.interpreter.Displacement()
	target := c.size.Width * FlyOutDistance
	if !direction.IsLike() {
		target = -target
	}

	c.stopAnimation()
	c.exiting = true
	c.exit = start
	c.animation = fyne.NewAnimation(FlyOutDuration, func(progress float32) {
		c.exit = fyne.NewDelta(start.DX+(target-start.DX)*progress, start.DY)
		c.Refresh()
	})
	c.animation.Curve = fyne.AnimationEaseIn
	c.animation.Start()
}

func (c *SwipeCard) stopAnimation() {
	if c.animation != nil {
		c.animation.Stop()
		c.animation = nil
	}
	c.exiting = false
	c.exit = fyne.Delta{}
}

// offset returns how far the card content is translated from rest
func (c *SwipeCard) offset() fyne.Delta {
	if c.exiting {
		return c.exit
	}
	return c.interpreter.Displacement()
}

// MinSize returns the card size
func (c *SwipeCard) MinSize() fyne.Size {
	c.ExtendBaseWidget(c)
	return c.size
}

// CreateRenderer creates the card renderer
func (c *SwipeCard) CreateRenderer() fyne.WidgetRenderer {
	c.ExtendBaseWidget(c)

	background := canvas.NewRectangle(CardColor)
	background.CornerRadius = CardCornerRadius
	background.StrokeWidth = 1
	background.StrokeColor = color.NRGBA{A: 40}

	likeTint := canvas.NewRectangle(color.Transparent)
	likeTint.CornerRadius = CardCornerRadius
	dislikeTint := canvas.NewRectangle(color.Transparent)
	dislikeTint.CornerRadius = CardCornerRadius

	likeLabel := canvas.NewText("", color.Transparent)
	likeLabel.TextSize = OverlayTextSize
	likeLabel.TextStyle = fyne.TextStyle{Bold: true}
	dislikeLabel := canvas.NewText("", color.Transparent)
	dislikeLabel.TextSize = OverlayTextSize
	dislikeLabel.TextStyle = fyne.TextStyle{Bold: true}

	r := &swipeCardRenderer{
		card:         c,
		background:   background,
		likeTint:     likeTint,
		dislikeTint:  dislikeTint,
		likeLabel:    likeLabel,
		dislikeLabel: dislikeLabel,
	}
	r.Refresh()
	return r
}

type swipeCardRenderer struct {
	card *SwipeCard

	background   *canvas.Rectangle
	image        *canvas.Image
	likeTint     *canvas.Rectangle
	dislikeTint  *canvas.Rectangle
	likeLabel    *canvas.Text
	dislikeLabel *canvas.Text

	objects []fyne.CanvasObject
}

func (r *swipeCardRenderer) Layout(size fyne.Size) {
	scale := float32(1)
	if r.card.preview {
		scale = PreviewScale
	}

	cardSize := fyne.NewSize(size.Width*scale, size.Height*scale)
	pos := fyne.NewPos((size.Width-cardSize.Width)/2, (size.Height-cardSize.Height)/2).Add(r.card.offset())

	for _, obj := range []fyne.CanvasObject{r.background, r.likeTint, r.dislikeTint} {
		obj.Move(pos)
		obj.Resize(cardSize)
	}

	if r.image != nil {
		r.image.Move(pos.AddXY(CardPadding, CardPadding))
		r.image.Resize(fyne.NewSize(cardSize.Width-2*CardPadding, cardSize.Height-2*CardPadding))
	}

	likeSize := r.likeLabel.MinSize()
	r.likeLabel.Resize(likeSize)
	r.likeLabel.Move(pos.AddXY(OverlayTextInset, OverlayTextInset))

	dislikeSize := r.dislikeLabel.MinSize()
	r.dislikeLabel.Resize(dislikeSize)
	r.dislikeLabel.Move(pos.AddXY(cardSize.Width-dislikeSize.Width-OverlayTextInset, OverlayTextInset))
}

func (r *swipeCardRenderer) MinSize() fyne.Size {
	return r.card.size
}

func (r *swipeCardRenderer) Refresh() {
	card := r.card

	if r.image != card.image || r.objects == nil {
		r.image = card.image
		r.objects = []fyne.CanvasObject{r.background}
		if r.image != nil {
			r.objects = append(r.objects, r.image)
		}
		r.objects = append(r.objects, r.likeTint, r.dislikeTint, r.likeLabel, r.dislikeLabel)
	}

	if card.preview {
		r.background.FillColor = fadeColor(CardColor, PreviewTranslucency)
		if r.image != nil {
			r.image.Translucency = PreviewTranslucency
		}
	} else {
		r.background.FillColor = CardColor
	}

	likeOpacity := card.interpreter.LikeOpacity()
	dislikeOpacity := card.interpreter.DislikeOpacity()

	r.likeTint.FillColor = withAlpha(LikeColor, likeOpacity*OverlayMaxAlpha)
	r.dislikeTint.FillColor = withAlpha(DislikeColor, dislikeOpacity*OverlayMaxAlpha)

	r.likeLabel.Text = card.likeText
	r.likeLabel.Color = withAlpha(LikeColor, likeOpacity*255)
	r.dislikeLabel.Text = card.dislikeText
	r.dislikeLabel.Color = withAlpha(DislikeColor, dislikeOpacity*255)

	r.Layout(card.Size())
	for _, obj := range r.objects {
		obj.Refresh()
	}
}

func (r *swipeCardRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *swipeCardRenderer) Destroy() {
	r.card.stopAnimation()
}

// withAlpha returns c with its alpha replaced by a (0..255)
func withAlpha(c color.NRGBA, a float32) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 255 {
		a = 255
	}
	c.A = uint8(a)
	return c
}

// fadeColor makes c more transparent by translucency (0..1)
func fadeColor(c color.NRGBA, translucency float64) color.NRGBA {
	c.A = uint8(float64(c.A) * (1 - translucency))
	return c
}

package ui

import (
	"errors"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/catswipe/internal/compress"
	"github.com/ytget/catswipe/internal/model"
)

// SummaryView shows the liked cats once every candidate has a decision
type SummaryView struct {
	localization *Localization
	thumbnails   compress.Thumbnailer
	mobile       *MobileUI
	onRestart    func()

	liked []*model.Candidate
	seen  int

	// tiles are built once per liked candidate and reused across re-renders
	tiles map[*model.Candidate]fyne.CanvasObject

	titleLabel    *widget.Label
	countLabel    *widget.Label
	seenLabel     *widget.Label
	emptyTitle    *widget.Label
	emptySubtitle *widget.Label
	restartBtn    *widget.Button

	grid      *fyne.Container
	likedBox  *fyne.Container
	emptyBox  *fyne.Container
	container *fyne.Container
}

// NewSummaryView creates the summary screen
func NewSummaryView(localization *Localization, thumbnails compress.Thumbnailer, mobile *MobileUI, onRestart func()) *SummaryView {
	sv := &SummaryView{
		localization: localization,
		thumbnails:   thumbnails,
		mobile:       mobile,
		onRestart:    onRestart,
		tiles:        make(map[*model.Candidate]fyne.CanvasObject),
	}
	sv.createUI()
	return sv
}

func (sv *SummaryView) createUI() {
	sv.titleLabel = widget.NewLabel("")
	sv.titleLabel.Alignment = fyne.TextAlignCenter
	sv.titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	sv.countLabel = widget.NewLabel("")
	sv.countLabel.Alignment = fyne.TextAlignCenter

	sv.seenLabel = widget.NewLabel("")
	sv.seenLabel.Alignment = fyne.TextAlignCenter

	sv.grid = container.NewGridWithColumns(sv.mobile.SummaryColumns())
	sv.likedBox = container.NewBorder(container.NewVBox(sv.countLabel, sv.seenLabel), nil, nil, nil, container.NewVScroll(sv.grid))

	emptyIcon := canvas.NewText(IconCat, theme.ForegroundColor())
	emptyIcon.TextSize = SummaryIconSize
	emptyIcon.Alignment = fyne.TextAlignCenter

	sv.emptyTitle = widget.NewLabel("")
	sv.emptyTitle.Alignment = fyne.TextAlignCenter
	sv.emptyTitle.TextStyle = fyne.TextStyle{Bold: true}
	sv.emptyTitle.Wrapping = fyne.TextWrapWord

	sv.emptySubtitle = widget.NewLabel("")
	sv.emptySubtitle.Alignment = fyne.TextAlignCenter
	sv.emptySubtitle.Wrapping = fyne.TextWrapWord

	sv.emptyBox = container.NewVBox(layout.NewSpacer(), emptyIcon, sv.emptyTitle, sv.emptySubtitle, layout.NewSpacer())
	sv.emptyBox.Hide()

	sv.restartBtn = widget.NewButton("", func() {
		if sv.onRestart != nil {
			sv.onRestart()
		}
	})
	sv.restartBtn.Importance = widget.HighImportance

	sv.container = container.NewBorder(
		sv.titleLabel,
		container.NewPadded(sv.restartBtn),
		nil,
		nil,
		container.NewStack(sv.likedBox, sv.emptyBox),
	)
	sv.RefreshTexts()
}

// Container returns the summary screen
func (sv *SummaryView) Container() fyne.CanvasObject {
	return sv.container
}

// Update shows the liked candidates in like order and how many were seen.
// Tiles of candidates already shown are reused.
func (sv *SummaryView) Update(liked []*model.Candidate, seen int) {
	sv.seen = seen
	if !sameCandidates(sv.liked, liked) {
		sv.liked = liked
		sv.rebuildGrid()
	}

	if len(liked) == 0 {
		sv.likedBox.Hide()
		sv.emptyBox.Show()
	} else {
		sv.emptyBox.Hide()
		sv.likedBox.Show()
	}
	sv.RefreshTexts()
}

// RefreshTexts re-applies localized texts
func (sv *SummaryView) RefreshTexts() {
	l := sv.localization
	sv.titleLabel.SetText(l.GetText(KeySummaryTitle))
	sv.countLabel.SetText(l.GetPlural(KeySummaryLiked, len(sv.liked)))
	sv.seenLabel.SetText(l.GetPlural(KeySummarySeen, sv.seen))
	sv.emptyTitle.SetText(l.GetText(KeySummaryEmptyTitle))
	sv.emptySubtitle.SetText(l.GetText(KeySummaryEmptySubtitle))
	sv.restartBtn.SetText(IconRestart + " " + l.GetText(KeyRestart))
}

// rebuildGrid lays out one tile per liked candidate, dropping tiles of
// candidates no longer shown
func (sv *SummaryView) rebuildGrid() {
	tiles := make(map[*model.Candidate]fyne.CanvasObject, len(sv.liked))
	objects := make([]fyne.CanvasObject, 0, len(sv.liked))
	for _, c := range sv.liked {
		tile, ok := sv.tiles[c]
		if !ok {
			tile = sv.createTile(c)
		}
		tiles[c] = tile
		objects = append(objects, tile)
	}
	sv.tiles = tiles
	sv.grid.Objects = objects
	sv.grid.Refresh()
}

func sameCandidates(a, b []*model.Candidate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// createTile builds a thumbnail with a heart badge
func (sv *SummaryView) createTile(c *model.Candidate) fyne.CanvasObject {
	var img *canvas.Image
	thumb, err := sv.thumbnails.Thumbnail(c)
	switch {
	case err == nil:
		img = canvas.NewImageFromImage(thumb)
		img.FillMode = canvas.ImageFillContain
	case errors.Is(err, compress.ErrNoContent):
		img = candidateImage(c)
	default:
		log.Printf("Thumbnail failed for %s, using full image: %v", c.ID, err)
		img = candidateImage(c)
	}
	img.SetMinSize(fyne.NewSize(SummaryTileSize, SummaryTileSize))

	background := canvas.NewRectangle(CardColor)
	background.CornerRadius = CardCornerRadius

	badgeCircle := canvas.NewCircle(BadgeColor)
	badgeText := canvas.NewText(IconLike, CardColor)
	badgeText.TextStyle = fyne.TextStyle{Bold: true}
	badge := container.NewGridWrap(
		fyne.NewSize(SummaryBadgeSize, SummaryBadgeSize),
		container.NewStack(badgeCircle, container.NewCenter(badgeText)),
	)

	return container.NewStack(
		background,
		container.NewPadded(img),
		container.NewVBox(container.NewHBox(layout.NewSpacer(), badge)),
	)
}

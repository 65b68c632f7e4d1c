package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/catswipe/internal/model"
)

// candidateResource wraps the locally held image bytes of a candidate.
// It returns nil once the candidate has been released or when it is a fallback.
func candidateResource(c *model.Candidate) fyne.Resource {
	if c == nil {
		return nil
	}
	content := c.Content()
	if len(content) == 0 {
		return nil
	}
	return fyne.NewStaticResource(c.Name(), content)
}

// candidateImage creates an image for a candidate. Local bytes are shown
// directly; a fallback candidate shows a placeholder while its remote
// reference loads in the background.
func candidateImage(c *model.Candidate) *canvas.Image {
	var img *canvas.Image
	if res := candidateResource(c); res != nil {
		img = canvas.NewImageFromResource(res)
	} else {
		img = canvas.NewImageFromResource(theme.BrokenImageIcon())
		if c != nil && c.Reference() != "" {
			go loadRemoteImage(img, c.Reference())
		}
	}

	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	return img
}

// loadRemoteImage fetches the remote reference and swaps it into img
func loadRemoteImage(img *canvas.Image, sourceURL string) {
	uri, err := storage.ParseURI(sourceURL)
	if err != nil {
		log.Printf("Invalid image reference %q: %v", sourceURL, err)
		return
	}

	remote := canvas.NewImageFromURI(uri)
	if remote == nil || (remote.Image == nil && remote.Resource == nil) {
		log.Printf("Failed to load remote image %s", sourceURL)
		return
	}

	fyne.Do(func() {
		img.Resource = remote.Resource
		img.Image = remote.Image
		img.Refresh()
	})
}

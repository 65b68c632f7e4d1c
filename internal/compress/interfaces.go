package compress

import (
	"image"

	"github.com/ytget/catswipe/internal/model"
)

// Thumbnailer defines the interface for the thumbnail service.
type Thumbnailer interface {
	Thumbnail(c *model.Candidate) (image.Image, error)
	Purge()

	// Len returns the number of cached thumbnails
	Len() int
}

package compress

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"

	// Decoders for the formats cat providers serve
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"

	"github.com/ytget/catswipe/internal/model"
)

// Thumbnail settings
const (
	DefaultThumbnailSize uint = 240
	Interpolation             = resize.Lanczos3
)

// ErrNoContent is returned for candidates that hold no local image bytes
var ErrNoContent = errors.New("candidate has no local content")

// Service produces scaled-down previews of liked candidates
type Service struct {
	size       uint
	cache      map[string]image.Image
	cacheMutex sync.RWMutex
}

// NewService creates a new thumbnail service
func NewService() *Service {
	return NewServiceWithSize(DefaultThumbnailSize)
}

// NewServiceWithSize creates a thumbnail service bounding images to size x size
func NewServiceWithSize(size uint) *Service {
	if size == 0 {
		size = DefaultThumbnailSize
	}
	return &Service{
		size:  size,
		cache: make(map[string]image.Image),
	}
}

// Thumbnail returns a scaled-down copy of the candidate image, preserving
// aspect ratio. Results are cached per candidate until Purge.
func (s *Service) Thumbnail(c *model.Candidate) (image.Image, error) {
	if c == nil {
		return nil, ErrNoContent
	}

	s.cacheMutex.RLock()
	cached, ok := s.cache[c.ID]
	s.cacheMutex.RUnlock()
	if ok {
		return cached, nil
	}

	content := c.Content()
	if len(content) == 0 {
		return nil, ErrNoContent
	}

	src, format, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.Name(), err)
	}

	thumb := resize.Thumbnail(s.size, s.size, src, Interpolation)

	s.cacheMutex.Lock()
	s.cache[c.ID] = thumb
	s.cacheMutex.Unlock()

	bounds := src.Bounds()
	log.Printf("Thumbnail for %s (%s %dx%d) -> %dx%d", c.ID, format,
		bounds.Dx(), bounds.Dy(), thumb.Bounds().Dx(), thumb.Bounds().Dy())

	return thumb, nil
}

// Purge drops every cached thumbnail
func (s *Service) Purge() {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()
	s.cache = make(map[string]image.Image)
}

// Len returns the number of cached thumbnails
func (s *Service) Len() int {
	s.cacheMutex.RLock()
	defer s.cacheMutex.RUnlock()
	return len(s.cache)
}

package model

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Candidate is one image awaiting a like/dislike decision
type Candidate struct {
	ID          string    // unique per fetch
	SourceURL   string    // remote reference the image was requested from
	ContentType string    // sniffed MIME type of Content
	Fallback    bool      // true when the fetch failed and only SourceURL is usable
	FetchedAt   time.Time // when the request resolved

	mu      sync.RWMutex
	content []byte // locally held image bytes
}

// NewLocalCandidate creates a candidate backed by fetched image bytes
func NewLocalCandidate(id, sourceURL, contentType string, content []byte) *Candidate {
	return &Candidate{
		ID:          id,
		SourceURL:   sourceURL,
		ContentType: contentType,
		FetchedAt:   time.Now(),
		content:     content,
	}
}

// NewFallbackCandidate creates a candidate that only references the remote image
func NewFallbackCandidate(id, sourceURL string) *Candidate {
	return &Candidate{
		ID:        id,
		SourceURL: sourceURL,
		Fallback:  true,
		FetchedAt: time.Now(),
	}
}

// Content returns the locally held image bytes, or nil once released
func (c *Candidate) Content() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.content
}

// IsLocal reports whether the candidate still holds image bytes
func (c *Candidate) IsLocal() bool {
	return len(c.Content()) > 0
}

// Release drops the image bytes held by the candidate
func (c *Candidate) Release() {
	c.mu.Lock()
	c.content = nil
	c.mu.Unlock()
}

// Name returns a stable resource name for the candidate, with an extension
// derived from its content type when known
func (c *Candidate) Name() string {
	ext := ""
	if c.ContentType != "" {
		if slash := strings.LastIndex(c.ContentType, "/"); slash >= 0 {
			ext = "." + strings.TrimSpace(strings.SplitN(c.ContentType[slash+1:], ";", 2)[0])
		}
	}
	return fmt.Sprintf("cat-%s%s", c.ID, ext)
}

// Reference returns the address the UI should load the image from
func (c *Candidate) Reference() string {
	if c.IsLocal() {
		return c.Name()
	}
	return c.SourceURL
}

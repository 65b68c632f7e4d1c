package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/catswipe/internal/model"
)

// Request constants
const (
	DefaultTimeout     = 20 * time.Second
	DefaultMaxParallel = 5
	MaxImageBytes      = 16 << 20
	AcceptHeader       = "image/*"
	UserAgent          = "CatSwipe/1.0"
)

var (
	errNotImage     = errors.New("response is not an image")
	errEmptyBody    = errors.New("empty response body")
	errBodyTooLarge = errors.New("response body too large")
)

// Service handles image batch fetching
type Service struct {
	client      *http.Client
	mu          sync.RWMutex
	endpoint    string
	maxParallel int
	timeout     time.Duration
	onUpdate    func(done, total int) // callback for UI updates
}

// NewService creates a new download service
func NewService(endpoint string, maxParallel int, timeout time.Duration) *Service {
	return NewServiceWithClient(http.DefaultClient, endpoint, maxParallel, timeout)
}

// NewServiceWithClient creates a download service that issues requests through client
func NewServiceWithClient(client *http.Client, endpoint string, maxParallel int, timeout time.Duration) *Service {
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		client:      client,
		endpoint:    endpoint,
		maxParallel: maxParallel,
		timeout:     timeout,
	}
}

// SetUpdateCallback sets the callback function for batch progress updates
func (s *Service) SetUpdateCallback(callback func(done, total int)) {
	s.mu.Lock()
	s.onUpdate = callback
	s.mu.Unlock()
}

// SetEndpoint sets the remote image provider endpoint
func (s *Service) SetEndpoint(endpoint string) {
	s.mu.Lock()
	s.endpoint = endpoint
	s.mu.Unlock()
}

// SetMaxParallel sets the maximum number of concurrent requests
func (s *Service) SetMaxParallel(max int) {
	if max < 1 {
		max = 1
	}
	s.mu.Lock()
	s.maxParallel = max
	s.mu.Unlock()
}

// SetTimeout sets the per-image request timeout
func (s *Service) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	s.mu.Lock()
	s.timeout = timeout
	s.mu.Unlock()
}

// Load fetches count images concurrently and returns them in request order.
// Each item falls back to its remote reference on failure; the batch itself
// never fails and is delivered only once every item has resolved.
func (s *Service) Load(ctx context.Context, count int) []*model.Candidate {
	if count <= 0 {
		return nil
	}

	s.mu.RLock()
	endpoint := s.endpoint
	maxParallel := s.maxParallel
	timeout := s.timeout
	onUpdate := s.onUpdate
	s.mu.RUnlock()

	batchToken := uuid.NewString()
	candidates := make([]*model.Candidate, count)

	var (
		doneMu sync.Mutex
		done   int
	)

	g := new(errgroup.Group)
	g.SetLimit(maxParallel)

	for i := 0; i < count; i++ {
		i := i
		sourceURL := buildRequestURL(endpoint, batchToken, i)
		g.Go(func() error {
			candidates[i] = s.fetchOne(ctx, sourceURL, timeout)

			doneMu.Lock()
			done++
			current := done
			doneMu.Unlock()

			if onUpdate != nil {
				onUpdate(current, count)
			}
			return nil
		})
	}

	// Items never return errors; failures are absorbed as fallbacks
	_ = g.Wait()

	fallbacks := 0
	for _, c := range candidates {
		if c.Fallback {
			fallbacks++
		}
	}
	log.Printf("Loaded batch %s: %d images, %d fallbacks", batchToken, count, fallbacks)

	return candidates
}

// fetchOne fetches a single image, converting any failure into a fallback candidate
func (s *Service) fetchOne(ctx context.Context, sourceURL string, timeout time.Duration) *model.Candidate {
	id := uuid.NewString()

	content, contentType, err := s.fetchImage(ctx, sourceURL, timeout)
	if err != nil {
		log.Printf("Error loading image %s: %v", sourceURL, err)
		return model.NewFallbackCandidate(id, sourceURL)
	}

	return model.NewLocalCandidate(id, sourceURL, contentType, content)
}

// fetchImage performs the HTTP request and validates the response body
func (s *Service) fetchImage(ctx context.Context, sourceURL string, timeout time.Duration) ([]byte, string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", AcceptHeader)
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read body: %w", err)
	}
	if len(body) == 0 {
		return nil, "", errEmptyBody
	}
	if len(body) > MaxImageBytes {
		return nil, "", errBodyTooLarge
	}

	contentType := http.DetectContentType(body)
	if !strings.HasPrefix(contentType, "image/") {
		// Some providers serve formats DetectContentType does not know
		declared := resp.Header.Get("Content-Type")
		if !strings.HasPrefix(declared, "image/") {
			return nil, "", fmt.Errorf("%w: %s", errNotImage, contentType)
		}
		contentType = declared
	}

	return body, contentType, nil
}

// buildRequestURL appends a per-request uniqueness token so that neither the
// provider nor intermediate caches return the same image twice
func buildRequestURL(endpoint, batchToken string, index int) string {
	token := fmt.Sprintf("%s-%d", batchToken, index)

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return endpoint + "?" + token
	}
	if parsed.RawQuery == "" {
		parsed.RawQuery = token
	} else {
		parsed.RawQuery += "&" + token
	}
	return parsed.String()
}

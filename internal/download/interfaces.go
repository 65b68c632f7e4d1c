package download

import (
	"context"
	"time"

	"github.com/ytget/catswipe/internal/model"
)

// Source defines the interface for a batch image source.
// Load never fails as a whole: it returns exactly count candidates in request
// order, falling back to the remote reference for items that could not be fetched.
type Source interface {
	Load(ctx context.Context, count int) []*model.Candidate
}

// Fetcher defines the interface for the download service.
type Fetcher interface {
	Source

	// SetUpdateCallback receives (resolved, total) after every item resolves
	SetUpdateCallback(func(done, total int))

	// SetEndpoint sets the remote image provider endpoint
	SetEndpoint(endpoint string)

	// SetMaxParallel sets the maximum number of concurrent requests
	SetMaxParallel(max int)

	// SetTimeout sets the per-image request timeout
	SetTimeout(timeout time.Duration)
}

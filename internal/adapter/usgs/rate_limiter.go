package usgs

import (
	"context"
	"fmt"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"golang.org/x/time/rate"
)

// Fetcher is anything that can produce the current feed features.
type Fetcher interface {
	FetchFeatures(ctx context.Context) ([]domain.EarthquakeFeature, error)
}

// RateLimitedFetcher wraps a Fetcher so page loads cannot exceed the
// configured request rate against the feed host.
type RateLimitedFetcher struct {
	inner   Fetcher
	limiter *rate.Limiter
}

// NewRateLimitedFetcher allows rps requests per second (fractional values
// allowed) with the given burst.
func NewRateLimitedFetcher(inner Fetcher, rps float64, burst int) *RateLimitedFetcher {
	return &RateLimitedFetcher{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// FetchFeatures waits for a token, then delegates.
func (r *RateLimitedFetcher) FetchFeatures(ctx context.Context) ([]domain.EarthquakeFeature, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.inner.FetchFeatures(ctx)
}

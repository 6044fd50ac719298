package usgs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// maxFeedBytes bounds the body read; the weekly feed is a few megabytes.
const maxFeedBytes = 64 << 20

// Client fetches the USGS earthquake summary feed.
type Client struct {
	feedURL    string
	maxBytes   int64
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a feed client. A zero timeout leaves requests bounded only
// by their context.
func NewClient(feedURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		feedURL:  feedURL,
		maxBytes: maxFeedBytes,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchFeatures downloads and decodes the feed.
func (c *Client) FetchFeatures(ctx context.Context) ([]domain.EarthquakeFeature, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usgs feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("usgs feed error: status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("usgs feed exceeds %d bytes", c.maxBytes)
	}

	features, err := domain.ParseFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("usgs feed fetched", "features", len(features), "bytes", len(data))
	return features, nil
}

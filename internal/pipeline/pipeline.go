package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/couchcryptid/quake-map-service/internal/cluster"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/google/uuid"
)

// FetchErrorMessage is logged once per render pass whose feed fetch failed.
const FetchErrorMessage = "Error fetching GeoJSON data:"

// FeatureFetcher produces the current feed features.
type FeatureFetcher interface {
	FetchFeatures(ctx context.Context) ([]domain.EarthquakeFeature, error)
}

// MarkerPublisher forwards a render pass's markers downstream.
type MarkerPublisher interface {
	PublishMarkers(ctx context.Context, renderID string, markers []domain.Marker) error
}

// Pipeline runs render passes: fetch, transform all features, attach once.
type Pipeline struct {
	fetcher   FeatureFetcher
	publisher MarkerPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics

	fetched    atomic.Bool
	lastFailed atomic.Bool
}

// New creates a Pipeline. Pass a nil publisher to disable marker publishing.
func New(f FeatureFetcher, pub MarkerPublisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher:   f,
		publisher: pub,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once a render pass has fetched the feed and the
// most recent pass did not fail.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.fetched.Load() {
		return errors.New("no render pass has fetched the feed yet")
	}
	if p.lastFailed.Load() {
		return errors.New("last feed fetch failed")
	}
	return nil
}

// RenderMap bootstraps a fresh map view and runs one render pass on it.
func (p *Pipeline) RenderMap(ctx context.Context) *MapView {
	view := Bootstrap()
	p.Render(ctx, view)
	return view
}

// Render performs one fetch and, on success, attaches a cluster layer holding
// a marker for every feature with coordinates. On fetch failure it logs once
// and leaves the view without a cluster layer; tiles and legend are unaffected.
func (p *Pipeline) Render(ctx context.Context, view *MapView) {
	view.RenderID = uuid.NewString()
	logger := p.logger.With("render_id", view.RenderID)

	start := renderClock.Now()
	features, err := p.fetcher.FetchFeatures(ctx)
	p.metrics.FeedFetchLatency.Observe(renderClock.Since(start).Seconds())
	view.RenderedAt = renderClock.Now()

	if err != nil {
		logger.Error(FetchErrorMessage, "error", err)
		// A caller that went away says nothing about the feed's health.
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			p.metrics.RenderPasses.WithLabelValues("canceled").Inc()
			return
		}
		p.metrics.RenderPasses.WithLabelValues("fetch_error").Inc()
		p.lastFailed.Store(true)
		return
	}

	markers, skipped := domain.BuildMarkers(features)

	layer := cluster.NewLayer()
	layer.AddAll(markers)
	view.AttachClusters(layer)

	p.metrics.FeaturesReceived.Add(float64(len(features)))
	p.metrics.FeaturesSkipped.Add(float64(skipped))
	p.metrics.MarkersPerRender.Observe(float64(layer.Len()))
	p.metrics.RenderPasses.WithLabelValues("success").Inc()
	p.fetched.Store(true)
	p.lastFailed.Store(false)

	logger.Debug("render pass complete",
		"features", len(features),
		"markers", layer.Len(),
		"skipped", skipped,
	)

	p.publish(ctx, logger, view.RenderID, markers)
}

// publish forwards markers when a publisher is configured. Failures are
// logged and never affect the rendered map.
func (p *Pipeline) publish(ctx context.Context, logger *slog.Logger, renderID string, markers []domain.Marker) {
	if p.publisher == nil || len(markers) == 0 {
		return
	}
	if err := p.publisher.PublishMarkers(ctx, renderID, markers); err != nil {
		logger.Warn("publish markers failed", "error", err, "markers", len(markers))
		p.metrics.PublishErrors.Inc()
		return
	}
	p.metrics.MarkersPublished.Add(float64(len(markers)))
}

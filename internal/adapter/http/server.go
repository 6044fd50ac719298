package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/klauspost/compress/gzhttp"
	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MapRenderer runs one render pass and returns the resulting view.
type MapRenderer interface {
	RenderMap(ctx context.Context) *pipeline.MapView
}

// Server serves the map page, its JSON APIs, and the health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	renderer   MapRenderer
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the map and operational routes.
// Responses are gzip-compressed when the client accepts it.
func NewServer(addr string, renderer MapRenderer, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           gzhttp.GzipHandler(mux),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		renderer: renderer,
		logger:   logger,
	}

	mux.HandleFunc("GET /{$}", s.handleMap)
	mux.HandleFunc("GET /api/markers", s.handleMarkers)
	mux.HandleFunc("GET /api/legend", s.handleLegend)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleMap renders a fresh view per page load. A failed fetch still yields
// a page with tiles and legend.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	view := s.renderer.RenderMap(r.Context())

	var buf bytes.Buffer
	if err := renderPage(&buf, view); err != nil {
		s.logger.Error("render map page", "render_id", view.RenderID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck // client went away
}

// handleMarkers returns the current markers as GeoJSON, optionally limited
// to a bbox. An invalid bbox is rejected before the feed is fetched.
func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	var (
		bound   orb.Bound
		bounded bool
	)
	if raw := r.URL.Query().Get("bbox"); raw != "" {
		b, err := parseBBox(raw)
		if err != nil {
			sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		bound, bounded = b, true
	}

	view := s.renderer.RenderMap(r.Context())
	var markers []domain.Marker
	switch {
	case view.Clusters == nil:
	case bounded:
		markers = view.Clusters.Within(bound)
	default:
		markers = view.Clusters.Markers()
	}

	data, err := markersToGeoJSON(markers).MarshalJSON()
	if err != nil {
		s.logger.Error("encode markers", "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "encode markers"})
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck // client went away
}

func (s *Server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, domain.BuildLegend())
}

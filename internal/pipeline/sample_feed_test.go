package pipeline_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-map-service/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_WithSampleFeed(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "adapter", "usgs", "testdata", "all_week_sample.geojson"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := usgs.NewRateLimitedFetcher(usgs.NewClient(srv.URL, 5*time.Second, logger), 100, 10)
	p := pipeline.New(fetcher, nil, logger, newTestMetrics())

	view := p.RenderMap(context.Background())

	markers := view.Markers()
	require.Len(t, markers, 5, "the feature with null geometry is skipped")

	byID := map[string]int{}
	for i, m := range markers {
		byID[m.ID] = i
	}
	assert.NotContains(t, byID, "ak024abcd")

	fiji := markers[byID["us7000mfpz"]]
	assert.Equal(t, "#800026", fiji.Color)
	assert.InDelta(t, -17.9711, fiji.Position.Lat, 1e-9)
	assert.InDelta(t, -178.4123, fiji.Position.Lng, 1e-9)
	assert.InDelta(t, 15.6, fiji.Radius, 1e-9)
	assert.Contains(t, fiji.Popup.HTML(), "<h3>Fiji region</h3>")
	assert.Contains(t, fiji.Popup.HTML(), "580.4 km")

	geysers := markers[byID["nc75012345"]]
	assert.Equal(t, "#FEB24C", geysers.Color, "negative depth is in the lightest band")
	assert.Contains(t, geysers.Popup.HTML(), "Magnitude: unknown")
}

func TestPipeline_WithUnreachableFeed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := pipeline.New(usgs.NewClient(url, time.Second, logger), nil, logger, newTestMetrics())

	view := p.RenderMap(context.Background())
	assert.Nil(t, view.Clusters)
	assert.Len(t, view.Legend.Entries, 6)
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for map rendering.
type Metrics struct {
	RenderPasses     *prometheus.CounterVec // labels: outcome={success,fetch_error}
	FeedFetchLatency prometheus.Histogram
	FeaturesReceived prometheus.Counter
	FeaturesSkipped  prometheus.Counter
	MarkersPerRender prometheus.Histogram

	// Kafka publishing metrics.
	MarkersPublished prometheus.Counter
	PublishErrors    prometheus.Counter
	PublishEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RenderPasses,
		m.FeedFetchLatency,
		m.FeaturesReceived,
		m.FeaturesSkipped,
		m.MarkersPerRender,
		m.MarkersPublished,
		m.PublishErrors,
		m.PublishEnabled,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as many
// as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RenderPasses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "render_passes_total",
			Help:      "Map render passes by outcome.",
		}, []string{"outcome"}),
		FeedFetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_map",
			Name:      "feed_fetch_duration_seconds",
			Help:      "Duration of USGS feed fetches, successful or not.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FeaturesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "features_received_total",
			Help:      "Total features decoded from the feed.",
		}),
		FeaturesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "features_skipped_total",
			Help:      "Total features dropped for missing coordinates.",
		}),
		MarkersPerRender: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_map",
			Name:      "markers_per_render",
			Help:      "Number of markers attached per render pass.",
			Buckets:   []float64{0, 10, 100, 500, 1000, 2000, 5000, 10000, 20000},
		}),
		MarkersPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "markers_published_total",
			Help:      "Total markers written to the Kafka marker topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "publish_errors_total",
			Help:      "Total failed marker publish batches.",
		}),
		PublishEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_map",
			Name:      "publish_enabled",
			Help:      "1 when Kafka marker publishing is enabled, 0 otherwise.",
		}),
	}
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, DefaultFeedURL, cfg.FeedURL)
	assert.Zero(t, cfg.FeedTimeout)
	assert.InDelta(t, 1.0, cfg.FeedRateLimit, 0.0001)
	assert.Equal(t, 2, cfg.FeedRateBurst)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "earthquake-markers", cfg.KafkaMarkerTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("FEED_URL", "http://localhost:5000/all_day.geojson")
	t.Setenv("FEED_TIMEOUT", "15s")
	t.Setenv("FEED_RATE_LIMIT", "0.5")
	t.Setenv("FEED_RATE_BURST", "4")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_MARKER_TOPIC", "quake-markers")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://localhost:5000/all_day.geojson", cfg.FeedURL)
	assert.Equal(t, 15*time.Second, cfg.FeedTimeout)
	assert.InDelta(t, 0.5, cfg.FeedRateLimit, 0.0001)
	assert.Equal(t, 4, cfg.FeedRateBurst)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "quake-markers", cfg.KafkaMarkerTopic)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT", "-1s"},
		{"bad feed timeout", "FEED_TIMEOUT", "soon"},
		{"negative feed timeout", "FEED_TIMEOUT", "-5s"},
		{"zero rate limit", "FEED_RATE_LIMIT", "0"},
		{"bad rate limit", "FEED_RATE_LIMIT", "fast"},
		{"zero burst", "FEED_RATE_BURST", "0"},
		{"non-http feed url", "FEED_URL", "ftp://example.com/feed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_MARKER_TOPIC", "")
	t.Setenv("FEED_URL", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "earthquake-markers", cfg.KafkaMarkerTopic)
	assert.Equal(t, DefaultFeedURL, cfg.FeedURL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

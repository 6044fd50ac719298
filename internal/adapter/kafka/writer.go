package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes rendered markers to a Kafka topic.
// It implements pipeline.MarkerPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured marker topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaMarkerTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishMarkers writes one message per marker in a single WriteMessages call.
// Messages are keyed by event id so repeated passes land on the same partition.
func (w *Writer) PublishMarkers(ctx context.Context, renderID string, markers []domain.Marker) error {
	if len(markers) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(markers))
	for i := range markers {
		msg, err := serializeToMessage(renderID, markers[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write markers: %w", err)
	}
	w.logger.Debug("markers published", "render_id", renderID, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// markerMessage is the wire form of a marker on the topic.
type markerMessage struct {
	ID          string        `json:"id"`
	RenderID    string        `json:"render_id"`
	Position    domain.LatLng `json:"position"`
	Depth       *float64      `json:"depth_km"`
	Magnitude   *float64      `json:"magnitude"`
	Place       string        `json:"place"`
	Radius      float64       `json:"radius"`
	Color       string        `json:"color"`
	FillOpacity float64       `json:"fill_opacity"`
}

// serializeToMessage marshals a marker into a Kafka message. NaN depth is
// encoded as null since JSON has no NaN.
func serializeToMessage(renderID string, m domain.Marker) (kafkago.Message, error) {
	var depth *float64
	if !math.IsNaN(m.Depth) {
		d := m.Depth
		depth = &d
	}

	data, err := json.Marshal(markerMessage{
		ID:          m.ID,
		RenderID:    renderID,
		Position:    m.Position,
		Depth:       depth,
		Magnitude:   m.Popup.Magnitude,
		Place:       m.Popup.Place,
		Radius:      m.Radius,
		Color:       m.Color,
		FillOpacity: m.FillOpacity,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize marker: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(m.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "render_id", Value: []byte(renderID)},
			{Key: "depth_color", Value: []byte(m.Color)},
		},
	}, nil
}

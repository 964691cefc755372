// Package kafka publishes an audit record for each completed insight lookup.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/fieldsense/location-insights/internal/config"
	"github.com/fieldsense/location-insights/internal/domain"
)

// Writer produces lookup-audit records to a Kafka topic.
// It implements insights.LookupPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured lookup topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaLookupTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishLookup serializes and publishes one lookup record, keyed by place id
// so repeated lookups of the same place land on one partition.
func (w *Writer) PublishLookup(ctx context.Context, record domain.LookupRecord) error {
	msg, err := serializeToMessage(record)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a LookupRecord into a Kafka message.
func serializeToMessage(record domain.LookupRecord) (kafkago.Message, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize lookup record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(record.PlaceID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "place_id", Value: []byte(record.PlaceID)},
			{Key: "looked_up_at", Value: []byte(record.LookedUpAt.Format(time.RFC3339))},
		},
	}, nil
}

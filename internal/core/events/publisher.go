package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"checkpoint-tracker/internal/core/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Event names published on the shipment topic.
const (
	ShipmentCreated    = "shipment.created"
	CheckpointRecorded = "checkpoint.recorded"
	AnomalyDetected    = "anomaly.detected"
)

// Envelope wraps every published payload.
type Envelope struct {
	Type       string    `json:"type"`
	ShipmentID string    `json:"shipment_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Publisher is the interface used by services to publish domain events.
type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
	Close() error
}

// Writer defines the subset of kafka.Writer the producer needs. This makes the producer testable.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes envelopes as JSON messages keyed by shipment id,
// so every event of one shipment lands on the same partition.
type KafkaPublisher struct {
	writer Writer
}

// NewKafkaPublisher creates a publisher writing to the given broker and topic.
func NewKafkaPublisher(brokerURL, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokerURL),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// NewKafkaPublisherWithWriter allows injecting a test writer.
func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish marshals the envelope to JSON and writes it to kafka.
func (p *KafkaPublisher) Publish(ctx context.Context, env Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", env.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(env.ShipmentID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(env.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event %s: %w", env.Type, err)
	}

	logger.Get().Debug("Event published",
		zap.String("type", env.Type),
		zap.String("shipment_id", env.ShipmentID),
	)
	return nil
}

// Close shuts down the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Envelope) error { return nil }

// Close implements Publisher.
func (NopPublisher) Close() error { return nil }

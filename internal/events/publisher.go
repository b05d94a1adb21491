// Package events publishes report lifecycle events for downstream consumers
// (notification pipelines, search indexers, audit trails).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Type identifies the lifecycle transition an event describes.
type Type string

// Report lifecycle event types.
const (
	ReportCreated Type = "report.created"
	ReportUpdated Type = "report.updated"
	ReportDeleted Type = "report.deleted"
)

// ReportEvent is the wire format for a report lifecycle event.
type ReportEvent struct {
	EventID   string         `json:"event_id"`
	EventType Type           `json:"event_type"`
	ReportID  string         `json:"report_id"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewReportEvent builds a ReportEvent with a fresh event id and timestamp.
func NewReportEvent(eventType Type, reportID string, data map[string]any) *ReportEvent {
	return &ReportEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		ReportID:  reportID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher emits report lifecycle events. Implementations must be safe for
// concurrent use; the stores call publish from concurrent request contexts.
type Publisher interface {
	// PublishReportEvent emits a single lifecycle event.
	PublishReportEvent(ctx context.Context, event *ReportEvent) error
	// Close releases publisher resources.
	Close() error
}

// Compile-time interface assertions.
var (
	_ Publisher = NoopPublisher{}
	_ Publisher = (*KafkaPublisher)(nil)
)

// NoopPublisher drops every event. Used when event publishing is disabled.
type NoopPublisher struct{}

// PublishReportEvent implements Publisher.
func (NoopPublisher) PublishReportEvent(context.Context, *ReportEvent) error { return nil }

// Close implements Publisher.
func (NoopPublisher) Close() error { return nil }

// KafkaPublisher emits report lifecycle events to a Kafka topic, keyed by
// report_id so per-report ordering is preserved within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a Kafka-backed publisher from configuration.
func NewKafkaPublisher(cfg *Config) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           cfg.BatchTimeout,
		Compression:            kafka.Snappy,
		AllowAutoTopicCreation: true,
	}

	return &KafkaPublisher{writer: writer}
}

// PublishReportEvent implements Publisher.
func (p *KafkaPublisher) PublishReportEvent(ctx context.Context, event *ReportEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal report event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.ReportID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish report event: %w", err)
	}

	return nil
}

// Close closes the underlying Kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

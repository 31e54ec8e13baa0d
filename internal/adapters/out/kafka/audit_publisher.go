// Package kafka publishes audit entries to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"prepcenter/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// AuditEvent is the wire form of one published audit entry.
type AuditEvent struct {
	Seq        int64          `json:"seq"`
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   *string        `json:"entityId,omitempty"`
	UserID     *string        `json:"userId,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type AuditPublisher struct {
	writer MessageWriter
}

var _ ports.AuditPublisher = (*AuditPublisher)(nil)

// NewAuditPublisher writes to topic on brokers. Messages are keyed by entity id, so
// the events of one shipment stay in order within a partition.
func NewAuditPublisher(brokers []string, topic string) *AuditPublisher {
	return NewAuditPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	})
}

func NewAuditPublisherWithWriter(writer MessageWriter) *AuditPublisher {
	return &AuditPublisher{writer: writer}
}

// Publish writes entries as one batch.
func (p *AuditPublisher) Publish(ctx context.Context, entries []ports.RecordedEntry) error {
	if len(entries) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(entries))
	for _, recorded := range entries {
		msg, err := message(recorded)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d audit events: %w", len(msgs), err)
	}
	return nil
}

func (p *AuditPublisher) Close() error {
	return p.writer.Close()
}

func message(recorded ports.RecordedEntry) (kafka.Message, error) {
	e := recorded.Entry
	event := AuditEvent{
		Seq:        recorded.Seq,
		ID:         e.ID().String(),
		Action:     e.Action(),
		EntityType: e.EntityType(),
		Metadata:   e.Metadata(),
		CreatedAt:  e.CreatedAt(),
	}
	key := e.ID().String()
	if id := e.EntityID(); id != nil {
		s := id.String()
		event.EntityID = &s
		key = s
	}
	if id := e.UserID(); id != nil {
		s := id.String()
		event.UserID = &s
	}
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode audit event %d: %w", recorded.Seq, err)
	}
	return kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  e.CreatedAt(),
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(e.Action())},
		},
	}, nil
}

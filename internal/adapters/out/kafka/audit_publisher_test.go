package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkaadapter "prepcenter/internal/adapters/out/kafka"
	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type writerStub struct {
	batches [][]kafka.Message
	err     error
	closed  bool
}

func (w *writerStub) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.batches = append(w.batches, msgs)
	return nil
}

func (w *writerStub) Close() error {
	w.closed = true
	return nil
}

func statusChanged(t *testing.T, seq int64, shipmentID kernel.UUID) ports.RecordedEntry {
	t.Helper()
	actor := kernel.NewUUID()
	entry, err := activity.NewEntry(kernel.NewUUID(), &actor, activity.ActionStatusChanged, activity.EntityShipment,
		&shipmentID, map[string]any{"from": "RECEIVED", "to": "INSPECTING"}, time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return ports.RecordedEntry{Seq: seq, Entry: entry}
}

func TestAuditPublisher_Publish(t *testing.T) {
	writer := &writerStub{}
	publisher := kafkaadapter.NewAuditPublisherWithWriter(writer)
	shipmentID := kernel.NewUUID()

	err := publisher.Publish(context.Background(), []ports.RecordedEntry{
		statusChanged(t, 7, shipmentID),
		statusChanged(t, 9, shipmentID),
	})
	require.NoError(t, err)

	require.Len(t, writer.batches, 1)
	msgs := writer.batches[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, shipmentID.String(), string(msgs[0].Key))
	assert.Equal(t, "action", msgs[0].Headers[0].Key)
	assert.Equal(t, activity.ActionStatusChanged, string(msgs[0].Headers[0].Value))

	var event kafkaadapter.AuditEvent
	require.NoError(t, json.Unmarshal(msgs[1].Value, &event))
	assert.Equal(t, int64(9), event.Seq)
	assert.Equal(t, "shipment", event.EntityType)
	assert.Equal(t, "INSPECTING", event.Metadata["to"])
	require.NotNil(t, event.EntityID)
	assert.Equal(t, shipmentID.String(), *event.EntityID)
}

func TestAuditPublisher_EmptyBatchWritesNothing(t *testing.T) {
	writer := &writerStub{}
	publisher := kafkaadapter.NewAuditPublisherWithWriter(writer)

	require.NoError(t, publisher.Publish(context.Background(), nil))
	assert.Empty(t, writer.batches)
}

func TestAuditPublisher_WriteFailure(t *testing.T) {
	writer := &writerStub{err: errors.New("leader not available")}
	publisher := kafkaadapter.NewAuditPublisherWithWriter(writer)

	err := publisher.Publish(context.Background(), []ports.RecordedEntry{statusChanged(t, 1, kernel.NewUUID())})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

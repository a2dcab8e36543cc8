package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	event := OrderEvent{
		Type:        TypeOrderPaid,
		OrderID:     "5d1c9a4e-0000-4000-8000-000000000001",
		UserID:      4,
		Status:      "Order Placed",
		PaymentType: "Online",
		Amount:      210,
		PaymentID:   "pay_1",
		OccurredAt:  at,
	}

	record, err := newRecord("order-events", event)
	require.NoError(t, err)

	assert.Equal(t, "order-events", record.Topic)
	assert.Equal(t, []byte(event.OrderID), record.Key)
	require.Len(t, record.Headers, 1)
	assert.Equal(t, "order.paid", string(record.Headers[0].Value))

	var decoded OrderEvent
	require.NoError(t, json.Unmarshal(record.Value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestNewKafkaPublisher_NoBrokers(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "")
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.Publish(context.Background(), OrderEvent{Type: TypeOrderPlaced}))
	p.Close()
}

func TestKafkaPublisher_UnreachableBroker(t *testing.T) {
	pub, err := NewKafkaPublisher([]string{"127.0.0.1:1"}, "")
	require.NoError(t, err)
	pub.flushTimeout = 200 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Error(t, pub.Ping(ctx))

	start := time.Now()
	err = pub.Publish(context.Background(), OrderEvent{Type: TypeOrderPlaced, OrderID: "o-1"})
	assert.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)

	pub.Close()
}

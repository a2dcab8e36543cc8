package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEntry_BSON(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	entry := Entry{
		Action:         ActionPaymentRejected,
		OrderID:        "ord-1",
		GatewayOrderID: "order_abc",
		PaymentID:      "pay_1",
		Data:           bson.M{"reason": "signature mismatch"},
		CreatedAt:      at,
	}

	raw, err := bson.Marshal(entry)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "payment.rejected", doc["action"])
	assert.Equal(t, "order_abc", doc["gateway_order_id"])
	assert.NotContains(t, doc, "_id")
	assert.NotContains(t, doc, "user_id")
}

func TestNewMongoRecorder_InvalidURI(t *testing.T) {
	_, err := NewMongoRecorder(context.Background(), "not-a-mongo-uri", "")
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var r Recorder = Noop{}
	assert.NoError(t, r.Record(context.Background(), Entry{Action: ActionStatusChanged}))
}

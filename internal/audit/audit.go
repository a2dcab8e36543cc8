package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultDatabase   = "agrimart"
	DefaultCollection = "payment_audit"
)

const (
	ActionPaymentVerified = "payment.verified"
	ActionPaymentRejected = "payment.rejected"
	ActionPaymentFailed   = "payment.failed"
	ActionStatusChanged   = "order.status_changed"
)

// Entry is one append-only record about an order's payment or fulfilment.
type Entry struct {
	ID             string    `bson:"_id,omitempty"`
	Action         string    `bson:"action"`
	OrderID        string    `bson:"order_id,omitempty"`
	UserID         uint      `bson:"user_id,omitempty"`
	GatewayOrderID string    `bson:"gateway_order_id,omitempty"`
	PaymentID      string    `bson:"payment_id,omitempty"`
	Data           bson.M    `bson:"data,omitempty"`
	CreatedAt      time.Time `bson:"created_at"`
}

type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

type MongoRecorder struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoRecorder(ctx context.Context, uri, database string) (*MongoRecorder, error) {
	if database == "" {
		database = DefaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	return &MongoRecorder{
		client:     client,
		collection: client.Database(database).Collection(DefaultCollection),
	}, nil
}

func (m *MongoRecorder) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoRecorder) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoRecorder) Record(ctx context.Context, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := m.collection.InsertOne(ctx, entry)
	return err
}

// History returns the newest entries for an order first.
func (m *MongoRecorder) History(ctx context.Context, orderID string, limit int64) ([]*Entry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := m.collection.Find(ctx, bson.M{"order_id": orderID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// Noop discards entries; used when MONGO_URI is empty.
type Noop struct{}

func (Noop) Record(context.Context, Entry) error { return nil }

package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"agrimart-be/internal/logger"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

const DefaultTopic = "order-events"

type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close()
}

type KafkaPublisher struct {
	client       *kgo.Client
	topic        string
	flushTimeout time.Duration
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}
	if topic == "" {
		topic = DefaultTopic
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerLinger(0),
		kgo.RecordDeliveryTimeout(10*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &KafkaPublisher{client: client, topic: topic, flushTimeout: 5 * time.Second}, nil
}

// Ping checks that at least one seed broker answers.
func (p *KafkaPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

func (p *KafkaPublisher) Publish(ctx context.Context, event OrderEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	record, err := newRecord(p.topic, event)
	if err != nil {
		return err
	}

	// Delivery is async; the request context must not abort buffered records.
	log := logger.FromCtx(ctx)
	p.client.Produce(context.WithoutCancel(ctx), record, func(_ *kgo.Record, err error) {
		if err != nil {
			log.Error("failed to produce order event",
				zap.String("type", event.Type),
				zap.String("order_id", event.OrderID),
				zap.Error(err),
			)
		}
	})

	return nil
}

// Close waits up to flushTimeout for buffered records before closing the client.
func (p *KafkaPublisher) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), p.flushTimeout)
	defer cancel()
	_ = p.client.Flush(ctx)
	p.client.Close()
}

func newRecord(topic string, event OrderEvent) (*kgo.Record, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &kgo.Record{
		Topic: topic,
		Key:   []byte(event.OrderID),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}, nil
}

// Noop drops events; used when KAFKA_BROKERS is empty.
type Noop struct{}

func (Noop) Publish(context.Context, OrderEvent) error { return nil }
func (Noop) Close()                                    {}

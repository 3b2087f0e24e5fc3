// Package kafka publishes fulfillment events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

const resource = "event broker"

// Header keys carried by every record.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
)

var (
	_ ports.EventPublisher = (*Publisher)(nil)
	_ ports.EventPublisher = NoopPublisher{}
)

// producer is the part of *kgo.Client the publisher uses.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// envelope is the JSON value of a record.
type envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// Publisher writes each event as one record keyed by the event key.
type Publisher struct {
	client producer
	topic  string
	logger *zap.Logger
}

// NewPublisher creates a franz-go client for brokers. The connection is made lazily
// on the first publish.
func NewPublisher(brokers []string, topic string, logger *zap.Logger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return newPublisher(client, topic, logger), nil
}

func newPublisher(client producer, topic string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		client: client,
		topic:  topic,
		logger: logger.With(zap.String("component", "kafka-publisher"), zap.String("topic", topic)),
	}
}

func (p *Publisher) Publish(ctx context.Context, events ...ports.FulfillmentEvent) error {
	if len(events) == 0 {
		return nil
	}

	records := make([]*kgo.Record, 0, len(events))
	for _, e := range events {
		rec, err := p.record(e)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}

	if err := p.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return errs.NewConnectivityErrorWithCause(resource, fmt.Errorf("publish to %s: %w", p.topic, err))
	}

	p.logger.Debug("events published", zap.Int("count", len(records)))
	return nil
}

func (p *Publisher) record(e ports.FulfillmentEvent) (*kgo.Record, error) {
	if e.Type == "" {
		return nil, errs.NewValueIsRequiredError("event type")
	}

	value, err := json.Marshal(envelope{
		ID:         e.ID.String(),
		Type:       e.Type,
		OccurredAt: e.OccurredAt.UTC(),
		Payload:    e.Payload,
	})
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("event payload", err)
	}

	return &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(e.Key),
		Value:     value,
		Timestamp: e.OccurredAt,
		Headers: []kgo.RecordHeader{
			{Key: HeaderEventID, Value: []byte(e.ID.String())},
			{Key: HeaderEventType, Value: []byte(e.Type)},
		},
	}, nil
}

// Close releases the client. Publish waits for every record, so nothing is pending.
func (p *Publisher) Close() {
	p.client.Close()
}

// NoopPublisher drops events. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ...ports.FulfillmentEvent) error {
	return nil
}

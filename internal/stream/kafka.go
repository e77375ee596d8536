package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"scanhub/internal/lifecycle"
)

// eventSource identifies this service in the CloudEvents envelope.
const eventSource = "scanhub/lifecycle"

// KafkaPublisher produces lifecycle events to one topic, keyed by envelope
// id so per-aggregate ordering survives partitioning. Production is
// synchronous: Publish returns only once the whole batch is acknowledged.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewKafkaPublisher connects to the brokers and ensures the topic exists.
func NewKafkaPublisher(ctx context.Context, brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("build kafka client: %w", err)
	}

	admin := kadm.NewClient(client)
	// Already-exists is fine; anything else is a startup failure.
	if _, err := admin.CreateTopic(ctx, 6, 1, nil, topic); err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		client.Close()
		return nil, fmt.Errorf("ensure topic %s: %w", topic, err)
	}

	return &KafkaPublisher{client: client, topic: topic, logger: logger}, nil
}

// Publish encodes each event as a structured-mode CloudEvent and produces
// the batch synchronously.
func (p *KafkaPublisher) Publish(ctx context.Context, events []lifecycle.Event) error {
	records := make([]*kgo.Record, 0, len(events))
	for _, ev := range events {
		value, err := encodeCloudEvent(ev)
		if err != nil {
			return err
		}
		records = append(records, &kgo.Record{
			Topic: p.topic,
			Key:   []byte(ev.AggregateID().String()),
			Value: value,
		})
	}

	results := p.client.ProduceSync(ctx, records...)
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("produce lifecycle events: %w", err)
	}
	return nil
}

// Close flushes and releases the kafka client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}

func encodeCloudEvent(ev lifecycle.Event) ([]byte, error) {
	_, payload, err := lifecycle.MarshalEvent(ev)
	if err != nil {
		return nil, err
	}

	ce := cloudevents.NewEvent()
	ce.SetID(uuid.NewString())
	ce.SetSource(eventSource)
	ce.SetType("uk.gov.courts.scanhub." + ev.EventType())
	ce.SetSubject(ev.AggregateID().String())
	if err := ce.SetData(event.ApplicationJSON, payload); err != nil {
		return nil, fmt.Errorf("set cloudevent data: %w", err)
	}

	encoded, err := ce.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode cloudevent: %w", err)
	}
	return encoded, nil
}

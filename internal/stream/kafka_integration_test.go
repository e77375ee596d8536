//go:build integration

package stream_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"scanhub/internal/lifecycle"
	"scanhub/internal/platform/logger"
	"scanhub/internal/stream"
	"scanhub/pkg/testutil/containers"
)

const testTopic = "scanhub.lifecycle.events.test"

type KafkaPublisherSuite struct {
	suite.Suite
	redpanda  *containers.RedpandaContainer
	publisher *stream.KafkaPublisher
	consumer  *kgo.Client
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	ctx := context.Background()
	s.redpanda = containers.GetManager().GetRedpanda(s.T())

	publisher, err := stream.NewKafkaPublisher(ctx, s.redpanda.Brokers, testTopic, logger.New())
	s.Require().NoError(err)
	s.publisher = publisher

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Brokers...),
		kgo.ConsumeTopics(testTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	s.consumer = consumer
}

func (s *KafkaPublisherSuite) TearDownSuite() {
	if s.consumer != nil {
		s.consumer.Close()
	}
	if s.publisher != nil {
		s.publisher.Close()
	}
}

func (s *KafkaPublisherSuite) TestPublishDeliversCloudEventsKeyedByEnvelope() {
	ctx := context.Background()
	envelopeID := uuid.New()
	events := []lifecycle.Event{
		&lifecycle.ScanDocumentManuallyActioned{
			EnvelopeID: envelopeID,
			DocumentID: uuid.New(),
			Actor:      "clerk",
			At:         time.Now().UTC().Truncate(time.Second),
		},
		&lifecycle.ActionedDocumentDeleted{
			EnvelopeID: envelopeID,
			DocumentID: uuid.New(),
			At:         time.Now().UTC().Truncate(time.Second),
		},
	}

	s.Require().NoError(s.publisher.Publish(ctx, events))

	records := s.consume(ctx, len(events))
	s.Require().Len(records, len(events))

	types := make([]string, 0, len(records))
	for _, record := range records {
		s.Equal(envelopeID.String(), string(record.Key))

		var envelope struct {
			SpecVersion string `json:"specversion"`
			Type        string `json:"type"`
			Subject     string `json:"subject"`
			Source      string `json:"source"`
		}
		s.Require().NoError(json.Unmarshal(record.Value, &envelope))
		s.Equal("1.0", envelope.SpecVersion)
		s.Equal(envelopeID.String(), envelope.Subject)
		s.Equal("scanhub/lifecycle", envelope.Source)
		types = append(types, envelope.Type)
	}
	s.Contains(types, "uk.gov.courts.scanhub.ScanDocumentManuallyActioned")
	s.Contains(types, "uk.gov.courts.scanhub.ActionedDocumentDeleted")
}

func (s *KafkaPublisherSuite) consume(ctx context.Context, want int) []*kgo.Record {
	deadline, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var records []*kgo.Record
	for len(records) < want {
		fetches := s.consumer.PollFetches(deadline)
		if err := fetches.Err(); err != nil {
			s.T().Fatalf("poll fetches: %v", err)
		}
		fetches.EachRecord(func(r *kgo.Record) {
			records = append(records, r)
		})
	}
	return records
}

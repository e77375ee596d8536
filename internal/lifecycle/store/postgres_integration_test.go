//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"scanhub/internal/lifecycle"
	"scanhub/internal/lifecycle/store"
	"scanhub/pkg/platform/sentinel"
	"scanhub/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgresStore(s.postgres.Pool)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "scan_envelope_events")
	s.Require().NoError(err)
}

func expiredEvent(envelopeID uuid.UUID) lifecycle.Event {
	return &lifecycle.ScanDocumentExpired{
		EnvelopeID: envelopeID,
		DocumentID: uuid.New(),
		At:         time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC),
	}
}

func (s *PostgresStoreSuite) TestAppendAndLoadRoundTrip() {
	ctx := context.Background()
	envelopeID := uuid.New()

	batch := []lifecycle.Event{expiredEvent(envelopeID), expiredEvent(envelopeID)}
	s.Require().NoError(s.store.Append(ctx, envelopeID, 0, batch))

	events, err := s.store.Load(ctx, envelopeID)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(batch[0], events[0])
	s.Equal(batch[1], events[1])
}

func (s *PostgresStoreSuite) TestLoadUnknownEnvelopeIsEmpty() {
	events, err := s.store.Load(context.Background(), uuid.New())
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *PostgresStoreSuite) TestStaleVersionConflicts() {
	ctx := context.Background()
	envelopeID := uuid.New()

	s.Require().NoError(s.store.Append(ctx, envelopeID, 0, []lifecycle.Event{expiredEvent(envelopeID)}))

	err := s.store.Append(ctx, envelopeID, 0, []lifecycle.Event{expiredEvent(envelopeID)})
	s.ErrorIs(err, sentinel.ErrVersionConflict)

	events, err := s.store.Load(ctx, envelopeID)
	s.Require().NoError(err)
	s.Len(events, 1)
}

func (s *PostgresStoreSuite) TestConcurrentAppendsExactlyOneWins() {
	ctx := context.Background()
	envelopeID := uuid.New()
	const goroutines = 20

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Append(ctx, envelopeID, 0, []lifecycle.Event{expiredEvent(envelopeID)})
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrVersionConflict) {
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one append should win at version 0")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should conflict")

	events, err := s.store.Load(ctx, envelopeID)
	s.Require().NoError(err)
	s.Len(events, 1)
}

func (s *PostgresStoreSuite) TestBatchIsAtomic() {
	ctx := context.Background()
	envelopeID := uuid.New()

	s.Require().NoError(s.store.Append(ctx, envelopeID, 0, []lifecycle.Event{expiredEvent(envelopeID)}))

	// A stale batch of several events must leave nothing behind.
	batch := []lifecycle.Event{expiredEvent(envelopeID), expiredEvent(envelopeID), expiredEvent(envelopeID)}
	err := s.store.Append(ctx, envelopeID, 0, batch)
	s.ErrorIs(err, sentinel.ErrVersionConflict)

	events, err := s.store.Load(ctx, envelopeID)
	s.Require().NoError(err)
	s.Len(events, 1)
}

package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"scanhub/internal/lifecycle"
	"scanhub/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store      *MemoryStore
	envelopeID uuid.UUID
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.envelopeID = uuid.New()
}

func (s *MemoryStoreSuite) event() lifecycle.Event {
	return &lifecycle.ScanDocumentExpired{
		EnvelopeID: s.envelopeID,
		DocumentID: uuid.New(),
		At:         time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC),
	}
}

func (s *MemoryStoreSuite) TestAppendAndLoad() {
	err := s.store.Append(context.Background(), s.envelopeID, 0, []lifecycle.Event{s.event(), s.event()})
	s.Require().NoError(err)

	events, err := s.store.Load(context.Background(), s.envelopeID)
	s.Require().NoError(err)
	s.Len(events, 2)
}

func (s *MemoryStoreSuite) TestLoadUnknownEnvelopeIsEmpty() {
	events, err := s.store.Load(context.Background(), uuid.New())
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *MemoryStoreSuite) TestStaleVersionConflicts() {
	err := s.store.Append(context.Background(), s.envelopeID, 0, []lifecycle.Event{s.event()})
	s.Require().NoError(err)

	err = s.store.Append(context.Background(), s.envelopeID, 0, []lifecycle.Event{s.event()})
	s.ErrorIs(err, sentinel.ErrVersionConflict)

	events, err := s.store.Load(context.Background(), s.envelopeID)
	s.Require().NoError(err)
	s.Len(events, 1)
}

func (s *MemoryStoreSuite) TestStreamsAreIndependent() {
	other := uuid.New()
	s.Require().NoError(s.store.Append(context.Background(), s.envelopeID, 0, []lifecycle.Event{s.event()}))
	s.Require().NoError(s.store.Append(context.Background(), other, 0, []lifecycle.Event{s.event()}))

	events, err := s.store.Load(context.Background(), s.envelopeID)
	s.Require().NoError(err)
	s.Len(events, 1)
}

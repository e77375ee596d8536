// Package store provides EventStore implementations: an in-memory store for
// tests and local runs, and the postgres store used in production.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"scanhub/internal/lifecycle"
	"scanhub/pkg/platform/sentinel"
)

// MemoryStore keeps streams in process memory with the same
// expected-version semantics as the postgres store.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[uuid.UUID][]lifecycle.Event
}

// NewMemoryStore creates an empty in-memory event store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[uuid.UUID][]lifecycle.Event)}
}

// Append adds the batch to the stream if expectedVersion still matches.
func (s *MemoryStore) Append(_ context.Context, envelopeID uuid.UUID, expectedVersion int64, events []lifecycle.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stream := s.streams[envelopeID]
	if int64(len(stream)) != expectedVersion {
		return sentinel.ErrVersionConflict
	}
	s.streams[envelopeID] = append(stream, events...)
	return nil
}

// Load returns the full stream; an unknown envelope yields an empty slice.
func (s *MemoryStore) Load(_ context.Context, envelopeID uuid.UUID) ([]lifecycle.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]lifecycle.Event(nil), s.streams[envelopeID]...), nil
}

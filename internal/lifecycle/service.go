package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"scanhub/internal/intake/models"
	"scanhub/internal/lifecycle/metrics"
	dErrors "scanhub/pkg/domain-errors"
	"scanhub/pkg/platform/sentinel"
)

// EventStore is the append-only history port. Append must be atomic for the
// whole batch and must fail with sentinel.ErrVersionConflict when
// expectedVersion no longer matches the stream.
type EventStore interface {
	Append(ctx context.Context, envelopeID uuid.UUID, expectedVersion int64, events []Event) error
	Load(ctx context.Context, envelopeID uuid.UUID) ([]Event, error)
}

// Publisher forwards recorded events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, events []Event) error
}

// Service runs the load-execute-append loop around the pure commands.
// Commands against the same envelope are serialized by a per-aggregate lock
// on top of the store's expected-version check; commands against different
// envelopes run in parallel. Either the full event batch for a command is
// recorded or none of it is.
type Service struct {
	store     EventStore
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewService builds a lifecycle service. metrics may be nil.
func NewService(store EventStore, publisher Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
		locks:     make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *Service) lockFor(envelopeID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[envelopeID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[envelopeID] = lock
	}
	return lock
}

// Register admits a new envelope. Registering an envelope id twice conflicts.
func (s *Service) Register(ctx context.Context, env models.ScanEnvelope) (Envelope, error) {
	lock := s.lockFor(env.ID)
	lock.Lock()
	defer lock.Unlock()

	history, err := s.store.Load(ctx, env.ID)
	if err != nil {
		return Envelope{}, dErrors.Wrap(dErrors.CodeInternal, "load envelope stream", err)
	}
	if len(history) > 0 {
		return Envelope{}, dErrors.New(dErrors.CodeConflict, "envelope already registered")
	}

	events, err := Register(env, s.now())
	if err != nil {
		return Envelope{}, err
	}
	return s.record(ctx, env.ID, Envelope{}, events)
}

// Get replays the current state of an envelope.
func (s *Service) Get(ctx context.Context, envelopeID uuid.UUID) (Envelope, error) {
	history, err := s.store.Load(ctx, envelopeID)
	if err != nil {
		return Envelope{}, dErrors.Wrap(dErrors.CodeInternal, "load envelope stream", err)
	}
	if len(history) == 0 {
		return Envelope{}, dErrors.New(dErrors.CodeNotFound, "envelope not found")
	}
	return Replay(history), nil
}

// MarkManuallyActioned executes the manual-action command.
func (s *Service) MarkManuallyActioned(ctx context.Context, envelopeID, documentID uuid.UUID, actor string) (Envelope, error) {
	return s.execute(ctx, envelopeID, func(state Envelope) ([]Event, error) {
		return MarkManuallyActioned(state, documentID, actor, s.now())
	})
}

// MarkAutoActioned executes the auto-action command.
func (s *Service) MarkAutoActioned(ctx context.Context, envelopeID, documentID uuid.UUID, actor string) (Envelope, error) {
	return s.execute(ctx, envelopeID, func(state Envelope) ([]Event, error) {
		return MarkAutoActioned(state, documentID, actor, s.now())
	})
}

// DeleteActionedDocument executes the purge command.
func (s *Service) DeleteActionedDocument(ctx context.Context, envelopeID, documentID uuid.UUID) (Envelope, error) {
	return s.execute(ctx, envelopeID, func(state Envelope) ([]Event, error) {
		return DeleteActionedDocument(state, documentID, s.now())
	})
}

// RejectDocument executes the rejection command.
func (s *Service) RejectDocument(ctx context.Context, envelopeID, documentID uuid.UUID, problems []string) (Envelope, error) {
	return s.execute(ctx, envelopeID, func(state Envelope) ([]Event, error) {
		return RejectDocument(state, documentID, problems, s.now())
	})
}

// ExpireDocument executes the expiry command at the given time.
func (s *Service) ExpireDocument(ctx context.Context, envelopeID, documentID uuid.UUID, when time.Time) (Envelope, error) {
	return s.execute(ctx, envelopeID, func(state Envelope) ([]Event, error) {
		return ExpireDocument(state, documentID, when)
	})
}

// RaiseDocumentFollowUp executes the attached-and-followed-up command.
func (s *Service) RaiseDocumentFollowUp(ctx context.Context, envelopeID, documentID uuid.UUID) (Envelope, error) {
	return s.execute(ctx, envelopeID, func(state Envelope) ([]Event, error) {
		return RaiseDocumentFollowUp(state, documentID, s.now())
	})
}

// RecordReconciliation appends an externally produced reconciliation batch
// for one document, validating the document is still live.
func (s *Service) RecordReconciliation(ctx context.Context, envelopeID, documentID uuid.UUID, events []Event) (Envelope, error) {
	if len(events) == 0 {
		return Envelope{}, dErrors.New(dErrors.CodeBadRequest, "reconciliation produced no events")
	}
	return s.execute(ctx, envelopeID, func(state Envelope) ([]Event, error) {
		doc := state.Document(documentID)
		if doc == nil {
			return nil, dErrors.New(dErrors.CodeNotFound, "document not found in envelope")
		}
		if doc.Deleted {
			return nil, dErrors.New(dErrors.CodeInvalidTransition, "document has been deleted")
		}
		return events, nil
	})
}

func (s *Service) execute(ctx context.Context, envelopeID uuid.UUID, cmd func(Envelope) ([]Event, error)) (Envelope, error) {
	lock := s.lockFor(envelopeID)
	lock.Lock()
	defer lock.Unlock()

	history, err := s.store.Load(ctx, envelopeID)
	if err != nil {
		return Envelope{}, dErrors.Wrap(dErrors.CodeInternal, "load envelope stream", err)
	}
	if len(history) == 0 {
		return Envelope{}, dErrors.New(dErrors.CodeNotFound, "envelope not found")
	}
	state := Replay(history)

	events, err := cmd(state)
	if err != nil {
		return Envelope{}, err
	}
	return s.record(ctx, envelopeID, state, events)
}

func (s *Service) record(ctx context.Context, envelopeID uuid.UUID, state Envelope, events []Event) (Envelope, error) {
	start := s.now()
	if err := s.store.Append(ctx, envelopeID, state.Version, events); err != nil {
		if errors.Is(err, sentinel.ErrVersionConflict) {
			s.metrics.ObserveAppend("conflict", s.now().Sub(start).Seconds())
			return Envelope{}, dErrors.Wrap(dErrors.CodeConflict, "envelope modified concurrently", err)
		}
		s.metrics.ObserveAppend("error", s.now().Sub(start).Seconds())
		return Envelope{}, dErrors.Wrap(dErrors.CodeInternal, "append envelope events", err)
	}
	s.metrics.ObserveAppend("ok", s.now().Sub(start).Seconds())

	for _, ev := range events {
		s.metrics.RecordEvent(ev.EventType())
		state = Apply(state, ev)
	}

	// The store is the source of truth; a publish failure is logged and the
	// command still succeeds. Consumers reconcile from the store on replay.
	if err := s.publisher.Publish(ctx, events); err != nil {
		s.logger.ErrorContext(ctx, "publish lifecycle events failed",
			"envelopeId", envelopeID, "count", len(events), "error", err)
	}
	return state, nil
}

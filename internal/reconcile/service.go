package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"scanhub/internal/lifecycle"
	dErrors "scanhub/pkg/domain-errors"
)

// Service orchestrates one reconciliation: replay the envelope, fetch the
// case-side defendant where needed, run the reconciler, and record the
// resulting batch on the lifecycle.
type Service struct {
	cases     CaseService
	lifecycle *lifecycle.Service
	plea      *PleaReconciler
	financial *FinancialMeansReconciler
	logger    *slog.Logger
	now       func() time.Time
}

// NewService builds a reconciliation service.
func NewService(cases CaseService, lc *lifecycle.Service, logger *slog.Logger) *Service {
	return &Service{
		cases:     cases,
		lifecycle: lc,
		plea:      NewPleaReconciler(logger),
		financial: NewFinancialMeansReconciler(logger),
		logger:    logger,
		now:       time.Now,
	}
}

// ReconcilePlea reconciles a document's scanned plea against the case.
func (s *Service) ReconcilePlea(ctx context.Context, envelopeID, documentID uuid.UUID, actor string) (lifecycle.Envelope, error) {
	env, err := s.lifecycle.Get(ctx, envelopeID)
	if err != nil {
		return lifecycle.Envelope{}, err
	}
	doc := env.Document(documentID)
	if doc == nil {
		return lifecycle.Envelope{}, dErrors.New(dErrors.CodeNotFound, "document not found in envelope")
	}
	if doc.Plea == nil {
		return lifecycle.Envelope{}, dErrors.New(dErrors.CodeBadRequest, "document carries no plea data")
	}
	if doc.CaseURN == "" {
		return lifecycle.Envelope{}, dErrors.New(dErrors.CodeBadRequest, "document has no case URN to reconcile against")
	}

	defendant, err := s.cases.GetDefendant(ctx, doc.CaseURN)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return lifecycle.Envelope{}, err
		}
		return lifecycle.Envelope{}, dErrors.Wrap(dErrors.CodeInternal, "fetch defendant", err)
	}

	events := s.plea.Reconcile(envelopeID, documentID, *doc.Plea, *defendant, actor, s.now())
	return s.lifecycle.RecordReconciliation(ctx, envelopeID, documentID, events)
}

// ReconcileFinancialMeans reconciles a document's scanned MC100. The income
// consistency check is internal to the scanned data, so no case fetch is
// needed.
func (s *Service) ReconcileFinancialMeans(ctx context.Context, envelopeID, documentID uuid.UUID, actor string) (lifecycle.Envelope, error) {
	env, err := s.lifecycle.Get(ctx, envelopeID)
	if err != nil {
		return lifecycle.Envelope{}, err
	}
	doc := env.Document(documentID)
	if doc == nil {
		return lifecycle.Envelope{}, dErrors.New(dErrors.CodeNotFound, "document not found in envelope")
	}
	if doc.FinancialMeans == nil {
		return lifecycle.Envelope{}, dErrors.New(dErrors.CodeBadRequest, "document carries no financial-means data")
	}

	events := s.financial.Reconcile(envelopeID, documentID, *doc.FinancialMeans, actor, s.now())
	return s.lifecycle.RecordReconciliation(ctx, envelopeID, documentID, events)
}

// Package service runs the intake pipeline: normalize each scanned item,
// classify its initial disposition, and register the envelope with the
// lifecycle.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"scanhub/internal/intake/classifier"
	"scanhub/internal/intake/metrics"
	"scanhub/internal/intake/models"
	"scanhub/internal/intake/normalizer"
	"scanhub/internal/lifecycle"
)

// Service ingests scan envelopes. Documents within an envelope are
// normalized and classified concurrently; registration is a single atomic
// lifecycle command once every document has its draft.
type Service struct {
	normalizer  *normalizer.Normalizer
	classifier  *classifier.Classifier
	lifecycle   *lifecycle.Service
	metrics     *metrics.Metrics
	logger      *slog.Logger
	concurrency int
	tracer      trace.Tracer
}

// New builds an intake service. Concurrency bounds the per-envelope
// normalization fan-out; values below one run sequentially.
func New(n *normalizer.Normalizer, c *classifier.Classifier, lc *lifecycle.Service, m *metrics.Metrics, logger *slog.Logger, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		normalizer:  n,
		classifier:  c,
		lifecycle:   lc,
		metrics:     m,
		logger:      logger,
		concurrency: concurrency,
		tracer:      otel.Tracer("scanhub/intake"),
	}
}

// IngestEnvelope processes one intake payload end to end and returns the
// registered envelope state.
func (s *Service) IngestEnvelope(ctx context.Context, payload models.EnvelopePayload) (lifecycle.Envelope, error) {
	ctx, span := s.tracer.Start(ctx, "intake.IngestEnvelope",
		trace.WithAttributes(attribute.Int("documents", len(payload.AssociatedScanDocuments))))
	defer span.End()

	env := models.ScanEnvelope{
		ID:                uuid.New(),
		Classification:    payload.Classification,
		Jurisdiction:      payload.Jurisdiction,
		Notes:             payload.Notes,
		VendorPOBox:       payload.VendorPOBox,
		VendorOpeningDate: payload.VendorOpeningDate,
		ZipCreatedDate:    payload.ZipCreatedDate,
		ZipFileName:       payload.ZipFileName,
		ExtractedDate:     payload.ExtractedDate,
		Documents:         make([]models.ScanDocument, len(payload.AssociatedScanDocuments)),
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for i, item := range payload.AssociatedScanDocuments {
		group.Go(func() error {
			doc := s.normalizer.Normalize(groupCtx, item)
			doc.Status, doc.StatusCode = s.classifier.Classify(groupCtx,
				doc.CaseURN, doc.CasePTIURN, doc.ProsecutorAuthorityID, doc.DocumentName)
			env.Documents[i] = doc
			return groupCtx.Err()
		})
	}
	if err := group.Wait(); err != nil {
		s.metrics.RecordEnvelope("rejected")
		return lifecycle.Envelope{}, err
	}

	state, err := s.lifecycle.Register(ctx, env)
	if err != nil {
		s.metrics.RecordEnvelope("rejected")
		return lifecycle.Envelope{}, err
	}

	s.metrics.RecordEnvelope("registered")
	for _, doc := range state.Documents {
		s.metrics.RecordDocument(doc.DocumentName, string(doc.Status))
		if doc.Status == models.StatusFollowUp {
			s.metrics.RecordFollowUp(string(doc.StatusCode))
		}
	}
	s.logger.InfoContext(ctx, "envelope ingested",
		"envelopeId", env.ID, "documents", len(env.Documents), "zip", env.ZipFileName)
	return state, nil
}

// Package handler exposes the scan-envelope API: intake, state queries,
// lifecycle actions and reconciliation.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"scanhub/internal/intake/models"
	"scanhub/internal/intake/service"
	"scanhub/internal/lifecycle"
	"scanhub/internal/platform/middleware"
	"scanhub/internal/reconcile"
	dErrors "scanhub/pkg/domain-errors"
	"scanhub/pkg/platform/httputil"
)

// Handler handles scan-envelope endpoints.
type Handler struct {
	logger    *slog.Logger
	intake    *service.Service
	lifecycle *lifecycle.Service
	reconcile *reconcile.Service
}

// New creates a new scan-envelope Handler.
func New(intake *service.Service, lc *lifecycle.Service, rec *reconcile.Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:    logger,
		intake:    intake,
		lifecycle: lc,
		reconcile: rec,
	}
}

// Register registers the scan-envelope routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	scanRouter := chi.NewRouter()
	scanRouter.Use(middleware.Recovery(h.logger))
	scanRouter.Use(middleware.RequestID)
	scanRouter.Use(middleware.Logger(h.logger))
	scanRouter.Use(middleware.Timeout(30 * time.Second))
	scanRouter.Use(middleware.ContentTypeJSON)

	scanRouter.Post("/scan/envelopes", h.handleIngest)
	scanRouter.Get("/scan/envelopes/{envelopeID}", h.handleGet)

	scanRouter.Route("/scan/envelopes/{envelopeID}/documents/{documentID}", func(r chi.Router) {
		r.Post("/manual-action", h.handleManualAction)
		r.Post("/auto-action", h.handleAutoAction)
		r.Post("/delete", h.handleDelete)
		r.Post("/reject", h.handleReject)
		r.Post("/expire", h.handleExpire)
		r.Post("/follow-up", h.handleFollowUp)
		r.Post("/reconcile/plea", h.handleReconcilePlea)
		r.Post("/reconcile/financial-means", h.handleReconcileFinancialMeans)
	})

	r.Mount("/", scanRouter)
}

// handleIngest normalizes, classifies and registers one envelope.
func (h *Handler) handleIngest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload models.EnvelopePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.WarnContext(ctx, "invalid intake payload",
			"request_id", middleware.GetRequestID(ctx), "error", err.Error())
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	state, err := h.intake.IngestEnvelope(ctx, payload)
	if err != nil {
		h.logger.ErrorContext(ctx, "envelope intake failed",
			"request_id", middleware.GetRequestID(ctx), "error", err.Error())
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, state.ScanEnvelope)
}

// handleGet replays and returns the current envelope state.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	envelopeID, err := pathID(r, "envelopeID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	state, err := h.lifecycle.Get(r.Context(), envelopeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state.ScanEnvelope)
}

func (h *Handler) handleManualAction(w http.ResponseWriter, r *http.Request) {
	h.documentAction(w, r, func(req actionRequest, envelopeID, documentID uuid.UUID) (lifecycle.Envelope, error) {
		return h.lifecycle.MarkManuallyActioned(r.Context(), envelopeID, documentID, req.Actor)
	})
}

func (h *Handler) handleAutoAction(w http.ResponseWriter, r *http.Request) {
	h.documentAction(w, r, func(req actionRequest, envelopeID, documentID uuid.UUID) (lifecycle.Envelope, error) {
		return h.lifecycle.MarkAutoActioned(r.Context(), envelopeID, documentID, req.Actor)
	})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	h.documentAction(w, r, func(_ actionRequest, envelopeID, documentID uuid.UUID) (lifecycle.Envelope, error) {
		return h.lifecycle.DeleteActionedDocument(r.Context(), envelopeID, documentID)
	})
}

func (h *Handler) handleFollowUp(w http.ResponseWriter, r *http.Request) {
	h.documentAction(w, r, func(_ actionRequest, envelopeID, documentID uuid.UUID) (lifecycle.Envelope, error) {
		return h.lifecycle.RaiseDocumentFollowUp(r.Context(), envelopeID, documentID)
	})
}

func (h *Handler) handleReconcilePlea(w http.ResponseWriter, r *http.Request) {
	h.documentAction(w, r, func(req actionRequest, envelopeID, documentID uuid.UUID) (lifecycle.Envelope, error) {
		return h.reconcile.ReconcilePlea(r.Context(), envelopeID, documentID, req.Actor)
	})
}

func (h *Handler) handleReconcileFinancialMeans(w http.ResponseWriter, r *http.Request) {
	h.documentAction(w, r, func(req actionRequest, envelopeID, documentID uuid.UUID) (lifecycle.Envelope, error) {
		return h.reconcile.ReconcileFinancialMeans(r.Context(), envelopeID, documentID, req.Actor)
	})
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	envelopeID, documentID, err := pathIDs(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	state, err := h.lifecycle.RejectDocument(r.Context(), envelopeID, documentID, req.Problems)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state.ScanEnvelope)
}

func (h *Handler) handleExpire(w http.ResponseWriter, r *http.Request) {
	envelopeID, documentID, err := pathIDs(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req expireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.At.IsZero() {
		req.At = time.Now().UTC()
	}

	state, err := h.lifecycle.ExpireDocument(r.Context(), envelopeID, documentID, req.At)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state.ScanEnvelope)
}

// documentAction runs the shared decode-execute-respond shape of the
// single-document endpoints. An empty body is allowed where the command needs
// no actor.
func (h *Handler) documentAction(w http.ResponseWriter, r *http.Request, run func(actionRequest, uuid.UUID, uuid.UUID) (lifecycle.Envelope, error)) {
	envelopeID, documentID, err := pathIDs(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	state, err := run(req, envelopeID, documentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state.ScanEnvelope)
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid "+name)
	}
	return id, nil
}

func pathIDs(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	envelopeID, err := pathID(r, "envelopeID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	documentID, err := pathID(r, "documentID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return envelopeID, documentID, nil
}

package lifecycle

import (
	"time"

	"github.com/google/uuid"

	"scanhub/internal/intake/models"
	dErrors "scanhub/pkg/domain-errors"
	pkgStrings "scanhub/pkg/platform/strings"
)

// Commands validate against current state and return the events to record.
// They never mutate state; Apply does. Dedup of repeated registrations by
// content is the caller's responsibility.

// Register admits a normalized, classified envelope into the lifecycle.
func Register(env models.ScanEnvelope, now time.Time) ([]Event, error) {
	if env.ID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "envelope id is required")
	}
	for i := range env.Documents {
		if env.Documents[i].ID == uuid.Nil {
			return nil, dErrors.New(dErrors.CodeBadRequest, "every document needs the id assigned at normalization")
		}
		if env.Documents[i].Status == "" {
			return nil, dErrors.New(dErrors.CodeBadRequest, "every document needs an initial status")
		}
	}
	if env.Documents == nil {
		env.Documents = []models.ScanDocument{}
	}
	return []Event{&EnvelopeRegistered{Envelope: env, RegisteredAt: now}}, nil
}

// MarkManuallyActioned records a human attaching the document to its case.
// Permitted from PENDING, FOLLOW_UP or EXPIRED: resolving a follow-up or an
// expired document is exactly what a manual action is.
func MarkManuallyActioned(state Envelope, documentID uuid.UUID, actor string, now time.Time) ([]Event, error) {
	doc, err := liveDocument(state, documentID)
	if err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "actor is required for a manual action")
	}
	switch doc.Status {
	case models.StatusPending, models.StatusFollowUp, models.StatusExpired:
		return []Event{&ScanDocumentManuallyActioned{
			EnvelopeID: state.ID, DocumentID: documentID, Actor: actor, At: now,
		}}, nil
	default:
		return nil, dErrors.New(dErrors.CodeInvalidTransition,
			"document cannot be manually actioned from status "+string(doc.Status))
	}
}

// MarkAutoActioned records a rule attaching the document to its case.
// Permitted from PENDING only; anything else already needs a human.
func MarkAutoActioned(state Envelope, documentID uuid.UUID, actor string, now time.Time) ([]Event, error) {
	doc, err := liveDocument(state, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != models.StatusPending {
		return nil, dErrors.New(dErrors.CodeInvalidTransition,
			"document cannot be auto actioned from status "+string(doc.Status))
	}
	return []Event{&ScanDocumentAutoActioned{
		EnvelopeID: state.ID, DocumentID: documentID, Actor: actor, At: now,
	}}, nil
}

// DeleteActionedDocument marks an actioned document as physically purged.
// Deleting a document not yet actioned is an invalid command, signalled to
// the caller with the aggregate unchanged.
func DeleteActionedDocument(state Envelope, documentID uuid.UUID, now time.Time) ([]Event, error) {
	doc, err := liveDocument(state, documentID)
	if err != nil {
		return nil, err
	}
	if !doc.Status.Actioned() {
		return nil, dErrors.New(dErrors.CodeInvalidTransition,
			"only actioned documents can be deleted, document is "+string(doc.Status))
	}
	return []Event{&ActionedDocumentDeleted{
		EnvelopeID: state.ID, DocumentID: documentID, At: now,
	}}, nil
}

// RejectDocument returns a document to follow-up with the problems found.
func RejectDocument(state Envelope, documentID uuid.UUID, problems []string, now time.Time) ([]Event, error) {
	if _, err := liveDocument(state, documentID); err != nil {
		return nil, err
	}
	problems = pkgStrings.DedupeAndTrim(problems)
	if len(problems) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "a rejection needs at least one problem")
	}
	return []Event{&ScanDocumentRejected{
		EnvelopeID: state.ID, DocumentID: documentID, Problems: problems, At: now,
	}}, nil
}

// ExpireDocument records a document passing its retention deadline.
func ExpireDocument(state Envelope, documentID uuid.UUID, when time.Time) ([]Event, error) {
	if _, err := liveDocument(state, documentID); err != nil {
		return nil, err
	}
	return []Event{&ScanDocumentExpired{
		EnvelopeID: state.ID, DocumentID: documentID, At: when,
	}}, nil
}

// RaiseDocumentFollowUp flags a document whose case needs human review even
// though the document itself was attached.
func RaiseDocumentFollowUp(state Envelope, documentID uuid.UUID, now time.Time) ([]Event, error) {
	if _, err := liveDocument(state, documentID); err != nil {
		return nil, err
	}
	return []Event{&ScanDocumentAttachedAndFollowedUp{
		EnvelopeID: state.ID, DocumentID: documentID, At: now,
	}}, nil
}

// liveDocument fetches a document that exists and has not been purged.
func liveDocument(state Envelope, documentID uuid.UUID) (*models.ScanDocument, error) {
	doc := state.Document(documentID)
	if doc == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "document not found in envelope")
	}
	if doc.Deleted {
		return nil, dErrors.New(dErrors.CodeInvalidTransition, "document has been deleted")
	}
	return doc, nil
}

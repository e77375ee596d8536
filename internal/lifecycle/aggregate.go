package lifecycle

import (
	"github.com/google/uuid"

	"scanhub/internal/intake/models"
)

// Envelope is the replayed state of one scan envelope plus the stream
// version used for optimistic concurrency.
type Envelope struct {
	models.ScanEnvelope
	Version int64
}

// Replay folds a history into an Envelope, starting from zero state.
func Replay(events []Event) Envelope {
	var state Envelope
	for _, ev := range events {
		state = Apply(state, ev)
	}
	return state
}

// Apply folds one event into the state and returns the new state. The input
// is never mutated; the document collection is copied before writing.
func Apply(state Envelope, ev Event) Envelope {
	next := state
	next.Documents = append([]models.ScanDocument(nil), state.Documents...)

	switch e := ev.(type) {
	case *EnvelopeRegistered:
		next.ScanEnvelope = e.Envelope
		next.Documents = append([]models.ScanDocument(nil), e.Envelope.Documents...)

	case *ScanDocumentManuallyActioned:
		if doc := next.Document(e.DocumentID); doc != nil {
			doc.Status = models.StatusManuallyActioned
			doc.StatusCode = ""
			doc.ActionedBy = e.Actor
			doc.StatusUpdatedDate = e.At
		}

	case *ScanDocumentAutoActioned:
		if doc := next.Document(e.DocumentID); doc != nil {
			doc.Status = models.StatusAutoActioned
			doc.StatusCode = ""
			doc.ActionedBy = e.Actor
			doc.StatusUpdatedDate = e.At
		}

	case *ActionedDocumentDeleted:
		if doc := next.Document(e.DocumentID); doc != nil {
			doc.Deleted = true
			at := e.At
			doc.DeletedDate = &at
		}

	case *ScanDocumentRejected:
		if doc := next.Document(e.DocumentID); doc != nil {
			doc.Status = models.StatusFollowUp
			doc.StatusCode = models.StatusCodeRejected
			doc.StatusUpdatedDate = e.At
		}

	case *ScanDocumentExpired:
		if doc := next.Document(e.DocumentID); doc != nil {
			doc.Status = models.StatusExpired
			doc.StatusCode = models.StatusCodeExpired
			doc.StatusUpdatedDate = e.At
		}

	case *ScanDocumentAttachedAndFollowedUp:
		if doc := next.Document(e.DocumentID); doc != nil {
			doc.Status = models.StatusFollowUp
			doc.StatusCode = models.StatusCodeCaseNeedsReview
			doc.StatusUpdatedDate = e.At
		}

	case *ScanDocumentFollowedUp:
		if doc := next.Document(e.DocumentID); doc != nil {
			doc.Status = models.StatusFollowUp
			doc.StatusCode = e.Reason
			doc.StatusUpdatedDate = e.At
		}

	case *DefendantDetailsUpdated, *PleaDetailsUpdated, *DefendantFinancialMeansUpdated:
		// Case-side updates; the document's own disposition is unchanged.
	}

	next.Version++
	return next
}

// Registered reports whether the envelope has any history at all.
func (e Envelope) Registered() bool {
	return e.Version > 0 && e.ID != uuid.Nil
}

package reconcile

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"scanhub/internal/intake/models"
	"scanhub/internal/lifecycle"
	"scanhub/internal/tristate"
)

// PleaReconciler applies a scanned plea to the defendant's case data.
type PleaReconciler struct {
	logger *slog.Logger
}

// NewPleaReconciler builds a plea reconciler.
func NewPleaReconciler(logger *slog.Logger) *PleaReconciler {
	return &PleaReconciler{logger: logger}
}

// Reconcile emits the reconciliation batch for one scanned plea.
//
// DefendantDetailsUpdated is always first. When the scanned driving licence
// is present and differs from the case's existing one, a
// ScanDocumentFollowedUp is inserted before PleaDetailsUpdated, giving the
// order [DefendantDetailsUpdated, ScanDocumentFollowedUp, PleaDetailsUpdated].
func (r *PleaReconciler) Reconcile(envelopeID, documentID uuid.UUID, plea models.Plea, defendant Defendant, actor string, now time.Time) []lifecycle.Event {
	events := []lifecycle.Event{
		&lifecycle.DefendantDetailsUpdated{
			EnvelopeID: envelopeID,
			DocumentID: documentID,
			Details: lifecycle.DefendantDetails{
				ContactNumber:        plea.ContactNumber,
				EmailAddress:         plea.EmailAddress,
				DrivingLicenceNumber: plea.DrivingLicenceNumber,
			},
			Actor: actor,
			At:    now,
		},
	}

	if plea.DrivingLicenceNumber != "" && defendant.DrivingLicenceNumber != "" &&
		plea.DrivingLicenceNumber != defendant.DrivingLicenceNumber {
		r.logger.Warn("driving licence on scanned plea differs from case",
			"documentId", documentID, "caseUrn", defendant.CaseURN)
		events = append(events, &lifecycle.ScanDocumentFollowedUp{
			EnvelopeID: envelopeID,
			DocumentID: documentID,
			Actor:      actor,
			Reason:     models.StatusCodeDefendantDetailsUpdated,
			At:         now,
		})
	}

	events = append(events, &lifecycle.PleaDetailsUpdated{
		EnvelopeID: envelopeID,
		DocumentID: documentID,
		Offences:   matchOffences(plea.Offences, defendant.Offences),
		Actor:      actor,
		At:         now,
	})
	return events
}

// matchOffences maps scanned plea values onto the case's offences.
//
// A single-offence defendant takes the scanned plea unconditionally,
// regardless of any offence-title text on the form. With multiple offences,
// each case offence is matched by case-insensitive, whitespace-normalized
// title equality; zero or several matching scanned titles default that
// offence to NOT_GUILTY without raising any follow-up.
func matchOffences(scanned []models.Offence, known []CaseOffence) []lifecycle.OffencePleaUpdate {
	updates := make([]lifecycle.OffencePleaUpdate, 0, len(known))

	if len(known) == 1 {
		value := tristate.PleaNotGuilty
		if len(scanned) > 0 {
			value = scanned[0].Plea
		}
		return append(updates, lifecycle.OffencePleaUpdate{
			OffenceID: known[0].ID,
			Title:     known[0].Title,
			Plea:      value,
		})
	}

	for _, offence := range known {
		value := tristate.PleaNotGuilty
		matches := 0
		for _, s := range scanned {
			if titlesEqual(s.Title, offence.Title) {
				value = s.Plea
				matches++
			}
		}
		if matches != 1 {
			value = tristate.PleaNotGuilty
		}
		updates = append(updates, lifecycle.OffencePleaUpdate{
			OffenceID: offence.ID,
			Title:     offence.Title,
			Plea:      value,
		})
	}
	return updates
}

func titlesEqual(a, b string) bool {
	return normalizeTitle(a) == normalizeTitle(b)
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

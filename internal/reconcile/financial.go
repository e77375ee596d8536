package reconcile

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"scanhub/internal/intake/models"
	"scanhub/internal/lifecycle"
)

// FinancialMeansReconciler applies a scanned MC100 to the defendant's
// financial record.
type FinancialMeansReconciler struct {
	logger *slog.Logger
}

// NewFinancialMeansReconciler builds a financial-means reconciler.
func NewFinancialMeansReconciler(logger *slog.Logger) *FinancialMeansReconciler {
	return &FinancialMeansReconciler{logger: logger}
}

// Reconcile emits the reconciliation batch for one scanned MC100.
//
// A declared "no income" alongside populated income figures is contradictory:
// the update still carries the contradictory figures, and a
// ScanDocumentFollowedUp is emitted for the same document. A consistent
// "no income" produces a single update with amount zero.
func (r *FinancialMeansReconciler) Reconcile(envelopeID, documentID uuid.UUID, means models.FinancialMeans, actor string, now time.Time) []lifecycle.Event {
	update := lifecycle.FinancialMeansUpdate{
		NoIncome:      means.NoIncome,
		ClaimBenefits: means.ClaimBenefits,
		Employer:      means.Employer,
	}

	update.EmploymentStatus = means.Employment.Status()
	if ticked := means.Employment.Ticked(); ticked != 1 {
		update.EmploymentDiagnostic = fmt.Sprintf("%d employment boxes ticked", ticked)
		r.logger.Warn("ambiguous employment status on scanned MC100",
			"documentId", documentID, "ticked", ticked)
	}

	frequency, hasFrequency := means.Frequency.Frequency()
	if hasFrequency {
		update.Frequency = frequency
	}

	amount, hasAmount := parseAmount(means.AverageIncome)
	if hasAmount {
		update.Amount = amount
	}

	events := []lifecycle.Event{}
	contradictory := means.NoIncome && (hasAmount || hasFrequency)
	if means.NoIncome && !contradictory {
		update.Amount = 0
	}

	events = append(events, &lifecycle.DefendantFinancialMeansUpdated{
		EnvelopeID: envelopeID,
		DocumentID: documentID,
		Means:      update,
		Actor:      actor,
		At:         now,
	})

	if contradictory {
		events = append(events, &lifecycle.ScanDocumentFollowedUp{
			EnvelopeID: envelopeID,
			DocumentID: documentID,
			Actor:      actor,
			Reason:     models.StatusCodeIncomeMismatch,
			At:         now,
		})
	}
	return events
}

// parseAmount reads the scanned average-income text. OCR output carries
// currency symbols and grouping commas; both are stripped before parsing.
func parseAmount(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, false
	}
	cleaned = strings.NewReplacer("£", "", ",", "", " ", "").Replace(cleaned)
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

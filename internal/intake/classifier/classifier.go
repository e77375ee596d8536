// Package classifier decides the initial status of a normalized document:
// PENDING when the document can be attached to a live case automatically,
// FOLLOW_UP when it must wait for human review. The decision is evaluated
// once at intake and stored; later auto/manual-action decisions are a
// separate concern.
package classifier

import (
	"context"
	"log/slog"

	"scanhub/internal/intake/doctypes"
	"scanhub/internal/intake/models"
	"scanhub/internal/refdata"
)

// Classifier combines the local document-type table with remote reference
// data.
type Classifier struct {
	table   doctypes.Table
	gateway refdata.Gateway
	logger  *slog.Logger
}

// New builds a Classifier around the injected table and gateway.
func New(table doctypes.Table, gateway refdata.Gateway, logger *slog.Logger) *Classifier {
	return &Classifier{table: table, gateway: gateway, logger: logger}
}

// Classify returns the initial status for one document:
//   - unsupported document name: FOLLOW_UP
//   - case URN and prosecutor id both present: PENDING
//   - else, PTI URN present and its organisation-code lookup non-empty: PENDING
//   - otherwise: FOLLOW_UP
//
// Gateway failures count as an empty lookup; a flaky reference-data service
// queues documents for review rather than failing intake.
func (c *Classifier) Classify(ctx context.Context, caseURN, casePTIURN, prosecutorID, documentName string) (models.DocumentStatus, models.StatusCode) {
	if !c.table.Supported(documentName) {
		return models.StatusFollowUp, models.StatusCodeUnsupportedDocument
	}
	if caseURN != "" && prosecutorID != "" {
		return models.StatusPending, ""
	}
	if casePTIURN != "" {
		code, err := c.gateway.OrgCodeByCaseReference(ctx, casePTIURN)
		if err != nil {
			c.logger.WarnContext(ctx, "organisation-code lookup failed, classifying for follow-up",
				"casePtiUrn", casePTIURN, "error", err)
		}
		if code != "" {
			return models.StatusPending, ""
		}
	}
	return models.StatusFollowUp, models.StatusCodeCaseNotFound
}

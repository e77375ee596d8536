// Package lifecycle is the event-sourced state machine for scan envelopes.
// Commands are pure: given current aggregate state and input they return a
// sequence of events; a separate Apply step performs the mutation, so state
// can always be rebuilt by replay.
package lifecycle

import (
	"time"

	"github.com/google/uuid"

	"scanhub/internal/intake/models"
	"scanhub/internal/tristate"
)

// Event is one recorded fact about an envelope's documents.
type Event interface {
	// EventType is the stable wire name used for storage and publishing.
	EventType() string
	// AggregateID is the envelope the event belongs to.
	AggregateID() uuid.UUID
	isEvent()
}

// EnvelopeRegistered records an envelope entering the system with its
// normalized, classified documents.
type EnvelopeRegistered struct {
	Envelope     models.ScanEnvelope `json:"envelope"`
	RegisteredAt time.Time           `json:"registeredAt"`
}

// ScanDocumentManuallyActioned records a human attaching a document to its case.
type ScanDocumentManuallyActioned struct {
	EnvelopeID uuid.UUID `json:"envelopeId"`
	DocumentID uuid.UUID `json:"documentId"`
	Actor      string    `json:"actor"`
	At         time.Time `json:"at"`
}

// ScanDocumentAutoActioned records a rule attaching a document to its case.
type ScanDocumentAutoActioned struct {
	EnvelopeID uuid.UUID `json:"envelopeId"`
	DocumentID uuid.UUID `json:"documentId"`
	Actor      string    `json:"actor"`
	At         time.Time `json:"at"`
}

// ActionedDocumentDeleted records the physical purge of an actioned document.
// The aggregate retains the record for audit.
type ActionedDocumentDeleted struct {
	EnvelopeID uuid.UUID `json:"envelopeId"`
	DocumentID uuid.UUID `json:"documentId"`
	At         time.Time `json:"at"`
}

// ScanDocumentRejected records a reviewer bouncing a document back with the
// problems found; the document returns to follow-up.
type ScanDocumentRejected struct {
	EnvelopeID uuid.UUID `json:"envelopeId"`
	DocumentID uuid.UUID `json:"documentId"`
	Problems   []string  `json:"problems"`
	At         time.Time `json:"at"`
}

// ScanDocumentExpired records a document passing its retention deadline
// without being actioned or purged.
type ScanDocumentExpired struct {
	EnvelopeID uuid.UUID `json:"envelopeId"`
	DocumentID uuid.UUID `json:"documentId"`
	At         time.Time `json:"at"`
}

// ScanDocumentAttachedAndFollowedUp records a document that was attached to
// a case which itself needs human review.
type ScanDocumentAttachedAndFollowedUp struct {
	EnvelopeID uuid.UUID `json:"envelopeId"`
	DocumentID uuid.UUID `json:"documentId"`
	At         time.Time `json:"at"`
}

// ScanDocumentFollowedUp records a document queued for human review, with the
// status code explaining why.
type ScanDocumentFollowedUp struct {
	EnvelopeID uuid.UUID         `json:"envelopeId"`
	DocumentID uuid.UUID         `json:"documentId"`
	Actor      string            `json:"actor,omitempty"`
	Reason     models.StatusCode `json:"reason,omitempty"`
	At         time.Time         `json:"at"`
}

// DefendantDetails carries the personal and contact details extracted from a
// scanned plea form.
type DefendantDetails struct {
	ContactNumber        string `json:"contactNumber,omitempty"`
	EmailAddress         string `json:"emailAddress,omitempty"`
	DrivingLicenceNumber string `json:"drivingLicenceNumber,omitempty"`
}

// DefendantDetailsUpdated records the case-side defendant details being
// refreshed from a scanned plea.
type DefendantDetailsUpdated struct {
	EnvelopeID uuid.UUID        `json:"envelopeId"`
	DocumentID uuid.UUID        `json:"documentId"`
	Details    DefendantDetails `json:"details"`
	Actor      string           `json:"actor,omitempty"`
	At         time.Time        `json:"at"`
}

// OffencePleaUpdate is the plea applied to one case offence after matching.
type OffencePleaUpdate struct {
	OffenceID string             `json:"offenceId"`
	Title     string             `json:"title,omitempty"`
	Plea      tristate.PleaValue `json:"plea"`
}

// PleaDetailsUpdated records the reconciled per-offence pleas.
type PleaDetailsUpdated struct {
	EnvelopeID uuid.UUID           `json:"envelopeId"`
	DocumentID uuid.UUID           `json:"documentId"`
	Offences   []OffencePleaUpdate `json:"offences"`
	Actor      string              `json:"actor,omitempty"`
	At         time.Time           `json:"at"`
}

// FinancialMeansUpdate carries the reconciled financial-means figures.
// Indeterminate benefits data is legal here and is not a follow-up trigger.
type FinancialMeansUpdate struct {
	Amount               float64                 `json:"amount"`
	Frequency            models.IncomeFrequency  `json:"frequency,omitempty"`
	EmploymentStatus     models.EmploymentStatus `json:"employmentStatus"`
	EmploymentDiagnostic string                  `json:"employmentDiagnostic,omitempty"`
	NoIncome             bool                    `json:"noIncome"`
	ClaimBenefits        tristate.TriState       `json:"claimBenefits"`
	Employer             *models.Employer        `json:"employer,omitempty"`
}

// DefendantFinancialMeansUpdated records the case-side financial means being
// refreshed from a scanned MC100.
type DefendantFinancialMeansUpdated struct {
	EnvelopeID uuid.UUID            `json:"envelopeId"`
	DocumentID uuid.UUID            `json:"documentId"`
	Means      FinancialMeansUpdate `json:"means"`
	Actor      string               `json:"actor,omitempty"`
	At         time.Time            `json:"at"`
}

func (e *EnvelopeRegistered) EventType() string      { return "EnvelopeRegistered" }
func (e *EnvelopeRegistered) AggregateID() uuid.UUID { return e.Envelope.ID }
func (e *EnvelopeRegistered) isEvent()               {}

func (e *ScanDocumentManuallyActioned) EventType() string      { return "ScanDocumentManuallyActioned" }
func (e *ScanDocumentManuallyActioned) AggregateID() uuid.UUID { return e.EnvelopeID }
func (e *ScanDocumentManuallyActioned) isEvent()               {}

func (e *ScanDocumentAutoActioned) EventType() string      { return "ScanDocumentAutoActioned" }
func (e *ScanDocumentAutoActioned) AggregateID() uuid.UUID { return e.EnvelopeID }
func (e *ScanDocumentAutoActioned) isEvent()               {}

func (e *ActionedDocumentDeleted) EventType() string      { return "ActionedDocumentDeleted" }
func (e *ActionedDocumentDeleted) AggregateID() uuid.UUID { return e.EnvelopeID }
func (e *ActionedDocumentDeleted) isEvent()               {}

func (e *ScanDocumentRejected) EventType() string      { return "ScanDocumentRejected" }
func (e *ScanDocumentRejected) AggregateID() uuid.UUID { return e.EnvelopeID }
func (e *ScanDocumentRejected) isEvent()               {}

func (e *ScanDocumentExpired) EventType() string      { return "ScanDocumentExpired" }
func (e *ScanDocumentExpired) AggregateID() uuid.UUID { return e.EnvelopeID }
func (e *ScanDocumentExpired) isEvent()               {}

func (e *ScanDocumentAttachedAndFollowedUp) EventType() string {
	return "ScanDocumentAttachedAndFollowedUp"
}
func (e *ScanDocumentAttachedAndFollowedUp) AggregateID() uuid.UUID { return e.EnvelopeID }
func (e *ScanDocumentAttachedAndFollowedUp) isEvent()               {}

func (e *ScanDocumentFollowedUp) EventType() string      { return "ScanDocumentFollowedUp" }
func (e *ScanDocumentFollowedUp) AggregateID() uuid.UUID { return e.EnvelopeID }
func (e *ScanDocumentFollowedUp) isEvent()               {}

func (e *DefendantDetailsUpdated) EventType() string      { return "DefendantDetailsUpdated" }
func (e *DefendantDetailsUpdated) AggregateID() uuid.UUID { return e.EnvelopeID }
func (e *DefendantDetailsUpdated) isEvent()               {}

func (e *PleaDetailsUpdated) EventType() string      { return "PleaDetailsUpdated" }
func (e *PleaDetailsUpdated) AggregateID() uuid.UUID { return e.EnvelopeID }
func (e *PleaDetailsUpdated) isEvent()               {}

func (e *DefendantFinancialMeansUpdated) EventType() string {
	return "DefendantFinancialMeansUpdated"
}
func (e *DefendantFinancialMeansUpdated) AggregateID() uuid.UUID { return e.EnvelopeID }
func (e *DefendantFinancialMeansUpdated) isEvent()               {}

// Package models holds the scanned-envelope domain model. Values are built
// once by the normalizer and mutated only through lifecycle events.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus is the single disposition a document holds at any time.
type DocumentStatus string

const (
	StatusPending          DocumentStatus = "PENDING"
	StatusAutoActioned     DocumentStatus = "AUTO_ACTIONED"
	StatusManuallyActioned DocumentStatus = "MANUALLY_ACTIONED"
	StatusFollowUp         DocumentStatus = "FOLLOW_UP"
	StatusExpired          DocumentStatus = "EXPIRED"
)

// Actioned reports whether the status permits physical deletion.
func (s DocumentStatus) Actioned() bool {
	return s == StatusAutoActioned || s == StatusManuallyActioned
}

// StatusCode records why a document sits in its current status.
type StatusCode string

const (
	StatusCodeCaseNotFound            StatusCode = "CASE_NOT_FOUND"
	StatusCodeUnsupportedDocument     StatusCode = "UNSUPPORTED_DOCUMENT"
	StatusCodeDefendantDetailsUpdated StatusCode = "DEFENDANT_DETAILS_UPDATED"
	StatusCodeRejected                StatusCode = "DOCUMENT_REJECTED"
	StatusCodeExpired                 StatusCode = "DOCUMENT_EXPIRED"
	StatusCodeCaseNeedsReview         StatusCode = "CASE_NEEDS_REVIEW"
	StatusCodeIncomeMismatch          StatusCode = "INCOME_MISMATCH"
)

// ScanEnvelope is one batch of scanned documents delivered together with
// shared vendor metadata. Immutable after registration except for its
// document collection and per-document status fields.
type ScanEnvelope struct {
	ID                uuid.UUID      `json:"id"`
	Classification    string         `json:"classification,omitempty"`
	Jurisdiction      string         `json:"jurisdiction,omitempty"`
	Notes             string         `json:"notes,omitempty"`
	VendorPOBox       string         `json:"vendorPoBox,omitempty"`
	VendorOpeningDate string         `json:"vendorOpeningDate,omitempty"`
	ZipCreatedDate    string         `json:"zipCreatedDate,omitempty"`
	ZipFileName       string         `json:"zipFileName,omitempty"`
	ExtractedDate     string         `json:"extractedDate,omitempty"`
	Documents         []ScanDocument `json:"documents"`
}

// Document returns a pointer to the document with the given id, or nil.
func (e *ScanEnvelope) Document(id uuid.UUID) *ScanDocument {
	for i := range e.Documents {
		if e.Documents[i].ID == id {
			return &e.Documents[i]
		}
	}
	return nil
}

// ScanDocument is one scanned paper form inside an envelope. Vendor dates are
// carried verbatim as scanned text; lifecycle timestamps are real times.
type ScanDocument struct {
	ID                      uuid.UUID       `json:"id"`
	CaseURN                 string          `json:"caseUrn,omitempty"`
	CasePTIURN              string          `json:"casePtiUrn,omitempty"`
	ProsecutorAuthorityID   string          `json:"prosecutorAuthorityId,omitempty"`
	ProsecutorAuthorityCode string          `json:"prosecutorAuthorityCode,omitempty"`
	ProsecutorShortName     string          `json:"prosecutorShortName,omitempty"`
	DocumentControlNumber   string          `json:"documentControlNumber,omitempty"`
	DocumentName            string          `json:"documentName"`
	FileName                string          `json:"fileName,omitempty"`
	ManualIntervention      string          `json:"manualIntervention,omitempty"`
	NextAction              string          `json:"nextAction,omitempty"`
	NextActionDate          string          `json:"nextActionDate,omitempty"`
	Notes                   string          `json:"notes,omitempty"`
	ScanningDate            string          `json:"scanningDate,omitempty"`
	VendorReceivedDate      string          `json:"vendorReceivedDate,omitempty"`
	ASN                     string          `json:"asn,omitempty"`
	Status                  DocumentStatus  `json:"status"`
	StatusCode              StatusCode      `json:"statusCode,omitempty"`
	StatusUpdatedDate       time.Time       `json:"statusUpdatedDate"`
	ActionedBy              string          `json:"actionedBy,omitempty"`
	Deleted                 bool            `json:"deleted"`
	DeletedDate             *time.Time      `json:"deletedDate,omitempty"`
	Plea                    *Plea           `json:"plea,omitempty"`
	FinancialMeans          *FinancialMeans `json:"financialMeans,omitempty"`
}

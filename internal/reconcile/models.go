// Package reconcile compares freshly scanned plea and financial-means data
// against what the case service already knows, and emits the reconciliation
// events the lifecycle records. Contradictory paper data is never an error
// here; it surfaces as follow-up events so the pipeline keeps flowing.
package reconcile

import "context"

// CaseOffence is one offence already recorded against the defendant.
type CaseOffence struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Defendant is the case-side view fetched before reconciliation.
type Defendant struct {
	CaseURN              string        `json:"caseUrn"`
	ContactNumber        string        `json:"contactNumber,omitempty"`
	EmailAddress         string        `json:"emailAddress,omitempty"`
	DrivingLicenceNumber string        `json:"drivingLicenceNumber,omitempty"`
	Offences             []CaseOffence `json:"offences"`
}

// CaseService is the external case-management port. Mutations on the case
// side are issued by downstream consumers of the emitted events, not here.
type CaseService interface {
	GetDefendant(ctx context.Context, caseURN string) (*Defendant, error)
}

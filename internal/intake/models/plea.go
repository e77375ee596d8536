package models

import "scanhub/internal/tristate"

// Plea carries the defendant's response extracted from a scanned plea form.
type Plea struct {
	ContactNumber        string             `json:"contactNumber,omitempty"`
	DetailsCorrect       tristate.TriState  `json:"detailsCorrect"`
	DrivingLicenceNumber string             `json:"drivingLicenceNumber,omitempty"`
	EmailAddress         string             `json:"emailAddress,omitempty"`
	Interpreter          *Interpreter       `json:"interpreter,omitempty"`
	WelshHearing         tristate.TriState  `json:"welshHearing"`
	WishToComeToCourt    tristate.TriState  `json:"wishToComeToCourt"`
	// Offences is never nil; an empty slice means no offence entries were
	// found on the form.
	Offences []Offence `json:"offences"`
}

// Interpreter records an interpreter request from the form.
type Interpreter struct {
	Language string            `json:"language,omitempty"`
	Needed   tristate.TriState `json:"needed"`
}

// Offence is one numbered offence entry on a plea form.
type Offence struct {
	Title string             `json:"title"`
	Plea  tristate.PleaValue `json:"plea"`
}

package models

// EnvelopePayload is the intake wire shape: one envelope of vendor metadata
// plus its scanned items. Scalar fields arrive as scanned text and are copied
// through verbatim when present.
type EnvelopePayload struct {
	Classification          string            `json:"classification"`
	Jurisdiction            string            `json:"jurisdiction"`
	Notes                   string            `json:"notes"`
	VendorPOBox             string            `json:"vendorPoBox"`
	VendorOpeningDate       string            `json:"vendorOpeningDate"`
	ZipCreatedDate          string            `json:"zipCreatedDate"`
	ZipFileName             string            `json:"zipFileName"`
	ExtractedDate           string            `json:"extractedDate"`
	AssociatedScanDocuments []DocumentPayload `json:"associatedScanDocuments"`
}

// DocumentPayload is one raw scanned-item record. ExtractedMetadata is an
// optional base64-encoded blob whose decoded form is a list of
// {field_name, field_value} pairs produced by OCR.
type DocumentPayload struct {
	CaseURN               string `json:"caseUrn"`
	CasePTIURN            string `json:"casePtiUrn"`
	ProsecutorAuthorityID string `json:"prosecutorAuthorityId"`
	DocumentControlNumber string `json:"documentControlNumber"`
	DocumentName          string `json:"documentName"`
	FileName              string `json:"fileName"`
	ManualIntervention    string `json:"manualIntervention"`
	NextAction            string `json:"nextAction"`
	NextActionDate        string `json:"nextActionDate"`
	Notes                 string `json:"notes"`
	ScanningDate          string `json:"scanningDate"`
	VendorReceivedDate    string `json:"vendorReceivedDate"`
	ASN                   string `json:"asn"`
	ExtractedMetadata     string `json:"extractedMetadata"`
}

// Package normalizer converts one raw scanned-item record, plus its optional
// OCR field map, into a structured ScanDocument draft. It owns identifier
// generation: every document gets its id here and keeps it unchanged through
// the lifecycle aggregate.
package normalizer

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"scanhub/internal/intake/doctypes"
	"scanhub/internal/intake/models"
	"scanhub/internal/refdata"
	"scanhub/internal/tristate"
)

// maxOffenceEntries caps the numbered offence scan on a plea form.
const maxOffenceEntries = 10

// Normalizer builds ScanDocument drafts. Prosecutor enrichment through the
// reference-data gateway is best-effort: a failed or empty lookup leaves the
// prosecutor fields unset and never errors.
type Normalizer struct {
	table   doctypes.Table
	gateway refdata.Gateway
	logger  *slog.Logger
}

// New builds a Normalizer around the injected document-type table and gateway.
func New(table doctypes.Table, gateway refdata.Gateway, logger *slog.Logger) *Normalizer {
	return &Normalizer{table: table, gateway: gateway, logger: logger}
}

// Normalize produces a ScanDocument draft from one intake item. The document
// record is always produced; malformed OCR data degrades to a document with
// no structured plea or financial-means extract.
func (n *Normalizer) Normalize(ctx context.Context, item models.DocumentPayload) models.ScanDocument {
	doc := models.ScanDocument{
		ID:                    uuid.New(),
		CaseURN:               item.CaseURN,
		CasePTIURN:            item.CasePTIURN,
		ProsecutorAuthorityID: item.ProsecutorAuthorityID,
		DocumentControlNumber: item.DocumentControlNumber,
		DocumentName:          item.DocumentName,
		FileName:              item.FileName,
		ManualIntervention:    item.ManualIntervention,
		NextAction:            item.NextAction,
		NextActionDate:        item.NextActionDate,
		Notes:                 item.Notes,
		ScanningDate:          item.ScanningDate,
		VendorReceivedDate:    item.VendorReceivedDate,
		ASN:                   item.ASN,
	}

	n.enrichProsecutor(ctx, &doc)

	fields, err := DecodeMetadata(item.ExtractedMetadata)
	if err != nil {
		n.logger.WarnContext(ctx, "discarding malformed OCR metadata",
			"documentControlNumber", item.DocumentControlNumber, "error", err)
		return doc
	}
	if fields == nil {
		return doc
	}

	switch cat, _ := n.table.Category(doc.DocumentName); cat {
	case doctypes.CategoryPlea:
		doc.Plea = buildPlea(fields)
	case doctypes.CategoryFinancialMeans:
		doc.FinancialMeans = buildFinancialMeans(fields)
	}
	return doc
}

// enrichProsecutor resolves the prosecuting authority. A PTI URN takes
// precedence: URN → organisation code → short name. Without one, a supplied
// prosecutor id is tried against the short-name lookup directly.
func (n *Normalizer) enrichProsecutor(ctx context.Context, doc *models.ScanDocument) {
	if doc.CasePTIURN != "" {
		code, err := n.gateway.OrgCodeByCaseReference(ctx, doc.CasePTIURN)
		if err != nil {
			n.logger.WarnContext(ctx, "skipping prosecutor enrichment",
				"casePtiUrn", doc.CasePTIURN, "error", err)
			return
		}
		if code == "" {
			return
		}
		doc.ProsecutorAuthorityCode = code
		name, err := n.gateway.ShortNameByOrgCode(ctx, code)
		if err != nil {
			n.logger.WarnContext(ctx, "skipping prosecutor short-name enrichment",
				"orgCode", code, "error", err)
			return
		}
		doc.ProsecutorShortName = name
		return
	}
	if doc.ProsecutorAuthorityID != "" {
		name, err := n.gateway.ShortNameByOrgCode(ctx, doc.ProsecutorAuthorityID)
		if err != nil {
			n.logger.WarnContext(ctx, "skipping prosecutor short-name enrichment",
				"prosecutorId", doc.ProsecutorAuthorityID, "error", err)
			return
		}
		doc.ProsecutorShortName = name
	}
}

// pleaMarkers are the OCR keys whose presence identifies plea form content.
var pleaMarkers = []string{
	"detailsCorrectYes", "detailsCorrectNo", "detailsChanged",
	"comeToCourtYes", "comeToCourtNo",
	"welshHearingYes", "welshHearingNo",
	"interpreterNeededYes", "interpreterNeededNo",
	"pleaOffenceTitle1",
}

func buildPlea(fields map[string]string) *models.Plea {
	if !anyField(fields, pleaMarkers...) {
		return nil
	}
	plea := &models.Plea{
		ContactNumber:        field(fields, "contactNumber"),
		DrivingLicenceNumber: field(fields, "drivingLicenceNumber"),
		EmailAddress:         field(fields, "emailAddress"),
		DetailsCorrect: tristate.ResolveDetailsCorrect(
			flag(fields, "detailsCorrectYes"),
			flag(fields, "detailsCorrectNo"),
			flag(fields, "detailsChanged"),
		),
		WelshHearing:      tristate.Resolve(flag(fields, "welshHearingYes"), flag(fields, "welshHearingNo")),
		WishToComeToCourt: tristate.Resolve(flag(fields, "comeToCourtYes"), flag(fields, "comeToCourtNo")),
		Offences:          []models.Offence{},
	}
	if anyField(fields, "interpreterLanguage", "interpreterNeededYes", "interpreterNeededNo") {
		plea.Interpreter = &models.Interpreter{
			Language: field(fields, "interpreterLanguage"),
			Needed:   tristate.Resolve(flag(fields, "interpreterNeededYes"), flag(fields, "interpreterNeededNo")),
		}
	}
	// Offence entries are numbered; the scan stops at the first missing title.
	for i := 1; i <= maxOffenceEntries; i++ {
		suffix := strconv.Itoa(i)
		title := field(fields, "pleaOffenceTitle"+suffix)
		if title == "" {
			break
		}
		plea.Offences = append(plea.Offences, models.Offence{
			Title: title,
			Plea: tristate.ResolvePlea(
				flag(fields, "pleaOffenceGuilty"+suffix),
				flag(fields, "pleaOffenceNotGuilty"+suffix),
			),
		})
	}
	return plea
}

// financialMarkers are the OCR keys whose presence identifies MC100 content.
var financialMarkers = []string{
	"employedYes", "selfEmployedYes", "unemployedYes", "otherEmploymentYes",
	"claimBenefitsYes", "claimBenefitsNo",
	"noIncome", "averageIncome",
	"incomeFrequencyWeekly", "incomeFrequencyFortnightly",
	"incomeFrequencyMonthly", "incomeFrequencyYearly",
}

func buildFinancialMeans(fields map[string]string) *models.FinancialMeans {
	if !anyField(fields, financialMarkers...) {
		return nil
	}
	means := &models.FinancialMeans{
		AverageIncome: field(fields, "averageIncome"),
		ClaimBenefits: tristate.Resolve(flag(fields, "claimBenefitsYes"), flag(fields, "claimBenefitsNo")),
		Employment: models.EmploymentFlags{
			Employed:     flag(fields, "employedYes"),
			SelfEmployed: flag(fields, "selfEmployedYes"),
			Unemployed:   flag(fields, "unemployedYes"),
			Other:        flag(fields, "otherEmploymentYes"),
		},
		Frequency: models.FrequencyFlags{
			Weekly:      flag(fields, "incomeFrequencyWeekly"),
			Fortnightly: flag(fields, "incomeFrequencyFortnightly"),
			Monthly:     flag(fields, "incomeFrequencyMonthly"),
			Yearly:      flag(fields, "incomeFrequencyYearly"),
		},
		NoIncome: flag(fields, "noIncome"),
	}
	employer := models.Employer{
		Name:          field(fields, "employerName"),
		AddressLine1:  field(fields, "employerAddressLine1"),
		AddressLine2:  field(fields, "employerAddressLine2"),
		AddressLine3:  field(fields, "employerAddressLine3"),
		City:          field(fields, "employerCity"),
		Postcode:      field(fields, "employerPostcode"),
		NINumber:      field(fields, "employerNiNumber"),
		PayrollNumber: field(fields, "employerPayrollNumber"),
	}
	if !employer.Empty() {
		means.Employer = &employer
	}
	return means
}

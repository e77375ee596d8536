package models

import "scanhub/internal/tristate"

// EmploymentStatus is the single employment category derived from the four
// employment checkboxes on an MC100 form.
type EmploymentStatus string

const (
	EmploymentEmployed     EmploymentStatus = "EMPLOYED"
	EmploymentSelfEmployed EmploymentStatus = "SELF_EMPLOYED"
	EmploymentUnemployed   EmploymentStatus = "UNEMPLOYED"
	EmploymentOther        EmploymentStatus = "OTHER"
	// EmploymentUnknown records that none, or more than one, of the
	// employment boxes was ticked.
	EmploymentUnknown EmploymentStatus = "UNKNOWN"
)

// IncomeFrequency is how often the declared average income is received.
type IncomeFrequency string

const (
	FrequencyWeekly      IncomeFrequency = "WEEKLY"
	FrequencyFortnightly IncomeFrequency = "FORTNIGHTLY"
	FrequencyMonthly     IncomeFrequency = "MONTHLY"
	FrequencyYearly      IncomeFrequency = "YEARLY"
)

// EmploymentFlags holds the four employment checkboxes as scanned. The boxes
// are not mutually exclusive at this layer; each is the plain boolean cast of
// its own Yes mark. Exclusivity is resolved downstream.
type EmploymentFlags struct {
	Employed     bool `json:"employed"`
	SelfEmployed bool `json:"selfEmployed"`
	Unemployed   bool `json:"unemployed"`
	Other        bool `json:"other"`
}

// Status maps the flags to an EmploymentStatus when exactly one box is
// ticked, and to EmploymentUnknown otherwise.
func (f EmploymentFlags) Status() EmploymentStatus {
	var status EmploymentStatus
	count := 0
	if f.Employed {
		status, count = EmploymentEmployed, count+1
	}
	if f.SelfEmployed {
		status, count = EmploymentSelfEmployed, count+1
	}
	if f.Unemployed {
		status, count = EmploymentUnemployed, count+1
	}
	if f.Other {
		status, count = EmploymentOther, count+1
	}
	if count != 1 {
		return EmploymentUnknown
	}
	return status
}

// Ticked counts how many employment boxes are marked.
func (f EmploymentFlags) Ticked() int {
	count := 0
	for _, b := range []bool{f.Employed, f.SelfEmployed, f.Unemployed, f.Other} {
		if b {
			count++
		}
	}
	return count
}

// FrequencyFlags holds the four income-frequency checkboxes as scanned,
// resolved independently like the employment flags.
type FrequencyFlags struct {
	Weekly      bool `json:"weekly"`
	Fortnightly bool `json:"fortnightly"`
	Monthly     bool `json:"monthly"`
	Yearly      bool `json:"yearly"`
}

// Frequency maps the flags to an IncomeFrequency when exactly one box is
// ticked. The second return is false when none or several boxes are marked.
func (f FrequencyFlags) Frequency() (IncomeFrequency, bool) {
	var freq IncomeFrequency
	count := 0
	if f.Weekly {
		freq, count = FrequencyWeekly, count+1
	}
	if f.Fortnightly {
		freq, count = FrequencyFortnightly, count+1
	}
	if f.Monthly {
		freq, count = FrequencyMonthly, count+1
	}
	if f.Yearly {
		freq, count = FrequencyYearly, count+1
	}
	if count != 1 {
		return "", false
	}
	return freq, true
}

// Employer carries the employer block from an MC100 form, copied verbatim.
type Employer struct {
	Name          string `json:"name,omitempty"`
	AddressLine1  string `json:"addressLine1,omitempty"`
	AddressLine2  string `json:"addressLine2,omitempty"`
	AddressLine3  string `json:"addressLine3,omitempty"`
	City          string `json:"city,omitempty"`
	Postcode      string `json:"postcode,omitempty"`
	NINumber      string `json:"niNumber,omitempty"`
	PayrollNumber string `json:"payrollNumber,omitempty"`
}

// Empty reports whether no employer sub-field was populated.
func (e Employer) Empty() bool {
	return e == Employer{}
}

// FinancialMeans is the normalized content of a scanned MC100 financial-means
// statement.
type FinancialMeans struct {
	AverageIncome string            `json:"averageIncome,omitempty"`
	ClaimBenefits tristate.TriState `json:"claimBenefits"`
	Employment    EmploymentFlags   `json:"employmentFlags"`
	Frequency     FrequencyFlags    `json:"frequencyFlags"`
	NoIncome      bool              `json:"noIncome"`
	Employer      *Employer         `json:"employer,omitempty"`
}

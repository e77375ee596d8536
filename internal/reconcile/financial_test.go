package reconcile

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanhub/internal/intake/models"
	"scanhub/internal/lifecycle"
	"scanhub/internal/platform/logger"
	"scanhub/internal/tristate"
)

var financialNow = time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC)

func reconcileMeans(t *testing.T, means models.FinancialMeans) []lifecycle.Event {
	t.Helper()
	r := NewFinancialMeansReconciler(logger.New())
	return r.Reconcile(uuid.New(), uuid.New(), means, "clerk", financialNow)
}

func TestFinancialReconcileConsistentIncome(t *testing.T) {
	means := models.FinancialMeans{
		AverageIncome: "£1,234.50",
		ClaimBenefits: tristate.False,
		Employment:    models.EmploymentFlags{Employed: true},
		Frequency:     models.FrequencyFlags{Monthly: true},
	}

	events := reconcileMeans(t, means)

	require.Len(t, events, 1)
	updated, ok := events[0].(*lifecycle.DefendantFinancialMeansUpdated)
	require.True(t, ok)
	assert.Equal(t, 1234.50, updated.Means.Amount)
	assert.Equal(t, models.FrequencyMonthly, updated.Means.Frequency)
	assert.Equal(t, models.EmploymentEmployed, updated.Means.EmploymentStatus)
	assert.Empty(t, updated.Means.EmploymentDiagnostic)
}

func TestFinancialReconcileNoIncomeWithFiguresRaisesFollowUp(t *testing.T) {
	means := models.FinancialMeans{
		AverageIncome: "12345",
		Frequency:     models.FrequencyFlags{Monthly: true},
		NoIncome:      true,
	}

	events := reconcileMeans(t, means)

	require.Len(t, events, 2)
	updated, ok := events[0].(*lifecycle.DefendantFinancialMeansUpdated)
	require.True(t, ok)
	assert.Equal(t, 12345.0, updated.Means.Amount)
	assert.Equal(t, models.FrequencyMonthly, updated.Means.Frequency)
	assert.True(t, updated.Means.NoIncome)

	followUp, ok := events[1].(*lifecycle.ScanDocumentFollowedUp)
	require.True(t, ok)
	assert.Equal(t, models.StatusCodeIncomeMismatch, followUp.Reason)
}

func TestFinancialReconcileConsistentNoIncome(t *testing.T) {
	means := models.FinancialMeans{
		NoIncome:   true,
		Employment: models.EmploymentFlags{Unemployed: true},
	}

	events := reconcileMeans(t, means)

	require.Len(t, events, 1)
	updated, ok := events[0].(*lifecycle.DefendantFinancialMeansUpdated)
	require.True(t, ok)
	assert.Zero(t, updated.Means.Amount)
	assert.True(t, updated.Means.NoIncome)
	assert.Equal(t, models.EmploymentUnemployed, updated.Means.EmploymentStatus)
}

func TestFinancialReconcileAmbiguousEmploymentRecordsDiagnostic(t *testing.T) {
	means := models.FinancialMeans{
		AverageIncome: "200",
		Employment:    models.EmploymentFlags{Employed: true, SelfEmployed: true},
		Frequency:     models.FrequencyFlags{Weekly: true},
	}

	events := reconcileMeans(t, means)

	require.Len(t, events, 1)
	updated := events[0].(*lifecycle.DefendantFinancialMeansUpdated)
	assert.Equal(t, models.EmploymentUnknown, updated.Means.EmploymentStatus)
	assert.Equal(t, "2 employment boxes ticked", updated.Means.EmploymentDiagnostic)
}

func TestFinancialReconcileUnparsableIncomeIgnored(t *testing.T) {
	means := models.FinancialMeans{
		AverageIncome: "about two hundred",
		Employment:    models.EmploymentFlags{Employed: true},
	}

	events := reconcileMeans(t, means)

	require.Len(t, events, 1)
	updated := events[0].(*lifecycle.DefendantFinancialMeansUpdated)
	assert.Zero(t, updated.Means.Amount)
}

func TestParseAmountStripsCurrencyAndGrouping(t *testing.T) {
	cases := map[string]struct {
		amount float64
		ok     bool
	}{
		"£1,234.50": {1234.50, true},
		"  250 ":    {250, true},
		"":          {0, false},
		"n/a":       {0, false},
	}
	for raw, expected := range cases {
		amount, ok := parseAmount(raw)
		assert.Equal(t, expected.ok, ok, raw)
		assert.Equal(t, expected.amount, amount, raw)
	}
}

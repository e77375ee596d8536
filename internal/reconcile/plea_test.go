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

var pleaNow = time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC)

func reconcilePlea(t *testing.T, plea models.Plea, defendant Defendant) []lifecycle.Event {
	t.Helper()
	r := NewPleaReconciler(logger.New())
	return r.Reconcile(uuid.New(), uuid.New(), plea, defendant, "clerk", pleaNow)
}

func TestPleaReconcileMatchingLicenceEmitsTwoEvents(t *testing.T) {
	plea := models.Plea{
		ContactNumber:        "07700 900123",
		EmailAddress:         "def@example.com",
		DrivingLicenceNumber: "JONES061102W97YT",
		Offences:             []models.Offence{{Title: "Speeding", Plea: tristate.PleaGuilty}},
	}
	defendant := Defendant{
		CaseURN:              "URN1",
		DrivingLicenceNumber: "JONES061102W97YT",
		Offences:             []CaseOffence{{ID: "off-1", Title: "Speeding"}},
	}

	events := reconcilePlea(t, plea, defendant)

	require.Len(t, events, 2)
	details, ok := events[0].(*lifecycle.DefendantDetailsUpdated)
	require.True(t, ok)
	assert.Equal(t, "07700 900123", details.Details.ContactNumber)
	assert.Equal(t, "def@example.com", details.Details.EmailAddress)

	updated, ok := events[1].(*lifecycle.PleaDetailsUpdated)
	require.True(t, ok)
	require.Len(t, updated.Offences, 1)
	assert.Equal(t, tristate.PleaGuilty, updated.Offences[0].Plea)
}

func TestPleaReconcileLicenceMismatchInsertsFollowUpBeforePleaUpdate(t *testing.T) {
	plea := models.Plea{
		DrivingLicenceNumber: "SMITH061102W97YT",
		Offences:             []models.Offence{{Title: "Speeding", Plea: tristate.PleaGuilty}},
	}
	defendant := Defendant{
		CaseURN:              "URN1",
		DrivingLicenceNumber: "JONES061102W97YT",
		Offences:             []CaseOffence{{ID: "off-1", Title: "Speeding"}},
	}

	events := reconcilePlea(t, plea, defendant)

	require.Len(t, events, 3)
	_, ok := events[0].(*lifecycle.DefendantDetailsUpdated)
	assert.True(t, ok)
	followUp, ok := events[1].(*lifecycle.ScanDocumentFollowedUp)
	require.True(t, ok)
	assert.Equal(t, models.StatusCodeDefendantDetailsUpdated, followUp.Reason)
	_, ok = events[2].(*lifecycle.PleaDetailsUpdated)
	assert.True(t, ok)
}

func TestPleaReconcileEmptyCaseLicenceDoesNotFollowUp(t *testing.T) {
	plea := models.Plea{DrivingLicenceNumber: "SMITH061102W97YT"}
	defendant := Defendant{CaseURN: "URN1"}

	events := reconcilePlea(t, plea, defendant)

	assert.Len(t, events, 2)
}

func TestMatchOffencesSingleOffenceTakesScannedPleaUnconditionally(t *testing.T) {
	scanned := []models.Offence{{Title: "Completely different wording", Plea: tristate.PleaGuilty}}
	known := []CaseOffence{{ID: "off-1", Title: "Speeding"}}

	updates := matchOffences(scanned, known)

	require.Len(t, updates, 1)
	assert.Equal(t, "off-1", updates[0].OffenceID)
	assert.Equal(t, tristate.PleaGuilty, updates[0].Plea)
}

func TestMatchOffencesSingleOffenceNoScannedEntriesDefaultsNotGuilty(t *testing.T) {
	updates := matchOffences(nil, []CaseOffence{{ID: "off-1", Title: "Speeding"}})

	require.Len(t, updates, 1)
	assert.Equal(t, tristate.PleaNotGuilty, updates[0].Plea)
}

func TestMatchOffencesMultipleOffencesMatchByNormalizedTitle(t *testing.T) {
	scanned := []models.Offence{
		{Title: "  speeding ", Plea: tristate.PleaGuilty},
		{Title: "No Insurance", Plea: tristate.PleaNotGuilty},
	}
	known := []CaseOffence{
		{ID: "off-1", Title: "Speeding"},
		{ID: "off-2", Title: "no   insurance"},
	}

	updates := matchOffences(scanned, known)

	require.Len(t, updates, 2)
	assert.Equal(t, tristate.PleaGuilty, updates[0].Plea)
	assert.Equal(t, tristate.PleaNotGuilty, updates[1].Plea)
}

func TestMatchOffencesZeroMatchesDefaultsNotGuilty(t *testing.T) {
	scanned := []models.Offence{{Title: "Littering", Plea: tristate.PleaGuilty}}
	known := []CaseOffence{
		{ID: "off-1", Title: "Speeding"},
		{ID: "off-2", Title: "No insurance"},
	}

	updates := matchOffences(scanned, known)

	require.Len(t, updates, 2)
	for _, u := range updates {
		assert.Equal(t, tristate.PleaNotGuilty, u.Plea)
	}
}

func TestMatchOffencesDuplicateMatchesDefaultNotGuiltyWithoutFollowUp(t *testing.T) {
	scanned := []models.Offence{
		{Title: "Speeding", Plea: tristate.PleaGuilty},
		{Title: "Speeding", Plea: tristate.PleaBoth},
	}
	known := []CaseOffence{
		{ID: "off-1", Title: "Speeding"},
		{ID: "off-2", Title: "No insurance"},
	}

	updates := matchOffences(scanned, known)

	require.Len(t, updates, 2)
	assert.Equal(t, tristate.PleaNotGuilty, updates[0].Plea)
	assert.Equal(t, tristate.PleaNotGuilty, updates[1].Plea)
}

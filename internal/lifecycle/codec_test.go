package lifecycle

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCodecRoundTrip(t *testing.T) {
	original := &ScanDocumentFollowedUp{
		EnvelopeID: uuid.New(),
		DocumentID: uuid.New(),
		Actor:      "clerk",
		Reason:     "INCOME_MISMATCH",
		At:         time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC),
	}

	eventType, payload, err := MarshalEvent(original)
	require.NoError(t, err)
	assert.Equal(t, "ScanDocumentFollowedUp", eventType)

	decoded, err := UnmarshalEvent(eventType, payload)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestUnmarshalUnknownEventTypeFails(t *testing.T) {
	_, err := UnmarshalEvent("SomethingElseEntirely", []byte(`{}`))

	assert.Error(t, err)
}

func TestUnmarshalMalformedPayloadFails(t *testing.T) {
	_, err := UnmarshalEvent("ScanDocumentExpired", []byte(`{`))

	assert.Error(t, err)
}

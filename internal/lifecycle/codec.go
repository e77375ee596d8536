package lifecycle

import (
	"encoding/json"
	"fmt"
)

// MarshalEvent serializes an event for storage or publishing, returning its
// stable type name alongside the JSON payload.
func MarshalEvent(ev Event) (eventType string, payload []byte, err error) {
	payload, err = json.Marshal(ev)
	if err != nil {
		return "", nil, fmt.Errorf("marshal %s: %w", ev.EventType(), err)
	}
	return ev.EventType(), payload, nil
}

// UnmarshalEvent rebuilds an event from its stored type name and payload.
// Unknown type names are an error: the stream is corrupt or newer than this
// binary, and silently skipping events would corrupt replay.
func UnmarshalEvent(eventType string, payload []byte) (Event, error) {
	var ev Event
	switch eventType {
	case "EnvelopeRegistered":
		ev = &EnvelopeRegistered{}
	case "ScanDocumentManuallyActioned":
		ev = &ScanDocumentManuallyActioned{}
	case "ScanDocumentAutoActioned":
		ev = &ScanDocumentAutoActioned{}
	case "ActionedDocumentDeleted":
		ev = &ActionedDocumentDeleted{}
	case "ScanDocumentRejected":
		ev = &ScanDocumentRejected{}
	case "ScanDocumentExpired":
		ev = &ScanDocumentExpired{}
	case "ScanDocumentAttachedAndFollowedUp":
		ev = &ScanDocumentAttachedAndFollowedUp{}
	case "ScanDocumentFollowedUp":
		ev = &ScanDocumentFollowedUp{}
	case "DefendantDetailsUpdated":
		ev = &DefendantDetailsUpdated{}
	case "PleaDetailsUpdated":
		ev = &PleaDetailsUpdated{}
	case "DefendantFinancialMeansUpdated":
		ev = &DefendantFinancialMeansUpdated{}
	default:
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}
	if err := json.Unmarshal(payload, ev); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", eventType, err)
	}
	return ev, nil
}

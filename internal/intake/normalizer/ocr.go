package normalizer

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// ocrPair is one extracted key/value from the vendor's OCR output.
type ocrPair struct {
	FieldName  string `json:"field_name"`
	FieldValue string `json:"field_value"`
}

// DecodeMetadata turns the base64-encoded OCR blob into a flat field map.
// Later duplicates win, matching the vendor's page ordering.
func DecodeMetadata(encoded string) (map[string]string, error) {
	if strings.TrimSpace(encoded) == "" {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode OCR metadata: %w", err)
	}
	var pairs []ocrPair
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, fmt.Errorf("parse OCR metadata: %w", err)
	}
	fields := make(map[string]string, len(pairs))
	for _, p := range pairs {
		fields[p.FieldName] = p.FieldValue
	}
	return fields, nil
}

// EncodeMetadata is the inverse of DecodeMetadata, used by tests and local
// tooling to build intake payloads.
func EncodeMetadata(fields map[string]string) (string, error) {
	pairs := make([]ocrPair, 0, len(fields))
	for k, v := range fields {
		pairs = append(pairs, ocrPair{FieldName: k, FieldValue: v})
	}
	raw, err := json.Marshal(pairs)
	if err != nil {
		return "", fmt.Errorf("encode OCR metadata: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// field returns the trimmed value for a key, "" when absent.
func field(m map[string]string, key string) string {
	return strings.TrimSpace(m[key])
}

// flag interprets an OCR checkbox value. Vendors render ticks inconsistently,
// so anything in the accepted set counts as marked.
func flag(m map[string]string, key string) bool {
	switch strings.ToLower(field(m, key)) {
	case "true", "yes", "y", "x", "1":
		return true
	default:
		return false
	}
}

// anyField reports whether at least one of the keys carries a value. Used to
// detect whether a document-type's markers are present at all.
func anyField(m map[string]string, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

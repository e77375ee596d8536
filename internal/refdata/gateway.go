// Package refdata looks up prosecuting-authority reference data: the
// organisation code behind a case reference, and the short prosecutor name
// behind an organisation code. Lookups are best-effort; "not found" is a
// normal empty result, distinct from a transport error.
package refdata

import "context"

// Gateway is the reference-data port. Implementations return ("", nil) when
// the reference data has no match, and a non-nil error only for transport
// failures. Callers in the intake path treat both the same way (enrichment
// skipped) but may log and count them differently.
type Gateway interface {
	OrgCodeByCaseReference(ctx context.Context, ref string) (string, error)
	ShortNameByOrgCode(ctx context.Context, code string) (string, error)
}

// MemoryGateway serves lookups from fixed maps. Used in tests and local runs.
type MemoryGateway struct {
	OrgCodes   map[string]string
	ShortNames map[string]string
}

func (g *MemoryGateway) OrgCodeByCaseReference(_ context.Context, ref string) (string, error) {
	return g.OrgCodes[ref], nil
}

func (g *MemoryGateway) ShortNameByOrgCode(_ context.Context, code string) (string, error) {
	return g.ShortNames[code], nil
}

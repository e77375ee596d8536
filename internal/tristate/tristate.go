// Package tristate resolves pairs of independent, fallible Yes/No tick-boxes
// from scanned paper forms into typed facts. Paper checkboxes can be ticked
// inconsistently (both boxes, neither box), so the result type carries an
// explicit Indeterminate member that callers must handle per field; it is
// never silently coerced to a default.
package tristate

// TriState is the result of resolving a Yes/No checkbox pair.
type TriState string

const (
	True  TriState = "TRUE"
	False TriState = "FALSE"
	// Indeterminate means the source data is self-contradictory (both
	// options ticked). Callers decide per field whether it triggers a
	// follow-up.
	Indeterminate TriState = "INDETERMINATE"
)

// Bool returns the underlying boolean and whether the value is determinate.
func (t TriState) Bool() (value bool, ok bool) {
	switch t {
	case True:
		return true, true
	case False:
		return false, true
	default:
		return false, false
	}
}

// Resolve applies the generic both-true policy: True only when exactly the
// Yes box is ticked, Indeterminate when both are ticked, False otherwise
// (including neither ticked). Used for claim-benefits, wish-to-come-to-court,
// welsh-hearing, interpreter-needed and income-frequency confirmation fields.
func Resolve(yes, no bool) TriState {
	switch {
	case yes && no:
		return Indeterminate
	case yes:
		return True
	default:
		return False
	}
}

// ResolveDetailsCorrect applies the asymmetric details-correct policy: the
// auxiliary "details changed" flag participates, and the result is True only
// when Yes is ticked and the changed flag is not, regardless of the No box.
// Every other combination resolves False. The No box being ignored when Yes
// is ticked is deliberate and matches the paper form's handling.
func ResolveDetailsCorrect(yes, no, changed bool) TriState {
	if yes && !changed {
		return True
	}
	return False
}

// PleaValue is the three-valued plea recorded against one offence.
type PleaValue string

const (
	PleaGuilty    PleaValue = "GUILTY"
	PleaNotGuilty PleaValue = "NOT_GUILTY"
	// PleaBoth records that the guilty and not-guilty boxes were both
	// ticked, or that neither was.
	PleaBoth PleaValue = "BOTH"
)

// ResolvePlea maps the guilty/not-guilty checkbox pair onto a PleaValue.
// Neither box ticked maps to PleaBoth, not PleaNotGuilty.
func ResolvePlea(guilty, notGuilty bool) PleaValue {
	switch {
	case guilty && !notGuilty:
		return PleaGuilty
	case !guilty && notGuilty:
		return PleaNotGuilty
	default:
		return PleaBoth
	}
}

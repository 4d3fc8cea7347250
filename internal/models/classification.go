package models

import "strings"

// classificationTable maps a normalized classification label to the minimum
// clearance needed to view a record carrying it. Normalization strips every
// internal space before the (case-sensitive) lookup, which is why the legacy
// "Top" key exists: a label written "Top Secret" collapses to "TopSecret",
// but historical records sometimes carry a bare "Top". Changing this table
// silently changes the visibility of existing data, so it is preserved as-is.
var classificationTable = map[string]Clearance{
	"Minimal":      ClearanceMinimal,
	"Confidential": ClearanceRestricted,
	"Restricted":   ClearanceRestricted,
	"Classified":   ClearanceOperational,
	"Operational":  ClearanceOperational,
	"TopSecret":    ClearanceTopSecret,
	"Top":          ClearanceTopSecret,
	"Redline":      ClearanceRedline,
}

// Protected is implemented by records whose visibility is governed by a
// derived minimum clearance.
type Protected interface {
	RequiredClearance() Clearance
}

// FlagPersonOfInterest is the internal flag that bumps an unclassified
// record's required clearance to Restricted.
const FlagPersonOfInterest = "Person of Interest"

// RequiredClearanceFor derives the minimum clearance needed to view a record
// from its classification label and internal flags. The function is pure and
// total, and gives identical results for identical input regardless of which
// collection the record lives in:
//
//  1. A non-empty classification wins. "top secret" (any case) is special-
//     cased, then the label is looked up with spaces stripped; anything
//     non-empty that misses the table resolves to Restricted, never to an
//     error. Unknown labels fail toward more restrictive, not less.
//  2. Otherwise a "Person of Interest" flag (case-insensitive) means
//     Restricted.
//  3. Otherwise Minimal.
func RequiredClearanceFor(classification string, internalFlags []string) Clearance {
	cls := strings.TrimSpace(classification)
	if cls != "" {
		if strings.EqualFold(cls, "top secret") {
			return ClearanceTopSecret
		}
		normalized := strings.ReplaceAll(cls, " ", "")
		if level, ok := classificationTable[normalized]; ok {
			return level
		}
		return ClearanceRestricted
	}

	for _, flag := range internalFlags {
		if strings.EqualFold(flag, FlagPersonOfInterest) {
			return ClearanceRestricted
		}
	}

	return ClearanceMinimal
}

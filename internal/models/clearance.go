package models

// Clearance represents one of the five ordered authorization levels an agent
// (and therefore a session) carries.
type Clearance string

const (
	ClearanceMinimal     Clearance = "Minimal"
	ClearanceRestricted  Clearance = "Restricted"
	ClearanceOperational Clearance = "Operational"
	ClearanceTopSecret   Clearance = "TopSecret"
	ClearanceRedline     Clearance = "Redline"
)

// clearanceOrder defines the total order over clearance levels. Comparisons
// always go through this index, never through the strings themselves.
var clearanceOrder = map[Clearance]int{
	ClearanceMinimal:     0,
	ClearanceRestricted:  1,
	ClearanceOperational: 2,
	ClearanceTopSecret:   3,
	ClearanceRedline:     4,
}

// OrderIndex returns the position of the clearance in the hierarchy, or -1
// for any string that is not one of the five known levels. An unrecognized
// clearance therefore ranks strictly below Minimal and satisfies nothing.
func (c Clearance) OrderIndex() int {
	if idx, ok := clearanceOrder[c]; ok {
		return idx
	}
	return -1
}

// AtLeast reports whether c grants access to material requiring the given
// minimum clearance. Unknown values fail closed on both sides: an
// unrecognized caller clearance never passes, and an unrecognized required
// level is never satisfied.
func (c Clearance) AtLeast(required Clearance) bool {
	callerIdx := c.OrderIndex()
	requiredIdx := required.OrderIndex()
	if callerIdx < 0 || requiredIdx < 0 {
		return false
	}
	return callerIdx >= requiredIdx
}

// Clearances lists the known levels from lowest to highest.
func Clearances() []Clearance {
	return []Clearance{
		ClearanceMinimal,
		ClearanceRestricted,
		ClearanceOperational,
		ClearanceTopSecret,
		ClearanceRedline,
	}
}

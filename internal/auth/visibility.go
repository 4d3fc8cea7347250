package auth

import "intel-archive/internal/models"

// RequireClearance is the route-level gate: it fails with
// models.ErrNotAuthenticated when no valid session is presented and with
// models.ErrInsufficientClearance when the session's clearance does not reach
// the route's minimum. It runs before any handler body, so a denial never
// reveals anything about stored records.
func RequireClearance(session *Session, minLevel models.Clearance) (*Session, error) {
	if session == nil {
		return nil, models.ErrNotAuthenticated
	}
	if !session.Clearance.AtLeast(minLevel) {
		return nil, models.ErrInsufficientClearance
	}
	return session, nil
}

// CanView is the record-level gate: it reports whether the session's
// clearance reaches the record's derived required clearance. A nil session
// can view nothing.
func CanView(session *Session, record models.Protected) bool {
	if session == nil {
		return false
	}
	return session.Clearance.AtLeast(record.RequiredClearance())
}

// FilterVisible drops records the session may not view. Invisible records
// are silently excluded from listing and search results, never reported as
// errors; a caller cannot distinguish a hidden record from an absent one.
func FilterVisible[T models.Protected](session *Session, records []T) []T {
	visible := make([]T, 0, len(records))
	for _, record := range records {
		if CanView(session, record) {
			visible = append(visible, record)
		}
	}
	return visible
}

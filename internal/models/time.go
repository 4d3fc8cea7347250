package models

import "time"

// NowISO returns the current UTC time formatted to the second with a Z
// suffix, the format stored in lastActive and flagged_at fields.
func NowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

// Today returns the current UTC date, the format stored in createdAt and
// last_updated fields.
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}

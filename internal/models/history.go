package models

import "time"

// TimestampLayout renders history times as "hh:mm AM/PM, MM/DD/YYYY"
const TimestampLayout = "03:04 PM, 01/02/2006"

// HistoryEntry is an immutable record of a past roll
type HistoryEntry struct {
	// ID is the unique identifier for the entry
	ID string

	// Message is the roll summary at the time the entry was made
	Message string

	// Timestamp is RolledAt formatted with TimestampLayout in the
	// location that was in effect when the entry was made
	Timestamp string

	// RolledAt is when the roll happened
	RolledAt time.Time
}

// FormatTimestamp formats t for history display in loc
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(TimestampLayout)
}

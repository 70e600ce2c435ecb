package domain

import "time"

// Slot is a computed free, bookable time interval [Start, End).
// Slots are derived per availability query and never persisted.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the slot length
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// IsZeroLength returns true for empty fragments left over by subtraction
func (s Slot) IsZeroLength() bool {
	return !s.Start.Before(s.End)
}

// Key is the slot's deduplication identity: its start truncated to the minute.
// Two slots from different employees with the same start collapse into one
// in merged service availability.
func (s Slot) Key() time.Time {
	return TruncateToMinute(s.Start)
}

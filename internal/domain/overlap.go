package domain

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ConflictsWith reports whether two active appointments occupy intersecting
// intervals. Inactive appointments never conflict with anything.
func (a *Appointment) ConflictsWith(other *Appointment) bool {
	if !a.IsActive() || !other.IsActive() {
		return false
	}
	return Overlaps(a.StartAt, a.EndAt, other.StartAt, other.EndAt)
}

// TruncateToMinute drops the seconds and finer components of t.
// All appointment boundaries are stored with minute precision.
func TruncateToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}

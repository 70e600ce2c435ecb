package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// TimeFrame is one continuous working interval within a day, [Start, End)
type TimeFrame struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Validate checks that the frame is well-formed and Start precedes End
func (f TimeFrame) Validate() error {
	if err := f.Start.Validate(); err != nil {
		return err
	}
	if err := f.End.Validate(); err != nil {
		return err
	}
	if !f.Start.IsBefore(f.End) {
		return ErrInvalidTimeFrame
	}
	return nil
}

// DurationMinutes returns the frame length in minutes
func (f TimeFrame) DurationMinutes() (int, error) {
	startMin, err := f.Start.Minutes()
	if err != nil {
		return 0, err
	}
	endMin, err := f.End.Minutes()
	if err != nil {
		return 0, err
	}
	return endMin - startMin, nil
}

// Contains reports whether the absolute interval [start, end) lies entirely
// within this frame on start's calendar day. An interval ending exactly at
// the frame's end still fits.
func (f TimeFrame) Contains(start, end time.Time) bool {
	frameStart, err := f.Start.At(start)
	if err != nil {
		return false
	}
	frameEnd, err := f.End.At(start)
	if err != nil {
		return false
	}
	return !start.Before(frameStart) && !end.After(frameEnd)
}

// Shift is a named working day template: a set of non-overlapping frames
type Shift struct {
	ID      int64       `json:"id"`
	OwnerID int64       `json:"owner_id"`
	Name    string      `json:"name"`
	Frames  []TimeFrame `json:"frames"`
}

// WeeklySchedule assigns a shift to each day of week.
// A nil day is a day off.
type WeeklySchedule struct {
	Monday    *Shift `json:"monday,omitempty"`
	Tuesday   *Shift `json:"tuesday,omitempty"`
	Wednesday *Shift `json:"wednesday,omitempty"`
	Thursday  *Shift `json:"thursday,omitempty"`
	Friday    *Shift `json:"friday,omitempty"`
	Saturday  *Shift `json:"saturday,omitempty"`
	Sunday    *Shift `json:"sunday,omitempty"`
}

// ShiftFor returns the shift assigned to date's day of week, nil on days off
func (s *WeeklySchedule) ShiftFor(date time.Time) *Shift {
	switch date.Weekday() {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	default:
		return s.Sunday
	}
}

// Availability returns the working frames for date's day of week.
// Days off yield no frames.
func (s *WeeklySchedule) Availability(date time.Time) []TimeFrame {
	shift := s.ShiftFor(date)
	if shift == nil {
		return nil
	}
	return shift.Frames
}

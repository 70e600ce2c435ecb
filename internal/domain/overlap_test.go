package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 10, 14, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{
			name:   "identical intervals",
			aStart: at(9, 0), aEnd: at(10, 0),
			bStart: at(9, 0), bEnd: at(10, 0),
			want: true,
		},
		{
			name:   "partial overlap",
			aStart: at(9, 0), aEnd: at(10, 0),
			bStart: at(9, 30), bEnd: at(10, 30),
			want: true,
		},
		{
			name:   "nested",
			aStart: at(9, 0), aEnd: at(12, 0),
			bStart: at(10, 0), bEnd: at(11, 0),
			want: true,
		},
		{
			name:   "back-to-back is legal",
			aStart: at(9, 0), aEnd: at(10, 0),
			bStart: at(10, 0), bEnd: at(11, 0),
			want: false,
		},
		{
			name:   "disjoint",
			aStart: at(9, 0), aEnd: at(10, 0),
			bStart: at(14, 0), bEnd: at(15, 0),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestAppointment_ConflictsWith(t *testing.T) {
	a := &Appointment{ID: 1, StartAt: at(9, 0), EndAt: at(10, 0), Status: StatusPending}
	b := &Appointment{ID: 2, StartAt: at(9, 30), EndAt: at(10, 30), Status: StatusAccepted}

	assert.True(t, a.ConflictsWith(b))
	assert.True(t, b.ConflictsWith(a))

	// Отклонённое бронирование освобождает интервал
	b.Status = StatusRejected
	assert.False(t, a.ConflictsWith(b))

	// Soft-deleted тоже
	b.Status = StatusAccepted
	now := at(11, 0)
	b.DeletedAt = &now
	assert.False(t, a.ConflictsWith(b))
}

func TestTruncateToMinute(t *testing.T) {
	got := TruncateToMinute(time.Date(2025, 10, 14, 9, 30, 45, 123456, time.UTC))
	assert.Equal(t, at(9, 30), got)
}

func TestAppointment_IsActive(t *testing.T) {
	appt := &Appointment{Status: StatusPending}
	assert.True(t, appt.IsActive())

	appt.Status = StatusAccepted
	assert.True(t, appt.IsActive())

	appt.Status = StatusRejected
	assert.False(t, appt.IsActive())

	deleted := at(12, 0)
	appt.Status = StatusAccepted
	appt.DeletedAt = &deleted
	assert.False(t, appt.IsActive())
}

func TestAppointment_CanTransitionTo(t *testing.T) {
	appt := &Appointment{Status: StatusPending}
	assert.True(t, appt.CanTransitionTo(StatusAccepted))
	assert.True(t, appt.CanTransitionTo(StatusRejected))
	assert.False(t, appt.CanTransitionTo(StatusPending))

	// Решения финальны
	appt.Status = StatusAccepted
	assert.False(t, appt.CanTransitionTo(StatusRejected))

	appt.Status = StatusRejected
	assert.False(t, appt.CanTransitionTo(StatusAccepted))
}

func TestAppointment_IsSelfBlock(t *testing.T) {
	appt := &Appointment{}
	assert.True(t, appt.IsSelfBlock())

	customerID := int64(7)
	serviceID := int64(3)
	appt = &Appointment{CustomerID: &customerID, ServiceID: &serviceID}
	assert.False(t, appt.IsSelfBlock())
}

package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// 2025-10-14 - вторник
var tuesday = time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

func tuesdayAt(hour, min int) time.Time {
	return time.Date(2025, 10, 14, hour, min, 0, 0, time.UTC)
}

func tuesdaySchedule() *domain.WeeklySchedule {
	return &domain.WeeklySchedule{
		Tuesday: &domain.Shift{
			ID:      1,
			OwnerID: 10,
			Name:    "будни",
			Frames: []domain.TimeFrame{
				{Start: "09:00", End: "13:00"},
				{Start: "14:00", End: "17:00"},
			},
		},
	}
}

func TestExpandSchedule(t *testing.T) {
	slots := expandSchedule(tuesdaySchedule(), tuesday, tuesday.AddDate(0, 0, 1))

	require.Len(t, slots, 2)
	assert.Equal(t, domain.Slot{Start: tuesdayAt(9, 0), End: tuesdayAt(13, 0)}, slots[0])
	assert.Equal(t, domain.Slot{Start: tuesdayAt(14, 0), End: tuesdayAt(17, 0)}, slots[1])
}

func TestExpandSchedule_MultipleDays(t *testing.T) {
	// Неделя: только вторник рабочий, остальные дни без смен
	slots := expandSchedule(tuesdaySchedule(), tuesday, tuesday.AddDate(0, 0, 7))
	assert.Len(t, slots, 2)
}

func TestExpandSchedule_DropsSlotsStartingBeforeFrom(t *testing.T) {
	// Окно начинается в середине утреннего интервала: утренний слот
	// начинается раньше from и отбрасывается целиком
	from := tuesdayAt(10, 0)
	slots := expandSchedule(tuesdaySchedule(), from, tuesday.AddDate(0, 0, 1))

	require.Len(t, slots, 1)
	assert.Equal(t, tuesdayAt(14, 0), slots[0].Start)
}

func TestSubtractOne(t *testing.T) {
	slot := domain.Slot{Start: tuesdayAt(9, 0), End: tuesdayAt(13, 0)}

	tests := []struct {
		name      string
		busyStart time.Time
		busyEnd   time.Time
		want      []domain.Slot
	}{
		{
			name:      "no overlap keeps slot",
			busyStart: tuesdayAt(14, 0), busyEnd: tuesdayAt(15, 0),
			want: []domain.Slot{slot},
		},
		{
			name:      "covering appointment removes slot",
			busyStart: tuesdayAt(8, 0), busyEnd: tuesdayAt(14, 0),
			want: []domain.Slot{},
		},
		{
			name:      "nested appointment splits slot",
			busyStart: tuesdayAt(10, 0), busyEnd: tuesdayAt(11, 0),
			want: []domain.Slot{
				{Start: tuesdayAt(9, 0), End: tuesdayAt(10, 0)},
				{Start: tuesdayAt(11, 0), End: tuesdayAt(13, 0)},
			},
		},
		{
			name:      "left edge overlap truncates left",
			busyStart: tuesdayAt(8, 30), busyEnd: tuesdayAt(9, 30),
			want: []domain.Slot{
				{Start: tuesdayAt(9, 30), End: tuesdayAt(13, 0)},
			},
		},
		{
			name:      "right edge overlap truncates right",
			busyStart: tuesdayAt(12, 30), busyEnd: tuesdayAt(13, 30),
			want: []domain.Slot{
				{Start: tuesdayAt(9, 0), End: tuesdayAt(12, 30)},
			},
		},
		{
			name:      "appointment aligned to slot start leaves remainder",
			busyStart: tuesdayAt(9, 0), busyEnd: tuesdayAt(9, 30),
			want: []domain.Slot{
				{Start: tuesdayAt(9, 30), End: tuesdayAt(13, 0)},
			},
		},
		{
			name:      "back-to-back appointment does not touch slot",
			busyStart: tuesdayAt(13, 0), busyEnd: tuesdayAt(13, 30),
			want: []domain.Slot{slot},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := subtractOne([]domain.Slot{slot}, tt.busyStart, tt.busyEnd)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubtractAppointments_SkipsInactive(t *testing.T) {
	slots := []domain.Slot{{Start: tuesdayAt(9, 0), End: tuesdayAt(13, 0)}}
	deleted := tuesdayAt(8, 0)

	appointments := []*domain.Appointment{
		{ID: 1, StartAt: tuesdayAt(9, 0), EndAt: tuesdayAt(10, 0), Status: domain.StatusRejected},
		{ID: 2, StartAt: tuesdayAt(10, 0), EndAt: tuesdayAt(11, 0), Status: domain.StatusAccepted, DeletedAt: &deleted},
	}

	got := subtractAppointments(slots, appointments)
	assert.Equal(t, slots, got)
}

func TestBreakIntoServiceSlots(t *testing.T) {
	morning := domain.Slot{Start: tuesdayAt(9, 0), End: tuesdayAt(13, 0)}

	slots := breakIntoServiceSlots(morning, 30)
	require.Len(t, slots, 8)

	// Подслоты выстилают интервал встык: без зазоров и пересечений
	assert.Equal(t, tuesdayAt(9, 0), slots[0].Start)
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].End, slots[i].Start)
	}
	assert.Equal(t, tuesdayAt(13, 0), slots[len(slots)-1].End)

	for _, slot := range slots {
		assert.Equal(t, 30*time.Minute, slot.Duration())
	}
}

func TestBreakIntoServiceSlots_DropsShortRemainder(t *testing.T) {
	slot := domain.Slot{Start: tuesdayAt(9, 0), End: tuesdayAt(9, 50)}

	slots := breakIntoServiceSlots(slot, 30)
	require.Len(t, slots, 1)
	assert.Equal(t, tuesdayAt(9, 30), slots[0].End)
}

func TestBreakIntoServiceSlots_SlotShorterThanService(t *testing.T) {
	slot := domain.Slot{Start: tuesdayAt(9, 0), End: tuesdayAt(9, 20)}
	assert.Empty(t, breakIntoServiceSlots(slot, 30))
}

func TestBreakAllIntoServiceSlots_FullDay(t *testing.T) {
	free := expandSchedule(tuesdaySchedule(), tuesday, tuesday.AddDate(0, 0, 1))

	slots := breakAllIntoServiceSlots(free, 30)
	// 8 утренних + 6 дневных
	assert.Len(t, slots, 14)
}

func TestBreakAllIntoServiceSlots_AfterBooking(t *testing.T) {
	// Бронирование 09:00-09:30 съедает ровно первый утренний слот
	free := expandSchedule(tuesdaySchedule(), tuesday, tuesday.AddDate(0, 0, 1))
	free = subtractAppointments(free, []*domain.Appointment{
		{ID: 1, StartAt: tuesdayAt(9, 0), EndAt: tuesdayAt(9, 30), Status: domain.StatusAccepted},
	})

	slots := breakAllIntoServiceSlots(free, 30)
	require.Len(t, slots, 13)
	assert.Equal(t, tuesdayAt(9, 30), slots[0].Start)
}

func TestMergeSlots(t *testing.T) {
	a := []domain.Slot{
		{Start: tuesdayAt(9, 0), End: tuesdayAt(9, 30)},
		{Start: tuesdayAt(10, 0), End: tuesdayAt(10, 30)},
	}
	b := []domain.Slot{
		{Start: tuesdayAt(9, 0), End: tuesdayAt(9, 30)},
		{Start: tuesdayAt(11, 0), End: tuesdayAt(11, 30)},
	}

	merged := mergeSlots(a, b)
	require.Len(t, merged, 3)

	// Отсортировано по началу, дубликаты по идентичности слота убраны
	assert.Equal(t, tuesdayAt(9, 0), merged[0].Start)
	assert.Equal(t, tuesdayAt(10, 0), merged[1].Start)
	assert.Equal(t, tuesdayAt(11, 0), merged[2].Start)
}

func TestUnionAppointments(t *testing.T) {
	a := []*domain.Appointment{{ID: 1}, {ID: 2}}
	b := []*domain.Appointment{{ID: 2}, {ID: 3}}

	union := unionAppointments(a, b)
	require.Len(t, union, 3)
}

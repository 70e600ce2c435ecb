package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// "Сейчас" - утро понедельника перед тестовым вторником
var testNow = time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (r *fakeAppointmentRepo) ListWithFilter(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appt := range r.appointments {
		if filter.EmployeeID != nil && appt.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.CustomerID != nil && (appt.CustomerID == nil || *appt.CustomerID != *filter.CustomerID) {
			continue
		}
		if filter.Visibility == domain.VisibilityActive && !appt.IsActive() {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

type fakeDirectory struct {
	employees map[int64]*directory.Employee
	services  map[int64]*directory.Service
}

func (d *fakeDirectory) GetEmployee(_ context.Context, id int64) (*directory.Employee, error) {
	e, ok := d.employees[id]
	if !ok {
		return nil, directory.ErrEmployeeNotFound
	}
	return e, nil
}

func (d *fakeDirectory) GetService(_ context.Context, id int64) (*directory.Service, error) {
	s, ok := d.services[id]
	if !ok {
		return nil, directory.ErrServiceNotFound
	}
	return s, nil
}

func (d *fakeDirectory) ListEmployeesByService(_ context.Context, serviceID int64) ([]*directory.Employee, error) {
	var result []*directory.Employee
	for _, e := range d.employees {
		if e.Offers(serviceID) {
			result = append(result, e)
		}
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newEmployee(id int64) *directory.Employee {
	return &directory.Employee{
		ID:         id,
		CompanyID:  10,
		ServiceIDs: []int64{5},
		Schedule: domain.WeeklySchedule{
			Tuesday: &domain.Shift{
				OwnerID: 10,
				Frames: []domain.TimeFrame{
					{Start: "09:00", End: "13:00"},
					{Start: "14:00", End: "17:00"},
				},
			},
		},
	}
}

func newFixture() (*UseCase, *fakeAppointmentRepo, *fakeDirectory) {
	repo := &fakeAppointmentRepo{}
	dir := &fakeDirectory{
		employees: map[int64]*directory.Employee{1: newEmployee(1)},
		services: map[int64]*directory.Service{
			5: {ID: 5, CompanyID: 10, DurationMinutes: 30},
		},
	}
	uc := NewUseCase(repo, dir, nopLogger{})
	uc.timeProvider = &fakeClock{now: testNow}
	return uc, repo, dir
}

func weekWindow() (time.Time, time.Time) {
	return tuesday, tuesday.AddDate(0, 0, 1)
}

func TestExecute_FreeSlotsForEmployee(t *testing.T) {
	uc, repo, _ := newFixture()
	repo.appointments = []*domain.Appointment{
		{ID: 1, EmployeeID: 1, StartAt: tuesdayAt(10, 0), EndAt: tuesdayAt(10, 30), Status: domain.StatusAccepted},
	}

	from, to := weekWindow()
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		EmployeeID: ptr.Ptr(int64(1)),
		From:       from,
		To:         to,
	})
	require.NoError(t, err)

	// Бронирование разбивает утренний интервал на два фрагмента
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, domain.Slot{Start: tuesdayAt(9, 0), End: tuesdayAt(10, 0)}, resp.Slots[0])
	assert.Equal(t, domain.Slot{Start: tuesdayAt(10, 30), End: tuesdayAt(13, 0)}, resp.Slots[1])
	assert.Equal(t, domain.Slot{Start: tuesdayAt(14, 0), End: tuesdayAt(17, 0)}, resp.Slots[2])
}

func TestExecute_ServiceSlotsForEmployee(t *testing.T) {
	uc, _, _ := newFixture()

	from, to := weekWindow()
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		EmployeeID: ptr.Ptr(int64(1)),
		ServiceID:  ptr.Ptr(int64(5)),
		From:       from,
		To:         to,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 14)
}

func TestExecute_ServiceAcrossEmployees(t *testing.T) {
	uc, repo, dir := newFixture()
	dir.employees[2] = newEmployee(2)

	// У первого сотрудника занят первый слот, у второго - свободен:
	// объединение по-прежнему содержит все 14 вариантов
	repo.appointments = []*domain.Appointment{
		{ID: 1, EmployeeID: 1, StartAt: tuesdayAt(9, 0), EndAt: tuesdayAt(9, 30), Status: domain.StatusAccepted},
	}

	from, to := weekWindow()
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    100,
		ServiceID: ptr.Ptr(int64(5)),
		From:      from,
		To:        to,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 14)
}

func TestExecute_SubtractsCustomerBusyTime(t *testing.T) {
	uc, repo, _ := newFixture()

	// Клиент занят у другого сотрудника: его занятость тоже вычитается
	repo.appointments = []*domain.Appointment{
		{ID: 1, EmployeeID: 9, CustomerID: ptr.Ptr(int64(100)), StartAt: tuesdayAt(9, 0), EndAt: tuesdayAt(9, 30), Status: domain.StatusAccepted},
	}

	from, to := weekWindow()
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		EmployeeID: ptr.Ptr(int64(1)),
		ServiceID:  ptr.Ptr(int64(5)),
		CustomerID: ptr.Ptr(int64(100)),
		From:       from,
		To:         to,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 13)
	assert.Equal(t, tuesdayAt(9, 30), resp.Slots[0].Start)
}

func TestExecute_ClampsFromToNow(t *testing.T) {
	uc, _, _ := newFixture()

	from := testNow.Add(-48 * time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		EmployeeID: ptr.Ptr(int64(1)),
		From:       from,
		To:         tuesday.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, testNow, resp.From)
}

func TestExecute_RangeInPast(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		EmployeeID: ptr.Ptr(int64(1)),
		From:       testNow.Add(-72 * time.Hour),
		To:         testNow.Add(-48 * time.Hour),
	})
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_UnsupportedService(t *testing.T) {
	uc, _, dir := newFixture()
	dir.services[6] = &directory.Service{ID: 6, CompanyID: 10, DurationMinutes: 60}

	from, to := weekWindow()
	_, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		EmployeeID: ptr.Ptr(int64(1)),
		ServiceID:  ptr.Ptr(int64(6)),
		From:       from,
		To:         to,
	})
	require.ErrorIs(t, err, ErrUnsupportedService)
}

func TestExecute_EmployeeNotFound(t *testing.T) {
	uc, _, _ := newFixture()

	from, to := weekWindow()
	_, err := uc.Execute(context.Background(), &Request{
		UserID:     100,
		EmployeeID: ptr.Ptr(int64(999)),
		From:       from,
		To:         to,
	})
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

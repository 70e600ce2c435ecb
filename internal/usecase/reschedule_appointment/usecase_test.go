package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// 2025-10-14 - вторник
func dayAt(hour, min int) time.Time {
	return time.Date(2025, 10, 14, hour, min, 0, 0, time.UTC)
}

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
	updateErr    error

	updatedID    int64
	updatedStart time.Time
	updatedEnd   time.Time
	excludedID   *int64
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := r.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (r *fakeAppointmentRepo) Overlapping(_ context.Context, employeeID int64, start, end time.Time, excludeID *int64) ([]*domain.Appointment, error) {
	r.excludedID = excludeID
	var result []*domain.Appointment
	for _, appt := range r.appointments {
		if appt.EmployeeID != employeeID || !appt.IsActive() {
			continue
		}
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		if domain.Overlaps(appt.StartAt, appt.EndAt, start, end) {
			result = append(result, appt)
		}
	}
	return result, nil
}

func (r *fakeAppointmentRepo) UpdateInterval(_ context.Context, id int64, start, end time.Time) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updatedID = id
	r.updatedStart = start
	r.updatedEnd = end
	return nil
}

type fakeDirectory struct {
	employee *directory.Employee
}

func (d *fakeDirectory) GetEmployee(_ context.Context, id int64) (*directory.Employee, error) {
	if d.employee == nil || d.employee.ID != id {
		return nil, directory.ErrEmployeeNotFound
	}
	return d.employee, nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newFixture() (*UseCase, *fakeAppointmentRepo) {
	repo := &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{
			1: {
				ID:         1,
				OwnerID:    10,
				EmployeeID: 1,
				CustomerID: ptr.Ptr(int64(100)),
				ServiceID:  ptr.Ptr(int64(5)),
				StartAt:    dayAt(10, 0),
				EndAt:      dayAt(10, 30),
				Status:     domain.StatusAccepted,
			},
		},
	}
	dir := &fakeDirectory{
		employee: &directory.Employee{
			ID:        1,
			CompanyID: 10,
			Schedule: domain.WeeklySchedule{
				Tuesday: &domain.Shift{
					OwnerID: 10,
					Frames: []domain.TimeFrame{
						{Start: "09:00", End: "13:00"},
						{Start: "14:00", End: "17:00"},
					},
				},
			},
		},
	}
	return NewUseCase(repo, dir, &fakeTxManager{}, nopLogger{}), repo
}

func TestExecute_MovesAppointment(t *testing.T) {
	uc, repo := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		AppointmentID: 1,
		StartAt:       dayAt(11, 0),
	})
	require.NoError(t, err)

	// Длительность прежнего интервала сохраняется при незаданном конце
	assert.Equal(t, dayAt(11, 0), resp.StartAt)
	assert.Equal(t, dayAt(11, 30), resp.EndAt)
	assert.Equal(t, int64(1), repo.updatedID)
	assert.Equal(t, dayAt(11, 30), repo.updatedEnd)
}

func TestExecute_ExplicitEnd(t *testing.T) {
	uc, _ := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		AppointmentID: 1,
		StartAt:       dayAt(14, 0),
		EndAt:         ptr.Ptr(dayAt(15, 0)),
	})
	require.NoError(t, err)
	assert.Equal(t, dayAt(15, 0), resp.EndAt)
}

func TestExecute_ExcludesSelfFromOverlapCheck(t *testing.T) {
	uc, repo := newFixture()

	// Сдвиг на 15 минут пересекается со старым интервалом самого бронирования
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		AppointmentID: 1,
		StartAt:       dayAt(10, 15),
	})
	require.NoError(t, err)
	assert.Equal(t, dayAt(10, 15), resp.StartAt)

	require.NotNil(t, repo.excludedID)
	assert.Equal(t, int64(1), *repo.excludedID)
}

func TestExecute_Overlap(t *testing.T) {
	uc, repo := newFixture()
	repo.appointments[2] = &domain.Appointment{
		ID:         2,
		EmployeeID: 1,
		StartAt:    dayAt(11, 0),
		EndAt:      dayAt(11, 30),
		Status:     domain.StatusPending,
	}

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		AppointmentID: 1,
		StartAt:       dayAt(11, 15),
	})
	require.ErrorIs(t, err, ErrOverlap)
}

func TestExecute_IgnoreAvailability(t *testing.T) {
	uc, repo := newFixture()
	repo.appointments[2] = &domain.Appointment{
		ID:         2,
		EmployeeID: 1,
		StartAt:    dayAt(11, 0),
		EndAt:      dayAt(11, 30),
		Status:     domain.StatusAccepted,
	}

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:             100,
		AppointmentID:      1,
		StartAt:            dayAt(11, 15),
		IgnoreAvailability: true,
	})
	require.NoError(t, err)
	assert.Equal(t, dayAt(11, 15), resp.StartAt)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		AppointmentID: 1,
		StartAt:       dayAt(16, 45),
	})
	require.ErrorIs(t, err, ErrNoAvailability)
}

func TestExecute_DeletedAppointment(t *testing.T) {
	uc, repo := newFixture()
	deleted := dayAt(8, 0)
	repo.appointments[1].DeletedAt = &deleted

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		AppointmentID: 1,
		StartAt:       dayAt(11, 0),
	})
	require.ErrorIs(t, err, ErrAppointmentDeleted)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		AppointmentID: 999,
		StartAt:       dayAt(11, 0),
	})
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_StorageReportsSlotTaken(t *testing.T) {
	uc, repo := newFixture()
	repo.updateErr = appointmentRepo.ErrSlotTaken

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		AppointmentID: 1,
		StartAt:       dayAt(11, 0),
	})
	require.ErrorIs(t, err, ErrOverlap)
}

func TestExecute_EndBeforeStart(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		AppointmentID: 1,
		StartAt:       dayAt(11, 0),
		EndAt:         ptr.Ptr(dayAt(10, 0)),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

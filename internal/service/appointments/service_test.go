package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

var testNow = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment

	statuses    map[int64]domain.AppointmentStatus
	softDeleted []int64
	hardDeleted []int64
	lastFilter  domain.AppointmentFilter
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appointments: make(map[int64]*domain.Appointment),
		statuses:     make(map[int64]domain.AppointmentStatus),
	}
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := r.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (r *fakeAppointmentRepo) ListWithFilter(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	r.lastFilter = filter
	var result []*domain.Appointment
	for _, appt := range r.appointments {
		if filter.EmployeeID != nil && appt.EmployeeID != *filter.EmployeeID {
			continue
		}
		switch filter.Visibility {
		case domain.VisibilityActive:
			if appt.DeletedAt != nil {
				continue
			}
		case domain.VisibilityDeletedOnly:
			if appt.DeletedAt == nil {
				continue
			}
		}
		result = append(result, appt)
	}
	return result, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if _, ok := r.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	r.statuses[id] = status
	return nil
}

func (r *fakeAppointmentRepo) SoftDelete(_ context.Context, id int64) error {
	if _, ok := r.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	r.softDeleted = append(r.softDeleted, id)
	return nil
}

func (r *fakeAppointmentRepo) HardDelete(_ context.Context, id int64) error {
	if _, ok := r.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(r.appointments, id)
	r.hardDeleted = append(r.hardDeleted, id)
	return nil
}

type fakeDirectory struct{}

func (fakeDirectory) GetCompany(_ context.Context, id int64) (*directory.Company, error) {
	return &directory.Company{
		ID: id,
		Templates: directory.MessageTemplates{
			Accepted: "Ждём вас",
			Rejected: "К сожалению, время занято",
		},
	}, nil
}

func (fakeDirectory) GetCustomer(_ context.Context, id int64) (*directory.Customer, error) {
	return &directory.Customer{ID: id, CompanyID: 10, Email: "customer@example.com"}, nil
}

type fakeMailer struct {
	sendErr error
	bodies  []string
}

func (m *fakeMailer) Send(_ context.Context, _ string, body string, _ []string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.bodies = append(m.bodies, body)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:         1,
		OwnerID:    10,
		EmployeeID: 1,
		CustomerID: ptr.Ptr(int64(100)),
		ServiceID:  ptr.Ptr(int64(5)),
		StartAt:    testNow.Add(24 * time.Hour),
		EndAt:      testNow.Add(24*time.Hour + 30*time.Minute),
		Status:     domain.StatusPending,
	}
}

func newFixture() (*Service, *fakeAppointmentRepo, *fakeMailer) {
	repo := newFakeAppointmentRepo()
	mailer := &fakeMailer{}
	svc := NewService(repo, fakeDirectory{}, mailer, nopLogger{})
	return svc, repo, mailer
}

func TestGetByID_ReturnsDeleted(t *testing.T) {
	svc, repo, _ := newFixture()
	appt := pendingAppointment()
	deleted := testNow
	appt.DeletedAt = &deleted
	repo.appointments[1] = appt

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, resp.DeletedAt)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.GetByID(context.Background(), 999)
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestResolve_Accept(t *testing.T) {
	svc, repo, mailer := newFixture()
	repo.appointments[1] = pendingAppointment()

	resp, err := svc.Resolve(context.Background(), 1, &models.ResolveAppointmentRequest{UserID: 1, Status: "accepted"})
	require.NoError(t, err)
	assert.Equal(t, "accepted", resp.Status)
	assert.Equal(t, domain.StatusAccepted, repo.statuses[1])

	require.Len(t, mailer.bodies, 1)
	assert.Equal(t, "Ждём вас", mailer.bodies[0])
}

func TestResolve_FinalStatus(t *testing.T) {
	svc, repo, _ := newFixture()
	appt := pendingAppointment()
	appt.Status = domain.StatusAccepted
	repo.appointments[1] = appt

	// Решение финально: из accepted переходов нет
	_, err := svc.Resolve(context.Background(), 1, &models.ResolveAppointmentRequest{UserID: 1, Status: "rejected"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestResolve_InvalidStatus(t *testing.T) {
	svc, repo, _ := newFixture()
	repo.appointments[1] = pendingAppointment()

	_, err := svc.Resolve(context.Background(), 1, &models.ResolveAppointmentRequest{UserID: 1, Status: "pending"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestResolve_DeletedAppointment(t *testing.T) {
	svc, repo, _ := newFixture()
	appt := pendingAppointment()
	deleted := testNow
	appt.DeletedAt = &deleted
	repo.appointments[1] = appt

	_, err := svc.Resolve(context.Background(), 1, &models.ResolveAppointmentRequest{UserID: 1, Status: "accepted"})
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestResolve_MailFailureDoesNotFail(t *testing.T) {
	svc, repo, mailer := newFixture()
	repo.appointments[1] = pendingAppointment()
	mailer.sendErr = errors.New("smtp unavailable")

	resp, err := svc.Resolve(context.Background(), 1, &models.ResolveAppointmentRequest{UserID: 1, Status: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
}

func TestResolve_SelfBlockSkipsNotification(t *testing.T) {
	svc, repo, mailer := newFixture()
	appt := pendingAppointment()
	appt.CustomerID = nil
	appt.ServiceID = nil
	repo.appointments[1] = appt

	_, err := svc.Resolve(context.Background(), 1, &models.ResolveAppointmentRequest{UserID: 1, Status: "accepted"})
	require.NoError(t, err)
	assert.Empty(t, mailer.bodies)
}

func TestCancel(t *testing.T) {
	svc, repo, _ := newFixture()
	repo.appointments[1] = pendingAppointment()

	err := svc.Cancel(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.softDeleted)
}

func TestCancel_AlreadyDeleted(t *testing.T) {
	svc, repo, _ := newFixture()
	appt := pendingAppointment()
	deleted := testNow
	appt.DeletedAt = &deleted
	repo.appointments[1] = appt

	err := svc.Cancel(context.Background(), 1, 100)
	require.ErrorIs(t, err, ErrAlreadyDeleted)
	assert.Empty(t, repo.softDeleted)
}

func TestPurge(t *testing.T) {
	svc, repo, _ := newFixture()
	repo.appointments[1] = pendingAppointment()

	err := svc.Purge(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.hardDeleted)

	err = svc.Purge(context.Background(), 1, 100)
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListByEmployee_VisibilityModes(t *testing.T) {
	svc, repo, _ := newFixture()
	active := pendingAppointment()
	repo.appointments[1] = active

	cancelled := pendingAppointment()
	cancelled.ID = 2
	deleted := testNow
	cancelled.DeletedAt = &deleted
	repo.appointments[2] = cancelled

	tests := []struct {
		name       string
		visibility string
		wantCount  int
	}{
		{name: "default hides deleted", visibility: "", wantCount: 1},
		{name: "all includes deleted", visibility: "all", wantCount: 2},
		{name: "deleted_only", visibility: "deleted_only", wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.ListByEmployee(context.Background(), &models.ListEmployeeAppointmentsRequest{
				EmployeeID: 1,
				Visibility: tt.visibility,
			})
			require.NoError(t, err)
			assert.Len(t, resp.Appointments, tt.wantCount)
		})
	}
}

func TestListByEmployee_InvalidVisibility(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.ListByEmployee(context.Background(), &models.ListEmployeeAppointmentsRequest{
		EmployeeID: 1,
		Visibility: "bogus",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

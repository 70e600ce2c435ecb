package requests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	requestRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/request"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/requests/models"
)

var testNow = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeRequestRepo struct {
	requests map[int64]*domain.Request
	nextID   int64

	completed []int64
	statuses  map[int64]domain.RequestStatus
	deleted   []int64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: make(map[int64]*domain.Request),
		statuses: make(map[int64]domain.RequestStatus),
	}
}

func (r *fakeRequestRepo) GetOrCreateCurrent(_ context.Context, ownerID, userID int64, scheduledDate time.Time) (*domain.Request, error) {
	for _, req := range r.requests {
		if req.OwnerID == ownerID && req.UserID == userID && !req.Complete {
			return req, nil
		}
	}
	r.nextID++
	req := &domain.Request{
		ID:            r.nextID,
		OwnerID:       ownerID,
		UserID:        userID,
		ScheduledDate: scheduledDate,
		Status:        domain.RequestPending,
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
	}
	r.requests[req.ID] = req
	return req, nil
}

func (r *fakeRequestRepo) GetCurrent(_ context.Context, ownerID, userID int64) (*domain.Request, error) {
	for _, req := range r.requests {
		if req.OwnerID == ownerID && req.UserID == userID && !req.Complete {
			return req, nil
		}
	}
	return nil, requestRepo.ErrRequestNotFound
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id int64) (*domain.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, requestRepo.ErrRequestNotFound
	}
	return req, nil
}

func (r *fakeRequestRepo) SetComplete(_ context.Context, id int64) error {
	r.completed = append(r.completed, id)
	return nil
}

func (r *fakeRequestRepo) SetStatus(_ context.Context, id int64, status domain.RequestStatus) error {
	r.statuses[id] = status
	return nil
}

func (r *fakeRequestRepo) GetIdle(_ context.Context, olderThan time.Time) ([]*domain.Request, error) {
	var idle []*domain.Request
	for _, req := range r.requests {
		if !req.Complete && req.UpdatedAt.Before(olderThan) {
			idle = append(idle, req)
		}
	}
	return idle, nil
}

func (r *fakeRequestRepo) DeleteByIDs(_ context.Context, ids []int64) error {
	for _, id := range ids {
		delete(r.requests, id)
		r.deleted = append(r.deleted, id)
	}
	return nil
}

type fakeAppointmentRepo struct {
	cascaded map[int64]domain.AppointmentStatus
	purged   [][]int64
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{cascaded: make(map[int64]domain.AppointmentStatus)}
}

func (r *fakeAppointmentRepo) UpdateStatusByRequest(_ context.Context, requestID int64, status domain.AppointmentStatus) error {
	r.cascaded[requestID] = status
	return nil
}

func (r *fakeAppointmentRepo) DeletePendingByRequestIDs(_ context.Context, requestIDs []int64) error {
	r.purged = append(r.purged, requestIDs)
	return nil
}

type fakeDirectory struct{}

func (fakeDirectory) GetCompany(_ context.Context, id int64) (*directory.Company, error) {
	return &directory.Company{
		ID: id,
		Templates: directory.MessageTemplates{
			Accepted:  "Ваш запрос принят",
			Rejected:  "Ваш запрос отклонён",
			Submitted: "Ваш запрос отправлен",
		},
	}, nil
}

func (fakeDirectory) GetCustomer(_ context.Context, id int64) (*directory.Customer, error) {
	return &directory.Customer{ID: id, CompanyID: 10, Email: "customer@example.com"}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

type fixture struct {
	svc         *Service
	requestRepo *fakeRequestRepo
	apptRepo    *fakeAppointmentRepo
	mailer      *fakeMailer
}

func newFixture() *fixture {
	f := &fixture{
		requestRepo: newFakeRequestRepo(),
		apptRepo:    newFakeAppointmentRepo(),
		mailer:      &fakeMailer{},
	}
	f.svc = NewService(f.requestRepo, f.apptRepo, fakeDirectory{}, fakeTxManager{}, f.mailer, 20*time.Minute, nopLogger{})
	f.svc.timeProvider = &fakeClock{now: testNow}
	return f
}

func TestGetOrCreateCurrent_Idempotent(t *testing.T) {
	f := newFixture()

	first, err := f.svc.GetOrCreateCurrent(context.Background(), 10, 100)
	require.NoError(t, err)

	// Повторный вызов возвращает тот же запрос, а не создает новый
	second, err := f.svc.GetOrCreateCurrent(context.Background(), 10, 100)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.requestRepo.requests, 1)
}

func TestGetOrCreateCurrent_SeparatePerPair(t *testing.T) {
	f := newFixture()

	a, err := f.svc.GetOrCreateCurrent(context.Background(), 10, 100)
	require.NoError(t, err)
	b, err := f.svc.GetOrCreateCurrent(context.Background(), 10, 200)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestConfirm(t *testing.T) {
	f := newFixture()
	_, err := f.svc.GetOrCreateCurrent(context.Background(), 10, 100)
	require.NoError(t, err)

	resp, err := f.svc.Confirm(context.Background(), 10, 100)
	require.NoError(t, err)
	assert.True(t, resp.Complete)
	assert.Equal(t, []int64{1}, f.requestRepo.completed)

	// Письмо с submitted-шаблоном компании
	require.Len(t, f.mailer.bodies, 1)
	assert.Equal(t, "Ваш запрос отправлен", f.mailer.bodies[0])
}

func TestConfirm_NoCurrentRequest(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Confirm(context.Background(), 10, 100)
	require.ErrorIs(t, err, ErrRequestNotFound)
}

func TestConfirm_MailFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	_, err := f.svc.GetOrCreateCurrent(context.Background(), 10, 100)
	require.NoError(t, err)
	f.mailer.sendErr = errors.New("smtp unavailable")

	resp, err := f.svc.Confirm(context.Background(), 10, 100)
	require.NoError(t, err)
	assert.True(t, resp.Complete)
}

func TestResolve_Accept(t *testing.T) {
	f := newFixture()
	f.requestRepo.requests[1] = &domain.Request{
		ID: 1, OwnerID: 10, UserID: 100,
		Complete: true, Status: domain.RequestPending,
	}

	resp, err := f.svc.Resolve(context.Background(), 1, &models.ResolveRequest{UserID: 1, Status: "accepted"})
	require.NoError(t, err)
	assert.Equal(t, "accepted", resp.Status)

	// Каскад на pending бронирования запроса и статус запроса - вместе
	assert.Equal(t, domain.StatusAccepted, f.apptRepo.cascaded[1])
	assert.Equal(t, domain.RequestAccepted, f.requestRepo.statuses[1])

	require.Len(t, f.mailer.bodies, 1)
	assert.Equal(t, "Ваш запрос принят", f.mailer.bodies[0])
}

func TestResolve_Reject(t *testing.T) {
	f := newFixture()
	f.requestRepo.requests[1] = &domain.Request{
		ID: 1, OwnerID: 10, UserID: 100,
		Complete: true, Status: domain.RequestPending,
	}

	resp, err := f.svc.Resolve(context.Background(), 1, &models.ResolveRequest{UserID: 1, Status: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, domain.StatusRejected, f.apptRepo.cascaded[1])

	require.Len(t, f.mailer.bodies, 1)
	assert.Equal(t, "Ваш запрос отклонён", f.mailer.bodies[0])
}

func TestResolve_NotComplete(t *testing.T) {
	f := newFixture()
	f.requestRepo.requests[1] = &domain.Request{
		ID: 1, OwnerID: 10, UserID: 100,
		Status: domain.RequestPending,
	}

	_, err := f.svc.Resolve(context.Background(), 1, &models.ResolveRequest{UserID: 1, Status: "accepted"})
	require.ErrorIs(t, err, ErrNotComplete)
	assert.Empty(t, f.apptRepo.cascaded)
}

func TestResolve_AlreadyResolved(t *testing.T) {
	f := newFixture()
	f.requestRepo.requests[1] = &domain.Request{
		ID: 1, OwnerID: 10, UserID: 100,
		Complete: true, Status: domain.RequestAccepted,
	}

	_, err := f.svc.Resolve(context.Background(), 1, &models.ResolveRequest{UserID: 1, Status: "rejected"})
	require.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestResolve_InvalidStatus(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Resolve(context.Background(), 1, &models.ResolveRequest{UserID: 1, Status: "pending"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Resolve(context.Background(), 1, &models.ResolveRequest{UserID: 1, Status: "bogus"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExpireIdle(t *testing.T) {
	f := newFixture()
	f.requestRepo.requests[1] = &domain.Request{
		ID: 1, OwnerID: 10, UserID: 100,
		Status:    domain.RequestPending,
		UpdatedAt: testNow.Add(-30 * time.Minute),
	}
	f.requestRepo.requests[2] = &domain.Request{
		ID: 2, OwnerID: 10, UserID: 200,
		Status:    domain.RequestPending,
		UpdatedAt: testNow.Add(-5 * time.Minute),
	}

	resp, err := f.svc.ExpireIdle(context.Background())
	require.NoError(t, err)

	// Просрочен только первый: второй обновлялся позже таймаута
	require.Len(t, resp.Requests, 1)
	assert.Equal(t, int64(1), resp.Requests[0].ID)
	assert.Equal(t, []int64{1}, f.requestRepo.deleted)
	require.Len(t, f.apptRepo.purged, 1)
	assert.Equal(t, []int64{1}, f.apptRepo.purged[0])
}

func TestExpireIdle_SkipsComplete(t *testing.T) {
	f := newFixture()
	f.requestRepo.requests[1] = &domain.Request{
		ID: 1, OwnerID: 10, UserID: 100,
		Complete:  true,
		Status:    domain.RequestPending,
		UpdatedAt: testNow.Add(-2 * time.Hour),
	}

	resp, err := f.svc.ExpireIdle(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Requests)
	assert.Empty(t, f.requestRepo.deleted)
}

func TestExpireIdle_Idempotent(t *testing.T) {
	f := newFixture()
	f.requestRepo.requests[1] = &domain.Request{
		ID: 1, OwnerID: 10, UserID: 100,
		Status:    domain.RequestPending,
		UpdatedAt: testNow.Add(-30 * time.Minute),
	}

	_, err := f.svc.ExpireIdle(context.Background())
	require.NoError(t, err)

	// Повторный запуск уже ничего не находит
	resp, err := f.svc.ExpireIdle(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Requests)
}

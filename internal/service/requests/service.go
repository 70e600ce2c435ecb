package requests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	requestRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/request"
	"github.com/m04kA/SMC-AppointmentService/internal/service/requests/models"
)

// Service сервис для работы с запросами (корзинами бронирований)
type Service struct {
	requestRepo     RequestRepository
	appointmentRepo AppointmentRepository
	directoryClient DirectoryClient
	txManager       TransactionManager
	mailer          Mailer
	timeProvider    TimeProvider
	idleTimeout     time.Duration
	logger          Logger
}

// NewService создает новый экземпляр сервиса запросов
func NewService(
	requestRepo RequestRepository,
	appointmentRepo AppointmentRepository,
	directoryClient DirectoryClient,
	txManager TransactionManager,
	mailer Mailer,
	idleTimeout time.Duration,
	logger Logger,
) *Service {
	if idleTimeout <= 0 {
		idleTimeout = domain.DefaultRequestIdleTimeout
	}

	return &Service{
		requestRepo:     requestRepo,
		appointmentRepo: appointmentRepo,
		directoryClient: directoryClient,
		txManager:       txManager,
		mailer:          mailer,
		timeProvider:    &RealTimeProvider{},
		idleTimeout:     idleTimeout,
		logger:          logger,
	}
}

// GetOrCreateCurrent возвращает незавершённый запрос пары (owner, user),
// создавая его при отсутствии. Гонка двух конкурентных вызовов разрешается
// на уровне хранилища - дубликат не создаётся.
func (s *Service) GetOrCreateCurrent(ctx context.Context, ownerID, userID int64) (*models.RequestResponse, error) {
	s.logger.Info("GetOrCreateCurrent: owner=%d, user=%d", ownerID, userID)

	if ownerID <= 0 || userID <= 0 {
		return nil, fmt.Errorf("%w: ownerID and userID must be positive", ErrInvalidInput)
	}

	today := s.timeProvider.Now().Truncate(24 * time.Hour)
	request, err := s.requestRepo.GetOrCreateCurrent(ctx, ownerID, userID, today)
	if err != nil {
		s.logger.Error("GetOrCreateCurrent: repository error for owner=%d, user=%d: %v", ownerID, userID, err)
		return nil, fmt.Errorf("%w: GetOrCreateCurrent - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOrCreateCurrent: request id=%d for owner=%d, user=%d", request.ID, ownerID, userID)
	return models.FromDomainRequest(request), nil
}

// Confirm завершает текущий запрос пары (owner, user): complete=true
// Клиенту отправляется письмо с текстом submitted-шаблона компании;
// сбой рассылки логируется и не прерывает подтверждение
func (s *Service) Confirm(ctx context.Context, ownerID, userID int64) (*models.RequestResponse, error) {
	s.logger.Info("Confirm: owner=%d, user=%d", ownerID, userID)

	request, err := s.requestRepo.GetCurrent(ctx, ownerID, userID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("Confirm: no current request for owner=%d, user=%d", ownerID, userID)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("Confirm: repository error for owner=%d, user=%d: %v", ownerID, userID, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	if request.Complete {
		s.logger.Warn("Confirm: request id=%d already complete", request.ID)
		return nil, ErrAlreadyComplete
	}

	if err := s.requestRepo.SetComplete(ctx, request.ID); err != nil {
		s.logger.Error("Confirm: repository error for request id=%d: %v", request.ID, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	request.Complete = true

	s.logger.Info("Confirm: successfully confirmed request id=%d", request.ID)

	// Уведомление строго best-effort: запрос уже завершён, сбой рассылки
	// его не откатывает
	s.notifyCustomer(ctx, request, "Запрос отправлен", func(t *templates) string { return t.Submitted })

	return models.FromDomainRequest(request), nil
}

// Resolve принимает или отклоняет завершённый запрос целиком
// Статус каскадно переносится на все pending бронирования запроса; решение
// финально. Клиент уведомляется письмом с соответствующим шаблоном компании.
func (s *Service) Resolve(ctx context.Context, requestID int64, req *models.ResolveRequest) (*models.RequestResponse, error) {
	s.logger.Info("Resolve: resolving request id=%d to status=%s by user=%d", requestID, req.Status, req.UserID)

	newStatus, err := models.ToDomainRequestStatus(req.Status)
	if err != nil || newStatus == domain.RequestPending {
		s.logger.Warn("Resolve: invalid target status=%s for request id=%d", req.Status, requestID)
		return nil, fmt.Errorf("%w: status must be accepted or rejected", ErrInvalidInput)
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("Resolve: request id=%d not found", requestID)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("Resolve: repository error for request id=%d: %v", requestID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	if !request.Complete {
		s.logger.Warn("Resolve: request id=%d is not complete", requestID)
		return nil, ErrNotComplete
	}

	if request.Status != domain.RequestPending {
		s.logger.Warn("Resolve: request id=%d already resolved to %s", requestID, request.Status)
		return nil, ErrAlreadyResolved
	}

	appointmentStatus := domain.StatusAccepted
	if newStatus == domain.RequestRejected {
		appointmentStatus = domain.StatusRejected
	}

	// Статус запроса и каскад на его бронирования обновляются атомарно
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.appointmentRepo.UpdateStatusByRequest(txCtx, requestID, appointmentStatus); err != nil {
			s.logger.Error("Resolve: failed to cascade status to appointments of request id=%d: %v", requestID, err)
			return fmt.Errorf("%w: Resolve - failed to cascade status: %v", ErrInternal, err)
		}

		if err := s.requestRepo.SetStatus(txCtx, requestID, newStatus); err != nil {
			s.logger.Error("Resolve: failed to set status of request id=%d: %v", requestID, err)
			return fmt.Errorf("%w: Resolve - failed to set status: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	request.Status = newStatus

	s.logger.Info("Resolve: successfully resolved request id=%d to status=%s", requestID, newStatus)

	subject := "Запрос принят"
	pick := func(t *templates) string { return t.Accepted }
	if newStatus == domain.RequestRejected {
		subject = "Запрос отклонён"
		pick = func(t *templates) string { return t.Rejected }
	}
	s.notifyCustomer(ctx, request, subject, pick)

	return models.FromDomainRequest(request), nil
}

// ExpireIdle удаляет незавершённые запросы, не обновлявшиеся дольше
// idle-таймаута, вместе с их ещё pending бронированиями
// Операция идемпотентна: повторный запуск не находит уже удалённые запросы
func (s *Service) ExpireIdle(ctx context.Context) (*models.RequestListResponse, error) {
	now := s.timeProvider.Now()
	cutoff := now.Add(-s.idleTimeout)

	idle, err := s.requestRepo.GetIdle(ctx, cutoff)
	if err != nil {
		s.logger.Error("ExpireIdle: failed to select idle requests: %v", err)
		return nil, fmt.Errorf("%w: ExpireIdle - repository error: %v", ErrInternal, err)
	}

	if len(idle) == 0 {
		return models.FromDomainRequestList(nil), nil
	}

	ids := make([]int64, len(idle))
	for i, request := range idle {
		ids[i] = request.ID
	}

	s.logger.Info("ExpireIdle: expiring %d idle requests older than %s", len(ids), cutoff.Format("2006-01-02 15:04"))

	// Каскад на бронирования и удаление запросов - одна транзакция
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.appointmentRepo.DeletePendingByRequestIDs(txCtx, ids); err != nil {
			s.logger.Error("ExpireIdle: failed to delete pending appointments: %v", err)
			return fmt.Errorf("%w: ExpireIdle - failed to delete appointments: %v", ErrInternal, err)
		}

		if err := s.requestRepo.DeleteByIDs(txCtx, ids); err != nil {
			s.logger.Error("ExpireIdle: failed to delete requests: %v", err)
			return fmt.Errorf("%w: ExpireIdle - failed to delete requests: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ExpireIdle: successfully expired %d requests", len(ids))
	return models.FromDomainRequestList(idle), nil
}

// Вспомогательные методы

type templates struct {
	Accepted  string
	Rejected  string
	Submitted string
}

// notifyCustomer отправляет клиенту запроса письмо с текстом из шаблонов
// компании. Любой сбой логируется и проглатывается.
func (s *Service) notifyCustomer(ctx context.Context, request *domain.Request, subject string, pick func(*templates) string) {
	customer, err := s.directoryClient.GetCustomer(ctx, request.UserID)
	if err != nil {
		s.logger.Error("notifyCustomer: failed to get customer id=%d: %v", request.UserID, err)
		return
	}
	if customer.Email == "" {
		return
	}

	company, err := s.directoryClient.GetCompany(ctx, request.OwnerID)
	if err != nil {
		s.logger.Error("notifyCustomer: failed to get company id=%d: %v", request.OwnerID, err)
		return
	}

	body := pick(&templates{
		Accepted:  company.Templates.Accepted,
		Rejected:  company.Templates.Rejected,
		Submitted: company.Templates.Submitted,
	})
	if body == "" {
		body = fmt.Sprintf("Запрос #%d: %s", request.ID, request.Status)
	}

	if err := s.mailer.Send(ctx, subject, body, []string{customer.Email}); err != nil {
		s.logger.Error("notifyCustomer: failed to notify customer id=%d about request id=%d: %v",
			customer.ID, request.ID, err)
	}
}

package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	appointmentRepo AppointmentRepository
	directoryClient DirectoryClient
	mailer          Mailer
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	appointmentRepo AppointmentRepository,
	directoryClient DirectoryClient,
	mailer Mailer,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		directoryClient: directoryClient,
		mailer:          mailer,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Удалённые бронирования тоже возвращаются - с заполненным deletedAt
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// ListByEmployee получает бронирования сотрудника с гибкой фильтрацией
// Поддерживает окно по времени, фильтр по статусу и три режима видимости:
// active (по умолчанию), all и deleted_only
func (s *Service) ListByEmployee(ctx context.Context, req *models.ListEmployeeAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByEmployee: fetching appointments for employee=%d, visibility=%s",
		req.EmployeeID, req.Visibility)

	if req.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByEmployee: invalid filter for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListByEmployee: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: ListByEmployee - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByEmployee: successfully fetched %d appointments for employee=%d",
		len(appointments), req.EmployeeID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Resolve подтверждает или отклоняет одно pending бронирование
// Решение финально: повторный переход из accepted/rejected запрещён
// Клиенту отправляется уведомление с настраиваемым текстом компании
func (s *Service) Resolve(ctx context.Context, appointmentID int64, req *models.ResolveAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Resolve: resolving appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil || newStatus == domain.StatusPending {
		s.logger.Warn("Resolve: invalid target status=%s for appointment id=%d", req.Status, appointmentID)
		return nil, fmt.Errorf("%w: status must be accepted or rejected", ErrInvalidInput)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Resolve: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Resolve: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	if appt.IsDeleted() {
		s.logger.Warn("Resolve: appointment id=%d is deleted", appointmentID)
		return nil, ErrAppointmentNotFound
	}

	if !appt.CanTransitionTo(newStatus) {
		s.logger.Warn("Resolve: appointment id=%d cannot transition from %s to %s",
			appointmentID, appt.Status, newStatus)
		return nil, ErrInvalidStatus
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Resolve: appointment id=%d not found during update", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Resolve: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	appt.Status = newStatus

	s.logger.Info("Resolve: successfully resolved appointment id=%d to status=%s", appointmentID, newStatus)

	// Уведомление строго best-effort: статус уже обновлён, сбой рассылки
	// его не откатывает
	s.notifyCustomer(ctx, appt)

	return models.FromDomainAppointment(appt), nil
}

// Cancel отменяет бронирование (soft delete)
// Интервал освобождается, запись остаётся видимой в режимах all и deleted_only
func (s *Service) Cancel(ctx context.Context, appointmentID int64, userID int64) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if appt.IsDeleted() {
		s.logger.Warn("Cancel: appointment id=%d already deleted", appointmentID)
		return ErrAlreadyDeleted
	}

	if err := s.appointmentRepo.SoftDelete(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}

// Purge удаляет бронирование физически, вместе с soft-deleted записями
func (s *Service) Purge(ctx context.Context, appointmentID int64, userID int64) error {
	s.logger.Info("Purge: purging appointment id=%d by user=%d", appointmentID, userID)

	if err := s.appointmentRepo.HardDelete(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Purge: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Purge: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Purge - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Purge: successfully purged appointment id=%d", appointmentID)
	return nil
}

// Вспомогательные методы

// notifyCustomer отправляет клиенту письмо с текстом из шаблонов компании
// Self-block уведомлять некого
func (s *Service) notifyCustomer(ctx context.Context, appt *domain.Appointment) {
	if appt.CustomerID == nil {
		return
	}

	customer, err := s.directoryClient.GetCustomer(ctx, *appt.CustomerID)
	if err != nil {
		s.logger.Error("notifyCustomer: failed to get customer id=%d: %v", *appt.CustomerID, err)
		return
	}
	if customer.Email == "" {
		return
	}

	company, err := s.directoryClient.GetCompany(ctx, appt.OwnerID)
	if err != nil {
		s.logger.Error("notifyCustomer: failed to get company id=%d: %v", appt.OwnerID, err)
		return
	}

	var subject, body string
	switch appt.Status {
	case domain.StatusAccepted:
		subject = "Бронирование подтверждено"
		body = company.Templates.Accepted
	case domain.StatusRejected:
		subject = "Бронирование отклонено"
		body = company.Templates.Rejected
	default:
		return
	}

	if body == "" {
		body = fmt.Sprintf("Бронирование #%d: %s", appt.ID, appt.Status)
	}

	if err := s.mailer.Send(ctx, subject, body, []string{customer.Email}); err != nil {
		s.logger.Error("notifyCustomer: failed to notify customer id=%d about appointment id=%d: %v",
			customer.ID, appt.ID, err)
	}
}

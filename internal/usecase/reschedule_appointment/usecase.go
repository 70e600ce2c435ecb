package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
)

// UseCase use case для переноса бронирования на новый интервал
type UseCase struct {
	appointmentRepo AppointmentRepository
	directoryClient DirectoryClient
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	directoryClient DirectoryClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		directoryClient: directoryClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case переноса бронирования
// Проверка пересечений и обновление выполняются в сериализуемой транзакции,
// само бронирование исключается из проверки пересечений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: user=%d, appointment=%d, start=%s",
		req.UserID, req.AppointmentID, req.StartAt.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование, удалённые переносить нельзя
	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if appt.IsDeleted() {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d is deleted", appt.ID)
		return nil, ErrAppointmentDeleted
	}

	// 3. Новый интервал: минутная точность, длительность сохраняется,
	//    если новый конец не задан явно
	start, end := resolveInterval(req, appt)

	// 4. Получаем сотрудника ради расписания
	employee, err := uc.directoryClient.GetEmployee(ctx, appt.EmployeeID)
	if err != nil {
		if errors.Is(err, directory.ErrEmployeeNotFound) {
			uc.logger.Warn("RescheduleAppointment: employee id=%d not found", appt.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get employee id=%d: %v", appt.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// 5. Проверка расписания, если не запрошен пропуск
	if !req.IgnoreAvailability {
		if err := validateFitsSchedule(employee, start, end); err != nil {
			uc.logger.Warn("RescheduleAppointment: interval %s-%s outside working hours of employee id=%d",
				start.Format("15:04"), end.Format("15:04"), employee.ID)
			return nil, err
		}
	}

	// 6. Проверка пересечений и обновление атомарно, в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if !req.IgnoreAvailability {
			overlapping, err := uc.appointmentRepo.Overlapping(txCtx, appt.EmployeeID, start, end, &appt.ID)
			if err != nil {
				uc.logger.Error("RescheduleAppointment: failed to check overlaps: %v", err)
				return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
			}
			if len(overlapping) > 0 {
				uc.logger.Warn("RescheduleAppointment: interval %s-%s conflicts with %d appointments of employee id=%d",
					start.Format("15:04"), end.Format("15:04"), len(overlapping), employee.ID)
				return ErrOverlap
			}
		}

		if err := uc.appointmentRepo.UpdateInterval(txCtx, appt.ID, start, end); err != nil {
			// Сработал констрейнт занятости в БД - backstop против гонки
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("RescheduleAppointment: storage reported interval taken for employee id=%d", employee.ID)
				return ErrOverlap
			}
			uc.logger.Error("RescheduleAppointment: failed to update appointment id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	appt.StartAt = start
	appt.EndAt = end

	uc.logger.Info("RescheduleAppointment: successfully moved appointment id=%d to %s-%s",
		appt.ID, start.Format("2006-01-02 15:04"), end.Format("15:04"))

	return toResponse(appt), nil
}

func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if req.EndAt != nil && !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}

	return nil
}

// resolveInterval вычисляет новый интервал бронирования с минутной точностью
func resolveInterval(req *Request, appt *domain.Appointment) (time.Time, time.Time) {
	start := domain.TruncateToMinute(req.StartAt)

	if req.EndAt != nil {
		return start, domain.TruncateToMinute(*req.EndAt)
	}

	// Длительность прежнего интервала переносится на новый
	return start, start.Add(appt.EndAt.Sub(appt.StartAt))
}

// validateFitsSchedule проверяет, что интервал целиком помещается в один
// непрерывный рабочий интервал расписания сотрудника на этот день
func validateFitsSchedule(employee *directory.Employee, start, end time.Time) error {
	for _, frame := range employee.Schedule.Availability(start) {
		if frame.Contains(start, end) {
			return nil
		}
	}
	return ErrNoAvailability
}

package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
)

// UseCase use case для создания бронирования
type UseCase struct {
	appointmentRepo AppointmentRepository
	requestRepo     RequestRepository
	directoryClient DirectoryClient
	txManager       TransactionManager
	mailer          Mailer
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	requestRepo RequestRepository,
	directoryClient DirectoryClient,
	txManager TransactionManager,
	mailer Mailer,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		requestRepo:     requestRepo,
		directoryClient: directoryClient,
		txManager:       txManager,
		mailer:          mailer,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и вставка выполняются в сериализуемой транзакции,
// чтобы два конкурентных бронирования на один интервал не прошли оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, owner=%d, employee=%d, customer=%v, service=%v, start=%s",
		req.UserID, req.OwnerID, req.EmployeeID, req.CustomerID, req.ServiceID,
		req.StartAt.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем сотрудника (вместе с недельным расписанием)
	employee, err := uc.directoryClient.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, directory.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateAppointment: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// 3. Получаем услугу и проверяем, что сотрудник её оказывает
	var service *directory.Service
	if req.ServiceID != nil {
		service, err = uc.directoryClient.GetService(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, directory.ErrServiceNotFound) {
				uc.logger.Warn("CreateAppointment: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		if !employee.Offers(service.ID) {
			uc.logger.Warn("CreateAppointment: employee id=%d does not offer service id=%d",
				employee.ID, service.ID)
			return nil, ErrServiceNotOffered
		}
	}

	// 4. Вычисляем интервал: минутная точность, строго в будущем,
	//    self-block против клиентского бронирования
	start, end, err := resolveInterval(req, service, now)
	if err != nil {
		uc.logger.Warn("CreateAppointment: interval validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем клиента
	var customer *directory.Customer
	if req.CustomerID != nil {
		customer, err = uc.directoryClient.GetCustomer(ctx, *req.CustomerID)
		if err != nil {
			if errors.Is(err, directory.ErrCustomerNotFound) {
				uc.logger.Warn("CreateAppointment: customer id=%d not found", *req.CustomerID)
				return nil, ErrCustomerNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get customer id=%d: %v", *req.CustomerID, err)
			return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}
	}

	// 6. Все участники обязаны принадлежать одной компании
	//    ignoreAvailability эту проверку не отключает
	if err := validateOwnership(req.OwnerID, employee, service, customer); err != nil {
		uc.logger.Warn("CreateAppointment: ownership check failed: employee=%d, service=%v, customer=%v, owner=%d",
			req.EmployeeID, req.ServiceID, req.CustomerID, req.OwnerID)
		return nil, err
	}

	// 7. Проверка расписания, если не запрошен пропуск
	if !req.IgnoreAvailability {
		if err := validateFitsSchedule(employee, start, end); err != nil {
			uc.logger.Warn("CreateAppointment: interval %s-%s outside working hours of employee id=%d",
				start.Format("15:04"), end.Format("15:04"), employee.ID)
			return nil, err
		}
	}

	status := domain.StatusPending
	if req.Confirm {
		status = domain.StatusAccepted
	}

	var result *domain.Appointment

	// 8. Проверка пересечений и вставка атомарно, в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if !req.IgnoreAvailability {
			overlapping, err := uc.appointmentRepo.Overlapping(txCtx, employee.ID, start, end, nil)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to check overlaps: %v", err)
				return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
			}
			if len(overlapping) > 0 {
				uc.logger.Warn("CreateAppointment: interval %s-%s conflicts with %d appointments of employee id=%d",
					start.Format("15:04"), end.Format("15:04"), len(overlapping), employee.ID)
				return ErrOverlap
			}
		}

		appt := &domain.Appointment{
			OwnerID:            req.OwnerID,
			EmployeeID:         employee.ID,
			CustomerID:         req.CustomerID,
			ServiceID:          req.ServiceID,
			StartAt:            start,
			EndAt:              end,
			Status:             status,
			IgnoreAvailability: req.IgnoreAvailability,
			Notes:              req.Notes,
		}

		// 8.1. Клиентское бронирование привязывается к текущему запросу
		//      (get-or-create), self-block остаётся вне запросов
		if customer != nil && !req.Confirm {
			today := domain.TruncateToMinute(now)
			currentRequest, err := uc.requestRepo.GetOrCreateCurrent(txCtx, req.OwnerID, customer.ID, today)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to get or create request: %v", err)
				return fmt.Errorf("%w: failed to get or create request: %v", ErrInternal, err)
			}
			appt.RequestID = &currentRequest.ID
		}

		// 8.2. Сохраняем бронирование
		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			// Сработал констрейнт занятости в БД - backstop против гонки
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: storage reported interval taken for employee id=%d", employee.ID)
				return ErrOverlap
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 8.3. Отодвигаем idle-таймаут запроса
		if created.RequestID != nil {
			if err := uc.requestRepo.Touch(txCtx, *created.RequestID); err != nil {
				uc.logger.Error("CreateAppointment: failed to touch request id=%d: %v", *created.RequestID, err)
				return fmt.Errorf("%w: failed to touch request: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, status=%s", result.ID, result.Status)

	// 9. Уведомление сотруднику - строго best-effort: бронирование уже
	//    создано, сбой рассылки его не откатывает
	uc.notifyEmployee(ctx, employee, result)

	return toResponse(result), nil
}

func (uc *UseCase) notifyEmployee(ctx context.Context, employee *directory.Employee, appt *domain.Appointment) {
	if employee.Email == "" {
		return
	}

	subject := "Новое бронирование"
	body := fmt.Sprintf("Бронирование #%d: %s - %s",
		appt.ID, appt.StartAt.Format("2006-01-02 15:04"), appt.EndAt.Format("15:04"))

	if err := uc.mailer.Send(ctx, subject, body, []string{employee.Email}); err != nil {
		uc.logger.Error("CreateAppointment: failed to notify employee id=%d: %v", employee.ID, err)
	}
}

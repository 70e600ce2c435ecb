package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
)

// UseCase use case для получения доступных слотов
type UseCase struct {
	appointmentRepo AppointmentRepository
	directoryClient DirectoryClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	directoryClient DirectoryClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		directoryClient: directoryClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, employee=%v, service=%v, from=%s, to=%s",
		req.UserID, req.EmployeeID, req.ServiceID,
		req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что окно не в прошлом, и выравниваем начало на "сейчас"
	now := uc.timeProvider.Now()
	if err := validateRange(req.To, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: range validation failed: %v", err)
		return nil, err
	}
	from := clampToNow(req.From, now)

	// 3. Без услуги - свободные интервалы одного сотрудника как есть
	if req.ServiceID == nil {
		slots, err := uc.freeSlotsForEmployee(ctx, *req.EmployeeID, from, req.To, req.CustomerID)
		if err != nil {
			return nil, err
		}

		uc.logger.Info("GetAvailableSlots: %d free slots for employee=%d", len(slots), *req.EmployeeID)
		return &Response{From: from, To: req.To, Slots: slots}, nil
	}

	// 4. С услугой - слоты длительности услуги
	service, err := uc.directoryClient.GetService(ctx, *req.ServiceID)
	if err != nil {
		if errors.Is(err, directory.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4.1. Конкретный сотрудник: проверяем, что он оказывает услугу
	if req.EmployeeID != nil {
		employee, err := uc.getEmployee(ctx, *req.EmployeeID)
		if err != nil {
			return nil, err
		}

		if !employeeOffers(employee, service.ID) {
			uc.logger.Warn("GetAvailableSlots: employee id=%d does not offer service id=%d",
				employee.ID, service.ID)
			return nil, ErrUnsupportedService
		}

		slots, err := uc.serviceSlotsForEmployee(ctx, employee, service, from, req.To, req.CustomerID)
		if err != nil {
			return nil, err
		}

		uc.logger.Info("GetAvailableSlots: %d service slots for employee=%d, service=%d",
			len(slots), employee.ID, service.ID)
		return &Response{From: from, To: req.To, Slots: slots}, nil
	}

	// 4.2. Без сотрудника: объединяем слоты всех сотрудников, оказывающих услугу
	employees, err := uc.directoryClient.ListEmployeesByService(ctx, service.ID)
	if err != nil {
		if errors.Is(err, directory.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to list employees for service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to list employees: %v", ErrInternal, err)
	}

	perEmployee := make([][]domain.Slot, 0, len(employees))
	for _, employee := range employees {
		slots, err := uc.serviceSlotsForEmployee(ctx, employee, service, from, req.To, req.CustomerID)
		if err != nil {
			return nil, err
		}
		perEmployee = append(perEmployee, slots)
	}

	merged := mergeSlots(perEmployee...)

	uc.logger.Info("GetAvailableSlots: %d merged slots for service=%d across %d employees",
		len(merged), service.ID, len(employees))
	return &Response{From: from, To: req.To, Slots: merged}, nil
}

// freeSlotsForEmployee вычисляет свободные интервалы сотрудника в окне
// [from, to): расписание разворачивается по дням, активные бронирования
// сотрудника (и клиента, если указан) вычитаются
func (uc *UseCase) freeSlotsForEmployee(ctx context.Context, employeeID int64, from, to time.Time, customerID *int64) ([]domain.Slot, error) {
	employee, err := uc.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return uc.freeSlots(ctx, employee, from, to, customerID)
}

func (uc *UseCase) freeSlots(ctx context.Context, employee *directory.Employee, from, to time.Time, customerID *int64) ([]domain.Slot, error) {
	slots := expandSchedule(&employee.Schedule, from, to)

	appointments, err := uc.appointmentRepo.ListWithFilter(ctx, domain.AppointmentFilter{
		EmployeeID: &employee.ID,
		From:       &from,
		To:         &to,
		Visibility: domain.VisibilityActive,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for employee id=%d: %v", employee.ID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// Занятость клиента тоже вычитается: клиент не может быть в двух местах сразу
	if customerID != nil {
		customerAppointments, err := uc.appointmentRepo.ListWithFilter(ctx, domain.AppointmentFilter{
			CustomerID: customerID,
			From:       &from,
			To:         &to,
			Visibility: domain.VisibilityActive,
		})
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get appointments for customer id=%d: %v", *customerID, err)
			return nil, fmt.Errorf("%w: failed to get customer appointments: %v", ErrInternal, err)
		}
		appointments = unionAppointments(appointments, customerAppointments)
	}

	return subtractAppointments(slots, appointments), nil
}

// serviceSlotsForEmployee вычисляет слоты длительности услуги для сотрудника
func (uc *UseCase) serviceSlotsForEmployee(ctx context.Context, employee *directory.Employee, service *directory.Service, from, to time.Time, customerID *int64) ([]domain.Slot, error) {
	free, err := uc.freeSlots(ctx, employee, from, to, customerID)
	if err != nil {
		return nil, err
	}
	return breakAllIntoServiceSlots(free, service.DurationMinutes), nil
}

func (uc *UseCase) getEmployee(ctx context.Context, employeeID int64) (*directory.Employee, error) {
	employee, err := uc.directoryClient.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, directory.ErrEmployeeNotFound) {
			uc.logger.Warn("GetAvailableSlots: employee id=%d not found", employeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}
	return employee, nil
}

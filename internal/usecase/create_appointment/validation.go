package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.CustomerID != nil && *req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	return nil
}

// resolveInterval вычисляет интервал бронирования с минутной точностью
//
// Без услуги это self-block: клиент не указывается (сотрудник бронирует
// сам себя), конец интервала обязан прийти от вызывающего.
// С услугой конец выводится из её длительности.
func resolveInterval(req *Request, service *directory.Service, now time.Time) (time.Time, time.Time, error) {
	start := domain.TruncateToMinute(req.StartAt)

	if !start.After(now) {
		return time.Time{}, time.Time{}, ErrPastDate
	}

	if service == nil {
		if req.CustomerID != nil {
			return time.Time{}, time.Time{}, ErrMissingService
		}
		if req.EndAt == nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: endAt is required for self-blocks", ErrInvalidInput)
		}

		end := domain.TruncateToMinute(*req.EndAt)
		if !end.After(start) {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
		}
		return start, end, nil
	}

	if req.CustomerID == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: customerID is required for service bookings", ErrInvalidInput)
	}

	end := domain.TruncateToMinute(start.Add(time.Duration(service.DurationMinutes) * time.Minute))
	return start, end, nil
}

// validateOwnership проверяет, что все участники принадлежат одной компании
// Проверка выполняется всегда, ignoreAvailability её не отключает
func validateOwnership(ownerID int64, employee *directory.Employee, service *directory.Service, customer *directory.Customer) error {
	entities := make([]domain.Owned, 0, 3)
	entities = append(entities, employee)
	if service != nil {
		entities = append(entities, service)
	}
	if customer != nil {
		entities = append(entities, customer)
	}

	if !domain.SameOwner(ownerID, entities...) {
		return ErrCrossOwner
	}

	return nil
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

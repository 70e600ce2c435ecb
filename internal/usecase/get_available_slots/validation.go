package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EmployeeID == nil && req.ServiceID == nil {
		return fmt.Errorf("%w: employeeID or serviceID is required", ErrInvalidInput)
	}

	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if !req.From.Before(req.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidRange)
	}

	return nil
}

// validateRange проверяет, что окно не лежит целиком в прошлом:
// календарный день конца окна должен быть строго позже сегодняшнего
func validateRange(to, now time.Time) error {
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if !toDay.After(today) {
		return fmt.Errorf("%w: range must end after today", ErrInvalidRange)
	}

	return nil
}

// clampToNow сдвигает начало окна вперед на "сейчас", если оно в прошлом
func clampToNow(from, now time.Time) time.Time {
	if from.Before(now) {
		return now
	}
	return from
}

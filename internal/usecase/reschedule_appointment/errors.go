package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда бронирование не найдено
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAppointmentDeleted возвращается при попытке перенести удалённое бронирование
	ErrAppointmentDeleted = errors.New("reschedule_appointment: appointment is deleted")

	// ErrNoAvailability возвращается, когда новый интервал не помещается
	// ни в один рабочий интервал расписания сотрудника
	ErrNoAvailability = errors.New("reschedule_appointment: interval is outside working hours")

	// ErrOverlap возвращается при пересечении с другим активным бронированием
	ErrOverlap = errors.New("reschedule_appointment: interval conflicts with an existing appointment")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("reschedule_appointment: employee not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)

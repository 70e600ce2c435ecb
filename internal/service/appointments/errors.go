package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда бронирование не найдено
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAlreadyDeleted возвращается при попытке отменить уже удалённое бронирование
	ErrAlreadyDeleted = errors.New("appointment already deleted")

	// ErrInvalidStatus возвращается при недопустимом переходе статуса
	ErrInvalidStatus = errors.New("invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

package get_available_slots

import "errors"

var (
	// ErrInvalidRange возвращается, когда окно запроса некорректно
	// или целиком лежит в прошлом
	ErrInvalidRange = errors.New("get_available_slots: invalid availability range")

	// ErrUnsupportedService возвращается, когда указанный сотрудник
	// не оказывает запрошенную услугу
	ErrUnsupportedService = errors.New("get_available_slots: employee does not offer this service")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("get_available_slots: employee not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)

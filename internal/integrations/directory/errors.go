package directory

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("company not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("directory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("directory client: invalid response")
)

package create_appointment

import "errors"

var (
	// ErrPastDate возвращается, когда начало бронирования не в будущем
	ErrPastDate = errors.New("create_appointment: start must be in the future")

	// ErrMissingService возвращается, когда клиентское бронирование
	// не содержит услугу (услуга опциональна только для self-block)
	ErrMissingService = errors.New("create_appointment: service is required for customer bookings")

	// ErrServiceNotOffered возвращается, когда сотрудник не оказывает услугу
	ErrServiceNotOffered = errors.New("create_appointment: employee does not offer this service")

	// ErrCrossOwner возвращается, когда сотрудник, услуга и клиент
	// принадлежат разным компаниям
	ErrCrossOwner = errors.New("create_appointment: entities belong to different companies")

	// ErrNoAvailability возвращается, когда интервал не помещается
	// ни в один рабочий интервал расписания сотрудника
	ErrNoAvailability = errors.New("create_appointment: interval is outside working hours")

	// ErrOverlap возвращается при пересечении с активным бронированием
	ErrOverlap = errors.New("create_appointment: interval conflicts with an existing appointment")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("create_appointment: employee not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("create_appointment: customer not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

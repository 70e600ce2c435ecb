package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание бронирования
//
// Клиентское бронирование: ServiceID и CustomerID обязательны, EndAt
// вычисляется из длительности услуги. Self-block (сотрудник резервирует
// личное время): ServiceID и CustomerID отсутствуют, EndAt обязателен.
type Request struct {
	UserID     int64  // ID действующего пользователя (для логирования и привязки запроса)
	OwnerID    int64  // ID компании
	EmployeeID int64  // ID сотрудника
	CustomerID *int64 // ID клиента (nil для self-block)
	ServiceID  *int64 // ID услуги (nil для self-block)

	StartAt time.Time  // Начало бронирования
	EndAt   *time.Time // Конец бронирования (обязателен только для self-block)

	// IgnoreAvailability пропускает проверки расписания и пересечений
	// Авторизация вызывающего проверяется снаружи
	IgnoreAvailability bool

	// Confirm создает бронирование сразу в статусе accepted, минуя запрос
	// Авторизация вызывающего проверяется снаружи
	Confirm bool

	Notes *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	OwnerID    int64
	EmployeeID int64
	CustomerID *int64
	ServiceID  *int64
	RequestID  *int64

	StartAt time.Time
	EndAt   time.Time
	Status  string

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// toResponse конвертирует domain модель в ответ use case
func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:         appt.ID,
		OwnerID:    appt.OwnerID,
		EmployeeID: appt.EmployeeID,
		CustomerID: appt.CustomerID,
		ServiceID:  appt.ServiceID,
		RequestID:  appt.RequestID,
		StartAt:    appt.StartAt,
		EndAt:      appt.EndAt,
		Status:     string(appt.Status),
		Notes:      appt.Notes,
		CreatedAt:  appt.CreatedAt,
		UpdatedAt:  appt.UpdatedAt,
	}
}

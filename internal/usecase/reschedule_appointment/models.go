package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request - входные данные для переноса бронирования
type Request struct {
	UserID             int64      // Инициатор переноса
	AppointmentID      int64      // Переносимое бронирование
	StartAt            time.Time  // Новое время начала
	EndAt              *time.Time // Новое время конца (nil - сохраняем прежнюю длительность)
	IgnoreAvailability bool       // Пропустить проверки расписания и пересечений
}

// Response - результат переноса бронирования
type Response struct {
	ID         int64      `json:"id"`
	OwnerID    int64      `json:"owner_id"`
	EmployeeID int64      `json:"employee_id"`
	CustomerID *int64     `json:"customer_id,omitempty"`
	ServiceID  *int64     `json:"service_id,omitempty"`
	StartAt    time.Time  `json:"start_at"`
	EndAt      time.Time  `json:"end_at"`
	Status     string     `json:"status"`
	Notes      *string    `json:"notes,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func toResponse(apt *domain.Appointment) *Response {
	return &Response{
		ID:         apt.ID,
		OwnerID:    apt.OwnerID,
		EmployeeID: apt.EmployeeID,
		CustomerID: apt.CustomerID,
		ServiceID:  apt.ServiceID,
		StartAt:    apt.StartAt,
		EndAt:      apt.EndAt,
		Status:     string(apt.Status),
		Notes:      apt.Notes,
		UpdatedAt:  apt.UpdatedAt,
	}
}

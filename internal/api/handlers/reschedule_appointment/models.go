package reschedule_appointment

import (
	"time"

	rescheduleAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_appointment"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	StartAt            string  `json:"startAt"`         // ISO 8601
	EndAt              *string `json:"endAt,omitempty"` // ISO 8601, опционален
	IgnoreAvailability bool    `json:"ignoreAvailability,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64   `json:"id"`
	OwnerID    int64   `json:"ownerId"`
	EmployeeID int64   `json:"employeeId"`
	CustomerID *int64  `json:"customerId,omitempty"`
	ServiceID  *int64  `json:"serviceId,omitempty"`
	StartAt    string  `json:"startAt"`
	EndAt      string  `json:"endAt"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(userID, appointmentID int64) (*rescheduleAppointment.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	var endAt *time.Time
	if r.EndAt != nil {
		parsed, err := time.Parse(time.RFC3339, *r.EndAt)
		if err != nil {
			return nil, err
		}
		endAt = &parsed
	}

	return &rescheduleAppointment.Request{
		UserID:             userID,
		AppointmentID:      appointmentID,
		StartAt:            startAt,
		EndAt:              endAt,
		IgnoreAvailability: r.IgnoreAvailability,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:         resp.ID,
		OwnerID:    resp.OwnerID,
		EmployeeID: resp.EmployeeID,
		CustomerID: resp.CustomerID,
		ServiceID:  resp.ServiceID,
		StartAt:    resp.StartAt.Format(time.RFC3339),
		EndAt:      resp.EndAt.Format(time.RFC3339),
		Status:     resp.Status,
		Notes:      resp.Notes,
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}

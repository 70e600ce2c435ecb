package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	OwnerID    int64  `json:"ownerId"`
	EmployeeID int64  `json:"employeeId"`
	CustomerID *int64 `json:"customerId,omitempty"`
	ServiceID  *int64 `json:"serviceId,omitempty"`

	StartAt string  `json:"startAt"`         // ISO 8601
	EndAt   *string `json:"endAt,omitempty"` // ISO 8601, обязателен для self-block

	IgnoreAvailability bool `json:"ignoreAvailability,omitempty"`
	Confirm            bool `json:"confirm,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64   `json:"id"`
	OwnerID    int64   `json:"ownerId"`
	EmployeeID int64   `json:"employeeId"`
	CustomerID *int64  `json:"customerId,omitempty"`
	ServiceID  *int64  `json:"serviceId,omitempty"`
	RequestID  *int64  `json:"requestId,omitempty"`
	StartAt    string  `json:"startAt"`
	EndAt      string  `json:"endAt"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
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

	return &createAppointment.Request{
		UserID:             userID,
		OwnerID:            r.OwnerID,
		EmployeeID:         r.EmployeeID,
		CustomerID:         r.CustomerID,
		ServiceID:          r.ServiceID,
		StartAt:            startAt,
		EndAt:              endAt,
		IgnoreAvailability: r.IgnoreAvailability,
		Confirm:            r.Confirm,
		Notes:              r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:         resp.ID,
		OwnerID:    resp.OwnerID,
		EmployeeID: resp.EmployeeID,
		CustomerID: resp.CustomerID,
		ServiceID:  resp.ServiceID,
		RequestID:  resp.RequestID,
		StartAt:    resp.StartAt.Format(time.RFC3339),
		EndAt:      resp.EndAt.Format(time.RFC3339),
		Status:     resp.Status,
		Notes:      resp.Notes,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}

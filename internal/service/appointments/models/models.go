package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidVisibility возвращается при некорректном режиме видимости
	ErrInvalidVisibility = errors.New("invalid visibility")
)

// Request модели

// ListEmployeeAppointmentsRequest запрос бронирований сотрудника
type ListEmployeeAppointmentsRequest struct {
	EmployeeID int64      `json:"employeeId"`
	From       *time.Time `json:"from,omitempty"`       // Начало окна (опционально)
	To         *time.Time `json:"to,omitempty"`         // Конец окна (опционально)
	Status     *string    `json:"status,omitempty"`     // Фильтр по статусу (опционально)
	Visibility string     `json:"visibility,omitempty"` // active (по умолчанию) | all | deleted_only
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListEmployeeAppointmentsRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		EmployeeID: &r.EmployeeID,
		From:       r.From,
		To:         r.To,
	}

	visibility, err := ToDomainVisibility(r.Visibility)
	if err != nil {
		return filter, err
	}
	filter.Visibility = visibility

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ResolveAppointmentRequest запрос на подтверждение или отклонение бронирования
type ResolveAppointmentRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"` // accepted | rejected
}

// Response модели

// AppointmentResponse ответ с данными бронирования
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	OwnerID            int64   `json:"ownerId"`
	EmployeeID         int64   `json:"employeeId"`
	CustomerID         *int64  `json:"customerId,omitempty"`
	ServiceID          *int64  `json:"serviceId,omitempty"`
	RequestID          *int64  `json:"requestId,omitempty"`
	StartAt            string  `json:"startAt"` // ISO 8601
	EndAt              string  `json:"endAt"`   // ISO 8601
	Status             string  `json:"status"`
	IgnoreAvailability bool    `json:"ignoreAvailability,omitempty"`
	SelfBlock          bool    `json:"selfBlock,omitempty"`
	Notes              *string `json:"notes,omitempty"`
	DeletedAt          *string `json:"deletedAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком бронирований
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		OwnerID:            a.OwnerID,
		EmployeeID:         a.EmployeeID,
		CustomerID:         a.CustomerID,
		ServiceID:          a.ServiceID,
		RequestID:          a.RequestID,
		StartAt:            a.StartAt.Format(time.RFC3339),
		EndAt:              a.EndAt.Format(time.RFC3339),
		Status:             string(a.Status),
		IgnoreAvailability: a.IgnoreAvailability,
		SelfBlock:          a.IsSelfBlock(),
		Notes:              a.Notes,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.DeletedAt != nil {
		deletedStr := a.DeletedAt.Format(time.RFC3339)
		resp.DeletedAt = &deletedStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	switch s {
	case domain.StatusPending, domain.StatusAccepted, domain.StatusRejected:
		return s, nil
	}

	return "", ErrInvalidStatus
}

// ToDomainVisibility конвертирует строку в domain.Visibility с валидацией.
// Пустая строка трактуется как active.
func ToDomainVisibility(visibility string) (domain.Visibility, error) {
	if visibility == "" {
		return domain.VisibilityActive, nil
	}

	v := domain.Visibility(visibility)

	switch v {
	case domain.VisibilityActive, domain.VisibilityAll, domain.VisibilityDeletedOnly:
		return v, nil
	}

	return "", ErrInvalidVisibility
}

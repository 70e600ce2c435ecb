package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid request status")
)

// Request модели

// ResolveRequest запрос на принятие или отклонение запроса целиком
type ResolveRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"` // accepted | rejected
}

// Response модели

// RequestResponse ответ с данными запроса
type RequestResponse struct {
	ID            int64   `json:"id"`
	OwnerID       int64   `json:"ownerId"`
	UserID        int64   `json:"userId"`
	ScheduledDate string  `json:"scheduledDate"` // "2025-10-15"
	Complete      bool    `json:"complete"`
	Status        string  `json:"status"`
	PaymentRef    *string `json:"paymentRef,omitempty"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RequestListResponse ответ со списком запросов
type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
}

// Методы конвертации

// FromDomainRequest конвертирует domain модель в DTO
func FromDomainRequest(r *domain.Request) *RequestResponse {
	if r == nil {
		return nil
	}

	return &RequestResponse{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		UserID:        r.UserID,
		ScheduledDate: r.ScheduledDate.Format(domain.DateFormat),
		Complete:      r.Complete,
		Status:        string(r.Status),
		PaymentRef:    r.PaymentRef,
		PaymentStatus: r.PaymentStatus,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromDomainRequestList конвертирует список domain моделей в DTO
func FromDomainRequestList(requests []*domain.Request) *RequestListResponse {
	if requests == nil {
		return &RequestListResponse{
			Requests: []RequestResponse{},
		}
	}

	resp := &RequestListResponse{
		Requests: make([]RequestResponse, len(requests)),
	}

	for i, req := range requests {
		if reqResp := FromDomainRequest(req); reqResp != nil {
			resp.Requests[i] = *reqResp
		}
	}

	return resp
}

// ToDomainRequestStatus конвертирует строку в domain.RequestStatus с валидацией
func ToDomainRequestStatus(status string) (domain.RequestStatus, error) {
	s := domain.RequestStatus(status)

	switch s {
	case domain.RequestPending, domain.RequestAccepted, domain.RequestRejected:
		return s, nil
	}

	return "", ErrInvalidStatus
}

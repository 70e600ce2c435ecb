package directory

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Company модель компании из DirectoryService
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Тексты уведомлений, настраиваемые владельцем компании
	Templates MessageTemplates `json:"messageTemplates"`
}

// MessageTemplates тексты писем для переходов статусов
type MessageTemplates struct {
	Accepted  string `json:"accepted"`
	Rejected  string `json:"rejected"`
	Submitted string `json:"submitted"`
}

// GetOwnerID реализует domain.Owned (компания владеет сама собой)
func (c *Company) GetOwnerID() int64 {
	return c.ID
}

// Employee модель сотрудника из DirectoryService
type Employee struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"companyId"`
	Name      string `json:"name"`
	Email     string `json:"email"`

	// Услуги, которые сотрудник оказывает
	ServiceIDs []int64 `json:"serviceIds"`

	// Недельное расписание смен сотрудника
	Schedule domain.WeeklySchedule `json:"schedule"`
}

// GetOwnerID реализует domain.Owned
func (e *Employee) GetOwnerID() int64 {
	return e.CompanyID
}

// Offers проверяет, что сотрудник оказывает услугу
func (e *Employee) Offers(serviceID int64) bool {
	for _, id := range e.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// Service модель услуги из DirectoryService
type Service struct {
	ID              int64    `json:"id"`
	CompanyID       int64    `json:"companyId"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
}

// GetOwnerID реализует domain.Owned
func (s *Service) GetOwnerID() int64 {
	return s.CompanyID
}

// Customer модель клиента из DirectoryService
type Customer struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"companyId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// GetOwnerID реализует domain.Owned
func (c *Customer) GetOwnerID() int64 {
	return c.CompanyID
}

// ErrorResponse модель ошибки от DirectoryService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

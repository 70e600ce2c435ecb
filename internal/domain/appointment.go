package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending  AppointmentStatus = "pending"
	StatusAccepted AppointmentStatus = "accepted"
	StatusRejected AppointmentStatus = "rejected"
)

// Visibility selects which appointments a listing returns with respect
// to soft deletion
type Visibility string

const (
	VisibilityActive      Visibility = "active"
	VisibilityAll         Visibility = "all"
	VisibilityDeletedOnly Visibility = "deleted_only"
)

// Appointment represents a reserved time interval [StartAt, EndAt) of an
// employee. A customer appointment references a customer and a service;
// a self-block carries neither and simply marks the employee as busy.
type Appointment struct {
	ID         int64
	OwnerID    int64 // company
	EmployeeID int64
	CustomerID *int64 // nil for self-blocks
	ServiceID  *int64 // nil for self-blocks
	RequestID  *int64 // checkout session the appointment belongs to, if any

	StartAt time.Time
	EndAt   time.Time
	Status  AppointmentStatus

	// IgnoreAvailability marks the appointment as created past the schedule
	// and overlap checks
	IgnoreAvailability bool

	Notes *string

	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the appointment still occupies its interval.
// Rejected and soft-deleted appointments free the time they held.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusRejected && a.DeletedAt == nil
}

// IsSelfBlock reports whether the appointment is an employee self-block
// rather than a customer appointment
func (a *Appointment) IsSelfBlock() bool {
	return a.CustomerID == nil && a.ServiceID == nil
}

// IsDeleted reports whether the appointment has been soft-deleted
func (a *Appointment) IsDeleted() bool {
	return a.DeletedAt != nil
}

// CanTransitionTo reports whether the status transition is allowed.
// Only pending appointments can be resolved; resolutions are final.
func (a *Appointment) CanTransitionTo(status AppointmentStatus) bool {
	if a.Status != StatusPending {
		return false
	}
	return status == StatusAccepted || status == StatusRejected
}

// AppointmentFilter фильтр для выборки бронирований
type AppointmentFilter struct {
	EmployeeID *int64
	CustomerID *int64
	RequestID  *int64
	From       *time.Time         // Начало окна (опционально)
	To         *time.Time         // Конец окна (опционально)
	Status     *AppointmentStatus // Фильтр по статусу (опционально)
	Visibility Visibility         // Пустое значение трактуется как active
}

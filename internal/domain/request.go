package domain

import "time"

// RequestStatus aggregates the statuses of a request's appointments
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// Request aggregates a customer's appointments for one company within one
// checkout session. At most one incomplete request exists per (owner, user)
// pair; it is created lazily and expired if left incomplete for too long.
type Request struct {
	ID            int64
	OwnerID       int64 // company
	UserID        int64 // customer
	ScheduledDate time.Time
	Complete      bool
	Status        RequestStatus

	// Opaque references to the external payment system; never interpreted here
	PaymentRef    *string
	PaymentStatus *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsIdle reports whether an incomplete request has been untouched longer
// than timeout as of now
func (r *Request) IsIdle(now time.Time, timeout time.Duration) bool {
	return !r.Complete && now.Sub(r.UpdatedAt) > timeout
}

package domain

import "errors"

// ErrInvalidTimeFrame is returned when a TimeFrame violates Start < End
var ErrInvalidTimeFrame = errors.New("time frame start must be before end")

// Owned is implemented by every entity belonging to a company.
// The engine only compares owner ids; it never derives them.
type Owned interface {
	GetOwnerID() int64
}

// SameOwner reports whether every entity shares owner. Nil entries are
// skipped so optional participants (customer, service) can be passed as-is.
func SameOwner(owner int64, entities ...Owned) bool {
	for _, e := range entities {
		if e == nil {
			continue
		}
		if e.GetOwnerID() != owner {
			return false
		}
	}
	return true
}

package domain

import "time"

// Default configuration values
const (
	// DefaultRequestIdleTimeout время, после которого незавершённый запрос считается брошенным
	DefaultRequestIdleTimeout = 20 * time.Minute

	// DefaultReaperInterval период запуска чистки брошенных запросов
	DefaultReaperInterval = time.Minute
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxNotesLength            = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

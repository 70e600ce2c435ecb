package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Overlapping(ctx context.Context, employeeID int64, start, end time.Time, excludeID *int64) ([]*domain.Appointment, error)
	UpdateInterval(ctx context.Context, id int64, start, end time.Time) error
}

// DirectoryClient интерфейс клиента DirectoryService
type DirectoryClient interface {
	GetEmployee(ctx context.Context, employeeID int64) (*directory.Employee, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

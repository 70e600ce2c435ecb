package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	// ListWithFilter получает бронирования по фильтру (сотрудник/клиент, интервал, видимость)
	ListWithFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// DirectoryClient интерфейс клиента DirectoryService
type DirectoryClient interface {
	GetEmployee(ctx context.Context, employeeID int64) (*directory.Employee, error)
	GetService(ctx context.Context, serviceID int64) (*directory.Service, error)
	ListEmployeesByService(ctx context.Context, serviceID int64) ([]*directory.Employee, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// Overlapping получает активные бронирования сотрудника, пересекающиеся с интервалом
	Overlapping(ctx context.Context, employeeID int64, start, end time.Time, excludeID *int64) ([]*domain.Appointment, error)
}

// RequestRepository интерфейс репозитория запросов
type RequestRepository interface {
	GetOrCreateCurrent(ctx context.Context, ownerID, userID int64, scheduledDate time.Time) (*domain.Request, error)
	Touch(ctx context.Context, id int64) error
}

// DirectoryClient интерфейс клиента DirectoryService
type DirectoryClient interface {
	GetEmployee(ctx context.Context, employeeID int64) (*directory.Employee, error)
	GetService(ctx context.Context, serviceID int64) (*directory.Service, error)
	GetCustomer(ctx context.Context, customerID int64) (*directory.Customer, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Mailer интерфейс отправки уведомлений
// Ошибки отправки логируются и никогда не откатывают бронирование
type Mailer interface {
	Send(ctx context.Context, subject, body string, recipients []string) error
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

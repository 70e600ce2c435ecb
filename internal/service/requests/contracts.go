package requests

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
)

// RequestRepository интерфейс репозитория запросов
type RequestRepository interface {
	GetOrCreateCurrent(ctx context.Context, ownerID, userID int64, scheduledDate time.Time) (*domain.Request, error)
	GetCurrent(ctx context.Context, ownerID, userID int64) (*domain.Request, error)
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
	SetComplete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, status domain.RequestStatus) error
	GetIdle(ctx context.Context, olderThan time.Time) ([]*domain.Request, error)
	DeleteByIDs(ctx context.Context, ids []int64) error
}

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	UpdateStatusByRequest(ctx context.Context, requestID int64, status domain.AppointmentStatus) error
	DeletePendingByRequestIDs(ctx context.Context, requestIDs []int64) error
}

// DirectoryClient интерфейс клиента DirectoryService
type DirectoryClient interface {
	GetCompany(ctx context.Context, companyID int64) (*directory.Company, error)
	GetCustomer(ctx context.Context, customerID int64) (*directory.Customer, error)
}

// Mailer интерфейс отправки уведомлений
type Mailer interface {
	Send(ctx context.Context, subject, body string, recipients []string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

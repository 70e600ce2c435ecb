package appointments

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	SoftDelete(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

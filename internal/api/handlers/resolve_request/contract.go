package resolve_request

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/requests/models"
)

type RequestService interface {
	Resolve(ctx context.Context, requestID int64, req *models.ResolveRequest) (*models.RequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

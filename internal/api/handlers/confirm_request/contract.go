package confirm_request

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/requests/models"
)

type RequestService interface {
	Confirm(ctx context.Context, ownerID, userID int64) (*models.RequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

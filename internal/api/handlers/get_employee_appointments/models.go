package get_employee_appointments

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	employeeID int64,
	fromStr string,
	toStr string,
	statusStr string,
	viewStr string,
) (*models.ListEmployeeAppointmentsRequest, error) {
	req := &models.ListEmployeeAppointmentsRequest{
		EmployeeID: employeeID,
		Visibility: viewStr,
	}

	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}

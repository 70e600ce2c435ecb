package get_employee_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidEmployeeID  = "некорректный ID сотрудника"
	msgInvalidQueryParams = "некорректные параметры запроса"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/appointments
// Query: from, to (RFC 3339), status, view (active | all | deleted_only)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/appointments - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	query := r.URL.Query()
	req, err := ToServiceRequest(
		employeeID,
		query.Get("from"),
		query.Get("to"),
		query.Get("status"),
		query.Get("view"),
	)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/appointments - Failed to parse query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQueryParams)
		return
	}

	result, err := h.service.ListByEmployee(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /employees/{id}/appointments - Invalid input: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondBadRequest(w, msgInvalidQueryParams)

		default:
			h.logger.Error("GET /employees/{id}/appointments - Failed to list appointments: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/appointments - %d appointments retrieved: employee_id=%d",
		len(result.Appointments), employeeID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

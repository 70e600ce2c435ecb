package resolve_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронирование не найдено"
	msgInvalidStatus        = "недопустимый переход статуса"
	msgInvalidInput         = "некорректные входные данные"
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

// Handle POST /api/v1/appointments/{appointmentId}/resolve
// Тело: {"status": "accepted" | "rejected"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/resolve - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/resolve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ResolveAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Resolve(r.Context(), appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/resolve - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("POST /appointments/{id}/resolve - Invalid transition: appointment_id=%d, status=%s",
				appointmentID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgInvalidStatus)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/resolve - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments/{id}/resolve - Failed to resolve: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/resolve - Appointment resolved successfully: appointment_id=%d, status=%s, user_id=%d",
		appointmentID, result.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

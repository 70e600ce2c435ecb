package cancel_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID бронирования"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронирование не найдено"
	msgAlreadyDeleted       = "бронирование уже удалено"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
// Soft delete: интервал освобождается, запись остаётся в истории
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, userID, ok := h.parseIDs(w, r, "PATCH /appointments/{id}/cancel")
	if !ok {
		return
	}

	if err := h.service.Cancel(r.Context(), appointmentID, userID); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAlreadyDeleted):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Already deleted: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyDeleted)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled successfully: appointment_id=%d, user_id=%d",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandlePurge DELETE /api/v1/appointments/{appointmentId}
// Физическое удаление, включая soft-deleted записи
func (h *Handler) HandlePurge(w http.ResponseWriter, r *http.Request) {
	appointmentID, userID, ok := h.parseIDs(w, r, "DELETE /appointments/{id}")
	if !ok {
		return
	}

	if err := h.service.Purge(r.Context(), appointmentID, userID); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /appointments/{id} - Failed to purge: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment purged successfully: appointment_id=%d, user_id=%d",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) parseIDs(w http.ResponseWriter, r *http.Request, route string) (int64, int64, bool) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid appointment ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return 0, 0, false
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, 0, false
	}

	return appointmentID, userID, true
}

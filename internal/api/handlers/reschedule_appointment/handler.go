package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	rescheduleAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidTime          = "некорректный формат времени, ожидается RFC 3339"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронирование не найдено"
	msgDeleted              = "бронирование удалено"
	msgNoAvailability       = "интервал вне рабочих часов сотрудника"
	msgOverlap              = "интервал пересекается с существующим бронированием"
	msgEmployeeNotFound     = "сотрудник не найден"
	msgInvalidInput         = "некорректные входные данные"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrAppointmentDeleted):
			h.logger.Warn("PATCH /appointments/{id} - Appointment deleted: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusGone, msgDeleted)

		case errors.Is(err, rescheduleAppointment.ErrOverlap):
			h.logger.Warn("PATCH /appointments/{id} - Overlap: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgOverlap)

		case errors.Is(err, rescheduleAppointment.ErrNoAvailability):
			h.logger.Warn("PATCH /appointments/{id} - Outside working hours: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgNoAvailability)

		case errors.Is(err, rescheduleAppointment.ErrEmployeeNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Employee not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id} - Invalid input: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/{id} - Failed to reschedule: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Appointment rescheduled successfully: appointment_id=%d, user_id=%d",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package resolve_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/requests"
	"github.com/m04kA/SMC-AppointmentService/internal/service/requests/models"
)

const (
	msgInvalidRequestID   = "некорректный ID запроса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "запрос не найден"
	msgNotComplete        = "запрос ещё не завершён"
	msgAlreadyResolved    = "запрос уже принят или отклонён"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	service RequestService
	logger  Logger
}

func NewHandler(service RequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/requests/{requestId}/resolve
// Тело: {"status": "accepted" | "rejected"}
// Статус каскадно переносится на все pending бронирования запроса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID, err := strconv.ParseInt(vars["requestId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /requests/{id}/resolve - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /requests/{id}/resolve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ResolveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /requests/{id}/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Resolve(r.Context(), requestID, &req)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrRequestNotFound):
			h.logger.Warn("POST /requests/{id}/resolve - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requests.ErrNotComplete):
			h.logger.Warn("POST /requests/{id}/resolve - Request not complete: request_id=%d", requestID)
			handlers.RespondError(w, http.StatusConflict, msgNotComplete)

		case errors.Is(err, requests.ErrAlreadyResolved):
			h.logger.Warn("POST /requests/{id}/resolve - Already resolved: request_id=%d", requestID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyResolved)

		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("POST /requests/{id}/resolve - Invalid input: request_id=%d, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /requests/{id}/resolve - Failed to resolve: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests/{id}/resolve - Request resolved: request_id=%d, status=%s, user_id=%d",
		requestID, result.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

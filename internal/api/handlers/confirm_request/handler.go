package confirm_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/requests"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "текущий запрос не найден"
	msgAlreadyComplete  = "запрос уже завершён"
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

// Handle POST /api/v1/companies/{companyId}/requests/current/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /companies/{id}/requests/current/confirm - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /companies/{id}/requests/current/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Confirm(r.Context(), companyID, userID)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrRequestNotFound):
			h.logger.Warn("POST /companies/{id}/requests/current/confirm - Request not found: company_id=%d, user_id=%d",
				companyID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requests.ErrAlreadyComplete):
			h.logger.Warn("POST /companies/{id}/requests/current/confirm - Already complete: company_id=%d, user_id=%d",
				companyID, userID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyComplete)

		default:
			h.logger.Error("POST /companies/{id}/requests/current/confirm - Failed to confirm: company_id=%d, user_id=%d, error=%v",
				companyID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /companies/{id}/requests/current/confirm - Request confirmed: request_id=%d, company_id=%d, user_id=%d",
		result.ID, companyID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

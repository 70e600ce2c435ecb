package current_request

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
	msgInvalidInput     = "некорректные входные данные"
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

// Handle GET /api/v1/companies/{companyId}/requests/current
// Возвращает незавершённый запрос пользователя в компании, создавая его
// при отсутствии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/requests/current - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /companies/{id}/requests/current - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetOrCreateCurrent(r.Context(), companyID, userID)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/requests/current - Invalid input: company_id=%d, user_id=%d",
				companyID, userID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /companies/{id}/requests/current - Failed to get request: company_id=%d, user_id=%d, error=%v",
				companyID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/requests/current - Request retrieved: request_id=%d, company_id=%d, user_id=%d",
		result.ID, companyID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

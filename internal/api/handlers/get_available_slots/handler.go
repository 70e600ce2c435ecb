package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgInvalidEmployeeID  = "некорректный ID сотрудника"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidQueryParams = "некорректные параметры запроса, ожидаются from и to в RFC 3339"
	msgInvalidRange       = "некорректное окно поиска слотов"
	msgUnsupportedService = "сотрудник не оказывает эту услугу"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/available-slots
// Handle GET /api/v1/services/{serviceId}/available-slots
//
// Первый роут отдаёт слоты сотрудника (свободные интервалы как есть или,
// при ?serviceId=, нарезанные под длительность услуги). Второй - слоты
// услуги по всем оказывающим её сотрудникам, объединённые.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var employeeID *int64
	if employeeIDStr, ok := vars["employeeId"]; ok {
		parsed, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET available-slots - Invalid employee ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		employeeID = &parsed
	}

	query := r.URL.Query()
	serviceIDStr := query.Get("serviceId")
	if pathServiceID, ok := vars["serviceId"]; ok {
		serviceIDStr = pathServiceID
	}

	// Роут публичный: ID пользователя опционален и нужен только для логов
	userID, _ := middleware.GetUserID(r.Context())

	req, err := ToUseCaseRequest(
		userID,
		employeeID,
		serviceIDStr,
		query.Get("customerId"),
		query.Get("from"),
		query.Get("to"),
	)
	if err != nil {
		h.logger.Warn("GET available-slots - Failed to parse query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQueryParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidRange):
			h.logger.Warn("GET available-slots - Invalid range: from=%s, to=%s", query.Get("from"), query.Get("to"))
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAvailableSlots.ErrUnsupportedService):
			h.logger.Warn("GET available-slots - Unsupported service: employee=%v, service=%s", employeeID, serviceIDStr)
			handlers.RespondBadRequest(w, msgUnsupportedService)

		case errors.Is(err, getAvailableSlots.ErrEmployeeNotFound):
			h.logger.Warn("GET available-slots - Employee not found: employee=%v", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET available-slots - Service not found: service=%s", serviceIDStr)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQueryParams)

		default:
			h.logger.Error("GET available-slots - Failed to compute slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET available-slots - %d slots computed: employee=%v, service=%s",
		len(result.Slots), employeeID, serviceIDStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

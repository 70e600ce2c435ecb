package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPastDate           = "начало бронирования должно быть в будущем"
	msgMissingService     = "для клиентского бронирования обязательна услуга"
	msgServiceNotOffered  = "сотрудник не оказывает эту услугу"
	msgCrossOwner         = "сотрудник, услуга и клиент принадлежат разным компаниям"
	msgNoAvailability     = "интервал вне рабочих часов сотрудника"
	msgOverlap            = "интервал пересекается с существующим бронированием"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgCustomerNotFound   = "клиент не найден"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrOverlap):
			h.logger.Warn("POST /appointments - Overlap: user_id=%d, employee_id=%d", userID, req.EmployeeID)
			handlers.RespondError(w, http.StatusConflict, msgOverlap)

		case errors.Is(err, createAppointment.ErrPastDate):
			h.logger.Warn("POST /appointments - Past date: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createAppointment.ErrMissingService):
			h.logger.Warn("POST /appointments - Missing service: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgMissingService)

		case errors.Is(err, createAppointment.ErrServiceNotOffered):
			h.logger.Warn("POST /appointments - Service not offered: employee_id=%d", req.EmployeeID)
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, createAppointment.ErrCrossOwner):
			h.logger.Warn("POST /appointments - Cross-owner entities: user_id=%d, owner_id=%d", userID, req.OwnerID)
			handlers.RespondBadRequest(w, msgCrossOwner)

		case errors.Is(err, createAppointment.ErrNoAvailability):
			h.logger.Warn("POST /appointments - Outside working hours: employee_id=%d", req.EmployeeID)
			handlers.RespondError(w, http.StatusConflict, msgNoAvailability)

		case errors.Is(err, createAppointment.ErrEmployeeNotFound):
			h.logger.Warn("POST /appointments - Employee not found: employee_id=%d", req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrCustomerNotFound):
			h.logger.Warn("POST /appointments - Customer not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, user_id=%d",
		result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

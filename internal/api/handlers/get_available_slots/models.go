package get_available_slots

import (
	"strconv"
	"time"

	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Start string `json:"start"` // ISO 8601
	End   string `json:"end"`   // ISO 8601
}

// AvailableSlotsResponse HTTP ответ со списком слотов
type AvailableSlotsResponse struct {
	From  string         `json:"from"`
	To    string         `json:"to"`
	Slots []SlotResponse `json:"slots"`
}

// ToUseCaseRequest формирует запрос к use case из path и query параметров
func ToUseCaseRequest(
	userID int64,
	employeeID *int64,
	serviceIDStr string,
	customerIDStr string,
	fromStr string,
	toStr string,
) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{
		UserID:     userID,
		EmployeeID: employeeID,
	}

	if serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	if customerIDStr != "" {
		customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.CustomerID = &customerID
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return nil, err
	}
	req.From = from

	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return nil, err
	}
	req.To = to

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			Start: slot.Start.Format(time.RFC3339),
			End:   slot.End.Format(time.RFC3339),
		}
	}

	return &AvailableSlotsResponse{
		From:  resp.From.Format(time.RFC3339),
		To:    resp.To.Format(time.RFC3339),
		Slots: slots,
	}
}

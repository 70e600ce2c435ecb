package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на получение доступных слотов
// Либо EmployeeID, либо ServiceID обязателен:
//   - только EmployeeID: свободные интервалы сотрудника как есть
//   - ServiceID без EmployeeID: слоты длительности услуги по всем сотрудникам,
//     оказывающим её, объединённые и дедуплицированные
//   - оба: слоты длительности услуги для конкретного сотрудника
type Request struct {
	UserID     int64     // ID пользователя (для логирования, не влияет на результат)
	EmployeeID *int64    // ID сотрудника (опционально при указанной услуге)
	ServiceID  *int64    // ID услуги (опционально)
	CustomerID *int64    // ID клиента: его занятость тоже вычитается (опционально)
	From       time.Time // Начало окна
	To         time.Time // Конец окна (исключительно)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	From  time.Time     // Начало окна (после выравнивания на "сейчас")
	To    time.Time     // Конец окна
	Slots []domain.Slot // Слоты, отсортированные по началу
}

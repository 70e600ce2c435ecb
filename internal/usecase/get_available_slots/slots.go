package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
)

// expandSchedule разворачивает недельное расписание сотрудника в абсолютные
// слоты по каждому календарному дню окна [from, to)
// Слоты, начинающиеся раньше from, отбрасываются целиком
func expandSchedule(schedule *domain.WeeklySchedule, from, to time.Time) []domain.Slot {
	slots := make([]domain.Slot, 0)

	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for day.Before(to) {
		for _, frame := range schedule.Availability(day) {
			start, err := frame.Start.At(day)
			if err != nil {
				continue
			}
			end, err := frame.End.At(day)
			if err != nil {
				continue
			}

			// Слот целиком в прошлом относительно начала окна - пропускаем
			if start.Before(from) {
				continue
			}
			if !start.Before(to) {
				continue
			}

			slots = append(slots, domain.Slot{Start: start, End: end})
		}
		day = day.AddDate(0, 0, 1)
	}

	return slots
}

// subtractAppointments вычитает активные бронирования из списка слотов
//
// Случаи пересечения бронирования со слотом:
//   - бронирование покрывает слот целиком - слот удаляется
//   - бронирование целиком внутри слота - слот разбивается на два
//   - бронирование накрывает только левый край - начало слота сдвигается
//     на конец бронирования
//   - бронирование накрывает только правый край - конец слота сдвигается
//     на начало бронирования
//
// Нулевые фрагменты отбрасываются. Неактивные бронирования (отклонённые,
// soft-deleted) не вычитаются.
func subtractAppointments(slots []domain.Slot, appointments []*domain.Appointment) []domain.Slot {
	result := slots

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		result = subtractOne(result, appt.StartAt, appt.EndAt)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Start.Before(result[j].Start)
	})

	return result
}

// subtractOne вычитает один занятый интервал [busyStart, busyEnd) из всех слотов
func subtractOne(slots []domain.Slot, busyStart, busyEnd time.Time) []domain.Slot {
	result := make([]domain.Slot, 0, len(slots))

	for _, slot := range slots {
		// Нет пересечения - слот сохраняется как есть
		if !domain.Overlaps(slot.Start, slot.End, busyStart, busyEnd) {
			result = append(result, slot)
			continue
		}

		coversStart := !busyStart.After(slot.Start) // busyStart <= slot.Start
		coversEnd := !busyEnd.Before(slot.End)      // busyEnd >= slot.End

		switch {
		case coversStart && coversEnd:
			// Бронирование покрывает слот целиком - слот выпадает

		case !coversStart && !coversEnd:
			// Бронирование целиком внутри слота - разбиваем на два фрагмента
			left := domain.Slot{Start: slot.Start, End: busyStart}
			right := domain.Slot{Start: busyEnd, End: slot.End}
			if !left.IsZeroLength() {
				result = append(result, left)
			}
			if !right.IsZeroLength() {
				result = append(result, right)
			}

		case coversStart:
			// Накрыт левый край - усекаем слот слева
			truncated := domain.Slot{Start: busyEnd, End: slot.End}
			if !truncated.IsZeroLength() {
				result = append(result, truncated)
			}

		default:
			// Накрыт правый край - усекаем слот справа
			truncated := domain.Slot{Start: slot.Start, End: busyStart}
			if !truncated.IsZeroLength() {
				result = append(result, truncated)
			}
		}
	}

	return result
}

// breakIntoServiceSlots нарезает свободный слот на последовательные подслоты
// длительности services ровно встык, без зазоров и пересечений
// Хвост короче длительности услуги отбрасывается
func breakIntoServiceSlots(slot domain.Slot, durationMinutes int) []domain.Slot {
	duration := time.Duration(durationMinutes) * time.Minute
	if duration <= 0 {
		return []domain.Slot{}
	}

	result := make([]domain.Slot, 0)
	for start := slot.Start; !start.Add(duration).After(slot.End); start = start.Add(duration) {
		result = append(result, domain.Slot{Start: start, End: start.Add(duration)})
	}

	return result
}

// breakAllIntoServiceSlots нарезает все свободные слоты под длительность услуги
func breakAllIntoServiceSlots(slots []domain.Slot, durationMinutes int) []domain.Slot {
	result := make([]domain.Slot, 0)
	for _, slot := range slots {
		result = append(result, breakIntoServiceSlots(slot, durationMinutes)...)
	}
	return result
}

// mergeSlots объединяет слоты нескольких сотрудников, дедуплицируя по
// идентичности слота (начало, усечённое до минуты), и сортирует по времени
func mergeSlots(slotLists ...[]domain.Slot) []domain.Slot {
	seen := make(map[time.Time]struct{})
	result := make([]domain.Slot, 0)

	for _, list := range slotLists {
		for _, slot := range list {
			key := slot.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, slot)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Start.Before(result[j].Start)
	})

	return result
}

// unionAppointments объединяет списки бронирований, дедуплицируя по ID
func unionAppointments(lists ...[]*domain.Appointment) []*domain.Appointment {
	seen := make(map[int64]struct{})
	result := make([]*domain.Appointment, 0)

	for _, list := range lists {
		for _, appt := range list {
			if _, ok := seen[appt.ID]; ok {
				continue
			}
			seen[appt.ID] = struct{}{}
			result = append(result, appt)
		}
	}

	return result
}

// employeeOffers проверяет, что сотрудник оказывает услугу
func employeeOffers(employee *directory.Employee, serviceID int64) bool {
	return employee.Offers(serviceID)
}

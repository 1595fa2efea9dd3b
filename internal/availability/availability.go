package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/LCM-BookingService/internal/domain"
	"github.com/m04kA/LCM-BookingService/pkg/types"
)

// Candidate запрашиваемый слот: время начала и длительность услуги
type Candidate struct {
	StartTime       time.Time
	DurationMinutes int
}

// Result результат проверки кандидата на конфликты
type Result struct {
	Conflict        bool
	ConflictingWith []*domain.Appointment
}

// occupiedWindow вычисляет занятое окно [start, start + duration + buffer)
// Буфер добавляется только к концу окна: новая запись может начинаться
// сразу после окончания услуги+буфера предыдущей, но не раньше
func occupiedWindow(start time.Time, durationMinutes int) (time.Time, time.Time) {
	if durationMinutes <= 0 {
		durationMinutes = domain.DefaultDurationMinutes
	}
	end := start.Add(time.Duration(durationMinutes+domain.BufferMinutes) * time.Minute)
	return start, end
}

// CheckConflict проверяет кандидата против существующих записей
//
// Окна пересекаются, только если S_e < E_r И S_r < E_e (полуоткрытые
// интервалы, строгие неравенства): окно, заканчивающееся ровно там, где
// начинается другое, конфликтом НЕ считается.
//
// Учитываются только записи со статусом CONFIRMED - вызывающая сторона
// обычно фильтрует по статусу заранее, но движок перепроверяет сам.
// excludeID исключает собственную запись при переносе.
//
// Примеры:
//   - Запись 10:00, 45 мин -> занято [10:00, 11:00). Кандидат на 11:00
//     принимается, кандидат на 10:59 отклоняется.
//   - Запись без длительности считается занимающей 45+15=60 минут.
func CheckConflict(candidate Candidate, existing []*domain.Appointment, excludeID *int64) Result {
	requestedStart, requestedEnd := occupiedWindow(candidate.StartTime, candidate.DurationMinutes)

	result := Result{ConflictingWith: make([]*domain.Appointment, 0)}

	for _, appt := range existing {
		// Исключаем собственную запись при переносе
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}

		// Слот блокируют только подтвержденные записи
		if !appt.IsConfirmed() {
			continue
		}

		existingStart, existingEnd := occupiedWindow(appt.StartTime, appt.DurationMinutes)

		if existingStart.Before(requestedEnd) && requestedStart.Before(existingEnd) {
			result.Conflict = true
			result.ConflictingWith = append(result.ConflictingWith, appt)
		}
	}

	return result
}

// IsClosedDay проверяет, что дата приходится на выходной день салона
// Проверка выполняется до проверки конфликтов и не зависит от неё
func IsClosedDay(t time.Time) bool {
	return t.Weekday() == domain.ClosedWeekday
}

// Slot слот сетки доступности на день
type Slot struct {
	StartTime types.TimeString
	Booked    bool
}

// DaySlots генерирует полный каталог слотов рабочего дня:
// с 08:00 каждые 15 минут до 19:00 включительно
func DaySlots() []types.TimeString {
	slots := make([]types.TimeString, 0)

	for hour := domain.OpenHour; hour <= domain.LastSlotHour; hour++ {
		for minute := 0; minute < 60; minute += domain.SlotStepMinutes {
			if hour == domain.LastSlotHour && minute > 0 {
				break
			}
			slots = append(slots, types.TimeString(fmt.Sprintf("%02d:%02d", hour, minute)))
		}
	}

	return slots
}

// ComputeDayAvailability строит сетку доступности на день
//
// Каждый слот сетки проверяется как кандидат с длительностью выбранной
// услуги (durationMinutes, 0 = длительность по умолчанию) по тому же
// правилу пересечения, что и CheckConflict - сетка и серверная проверка
// не могут разойтись. excludeID используется в сценарии переноса, чтобы
// собственная запись не блокировала сетку.
//
// Функция чистая: одинаковые входы дают одинаковый результат
func ComputeDayAvailability(date time.Time, durationMinutes int, existing []*domain.Appointment, excludeID *int64) []Slot {
	if durationMinutes <= 0 {
		durationMinutes = domain.DefaultDurationMinutes
	}

	daySlots := DaySlots()
	result := make([]Slot, 0, len(daySlots))

	for _, slotTime := range daySlots {
		slotStart, err := slotTime.At(date)
		if err != nil {
			// Слоты генерируются самим движком, сюда попасть нельзя
			continue
		}

		check := CheckConflict(Candidate{
			StartTime:       slotStart,
			DurationMinutes: durationMinutes,
		}, existing, excludeID)

		result = append(result, Slot{
			StartTime: slotTime,
			Booked:    check.Conflict,
		})
	}

	return result
}

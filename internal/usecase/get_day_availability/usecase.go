package get_day_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/LCM-BookingService/internal/availability"
	"github.com/m04kA/LCM-BookingService/internal/domain"
)

// UseCase use case построения сетки доступности на день
type UseCase struct {
	apptRepo AppointmentRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(apptRepo AppointmentRepository, logger Logger) *UseCase {
	return &UseCase{
		apptRepo: apptRepo,
		logger:   logger,
	}
}

// Execute строит сетку доступности на день
// Сетка считается тем же движком, что и серверная проверка при создании
// записи, поэтому клиент и сервер не могут разойтись в оценке слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	uc.logger.Info("GetDayAvailability: date=%s, service=%s/%s",
		req.Date.Format(domain.DateFormat), req.ServiceID, req.SubcategoryID)

	resp := &Response{
		Date:  req.Date.Format(domain.DateFormat),
		Slots: make([]SlotResponse, 0),
	}

	// В выходной день все слоты заняты, в базу не ходим
	if availability.IsClosedDay(req.Date) {
		resp.Closed = true
		for _, slot := range availability.DaySlots() {
			resp.Slots = append(resp.Slots, SlotResponse{Time: slot.String(), Booked: true})
		}
		return resp, nil
	}

	// Длительность выбранной услуги; без услуги - дефолтная
	duration := domain.DefaultDurationMinutes
	if req.ServiceID != "" {
		resolved, err := domain.ResolveService(req.ServiceID, req.SubcategoryID)
		if err != nil {
			uc.logger.Warn("GetDayAvailability: service resolution failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrUnknownService, err)
		}
		duration = resolved.DurationMinutes
	}

	// Читаем подтвержденные записи дня
	confirmed := domain.StatusConfirmed
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	existing, err := uc.apptRepo.ListWithFilter(ctx, domain.AppointmentsFilter{
		Status:    &confirmed,
		StartFrom: &dayStart,
		StartTo:   &dayEnd,
	})
	if err != nil {
		uc.logger.Error("GetDayAvailability: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	slots := availability.ComputeDayAvailability(dayStart, duration, existing, req.ExcludeID)
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			Time:   slot.StartTime.String(),
			Booked: slot.Booked,
		})
	}

	uc.logger.Info("GetDayAvailability: computed %d slots for %s", len(resp.Slots), resp.Date)
	return resp, nil
}

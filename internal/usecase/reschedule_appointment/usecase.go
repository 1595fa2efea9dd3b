package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/LCM-BookingService/internal/availability"
	"github.com/m04kA/LCM-BookingService/internal/domain"
	apptRepo "github.com/m04kA/LCM-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/LCM-BookingService/pkg/ptr"
)

// conflictWindowMinutes ширина окна выборки существующих записей вокруг
// нового времени (см. create_appointment)
const conflictWindowMinutes = 120

// UseCase use case переноса записи на другое время
type UseCase struct {
	apptRepo  AppointmentRepository
	notifier  Notifier
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:  apptRepo,
		notifier:  notifier,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет use case переноса записи
// Проверка доступности нового слота исключает собственную запись -
// перенос в пределах своего же окна всегда допустим
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%d, newStart=%s",
		req.AppointmentID, req.NewStartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointment id must be positive", ErrInvalidInput)
	}
	if req.NewStartTime.IsZero() {
		return nil, fmt.Errorf("%w: newStartTime is required", ErrInvalidInput)
	}

	// 2. Выходной день проверяется до любых проверок конфликтов
	if availability.IsClosedDay(req.NewStartTime) {
		uc.logger.Warn("RescheduleAppointment: requested day %s is a closed day",
			req.NewStartTime.Format(domain.DateFormat))
		return nil, ErrClosedDay
	}

	var result *domain.Appointment

	// 3. Чтение, проверка и обновление в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем запись
		appt, err := uc.apptRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if appt.IsCancelled() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d is cancelled", req.AppointmentID)
			return ErrCancelled
		}

		// 3.2. Читаем подтвержденные записи в окне вокруг нового времени
		// с блокировкой строк
		confirmed := domain.StatusConfirmed
		windowStart := req.NewStartTime.Add(-conflictWindowMinutes * time.Minute)
		windowEnd := req.NewStartTime.Add(conflictWindowMinutes * time.Minute)

		existing, err := uc.apptRepo.ListWithFilter(txCtx, domain.AppointmentsFilter{
			Status:    &confirmed,
			StartFrom: &windowStart,
			StartTo:   &windowEnd,
		})
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
		}

		// 3.3. Проверяем новый слот, исключая собственную запись
		check := availability.CheckConflict(availability.Candidate{
			StartTime:       req.NewStartTime,
			DurationMinutes: appt.EffectiveDuration(),
		}, existing, ptr.Ptr(appt.ID))

		if check.Conflict {
			uc.logger.Warn("RescheduleAppointment: slot %s conflicts with %d appointment(s)",
				req.NewStartTime.Format(time.RFC3339), len(check.ConflictingWith))
			return ErrSlotConflict
		}

		// 3.4. Обновляем время начала
		updatedAt, err := uc.apptRepo.UpdateStartTime(txCtx, appt.ID, req.NewStartTime)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to update appointment id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		appt.StartTime = req.NewStartTime
		appt.UpdatedAt = updatedAt
		result = appt
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully rescheduled appointment id=%d", result.ID)

	// Уведомление в фоне: ошибки отправки не влияют на результат
	go uc.notifier.AppointmentRescheduled(result)

	return toResponse(result), nil
}

package appointments

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/LCM-BookingService/internal/domain"
	apptRepo "github.com/m04kA/LCM-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/LCM-BookingService/internal/service/appointments/models"
)

// Service сервис для работы с записями на прием
// Создание и перенос вынесены в отдельные use case'ы - они требуют
// проверки доступности внутри сериализуемой транзакции. Остальные
// операции чтения/отмены/удаления живут здесь
type Service struct {
	apptRepo AppointmentRepository
	notifier Notifier
	logger   Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(apptRepo AppointmentRepository, notifier Notifier, logger Logger) *Service {
	return &Service{
		apptRepo: apptRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// List получает записи с фильтрацией по контактам клиента и статусу
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments, email=%v, phone=%v, status=%v",
		req.Email != nil, req.Phone != nil, req.Status)

	filter := domain.AppointmentsFilter{
		CustomerEmail: req.Email,
		CustomerPhone: req.Phone,
	}

	if req.Status != nil {
		status, err := toDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	appts, err := s.apptRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments", len(appts))
	return models.FromDomainAppointmentList(appts), nil
}

// Lookup ищет предстоящие записи клиента по email или телефону
// Хотя бы один контакт обязателен; отмененные записи не возвращаются
func (s *Service) Lookup(ctx context.Context, req *models.LookupRequest) (*models.AppointmentListResponse, error) {
	hasEmail := req.Email != nil && *req.Email != ""
	hasPhone := req.Phone != nil && *req.Phone != ""

	if !hasEmail && !hasPhone {
		s.logger.Warn("Lookup: neither email nor phone provided")
		return nil, fmt.Errorf("%w: email or phone required", ErrInvalidInput)
	}

	s.logger.Info("Lookup: searching appointments by contacts")

	now := time.Now()
	cancelled := domain.StatusCancelled

	// Поиск по каждому контакту отдельно - совпадение любого из них
	// считается тем же клиентом
	seen := make(map[int64]bool)
	merged := make([]*domain.Appointment, 0)

	if hasEmail {
		appts, err := s.apptRepo.ListWithFilter(ctx, domain.AppointmentsFilter{
			CustomerEmail: req.Email,
			ExcludeStatus: &cancelled,
			StartAfter:    &now,
		})
		if err != nil {
			s.logger.Error("Lookup: repository error (email): %v", err)
			return nil, fmt.Errorf("%w: Lookup - repository error: %v", ErrInternal, err)
		}
		for _, appt := range appts {
			if !seen[appt.ID] {
				seen[appt.ID] = true
				merged = append(merged, appt)
			}
		}
	}

	if hasPhone {
		appts, err := s.apptRepo.ListWithFilter(ctx, domain.AppointmentsFilter{
			CustomerPhone: req.Phone,
			ExcludeStatus: &cancelled,
			StartAfter:    &now,
		})
		if err != nil {
			s.logger.Error("Lookup: repository error (phone): %v", err)
			return nil, fmt.Errorf("%w: Lookup - repository error: %v", ErrInternal, err)
		}
		for _, appt := range appts {
			if !seen[appt.ID] {
				seen[appt.ID] = true
				merged = append(merged, appt)
			}
		}
	}

	sortByStartTime(merged)

	s.logger.Info("Lookup: found %d appointments", len(merged))
	return models.FromDomainAppointmentList(merged), nil
}

// Cancel отменяет запись (soft-отмена со сменой статуса)
// Отмененная запись освобождает слот и сохраняется в истории
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if appt.IsCancelled() {
		s.logger.Warn("Cancel: appointment id=%d already cancelled", id)
		return ErrAlreadyCancelled
	}

	if err := s.apptRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: failed to update status for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)

	// Уведомление в фоне: ошибки отправки не влияют на результат отмены
	go s.notifier.AppointmentCancelled(appt)

	return nil
}

// Delete физически удаляет запись (админка)
// Клиент получает уведомление об отмене, как при обычной отмене
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting appointment id=%d", id)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.apptRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted appointment id=%d", id)

	// Удаленные подтвержденные записи уведомляются об отмене
	if appt.IsConfirmed() {
		go s.notifier.AppointmentCancelled(appt)
	}

	return nil
}

// CalendarEvents возвращает записи периода как события календаря
// Отмененные записи не включаются
func (s *Service) CalendarEvents(ctx context.Context, start, end time.Time) (*models.CalendarResponse, error) {
	s.logger.Info("CalendarEvents: fetching events for %s - %s",
		start.Format(domain.DateFormat), end.Format(domain.DateFormat))

	cancelled := domain.StatusCancelled
	filter := domain.AppointmentsFilter{
		ExcludeStatus: &cancelled,
		StartFrom:     &start,
		StartTo:       &end,
	}

	appts, err := s.apptRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("CalendarEvents: repository error: %v", err)
		return nil, fmt.Errorf("%w: CalendarEvents - repository error: %v", ErrInternal, err)
	}

	resp := &models.CalendarResponse{Events: make([]models.CalendarEventResponse, 0, len(appts))}
	for _, appt := range appts {
		resp.Events = append(resp.Events, models.FromDomainCalendarEvent(appt))
	}

	s.logger.Info("CalendarEvents: fetched %d events", len(resp.Events))
	return resp, nil
}

// toDomainStatus валидирует и конвертирует статус из строки
func toDomainStatus(status string) (domain.AppointmentStatus, error) {
	switch domain.AppointmentStatus(status) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled:
		return domain.AppointmentStatus(status), nil
	}
	return "", fmt.Errorf("unknown status %q", status)
}

// sortByStartTime сортирует записи по времени начала (по возрастанию)
func sortByStartTime(appts []*domain.Appointment) {
	sort.Slice(appts, func(i, j int) bool {
		return appts[i].StartTime.Before(appts[j].StartTime)
	})
}

package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/LCM-BookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// Notifier интерфейс отправки напоминаний
type Notifier interface {
	AppointmentReminder(appt *domain.Appointment)
}

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service планировщик напоминаний о предстоящих записях
// По расписанию выбирает подтвержденные записи в окне [now+24h, now+25h)
// и рассылает напоминания. Окно шириной в час при ежедневном запуске
// не дает дубликатов: запись попадает в окно ровно один раз
type Service struct {
	apptRepo AppointmentRepository
	notifier Notifier
	cron     *cron.Cron
	spec     string
	logger   Logger
}

// NewService создает новый экземпляр планировщика напоминаний
func NewService(apptRepo AppointmentRepository, notifier Notifier, spec string, logger Logger) *Service {
	return &Service{
		apptRepo: apptRepo,
		notifier: notifier,
		cron:     cron.New(),
		spec:     spec,
		logger:   logger,
	}
}

// Start запускает планировщик
func (s *Service) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runOnce); err != nil {
		return fmt.Errorf("reminders: invalid cron spec %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.Info("reminders: scheduler started with spec %q", s.spec)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего прогона
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("reminders: scheduler stopped")
}

// runOnce выполняет один прогон рассылки напоминаний
func (s *Service) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now()
	windowStart := now.Add(24 * time.Hour)
	windowEnd := now.Add(25 * time.Hour)

	confirmed := domain.StatusConfirmed
	appts, err := s.apptRepo.ListWithFilter(ctx, domain.AppointmentsFilter{
		Status:    &confirmed,
		StartFrom: &windowStart,
		StartTo:   &windowEnd,
	})
	if err != nil {
		s.logger.Error("reminders: failed to fetch upcoming appointments: %v", err)
		return
	}

	s.logger.Info("reminders: sending %d reminders for window %s - %s",
		len(appts), windowStart.Format(time.RFC3339), windowEnd.Format(time.RFC3339))

	for _, appt := range appts {
		s.notifier.AppointmentReminder(appt)
	}
}

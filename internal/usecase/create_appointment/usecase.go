package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/LCM-BookingService/internal/availability"
	"github.com/m04kA/LCM-BookingService/internal/domain"
	customerRepo "github.com/m04kA/LCM-BookingService/internal/infra/storage/customer"
)

// conflictWindowMinutes ширина окна выборки существующих записей вокруг
// кандидата. Максимальное занятое окно услуги - 90+15 минут, так что
// двух часов в каждую сторону достаточно, чтобы не упустить конфликт
const conflictWindowMinutes = 120

// UseCase use case создания записи на прием
type UseCase struct {
	apptRepo     AppointmentRepository
	customerRepo CustomerRepository
	notifier     Notifier
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	customerRepo CustomerRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
// Проверка доступности и вставка выполняются в сериализуемой транзакции
// с блокировкой окна (FOR UPDATE) - два конкурентных запроса на один
// слот не могут пройти проверку одновременно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: service=%s/%s, start=%s",
		req.ServiceID, req.SubcategoryID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Разрешаем услугу по каталогу - название, длительность и цена
	// денормализуются на запись
	resolved, err := domain.ResolveService(req.ServiceID, req.SubcategoryID)
	if err != nil {
		uc.logger.Warn("CreateAppointment: service resolution failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnknownService, err)
	}

	// 3. Выходной день проверяется до любых проверок конфликтов
	if availability.IsClosedDay(req.StartTime) {
		uc.logger.Warn("CreateAppointment: requested day %s is a closed day",
			req.StartTime.Format(domain.DateFormat))
		return nil, ErrClosedDay
	}

	// 4. Находим или создаем клиента по контактам
	customer, err := uc.findOrCreateCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	var result *domain.Appointment

	// 5. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Читаем подтвержденные записи в окне вокруг кандидата
		// с блокировкой строк
		existing, err := uc.listConflictWindow(txCtx, req.StartTime)
		if err != nil {
			return err
		}

		// 5.2. Проверяем кандидата на конфликты
		check := availability.CheckConflict(availability.Candidate{
			StartTime:       req.StartTime,
			DurationMinutes: resolved.DurationMinutes,
		}, existing, nil)

		if check.Conflict {
			uc.logger.Warn("CreateAppointment: slot %s conflicts with %d appointment(s)",
				req.StartTime.Format(time.RFC3339), len(check.ConflictingWith))
			return ErrSlotConflict
		}

		// 5.3. Создаем подтвержденную запись
		appt := &domain.Appointment{
			CustomerID:      customer.ID,
			StartTime:       req.StartTime,
			DurationMinutes: resolved.DurationMinutes,
			ServiceName:     resolved.Name,
			Extras:          req.Extras,
			Status:          domain.StatusConfirmed,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// Уведомление в фоне: ошибки отправки не влияют на результат
	result.Customer = customer
	go uc.notifier.AppointmentCreated(result)

	return toResponse(result), nil
}

// findOrCreateCustomer ищет клиента по email или телефону, создает нового
// при отсутствии совпадений
func (uc *UseCase) findOrCreateCustomer(ctx context.Context, req *Request) (*domain.Customer, error) {
	customer, err := uc.customerRepo.FindByEmailOrPhone(ctx, req.Email, req.Phone)
	if err == nil {
		uc.logger.Info("CreateAppointment: matched existing customer id=%d", customer.ID)
		return customer, nil
	}

	if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		uc.logger.Error("CreateAppointment: customer lookup failed: %v", err)
		return nil, fmt.Errorf("%w: customer lookup failed: %v", ErrInternal, err)
	}

	created, err := uc.customerRepo.Create(ctx, &domain.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to create customer: %v", err)
		return nil, fmt.Errorf("%w: failed to create customer: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: created new customer id=%d", created.ID)
	return created, nil
}

// listConflictWindow читает подтвержденные записи в окне вокруг кандидата
func (uc *UseCase) listConflictWindow(ctx context.Context, start time.Time) ([]*domain.Appointment, error) {
	confirmed := domain.StatusConfirmed
	windowStart := start.Add(-conflictWindowMinutes * time.Minute)
	windowEnd := start.Add(conflictWindowMinutes * time.Minute)

	existing, err := uc.apptRepo.ListWithFilter(ctx, domain.AppointmentsFilter{
		Status:    &confirmed,
		StartFrom: &windowStart,
		StartTo:   &windowEnd,
	})
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
	}

	return existing, nil
}

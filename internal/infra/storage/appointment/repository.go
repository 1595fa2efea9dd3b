package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/LCM-BookingService/internal/domain"
	"github.com/m04kA/LCM-BookingService/pkg/dbmetrics"
	"github.com/m04kA/LCM-BookingService/pkg/psqlbuilder"
)

// Колонки записи вместе с данными клиента (LEFT JOIN customers)
var selectColumns = []string{
	"a.id",
	"a.customer_id",
	"a.start_time",
	"a.duration_minutes",
	"a.service_name",
	"a.extras",
	"a.status",
	"a.created_at",
	"a.updated_at",
	"c.id",
	"c.name",
	"c.email",
	"c.phone",
	"c.created_at",
}

// Repository репозиторий для работы с записями на прием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция, использует её - создание
// с проверкой доступности слота должно выполняться в одной транзакции с
// чтением конфликтующего набора
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"customer_id",
			"start_time",
			"duration_minutes",
			"service_name",
			"extras",
			"status",
		).
		Values(
			appt.CustomerID,
			appt.StartTime,
			appt.DurationMinutes,
			appt.ServiceName,
			appt.Extras,
			appt.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID вместе с данными клиента
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("appointments a").
		LeftJoin("customers c ON c.id = a.customer_id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	appt, err := scanAppointmentRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appt, nil
}

// ListWithFilter получает записи с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Статусу (Status / ExcludeStatus)
// - Временному окну (StartFrom включительно, StartTo исключительно)
// - Клиенту (CustomerID, CustomerEmail, CustomerPhone)
//
// Если вызов происходит внутри транзакции и задано временное окно,
// добавляется FOR UPDATE OF a - блокировка строк окна на время проверки
// конфликтов при создании/переносе записи
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From("appointments a").
		LeftJoin("customers c ON c.id = a.customer_id")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.status": *filter.Status})
	}
	if filter.ExcludeStatus != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"a.status": *filter.ExcludeStatus})
	}
	if filter.StartFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"a.start_time": *filter.StartFrom})
	}
	if filter.StartAfter != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"a.start_time": *filter.StartAfter})
	}
	if filter.StartTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"a.start_time": *filter.StartTo})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.customer_id": *filter.CustomerID})
	}
	if filter.CustomerEmail != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"c.email": *filter.CustomerEmail})
	}
	if filter.CustomerPhone != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"c.phone": *filter.CustomerPhone})
	}

	selectBuilder = selectBuilder.OrderBy("a.start_time ASC")

	// Блокировка окна при проверке конфликтов внутри транзакции
	if dbmetrics.IsInTransaction(ctx) && filter.StartFrom != nil && filter.StartTo != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateStartTime обновляет время начала записи (перенос)
// Возвращает новое значение updated_at, выставленное базой
func (r *Repository) UpdateStartTime(ctx context.Context, id int64, startTime time.Time) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("start_time", startTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: UpdateStartTime - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, ErrAppointmentNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: UpdateStartTime - execute update: %w", ErrExecQuery, err)
	}

	return updatedAt, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateStatus", query, args)
}

// Delete удаляет запись (физическое удаление)
// Используется потоком удаления из админки; отмена через UpdateStatus
// сохраняет историю
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Delete", query, args)
}

// execExpectingRow выполняет запрос и проверяет, что затронута хотя бы одна строка
// Ошибка драйвера оборачивается через %w - вызовы внутри сериализуемой
// транзакции полагаются на цепочку при проверке SQLSTATE 40001
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointmentRow сканирует одну строку записи с данными клиента
func scanAppointmentRow(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	var customerID sql.NullInt64
	var customerName sql.NullString
	var customerEmail, customerPhone sql.NullString
	var customerCreatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.CustomerID,
		&appt.StartTime,
		&appt.DurationMinutes,
		&appt.ServiceName,
		&appt.Extras,
		&appt.Status,
		&createdAt,
		&updatedAt,
		&customerID,
		&customerName,
		&customerEmail,
		&customerPhone,
		&customerCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	if customerID.Valid {
		customer := &domain.Customer{
			ID:        customerID.Int64,
			Name:      customerName.String,
			CreatedAt: customerCreatedAt.Time,
		}
		if customerEmail.Valid {
			customer.Email = &customerEmail.String
		}
		if customerPhone.Valid {
			customer.Phone = &customerPhone.String
		}
		appt.Customer = customer
	}

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointmentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

package customer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/LCM-BookingService/internal/domain"
	"github.com/m04kA/LCM-BookingService/pkg/dbmetrics"
	"github.com/m04kA/LCM-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с клиентами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового клиента
func (r *Repository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("name", "email", "phone").
		Values(c.Name, c.Email, c.Phone).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time

	return c, nil
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "phone", "created_at").
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// FindByEmailOrPhone ищет клиента по email или телефону
// Совпадение хотя бы одного контакта считается тем же клиентом; при
// нескольких совпадениях берется самый ранний (минимальный id)
func (r *Repository) FindByEmailOrPhone(ctx context.Context, email, phone *string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	conditions := squirrel.Or{}
	if email != nil && *email != "" {
		conditions = append(conditions, squirrel.Eq{"email": *email})
	}
	if phone != nil && *phone != "" {
		conditions = append(conditions, squirrel.Eq{"phone": *phone})
	}

	if len(conditions) == 0 {
		return nil, ErrCustomerNotFound
	}

	query, args, err := psqlbuilder.Select("id", "name", "email", "phone", "created_at").
		From("customers").
		Where(conditions).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByEmailOrPhone - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "FindByEmailOrPhone")
}

func (r *Repository) scanOne(row *sql.Row, op string) (*domain.Customer, error) {
	var c domain.Customer
	var email, phone sql.NullString
	var createdAt sql.NullTime

	err := row.Scan(&c.ID, &c.Name, &email, &phone, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan customer: %w", ErrExecQuery, op, err)
	}

	if email.Valid {
		c.Email = &email.String
	}
	if phone.Valid {
		c.Phone = &phone.String
	}
	c.CreatedAt = createdAt.Time

	return &c, nil
}

package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LCM-BookingService/internal/domain"
	customerRepo "github.com/m04kA/LCM-BookingService/internal/infra/storage/customer"
	"github.com/m04kA/LCM-BookingService/pkg/ptr"
)

type mockApptRepo struct {
	existing []*domain.Appointment
	created  *domain.Appointment
	nextID   int64
}

func (m *mockApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	m.nextID++
	appt.ID = m.nextID
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	m.created = appt
	return appt, nil
}

func (m *mockApptRepo) ListWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return m.existing, nil
}

type mockCustomerRepo struct {
	found   *domain.Customer
	created *domain.Customer
}

func (m *mockCustomerRepo) FindByEmailOrPhone(_ context.Context, _, _ *string) (*domain.Customer, error) {
	if m.found == nil {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return m.found, nil
}

func (m *mockCustomerRepo) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	c.ID = 42
	m.created = c
	return c, nil
}

type mockNotifier struct {
	created chan *domain.Appointment
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{created: make(chan *domain.Appointment, 1)}
}

func (m *mockNotifier) AppointmentCreated(appt *domain.Appointment) {
	m.created <- appt
}

type mockTxManager struct{}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(apptRepo *mockApptRepo, custRepo *mockCustomerRepo, notifier *mockNotifier) *UseCase {
	return NewUseCase(apptRepo, custRepo, notifier, &mockTxManager{}, nopLogger{})
}

func validRequest(start time.Time) *Request {
	return &Request{
		Name:      "Anna Schmidt",
		Email:     ptr.Ptr("anna@example.com"),
		ServiceID: "neumodellage",
		StartTime: start,
	}
}

// 2024-06-10 - понедельник
func mondayAt(hour, minute int) time.Time {
	return time.Date(2024, 6, 10, hour, minute, 0, 0, time.UTC)
}

func TestExecute_Success(t *testing.T) {
	apptRepo := &mockApptRepo{}
	custRepo := &mockCustomerRepo{}
	notifier := newMockNotifier()
	uc := newTestUseCase(apptRepo, custRepo, notifier)

	resp, err := uc.Execute(context.Background(), validRequest(mondayAt(10, 0)))

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Neumodellage inkl. French Weiß oder Farbe", resp.ServiceName)
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, int64(42), resp.CustomerID)

	// Новый клиент создан по контактам из запроса
	require.NotNil(t, custRepo.created)
	assert.Equal(t, "Anna Schmidt", custRepo.created.Name)

	// Уведомление отправлено в фоне
	select {
	case appt := <-notifier.created:
		assert.Equal(t, resp.ID, appt.ID)
	case <-time.After(time.Second):
		t.Fatal("expected creation notification")
	}
}

func TestExecute_SubcategoryResolution(t *testing.T) {
	apptRepo := &mockApptRepo{}
	uc := newTestUseCase(apptRepo, &mockCustomerRepo{}, newMockNotifier())

	req := validRequest(mondayAt(10, 0))
	req.ServiceID = "auffuellen"
	req.SubcategoryID = "auffuellen-natur"

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "Auffüllen - Natur", resp.ServiceName)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_ClosedDay(t *testing.T) {
	apptRepo := &mockApptRepo{}
	uc := newTestUseCase(apptRepo, &mockCustomerRepo{}, newMockNotifier())

	// 2024-06-09 - воскресенье
	sunday := time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), validRequest(sunday))

	assert.ErrorIs(t, err, ErrClosedDay)
	assert.Nil(t, apptRepo.created)
}

func TestExecute_SlotConflict(t *testing.T) {
	// Существующая запись 10:00 на 60 минут занимает [10:00, 11:15)
	apptRepo := &mockApptRepo{
		existing: []*domain.Appointment{{
			ID:              1,
			StartTime:       mondayAt(10, 0),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		}},
	}
	uc := newTestUseCase(apptRepo, &mockCustomerRepo{}, newMockNotifier())

	_, err := uc.Execute(context.Background(), validRequest(mondayAt(11, 0)))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Слот сразу после занятого окна свободен
	resp, err := uc.Execute(context.Background(), validRequest(mondayAt(11, 15)))
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestExecute_ExistingCustomerReused(t *testing.T) {
	custRepo := &mockCustomerRepo{
		found: &domain.Customer{ID: 7, Name: "Anna Schmidt"},
	}
	uc := newTestUseCase(&mockApptRepo{}, custRepo, newMockNotifier())

	resp, err := uc.Execute(context.Background(), validRequest(mondayAt(10, 0)))

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.CustomerID)
	assert.Nil(t, custRepo.created)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&mockApptRepo{}, &mockCustomerRepo{}, newMockNotifier())

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing name", mutate: func(r *Request) { r.Name = "" }},
		{name: "missing contacts", mutate: func(r *Request) { r.Email = nil; r.Phone = nil }},
		{name: "missing service", mutate: func(r *Request) { r.ServiceID = "" }},
		{name: "missing start time", mutate: func(r *Request) { r.StartTime = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(mondayAt(10, 0))
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_UnknownService(t *testing.T) {
	uc := newTestUseCase(&mockApptRepo{}, &mockCustomerRepo{}, newMockNotifier())

	req := validRequest(mondayAt(10, 0))
	req.ServiceID = "nonexistent"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestExecute_SubcategoryRequired(t *testing.T) {
	uc := newTestUseCase(&mockApptRepo{}, &mockCustomerRepo{}, newMockNotifier())

	req := validRequest(mondayAt(10, 0))
	req.ServiceID = "auffuellen" // услуга с подкатегориями, подкатегория не выбрана

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownService)
}

package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LCM-BookingService/internal/domain"
	apptRepo "github.com/m04kA/LCM-BookingService/internal/infra/storage/appointment"
)

type mockApptRepo struct {
	appointments map[int64]*domain.Appointment
	updated      *time.Time
}

func newMockApptRepo(appts ...*domain.Appointment) *mockApptRepo {
	m := &mockApptRepo{appointments: make(map[int64]*domain.Appointment)}
	for _, appt := range appts {
		m.appointments[appt.ID] = appt
	}
	return m
}

func (m *mockApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := m.appointments[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (m *mockApptRepo) ListWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0, len(m.appointments))
	for _, appt := range m.appointments {
		out = append(out, appt)
	}
	return out, nil
}

// Фиксированное значение updated_at, которое "выставила бы" база
var dbUpdatedAt = time.Date(2024, 6, 5, 9, 30, 0, 0, time.UTC)

func (m *mockApptRepo) UpdateStartTime(_ context.Context, id int64, startTime time.Time) (time.Time, error) {
	appt, ok := m.appointments[id]
	if !ok {
		return time.Time{}, apptRepo.ErrAppointmentNotFound
	}
	appt.StartTime = startTime
	m.updated = &startTime
	return dbUpdatedAt, nil
}

type mockNotifier struct {
	rescheduled chan *domain.Appointment
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{rescheduled: make(chan *domain.Appointment, 1)}
}

func (m *mockNotifier) AppointmentRescheduled(appt *domain.Appointment) {
	m.rescheduled <- appt
}

type mockTxManager struct{}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2024-06-10 - понедельник
func mondayAt(hour, minute int) time.Time {
	return time.Date(2024, 6, 10, hour, minute, 0, 0, time.UTC)
}

func confirmed(id int64, start time.Time, duration int) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		StartTime:       start,
		DurationMinutes: duration,
		ServiceName:     "Maniküre - mit klarlack/Nagellack",
		Status:          domain.StatusConfirmed,
	}
}

func TestExecute_Success(t *testing.T) {
	repo := newMockApptRepo(confirmed(1, mondayAt(10, 0), 45))
	notifier := newMockNotifier()
	uc := NewUseCase(repo, notifier, &mockTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewStartTime:  mondayAt(14, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, mondayAt(14, 0), resp.StartTime)
	require.NotNil(t, repo.updated)
	assert.Equal(t, mondayAt(14, 0), *repo.updated)

	// В ответе updated_at из базы, а не значение до обновления
	assert.Equal(t, dbUpdatedAt, resp.UpdatedAt)

	select {
	case appt := <-notifier.rescheduled:
		assert.Equal(t, int64(1), appt.ID)
	case <-time.After(time.Second):
		t.Fatal("expected reschedule notification")
	}
}

func TestExecute_SelfExclusion(t *testing.T) {
	// Перенос на свое же время не конфликтует с самим собой
	repo := newMockApptRepo(confirmed(1, mondayAt(10, 0), 45))
	uc := NewUseCase(repo, newMockNotifier(), &mockTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewStartTime:  mondayAt(10, 15),
	})

	require.NoError(t, err)
	assert.Equal(t, mondayAt(10, 15), resp.StartTime)
}

func TestExecute_SlotConflict(t *testing.T) {
	// Чужая запись 14:00 на 60 минут занимает [14:00, 15:15)
	repo := newMockApptRepo(
		confirmed(1, mondayAt(10, 0), 45),
		confirmed(2, mondayAt(14, 0), 60),
	)
	uc := NewUseCase(repo, newMockNotifier(), &mockTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewStartTime:  mondayAt(14, 30),
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, repo.updated)
}

func TestExecute_ClosedDay(t *testing.T) {
	repo := newMockApptRepo(confirmed(1, mondayAt(10, 0), 45))
	uc := NewUseCase(repo, newMockNotifier(), &mockTxManager{}, nopLogger{})

	// 2024-06-16 - воскресенье
	sunday := time.Date(2024, 6, 16, 10, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewStartTime:  sunday,
	})

	assert.ErrorIs(t, err, ErrClosedDay)
}

func TestExecute_NotFound(t *testing.T) {
	uc := NewUseCase(newMockApptRepo(), newMockNotifier(), &mockTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 99,
		NewStartTime:  mondayAt(10, 0),
	})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_CancelledAppointment(t *testing.T) {
	appt := confirmed(1, mondayAt(10, 0), 45)
	appt.Status = domain.StatusCancelled
	uc := NewUseCase(newMockApptRepo(appt), newMockNotifier(), &mockTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewStartTime:  mondayAt(12, 0),
	})

	assert.ErrorIs(t, err, ErrCancelled)
}

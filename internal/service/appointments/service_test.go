package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LCM-BookingService/internal/domain"
	apptRepo "github.com/m04kA/LCM-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/LCM-BookingService/internal/service/appointments/models"
	"github.com/m04kA/LCM-BookingService/pkg/ptr"
)

type mockApptRepo struct {
	byID    map[int64]*domain.Appointment
	byEmail []*domain.Appointment
	byPhone []*domain.Appointment
	filters []domain.AppointmentsFilter
	deleted []int64
}

func newMockApptRepo() *mockApptRepo {
	return &mockApptRepo{byID: make(map[int64]*domain.Appointment)}
}

func (m *mockApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := m.byID[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (m *mockApptRepo) ListWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	m.filters = append(m.filters, filter)
	if filter.CustomerEmail != nil {
		return m.byEmail, nil
	}
	if filter.CustomerPhone != nil {
		return m.byPhone, nil
	}
	return nil, nil
}

func (m *mockApptRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	appt, ok := m.byID[id]
	if !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	return nil
}

func (m *mockApptRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockNotifier struct {
	cancelled chan *domain.Appointment
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{cancelled: make(chan *domain.Appointment, 1)}
}

func (m *mockNotifier) AppointmentCancelled(appt *domain.Appointment) {
	m.cancelled <- appt
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmedAt(id int64, start time.Time) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		StartTime:       start,
		DurationMinutes: 45,
		ServiceName:     "Maniküre - mit klarlack/Nagellack",
		Status:          domain.StatusConfirmed,
	}
}

func TestLookup_UpcomingNonCancelledFilter(t *testing.T) {
	repo := newMockApptRepo()
	svc := NewService(repo, newMockNotifier(), nopLogger{})

	_, err := svc.Lookup(context.Background(), &models.LookupRequest{
		Email: ptr.Ptr("anna@example.com"),
		Phone: ptr.Ptr("+491700000000"),
	})

	require.NoError(t, err)
	require.Len(t, repo.filters, 2)

	// Строго будущие записи: start_time > now, отмененные исключены
	for _, filter := range repo.filters {
		require.NotNil(t, filter.StartAfter)
		assert.WithinDuration(t, time.Now(), *filter.StartAfter, 5*time.Second)
		assert.Nil(t, filter.StartFrom)
		require.NotNil(t, filter.ExcludeStatus)
		assert.Equal(t, domain.StatusCancelled, *filter.ExcludeStatus)
	}
}

func TestLookup_MergesAndDeduplicatesContacts(t *testing.T) {
	later := time.Date(2026, 10, 5, 14, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 10, 5, 10, 0, 0, 0, time.UTC)

	repo := newMockApptRepo()
	repo.byEmail = []*domain.Appointment{confirmedAt(1, later), confirmedAt(2, earlier)}
	repo.byPhone = []*domain.Appointment{confirmedAt(1, later)}
	svc := NewService(repo, newMockNotifier(), nopLogger{})

	resp, err := svc.Lookup(context.Background(), &models.LookupRequest{
		Email: ptr.Ptr("anna@example.com"),
		Phone: ptr.Ptr("+491700000000"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Appointments, 2)

	// Дубликат по обоим контактам схлопнут, порядок по возрастанию времени
	assert.Equal(t, int64(2), resp.Appointments[0].ID)
	assert.Equal(t, int64(1), resp.Appointments[1].ID)
}

func TestLookup_RequiresContact(t *testing.T) {
	svc := NewService(newMockApptRepo(), newMockNotifier(), nopLogger{})

	_, err := svc.Lookup(context.Background(), &models.LookupRequest{})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_NotifiesConfirmed(t *testing.T) {
	repo := newMockApptRepo()
	repo.byID[1] = confirmedAt(1, time.Date(2026, 10, 5, 10, 0, 0, 0, time.UTC))
	notifier := newMockNotifier()
	svc := NewService(repo, notifier, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []int64{1}, repo.deleted)

	select {
	case appt := <-notifier.cancelled:
		assert.Equal(t, int64(1), appt.ID)
	case <-time.After(time.Second):
		t.Fatal("expected cancellation notification")
	}
}

func TestDelete_CancelledNotNotified(t *testing.T) {
	appt := confirmedAt(1, time.Date(2026, 10, 5, 10, 0, 0, 0, time.UTC))
	appt.Status = domain.StatusCancelled

	repo := newMockApptRepo()
	repo.byID[1] = appt
	notifier := newMockNotifier()
	svc := NewService(repo, notifier, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 1))

	select {
	case <-notifier.cancelled:
		t.Fatal("cancelled appointment must not be notified again")
	case <-time.After(100 * time.Millisecond):
	}
}

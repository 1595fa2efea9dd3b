package get_day_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LCM-BookingService/internal/domain"
	"github.com/m04kA/LCM-BookingService/pkg/ptr"
)

type mockApptRepo struct {
	existing []*domain.Appointment
}

func (m *mockApptRepo) ListWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return m.existing, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2024-06-10 - понедельник
var monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func slotMap(resp *Response) map[string]bool {
	out := make(map[string]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		out[slot.Time] = slot.Booked
	}
	return out
}

func TestExecute_FullGrid(t *testing.T) {
	uc := NewUseCase(&mockApptRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})

	require.NoError(t, err)
	assert.False(t, resp.Closed)
	assert.Equal(t, "2024-06-10", resp.Date)
	// 08:00..19:00 с шагом 15 минут
	require.Len(t, resp.Slots, 45)
	assert.Equal(t, "08:00", resp.Slots[0].Time)
	assert.Equal(t, "19:00", resp.Slots[44].Time)
}

func TestExecute_ClosedSunday(t *testing.T) {
	uc := NewUseCase(&mockApptRepo{}, nopLogger{})

	// 2024-06-09 - воскресенье
	sunday := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{Date: sunday})

	require.NoError(t, err)
	assert.True(t, resp.Closed)
	require.Len(t, resp.Slots, 45)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Booked, "slot %s must be blocked on Sunday", slot.Time)
	}
}

func TestExecute_OccupiedSlots(t *testing.T) {
	// Запись 10:00 на 45 минут занимает [10:00, 11:00)
	repo := &mockApptRepo{existing: []*domain.Appointment{{
		ID:              1,
		StartTime:       time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
		Status:          domain.StatusConfirmed,
	}}}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)

	booked := slotMap(resp)
	assert.False(t, booked["09:00"])
	assert.True(t, booked["09:15"]) // кандидат [09:15, 10:15) пересекается
	assert.True(t, booked["10:00"])
	assert.False(t, booked["11:00"])
}

func TestExecute_ServiceDuration(t *testing.T) {
	// Запись 12:00 на 45 минут занимает [12:00, 13:00)
	repo := &mockApptRepo{existing: []*domain.Appointment{{
		ID:              1,
		StartTime:       time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
		Status:          domain.StatusConfirmed,
	}}}
	uc := NewUseCase(repo, nopLogger{})

	// Neumodellage длится 90 минут: кандидат 10:45 занимает [10:45, 12:30)
	resp, err := uc.Execute(context.Background(), &Request{
		Date:      monday,
		ServiceID: "neumodellage",
	})
	require.NoError(t, err)

	booked := slotMap(resp)
	assert.True(t, booked["10:45"])
	assert.False(t, booked["10:00"]) // [10:00, 11:45) заканчивается до 12:00
}

func TestExecute_ExcludeForReschedule(t *testing.T) {
	repo := &mockApptRepo{existing: []*domain.Appointment{{
		ID:              5,
		StartTime:       time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
		Status:          domain.StatusConfirmed,
	}}}
	uc := NewUseCase(repo, nopLogger{})

	withSelf, err := uc.Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)
	assert.True(t, slotMap(withSelf)["10:00"])

	withoutSelf, err := uc.Execute(context.Background(), &Request{
		Date:      monday,
		ExcludeID: ptr.Ptr(int64(5)),
	})
	require.NoError(t, err)
	assert.False(t, slotMap(withoutSelf)["10:00"])
}

func TestExecute_UnknownService(t *testing.T) {
	uc := NewUseCase(&mockApptRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		Date:      monday,
		ServiceID: "nonexistent",
	})

	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestExecute_MissingDate(t *testing.T) {
	uc := NewUseCase(&mockApptRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

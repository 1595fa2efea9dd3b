package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createAppointment "github.com/m04kA/LCM-BookingService/internal/usecase/create_appointment"
)

type mockUseCase struct {
	resp *createAppointment.Response
	err  error
	got  *createAppointment.Request
}

func (m *mockUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc *mockUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &mockUseCase{resp: &createAppointment.Response{
		ID:              1,
		StartTime:       time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
		ServiceName:     "Neumodellage inkl. French Weiß oder Farbe",
		Status:          "CONFIRMED",
		CustomerID:      42,
		CreatedAt:       time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}}

	rec := doRequest(t, uc, `{
		"name": "Anna Schmidt",
		"email": "anna@example.com",
		"serviceId": "neumodellage",
		"startTime": "2024-06-10T10:00:00Z"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.Equal(t, 90, resp.DurationMinutes)

	// Запрос дошел до use case с распарсенным временем
	require.NotNil(t, uc.got)
	assert.Equal(t, time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC), uc.got.StartTime)
}

func TestHandle_SlotConflict(t *testing.T) {
	uc := &mockUseCase{err: createAppointment.ErrSlotConflict}

	rec := doRequest(t, uc, `{
		"name": "Anna Schmidt",
		"email": "anna@example.com",
		"serviceId": "neumodellage",
		"startTime": "2024-06-10T10:00:00Z"
	}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "bereits vergeben")
}

func TestHandle_ClosedDay(t *testing.T) {
	uc := &mockUseCase{err: createAppointment.ErrClosedDay}

	rec := doRequest(t, uc, `{
		"name": "Anna Schmidt",
		"email": "anna@example.com",
		"serviceId": "neumodellage",
		"startTime": "2024-06-09T10:00:00Z"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "geschlossen")
}

func TestHandle_InvalidStartTime(t *testing.T) {
	rec := doRequest(t, &mockUseCase{}, `{
		"name": "Anna Schmidt",
		"serviceId": "neumodellage",
		"startTime": "10:00"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidBody(t *testing.T) {
	rec := doRequest(t, &mockUseCase{}, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	uc := &mockUseCase{err: createAppointment.ErrInternal}

	rec := doRequest(t, uc, `{
		"name": "Anna Schmidt",
		"email": "anna@example.com",
		"serviceId": "neumodellage",
		"startTime": "2024-06-10T10:00:00Z"
	}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

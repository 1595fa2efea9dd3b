package reschedule_appointment

import (
	"time"

	"github.com/m04kA/LCM-BookingService/internal/domain"
)

// Request запрос на перенос записи
type Request struct {
	AppointmentID int64
	NewStartTime  time.Time
}

// Response перенесенная запись
type Response struct {
	ID              int64     `json:"id"`
	StartTime       time.Time `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	ServiceName     string    `json:"serviceName"`
	Status          string    `json:"status"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:              appt.ID,
		StartTime:       appt.StartTime,
		DurationMinutes: appt.EffectiveDuration(),
		ServiceName:     appt.ServiceName,
		Status:          string(appt.Status),
		UpdatedAt:       appt.UpdatedAt,
	}
}

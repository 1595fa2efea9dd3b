package create_appointment

import (
	"time"

	"github.com/m04kA/LCM-BookingService/internal/domain"
)

// Request запрос на создание записи
type Request struct {
	Name          string
	Email         *string
	Phone         *string
	ServiceID     string
	SubcategoryID string
	StartTime     time.Time
	Extras        *string
}

// Response созданная запись
type Response struct {
	ID              int64     `json:"id"`
	StartTime       time.Time `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	ServiceName     string    `json:"serviceName"`
	Extras          *string   `json:"extras,omitempty"`
	Status          string    `json:"status"`
	CustomerID      int64     `json:"customerId"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:              appt.ID,
		StartTime:       appt.StartTime,
		DurationMinutes: appt.DurationMinutes,
		ServiceName:     appt.ServiceName,
		Extras:          appt.Extras,
		Status:          string(appt.Status),
		CustomerID:      appt.CustomerID,
		CreatedAt:       appt.CreatedAt,
	}
}

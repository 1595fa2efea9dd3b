package get_admin_calendar

import (
	"context"
	"time"

	"github.com/m04kA/LCM-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	CalendarEvents(ctx context.Context, start, end time.Time) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

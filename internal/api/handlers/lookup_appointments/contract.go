package lookup_appointments

import (
	"context"

	"github.com/m04kA/LCM-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	Lookup(ctx context.Context, req *models.LookupRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

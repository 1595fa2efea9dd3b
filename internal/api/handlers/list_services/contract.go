package list_services

import (
	"github.com/m04kA/LCM-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListServices() []models.ServiceResponse
}

type Logger interface {
	Info(format string, v ...interface{})
}

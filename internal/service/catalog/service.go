package catalog

import (
	"github.com/m04kA/LCM-BookingService/internal/domain"
	"github.com/m04kA/LCM-BookingService/internal/service/catalog/models"
)

// Service сервис каталога услуг салона
// Каталог статический: услуги и цены зашиты в domain и меняются
// релизом, а не через БД
type Service struct{}

// NewService создает новый экземпляр сервиса каталога
func NewService() *Service {
	return &Service{}
}

// ListServices возвращает полный каталог услуг с цветовыми схемами
func (s *Service) ListServices() []models.ServiceResponse {
	return models.FromDomainServices(domain.Services)
}

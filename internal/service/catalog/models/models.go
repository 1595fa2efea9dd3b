package models

import "github.com/m04kA/LCM-BookingService/internal/domain"

// ServiceResponse DTO услуги для API
type ServiceResponse struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	DurationMinutes int                   `json:"durationMinutes,omitempty"`
	Price           float64               `json:"price,omitempty"`
	Subcategories   []SubcategoryResponse `json:"subcategories,omitempty"`
	Color           ColorResponse         `json:"color"`
}

// SubcategoryResponse DTO подкатегории услуги
type SubcategoryResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ColorResponse цветовая схема услуги для календаря
type ColorResponse struct {
	Background string `json:"background"`
	Border     string `json:"border"`
}

// FromDomainService конвертирует услугу из domain в DTO
func FromDomainService(svc domain.Service) ServiceResponse {
	resp := ServiceResponse{
		ID:              svc.ID,
		Name:            svc.Name,
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.Price,
		Color:           fromDomainColor(domain.ColorForServiceName(svc.Name)),
	}

	for _, sub := range svc.Subcategories {
		resp.Subcategories = append(resp.Subcategories, SubcategoryResponse{
			ID:              sub.ID,
			Name:            sub.Name,
			DurationMinutes: sub.DurationMinutes,
			Price:           sub.Price,
		})
	}

	return resp
}

// FromDomainServices конвертирует каталог услуг в DTO
func FromDomainServices(services []domain.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, svc := range services {
		out = append(out, FromDomainService(svc))
	}
	return out
}

func fromDomainColor(c domain.ServiceColor) ColorResponse {
	return ColorResponse{
		Background: c.Background,
		Border:     c.Border,
	}
}

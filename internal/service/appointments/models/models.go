package models

import (
	"time"

	"github.com/m04kA/LCM-BookingService/internal/domain"
)

// AppointmentResponse DTO записи для API
type AppointmentResponse struct {
	ID              int64             `json:"id"`
	StartTime       time.Time         `json:"startTime"`
	DurationMinutes int               `json:"durationMinutes"`
	ServiceName     string            `json:"serviceName"`
	Extras          *string           `json:"extras,omitempty"`
	Status          string            `json:"status"`
	Customer        *CustomerResponse `json:"customer,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// CustomerResponse DTO клиента для API
type CustomerResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// ListAppointmentsRequest запрос списка записей с фильтрацией
type ListAppointmentsRequest struct {
	Email  *string
	Phone  *string
	Status *string
}

// LookupRequest запрос поиска записей клиента по контактам
type LookupRequest struct {
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// CalendarEventResponse событие календаря администратора
type CalendarEventResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
	Extras          *string   `json:"extras,omitempty"`
	Status          string    `json:"status"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   *string   `json:"customerEmail,omitempty"`
	CustomerPhone   *string   `json:"customerPhone,omitempty"`
	Background      string    `json:"backgroundColor"`
	Border          string    `json:"borderColor"`
}

// CalendarResponse список событий календаря
type CalendarResponse struct {
	Events []CalendarEventResponse `json:"events"`
}

// FromDomainAppointment конвертирует запись из domain в DTO
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:              appt.ID,
		StartTime:       appt.StartTime,
		DurationMinutes: appt.EffectiveDuration(),
		ServiceName:     appt.ServiceName,
		Extras:          appt.Extras,
		Status:          string(appt.Status),
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}

	if appt.Customer != nil {
		resp.Customer = &CustomerResponse{
			ID:    appt.Customer.ID,
			Name:  appt.Customer.Name,
			Email: appt.Customer.Email,
			Phone: appt.Customer.Phone,
		}
	}

	return resp
}

// FromDomainAppointmentList конвертирует список записей в DTO
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	out := &AppointmentListResponse{Appointments: make([]AppointmentResponse, 0, len(appts))}
	for _, appt := range appts {
		out.Appointments = append(out.Appointments, *FromDomainAppointment(appt))
	}
	return out
}

// FromDomainCalendarEvent конвертирует запись в событие календаря
// Конец события - конец услуги без буфера: буфер учитывается движком
// доступности, но в календаре не отображается
func FromDomainCalendarEvent(appt *domain.Appointment) CalendarEventResponse {
	color := domain.ColorForServiceName(appt.ServiceName)
	duration := appt.EffectiveDuration()

	event := CalendarEventResponse{
		ID:              appt.ID,
		Title:           appt.ServiceName,
		Start:           appt.StartTime,
		End:             appt.StartTime.Add(time.Duration(duration) * time.Minute),
		DurationMinutes: duration,
		Extras:          appt.Extras,
		Status:          string(appt.Status),
		Background:      color.Background,
		Border:          color.Border,
	}

	if appt.Customer != nil {
		event.CustomerName = appt.Customer.Name
		event.CustomerEmail = appt.Customer.Email
		event.CustomerPhone = appt.Customer.Phone
	}

	return event
}

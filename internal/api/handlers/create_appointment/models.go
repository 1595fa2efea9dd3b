package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/LCM-BookingService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Name          string  `json:"name"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	ServiceID     string  `json:"serviceId"`
	SubcategoryID string  `json:"subcategoryId,omitempty"`
	StartTime     string  `json:"startTime"` // RFC3339
	Extras        *string `json:"extras,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	ServiceName     string  `json:"serviceName"`
	Extras          *string `json:"extras,omitempty"`
	Status          string  `json:"status"`
	CustomerID      int64   `json:"customerId"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		ServiceID:     r.ServiceID,
		SubcategoryID: r.SubcategoryID,
		StartTime:     startTime,
		Extras:        r.Extras,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		ServiceName:     resp.ServiceName,
		Extras:          resp.Extras,
		Status:          resp.Status,
		CustomerID:      resp.CustomerID,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}

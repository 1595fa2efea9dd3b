package get_day_availability

import (
	"time"
)

// Request запрос сетки доступности на день
type Request struct {
	Date          time.Time
	ServiceID     string // опционально: длительность услуги вместо дефолтной
	SubcategoryID string
	ExcludeID     *int64 // опционально: исключить запись (сценарий переноса)
}

// SlotResponse слот сетки доступности
type SlotResponse struct {
	Time   string `json:"time"` // HH:MM
	Booked bool   `json:"booked"`
}

// Response сетка доступности на день
type Response struct {
	Date   string         `json:"date"` // YYYY-MM-DD
	Closed bool           `json:"closed"`
	Slots  []SlotResponse `json:"slots"`
}

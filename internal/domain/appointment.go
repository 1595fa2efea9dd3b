package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	// StatusPending is reserved in the taxonomy but never produced by the
	// booking flow; appointments are created confirmed
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment represents a booked salon appointment
type Appointment struct {
	ID              int64
	CustomerID      int64
	StartTime       time.Time
	DurationMinutes int
	ServiceName     string
	Extras          *string
	Status          AppointmentStatus

	Customer *Customer

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the appointment blocks its time slot
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// EffectiveDuration returns the service duration in minutes, falling back
// to the default for legacy rows without a recorded duration
func (a *Appointment) EffectiveDuration() int {
	if a.DurationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return a.DurationMinutes
}

// Customer represents a salon customer
// Customers are matched by email OR phone at booking time; duplicates are
// possible when both differ
type Customer struct {
	ID        int64
	Name      string
	Email     *string
	Phone     *string
	CreatedAt time.Time
}

// AppointmentsFilter defines optional filters for listing appointments
type AppointmentsFilter struct {
	Status        *AppointmentStatus // filter by status (nil = all)
	ExcludeStatus *AppointmentStatus // exclude a status (e.g. cancelled)
	StartFrom     *time.Time         // start_time >= StartFrom
	StartAfter    *time.Time         // start_time > StartAfter (strictly upcoming)
	StartTo       *time.Time         // start_time < StartTo
	CustomerID    *int64
	CustomerEmail *string // exact match on customer email
	CustomerPhone *string // exact match on customer phone
}

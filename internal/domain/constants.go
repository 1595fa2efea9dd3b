package domain

import "time"

// Slot and buffer configuration
const (
	// BufferMinutes is the cleanup/turnover padding appended after a
	// service's nominal duration. The buffer is applied to the tail only:
	// an appointment occupies [start, start + duration + buffer)
	BufferMinutes = 15

	// DefaultDurationMinutes is assumed when an appointment or request
	// carries no recorded duration
	DefaultDurationMinutes = 45

	// SlotStepMinutes is the granularity of the booking grid
	SlotStepMinutes = 15
)

// Business hours
const (
	// OpenHour is the first bookable slot hour (08:00)
	OpenHour = 8

	// LastSlotHour is the last bookable slot start (19:00); the nominal
	// closing display time is later
	LastSlotHour = 19
)

// ClosedWeekday is the weekday the salon is closed; candidates on this day
// are rejected before any conflict check
const ClosedWeekday = time.Weekday(time.Sunday)

// Time format constants
const (
	TimeFormat       = "15:04"               // HH:MM
	DateFormat       = "2006-01-02"          // YYYY-MM-DD
	NotifyTimeFormat = "02.01.2006 um 15:04" // localized format used in notifications
)

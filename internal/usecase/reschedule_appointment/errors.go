package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrClosedDay возвращается при попытке переноса на выходной день
	ErrClosedDay = errors.New("reschedule_appointment: salon is closed on this day")

	// ErrSlotConflict возвращается, когда новый слот пересекается с другой записью
	ErrSlotConflict = errors.New("reschedule_appointment: slot conflicts with an existing appointment")

	// ErrCancelled возвращается при попытке переноса отмененной записи
	ErrCancelled = errors.New("reschedule_appointment: appointment is cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)

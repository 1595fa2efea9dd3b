package appointments

import "errors"

var (
	// ErrAppointmentNotFound запись не найдена
	ErrAppointmentNotFound = errors.New("appointments.service: appointment not found")

	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("appointments.service: invalid input")

	// ErrAlreadyCancelled запись уже отменена
	ErrAlreadyCancelled = errors.New("appointments.service: appointment already cancelled")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("appointments.service: internal error")
)

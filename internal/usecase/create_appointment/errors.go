package create_appointment

import "errors"

var (
	// ErrClosedDay возвращается при попытке записаться на выходной день
	ErrClosedDay = errors.New("create_appointment: salon is closed on this day")

	// ErrSlotConflict возвращается, когда запрошенный слот пересекается
	// с существующей записью
	ErrSlotConflict = errors.New("create_appointment: slot conflicts with an existing appointment")

	// ErrUnknownService возвращается при неизвестной услуге или подкатегории
	ErrUnknownService = errors.New("create_appointment: unknown service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

package get_day_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_day_availability: invalid input data")

	// ErrUnknownService возвращается при неизвестной услуге или подкатегории
	ErrUnknownService = errors.New("get_day_availability: unknown service")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_day_availability: internal error")
)

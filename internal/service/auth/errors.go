package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном пароле
	ErrInvalidCredentials = errors.New("auth.service: invalid credentials")

	// ErrInvalidToken возвращается при невалидном или истекшем токене
	ErrInvalidToken = errors.New("auth.service: invalid token")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("auth.service: internal error")
)

package admin_login

import "time"

type AuthService interface {
	Login(password string) (token string, ttl time.Duration, err error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package notify

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// EmailSender отправляет email сообщения
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMSSender отправляет SMS сообщения
type SMSSender interface {
	Send(to, body string) error
}

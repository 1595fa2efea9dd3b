package notify

import (
	"fmt"
	"net/smtp"
)

// SMTPSender отправляет email через SMTP без аутентификации
// (локальный relay). При пустом host работает в mock-режиме -
// сообщения только логируются
type SMTPSender struct {
	host   string
	port   string
	from   string
	logger Logger
}

// NewSMTPSender создает отправителя email
func NewSMTPSender(host, port, from string, logger Logger) *SMTPSender {
	return &SMTPSender{
		host:   host,
		port:   port,
		from:   from,
		logger: logger,
	}
}

// Send отправляет email сообщение
func (s *SMTPSender) Send(to, subject, body string) error {
	if s.host == "" {
		s.logger.Info("email [mock] to=%s subject=%q", to, subject)
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		s.from, to, subject, body,
	))

	addr := s.host + ":" + s.port
	if err := smtp.SendMail(addr, nil, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("notify: send email to %s: %w", to, err)
	}

	return nil
}

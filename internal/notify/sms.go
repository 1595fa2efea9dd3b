package notify

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender отправляет SMS через Twilio
// При пустых credentials работает в mock-режиме
type TwilioSender struct {
	client    *twilio.RestClient
	fromPhone string
	logger    Logger
}

// NewTwilioSender создает отправителя SMS
func NewTwilioSender(accountSID, authToken, fromPhone string, logger Logger) *TwilioSender {
	var client *twilio.RestClient
	if accountSID != "" && authToken != "" {
		client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		})
	}

	return &TwilioSender{
		client:    client,
		fromPhone: fromPhone,
		logger:    logger,
	}
}

// Send отправляет SMS сообщение
func (t *TwilioSender) Send(to, body string) error {
	if t.client == nil {
		t.logger.Info("sms [mock] to=%s body=%q", to, body)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromPhone)
	params.SetBody(body)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("notify: send sms to %s: %w", to, err)
	}

	return nil
}

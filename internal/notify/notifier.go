package notify

import (
	"fmt"

	"github.com/m04kA/LCM-BookingService/internal/domain"
)

// Notifier отправляет уведомления клиентам о записях
// Email и SMS каналы независимы: ошибка одного не влияет на другой,
// ошибки отправки логируются и никогда не прерывают основной поток
type Notifier struct {
	email  EmailSender
	sms    SMSSender
	logger Logger
}

// NewNotifier создает новый экземпляр нотификатора
func NewNotifier(email EmailSender, sms SMSSender, logger Logger) *Notifier {
	return &Notifier{
		email:  email,
		sms:    sms,
		logger: logger,
	}
}

// AppointmentCreated уведомляет клиента о новой записи
func (n *Notifier) AppointmentCreated(appt *domain.Appointment) {
	when := appt.StartTime.Format(domain.NotifyTimeFormat)

	subject := "Terminbestätigung - LCM Nails"
	body := fmt.Sprintf(
		"Hallo %s,\n\nIhr Termin wurde bestätigt:\n\nBehandlung: %s\nDatum: %s\n\nWir freuen uns auf Ihren Besuch!\n\nIhr LCM Nails Team",
		n.customerName(appt), appt.ServiceName, when,
	)
	sms := fmt.Sprintf("LCM Nails: Ihr Termin am %s wurde bestätigt. Behandlung: %s",
		when, appt.ServiceName)

	n.deliver(appt, subject, body, sms)
}

// AppointmentRescheduled уведомляет клиента о переносе записи
func (n *Notifier) AppointmentRescheduled(appt *domain.Appointment) {
	when := appt.StartTime.Format(domain.NotifyTimeFormat)

	subject := "Termin verschoben - LCM Nails"
	body := fmt.Sprintf(
		"Hallo %s,\n\nIhr Termin wurde verschoben.\n\nNeuer Termin: %s\nBehandlung: %s\n\nIhr LCM Nails Team",
		n.customerName(appt), when, appt.ServiceName,
	)
	sms := fmt.Sprintf("LCM Nails: Ihr Termin wurde verschoben auf %s.", when)

	n.deliver(appt, subject, body, sms)
}

// AppointmentCancelled уведомляет клиента об отмене записи
func (n *Notifier) AppointmentCancelled(appt *domain.Appointment) {
	when := appt.StartTime.Format(domain.NotifyTimeFormat)

	subject := "Termin storniert - LCM Nails"
	body := fmt.Sprintf(
		"Hallo %s,\n\nIhr Termin am %s wurde storniert.\n\nSie können jederzeit einen neuen Termin buchen.\n\nIhr LCM Nails Team",
		n.customerName(appt), when,
	)
	sms := fmt.Sprintf("LCM Nails: Ihr Termin am %s wurde storniert.", when)

	n.deliver(appt, subject, body, sms)
}

// AppointmentReminder отправляет напоминание о предстоящей записи
func (n *Notifier) AppointmentReminder(appt *domain.Appointment) {
	when := appt.StartTime.Format(domain.NotifyTimeFormat)

	subject := "Terminerinnerung - LCM Nails"
	body := fmt.Sprintf(
		"Hallo %s,\n\nwir möchten Sie an Ihren morgigen Termin erinnern:\n\nBehandlung: %s\nDatum: %s\n\nBis bald!\n\nIhr LCM Nails Team",
		n.customerName(appt), appt.ServiceName, when,
	)
	sms := fmt.Sprintf("LCM Nails: Erinnerung an Ihren Termin am %s. Behandlung: %s",
		when, appt.ServiceName)

	n.deliver(appt, subject, body, sms)
}

// deliver рассылает уведомление по доступным контактам клиента
func (n *Notifier) deliver(appt *domain.Appointment, subject, emailBody, smsBody string) {
	if appt.Customer == nil {
		n.logger.Warn("notify: appointment id=%d has no customer attached, skipping", appt.ID)
		return
	}

	if appt.Customer.Email != nil && *appt.Customer.Email != "" {
		if err := n.email.Send(*appt.Customer.Email, subject, emailBody); err != nil {
			n.logger.Error("notify: email for appointment id=%d failed: %v", appt.ID, err)
		} else {
			n.logger.Info("notify: email for appointment id=%d sent to %s", appt.ID, *appt.Customer.Email)
		}
	}

	if appt.Customer.Phone != nil && *appt.Customer.Phone != "" {
		if err := n.sms.Send(*appt.Customer.Phone, smsBody); err != nil {
			n.logger.Error("notify: sms for appointment id=%d failed: %v", appt.ID, err)
		} else {
			n.logger.Info("notify: sms for appointment id=%d sent to %s", appt.ID, *appt.Customer.Phone)
		}
	}
}

func (n *Notifier) customerName(appt *domain.Appointment) string {
	if appt.Customer != nil && appt.Customer.Name != "" {
		return appt.Customer.Name
	}
	return "liebe Kundin, lieber Kunde"
}

package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/reservaa/hall-booking-service/internal/notifier"
	"github.com/reservaa/hall-booking-service/internal/repository"
	"github.com/reservaa/hall-booking-service/pkg/mailer"
)

type NotificationConsumer struct {
	bookings repository.BookingRepository
	mail     mailer.Mailer
}

func NewNotificationConsumer(bookings repository.BookingRepository, mail mailer.Mailer) *NotificationConsumer {
	return &NotificationConsumer{bookings: bookings, mail: mail}
}

// Start drains notification messages and sends the corresponding emails.
// Delivery state is recorded on the booking row after a successful send.
func (nc *NotificationConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			nc.handleMessage(msg)
		}
		log.Println("[NotificationConsumer] channel closed, stopping consumer")
	}()
}

func (nc *NotificationConsumer) handleMessage(msg amqp.Delivery) {
	var m notifier.Message
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		log.Printf("[NotificationConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	subject, body, ok := renderEmail(m)
	if !ok {
		log.Printf("[NotificationConsumer] malformed %q message %s, dropping", m.Kind, m.ID)
		msg.Nack(false, false)
		return
	}

	// Email is best effort: a failed send is logged and acked rather than
	// requeued, so a dead SMTP host cannot pile the queue up forever.
	if err := nc.mail.Send(m.RecipientEmail, subject, body); err != nil {
		log.Printf("[NotificationConsumer] send %s to %s failed: %v", m.Kind, m.RecipientEmail, err)
		msg.Ack(false)
		return
	}

	nc.markDelivered(m)
	log.Printf("[NotificationConsumer] sent %s to %s (booking %s)", m.Kind, m.RecipientEmail, m.BookingCode)
	msg.Ack(false)
}

func (nc *NotificationConsumer) markDelivered(m notifier.Message) {
	ctx := context.Background()
	var err error
	switch m.Kind {
	case notifier.KindBookingConfirmed:
		err = nc.bookings.MarkConfirmationSent(ctx, m.BookingID)
	case notifier.KindBookingRescheduled:
		err = nc.bookings.MarkRescheduleNotified(ctx, m.BookingID)
	default:
		return
	}
	if err != nil {
		log.Printf("[NotificationConsumer] mark %s delivered for booking %d: %v", m.Kind, m.BookingID, err)
	}
}

func renderEmail(m notifier.Message) (subject, body string, ok bool) {
	switch m.Kind {
	case notifier.KindBookingConfirmed:
		if m.Original == nil {
			return "", "", false
		}
		subject = fmt.Sprintf("Booking Confirmed - %s", m.BookingCode)
		body = fmt.Sprintf(
			"Dear %s,\n\nYour booking has been confirmed.\n\nBooking Code: %s\nHall: %s\nDate: %s\nTime: %s - %s\n\nPlease keep the booking code for your records.",
			m.RecipientName, m.BookingCode,
			m.Original.HallName, m.Original.Date, m.Original.StartTime, m.Original.EndTime)
		return subject, body, true

	case notifier.KindBookingRescheduled:
		if m.Original == nil {
			return "", "", false
		}
		subject = fmt.Sprintf("Booking Rescheduled - %s", m.BookingCode)
		body = fmt.Sprintf(
			"Dear %s,\n\nYour booking %s has been rescheduled.\n\nOriginal slot:\nHall: %s\nDate: %s\nTime: %s - %s\n\nReason: %s\n",
			m.RecipientName, m.BookingCode,
			m.Original.HallName, m.Original.Date, m.Original.StartTime, m.Original.EndTime,
			m.Reason)
		if m.New != nil {
			body += fmt.Sprintf(
				"\nNew slot:\nHall: %s\nDate: %s\nTime: %s - %s\n",
				m.New.HallName, m.New.Date, m.New.StartTime, m.New.EndTime)
		} else {
			body += "\nThe administration will contact you with an alternative slot shortly.\n"
		}
		return subject, body, true

	case notifier.KindPasswordReset:
		subject = "Password Reset Request"
		body = fmt.Sprintf(
			"Dear %s,\n\nA password reset was requested for your account. Use the link below within one hour:\n\n%s\n\nIf you did not request this, you can ignore this email.",
			m.RecipientName, m.ResetURL)
		return subject, body, true
	}
	return "", "", false
}

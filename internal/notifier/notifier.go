package notifier

import (
	"github.com/google/uuid"
	"github.com/reservaa/hall-booking-service/internal/models"
)

type Kind string

const (
	KindBookingConfirmed   Kind = "booking_confirmed"
	KindBookingRescheduled Kind = "booking_rescheduled"
	KindPasswordReset      Kind = "password_reset"
)

const dateLayout = "2006-01-02"

// SlotInfo is the wire form of a slot inside a notification message.
type SlotInfo struct {
	HallName  string `json:"hall_name"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Message is what gets queued for the email worker. State is committed before
// a message is published; the worker flips the sent flags after a confirmed
// send.
type Message struct {
	ID             string    `json:"id"`
	Kind           Kind      `json:"kind"`
	BookingID      uint      `json:"booking_id,omitempty"`
	BookingCode    string    `json:"booking_code,omitempty"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name"`
	Original       *SlotInfo `json:"original,omitempty"`
	// New is nil when the admin has not assigned a concrete alternative yet.
	New      *SlotInfo `json:"new,omitempty"`
	Reason   string    `json:"reason,omitempty"`
	ResetURL string    `json:"reset_url,omitempty"`
}

// Gateway is the send contract the core depends on. The queue-backed
// implementation below is the production one; tests substitute their own.
type Gateway interface {
	BookingConfirmed(booking *models.Booking, faculty *models.Faculty) error
	BookingRescheduled(displaced *models.Booking, faculty *models.Faculty) error
	PasswordReset(faculty *models.Faculty, resetURL string) error
}

type publisher interface {
	Publish(routingKey string, payload any) error
}

// QueueGateway publishes notification messages to RabbitMQ; the notification
// consumer in this process (or another) performs the actual SMTP send.
type QueueGateway struct {
	pub publisher
}

func NewQueueGateway(pub publisher) *QueueGateway {
	return &QueueGateway{pub: pub}
}

func (g *QueueGateway) BookingConfirmed(booking *models.Booking, faculty *models.Faculty) error {
	return g.pub.Publish("notification.booking_confirmed", Message{
		ID:             uuid.NewString(),
		Kind:           KindBookingConfirmed,
		BookingID:      booking.ID,
		BookingCode:    booking.BookingCode,
		RecipientEmail: faculty.Email,
		RecipientName:  faculty.Name,
		Original:       slotInfo(booking.Slot()),
	})
}

func (g *QueueGateway) BookingRescheduled(displaced *models.Booking, faculty *models.Faculty) error {
	msg := Message{
		ID:             uuid.NewString(),
		Kind:           KindBookingRescheduled,
		BookingID:      displaced.ID,
		BookingCode:    displaced.BookingCode,
		RecipientEmail: faculty.Email,
		RecipientName:  faculty.Name,
		Original:       slotInfo(displaced.Slot()),
		Reason:         displaced.RescheduleReason,
	}
	if displaced.RescheduledTo.IsComplete() {
		msg.New = &SlotInfo{
			HallName:  *displaced.RescheduledTo.HallName,
			Date:      displaced.RescheduledTo.Date.Format(dateLayout),
			StartTime: *displaced.RescheduledTo.StartTime,
			EndTime:   *displaced.RescheduledTo.EndTime,
		}
	}
	return g.pub.Publish("notification.booking_rescheduled", msg)
}

func (g *QueueGateway) PasswordReset(faculty *models.Faculty, resetURL string) error {
	return g.pub.Publish("notification.password_reset", Message{
		ID:             uuid.NewString(),
		Kind:           KindPasswordReset,
		RecipientEmail: faculty.Email,
		RecipientName:  faculty.Name,
		ResetURL:       resetURL,
	})
}

func slotInfo(s models.Slot) *SlotInfo {
	return &SlotInfo{
		HallName:  s.HallName,
		Date:      s.Date.Format(dateLayout),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}

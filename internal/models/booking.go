package models

import "time"

type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusApproved    BookingStatus = "approved"
	StatusRejected    BookingStatus = "rejected"
	StatusRescheduled BookingStatus = "rescheduled"
)

// RescheduleTarget is the slot a displaced booking was moved to. All fields
// are nullable: when the admin has not chosen a concrete alternative yet the
// whole target stays empty rather than guessing one.
type RescheduleTarget struct {
	HallName  *string    `json:"hall_name,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	StartTime *string    `gorm:"type:varchar(5)" json:"start_time,omitempty"`
	EndTime   *string    `gorm:"type:varchar(5)" json:"end_time,omitempty"`
}

func (t RescheduleTarget) IsComplete() bool {
	return t.HallName != nil && t.Date != nil && t.StartTime != nil && t.EndTime != nil
}

type Booking struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	FacultyID uint `gorm:"not null;index" json:"faculty_id"`

	// Halls are referenced by name; the catalog is small and fixed and the
	// hall service blocks renames while future bookings still use the name.
	HallName     string    `gorm:"not null;index:idx_bookings_hall_date" json:"hall_name"`
	HallCapacity int       `gorm:"not null" json:"hall_capacity"`
	BookingDate  time.Time `gorm:"not null;index:idx_bookings_hall_date" json:"booking_date"`

	// Wall-clock times as zero-padded 24h "HH:MM"; lexicographic order is
	// chronological order, which the overlap predicate relies on.
	StartTime string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time"`

	Purpose                string `gorm:"not null" json:"purpose"`
	Department             string `gorm:"not null" json:"department"`
	AdditionalRequirements string `json:"additional_requirements,omitempty"`
	ACPreference           string `gorm:"type:varchar(10);not null" json:"ac_preference"`

	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	BookingCode string        `gorm:"type:varchar(32);not null" json:"booking_code"`

	ConfirmationSent bool `gorm:"not null;default:false" json:"confirmation_sent"`

	IsPriorityRequest bool   `gorm:"not null;default:false" json:"is_priority_request"`
	PriorityReason    string `json:"priority_reason,omitempty"`
	AdminNotes        string `json:"admin_notes,omitempty"`

	RescheduledBy              *uint            `json:"rescheduled_by,omitempty"`
	RescheduledTo              RescheduleTarget `gorm:"embedded;embeddedPrefix:rescheduled_to_" json:"rescheduled_to"`
	RescheduleReason           string           `json:"reschedule_reason,omitempty"`
	RescheduleNotificationSent bool             `gorm:"not null;default:false" json:"reschedule_notification_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Faculty *Faculty `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
}

// Slot returns the booking's reservable interval.
func (b *Booking) Slot() Slot {
	return Slot{
		HallName:  b.HallName,
		Date:      b.BookingDate,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

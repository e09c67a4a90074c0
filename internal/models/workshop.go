package models

import "time"

type Workshop struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `gorm:"not null" json:"date"`
	OrganizerID uint      `gorm:"not null;index" json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`

	Organizer *Faculty `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
}

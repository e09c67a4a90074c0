package models

import (
	"time"

	"gorm.io/datatypes"
)

// BookingRules are per-hall limits enforced by the catalog, embedded into the
// halls table.
type BookingRules struct {
	AdvanceBookingDays  int  `gorm:"default:7" json:"advance_booking_days"`
	MinimumBookingHours int  `gorm:"default:1" json:"minimum_booking_hours"`
	MaximumBookingHours int  `gorm:"default:4" json:"maximum_booking_hours"`
	RequiresApproval    bool `gorm:"default:false" json:"requires_approval"`
}

type Hall struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Type        string `gorm:"not null;default:'Seminar Hall'" json:"type"`
	Capacity    int    `gorm:"not null" json:"capacity"`
	Location    string `gorm:"not null" json:"location"`
	Description string `json:"description,omitempty"`

	Facilities datatypes.JSON `json:"facilities,omitempty"`
	Amenities  datatypes.JSON `json:"amenities,omitempty"`
	Images     datatypes.JSON `json:"images,omitempty"`

	BookingRules BookingRules `gorm:"embedded;embeddedPrefix:rule_" json:"booking_rules"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

type Faculty struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"`
	Department string `gorm:"not null" json:"department"`
	CollegeID  string `gorm:"uniqueIndex;not null" json:"college_id"`
	Avatar     string `json:"avatar,omitempty"`

	ResetPasswordToken  *string    `gorm:"index" json:"-"`
	ResetPasswordExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"
)

// SocialAssistance represents a social assistance program (BLT, sembako, ...)
type SocialAssistance struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Name        string    `json:"name" gorm:"column:name"`
	Description string    `json:"description" gorm:"column:description"`
	Source      string    `json:"source" gorm:"column:source"`
	StartDate   time.Time `json:"start_date" gorm:"column:start_date"`
	EndDate     time.Time `json:"end_date" gorm:"column:end_date"`
	CreatedBy   uint      `json:"created_by" gorm:"column:created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the insert table name for SocialAssistance
func (SocialAssistance) TableName() string {
	return "social_assistances"
}

// SocialAssistanceRecipient links a resident to an assistance program
type SocialAssistanceRecipient struct {
	ID                 uint      `json:"id" gorm:"primarykey"`
	SocialAssistanceID uint      `json:"social_assistance_id" gorm:"column:social_assistance_id;index"`
	ResidentID         uint      `json:"resident_id" gorm:"column:resident_id;index"`
	IsVerified         bool      `json:"is_verified" gorm:"column:is_verified;default:false"`
	Notes              string    `json:"notes" gorm:"column:notes"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName sets the insert table name for SocialAssistanceRecipient
func (SocialAssistanceRecipient) TableName() string {
	return "social_assistance_recipients"
}

package models

import (
	"time"
)

// Resident represents a resident profile. Created unverified on
// self-registration or by RT-assisted entry; verification is one-way.
type Resident struct {
	ID         uint       `json:"id" gorm:"primarykey"`
	UserID     uint       `json:"user_id" gorm:"column:user_id;index"`
	NIK        string     `json:"nik" gorm:"column:nik;uniqueIndex"`
	FullName   string     `json:"full_name" gorm:"column:full_name"`
	BirthDate  *time.Time `json:"birth_date" gorm:"column:birth_date"`
	Gender     string     `json:"gender" gorm:"column:gender"`
	Phone      string     `json:"phone" gorm:"column:phone"`
	Address    string     `json:"address" gorm:"column:address"`
	RTNumber   string     `json:"rt_number" gorm:"column:rt_number;index"`
	RWNumber   string     `json:"rw_number" gorm:"column:rw_number;index"`
	FamilyID   *uint      `json:"family_id" gorm:"column:family_id"`
	IsVerified bool       `json:"is_verified" gorm:"column:is_verified;default:false"`
	VerifiedBy *uint      `json:"verified_by" gorm:"column:verified_by"`
	VerifiedAt *time.Time `json:"verified_at" gorm:"column:verified_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName sets the insert table name for Resident
func (Resident) TableName() string {
	return "residents"
}

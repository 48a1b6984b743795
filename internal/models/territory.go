package models

import (
	"time"
)

// RW represents a Rukun Warga territorial unit
type RW struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Number      string    `json:"number" gorm:"column:number;uniqueIndex"`
	Chairman    string    `json:"chairman" gorm:"column:chairman"`
	Phone       string    `json:"phone" gorm:"column:phone"`
	Address     string    `json:"address" gorm:"column:address"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedByID *uint     `json:"created_by_id" gorm:"column:created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the insert table name for RW
func (RW) TableName() string {
	return "rws"
}

// RT represents a Rukun Tetangga territorial unit within an RW.
// Number is a 3-digit string unique within the RW.
type RT struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Number      string    `json:"number" gorm:"column:number;uniqueIndex:idx_rt_number_rw"`
	RWNumber    string    `json:"rw_number" gorm:"column:rw_number;uniqueIndex:idx_rt_number_rw"`
	Chairman    string    `json:"chairman" gorm:"column:chairman"`
	Phone       string    `json:"phone" gorm:"column:phone"`
	Address     string    `json:"address" gorm:"column:address"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedByID *uint     `json:"created_by_id" gorm:"column:created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the insert table name for RT
func (RT) TableName() string {
	return "rts"
}

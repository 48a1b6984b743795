package models

import (
	"time"
)

// Family represents a family card (Kartu Keluarga) grouping residents
type Family struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	KKNumber  string    `json:"kk_number" gorm:"column:kk_number;uniqueIndex"`
	HeadName  string    `json:"head_name" gorm:"column:head_name"`
	RTNumber  string    `json:"rt_number" gorm:"column:rt_number"`
	RWNumber  string    `json:"rw_number" gorm:"column:rw_number"`
	Address   string    `json:"address" gorm:"column:address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Family
func (Family) TableName() string {
	return "families"
}

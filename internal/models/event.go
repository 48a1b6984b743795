package models

import (
	"time"
)

// Event represents a community event (kerja bakti, posyandu, rapat warga, ...)
type Event struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Title       string    `json:"title" gorm:"column:title"`
	Description string    `json:"description" gorm:"column:description"`
	Location    string    `json:"location" gorm:"column:location"`
	StartTime   time.Time `json:"start_time" gorm:"column:start_time;index"`
	EndTime     time.Time `json:"end_time" gorm:"column:end_time"`
	RTNumber    string    `json:"rt_number" gorm:"column:rt_number;index"`
	RWNumber    string    `json:"rw_number" gorm:"column:rw_number;index"`
	CreatedBy   uint      `json:"created_by" gorm:"column:created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Event
func (Event) TableName() string {
	return "events"
}

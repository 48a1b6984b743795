package models

import (
	"time"
)

// ComplaintStatus is the complaint handling status
type ComplaintStatus string

const (
	ComplaintDiterima        ComplaintStatus = "DITERIMA"
	ComplaintDitindaklanjuti ComplaintStatus = "DITINDAKLANJUTI"
	ComplaintSelesai         ComplaintStatus = "SELESAI"
	ComplaintDitolak         ComplaintStatus = "DITOLAK"
)

// Complaint represents a resident complaint. Editable by its creator only
// while status is still DITERIMA.
type Complaint struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	Title       string          `json:"title" gorm:"column:title"`
	Description string          `json:"description" gorm:"column:description"`
	Category    string          `json:"category" gorm:"column:category"`
	Status      ComplaintStatus `json:"status" gorm:"column:status;default:DITERIMA"`
	Response    string          `json:"response,omitempty" gorm:"column:response"`
	CreatedBy   uint            `json:"created_by" gorm:"column:created_by;index"`
	RTNumber    string          `json:"rt_number" gorm:"column:rt_number;index"`
	RWNumber    string          `json:"rw_number" gorm:"column:rw_number;index"`
	HandledBy   *uint           `json:"handled_by" gorm:"column:handled_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName sets the insert table name for Complaint
func (Complaint) TableName() string {
	return "complaints"
}

package models

import (
	"time"
)

// DocumentStatus is the fixed document workflow status
type DocumentStatus string

const (
	DocumentDiajukan       DocumentStatus = "DIAJUKAN"
	DocumentDiproses       DocumentStatus = "DIPROSES"
	DocumentDisetujui      DocumentStatus = "DISETUJUI"
	DocumentDitandatangani DocumentStatus = "DITANDATANGANI"
	DocumentSelesai        DocumentStatus = "SELESAI"
	DocumentDitolak        DocumentStatus = "DITOLAK"
)

// Document represents a resident document request (surat pengantar, domisili,
// SKTM, izin keramaian, ...). Status only moves forward along the workflow,
// never regresses. Territory is inherited from the requester's resident
// profile at creation time.
type Document struct {
	ID              uint           `json:"id" gorm:"primarykey"`
	DocumentNumber  string         `json:"document_number" gorm:"column:document_number;uniqueIndex"`
	Type            string         `json:"type" gorm:"column:type"`
	Purpose         string         `json:"purpose" gorm:"column:purpose"`
	Status          DocumentStatus `json:"status" gorm:"column:status;default:DIAJUKAN"`
	RequesterID     uint           `json:"requester_id" gorm:"column:requester_id;index"`
	RTNumber        string         `json:"rt_number" gorm:"column:rt_number;index"`
	RWNumber        string         `json:"rw_number" gorm:"column:rw_number;index"`
	RejectionReason string         `json:"rejection_reason,omitempty" gorm:"column:rejection_reason"`
	ProcessedBy     *uint          `json:"processed_by" gorm:"column:processed_by"`
	CompletedAt     *time.Time     `json:"completed_at" gorm:"column:completed_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TableName sets the insert table name for Document
func (Document) TableName() string {
	return "documents"
}

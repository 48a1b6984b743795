package models

import (
	"time"
)

// SchedulerLog records scheduled job runs (START/RUNNING/SUCCESS/FAILED)
type SchedulerLog struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	RunID     string    `json:"run_id" gorm:"column:run_id;index"`
	JobCode   string    `json:"job_code" gorm:"column:job_code"`
	Message   string    `json:"message" gorm:"column:message"`
	Status    string    `json:"status" gorm:"column:status"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the insert table name for SchedulerLog
func (SchedulerLog) TableName() string {
	return "scheduler_logs"
}

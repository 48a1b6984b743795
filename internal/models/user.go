package models

import (
	"time"
)

// Role is the four-tier role hierarchy of the application
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleRW    Role = "RW"
	RoleRT    Role = "RT"
	RoleWarga Role = "WARGA"
)

// User represents a login account. RT/RW accounts link to their territorial
// record, WARGA accounts link to a resident profile. Users are never deleted,
// only role-reassigned.
type User struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	Name       string    `json:"name" gorm:"column:name"`
	Email      string    `json:"email" gorm:"column:email;uniqueIndex"`
	Password   string    `json:"-" gorm:"column:password"`
	Role       Role      `json:"role" gorm:"column:role;default:WARGA"`
	ResidentID *uint     `json:"resident_id" gorm:"column:resident_id"`
	RTID       *uint     `json:"rt_id" gorm:"column:rt_id"`
	RWID       *uint     `json:"rw_id" gorm:"column:rw_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the insert table name for User
func (User) TableName() string {
	return "users"
}

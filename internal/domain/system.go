package domain

import (
	"time"
)

// SysAdmin is an administrator account for the admin panel
type SysAdmin struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id,string"`
	Email        string    `gorm:"uniqueIndex" json:"email" form:"email"`
	PasswordHash string    `json:"-" form:"-"`
	Status       string    `gorm:"size:32" json:"status" form:"status"` // enabled/disabled
	LastLogin    time.Time `json:"last_login"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysAdmin) TableName() string {
	return "sys_admin"
}

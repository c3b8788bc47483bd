package model

import (
	"time"
)

type UserRole string

const (
	Admin   UserRole = "admin"
	Staff   UserRole = "staff"
	Auditor UserRole = "auditor"
)

func ValidRole(r UserRole) bool {
	switch r {
	case Admin, Staff, Auditor:
		return true
	}
	return false
}

// swagger:model User
type User struct {
	BaseModel
	Username   string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	FullName   string    `gorm:"size:100;not null" json:"fullName"`
	Password   string    `gorm:"size:100;not null" json:"-"`
	Role       UserRole  `gorm:"size:20;default:'staff'" json:"role"`
	Facility   string    `gorm:"size:200" json:"facility"`
	Disabled   bool      `gorm:"default:false" json:"disabled"`
	MFAEnabled bool      `gorm:"default:false" json:"mfaEnabled"`
	MFASecret  string    `gorm:"size:200" json:"-"`
	LastLogin  time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// LoginAttempt records a failed login for brute-force lockout checks.
type LoginAttempt struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"size:50;index" json:"username"`
	IPAddress string    `gorm:"size:45" json:"ipAddress"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (LoginAttempt) TableName() string {
	return "login_attempts"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Global user roles.
const (
	RoleAdmin     = "ADMIN"
	RoleDeveloper = "DEVELOPER"
)

// User represents an account on the SitHub instance.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;size:255;not null" json:"-"`
	Role         string         `gorm:"size:50;default:DEVELOPER" json:"role"` // ADMIN, DEVELOPER
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

package models

import "time"

// AuditLog records one security-relevant action. Details is JSON text.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:100;index;not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	ProjectID *uint     `gorm:"index" json:"project_id"`
	IP        string    `gorm:"size:50" json:"ip"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }

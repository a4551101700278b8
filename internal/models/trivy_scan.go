package models

import "time"

// Vulnerability scan lifecycle states.
const (
	ScanStatusPending   = "PENDING"
	ScanStatusRunning   = "RUNNING"
	ScanStatusCompleted = "COMPLETED"
	ScanStatusFailed    = "FAILED"
)

// TrivyScan records one vulnerability scan of a project at a commit.
// ScanResults and SeverityCounts hold the raw and summarized trivy output
// as JSON text.
type TrivyScan struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ProjectID      uint      `gorm:"index;not null" json:"project_id"`
	CommitHash     string    `gorm:"size:100" json:"commit_hash"`
	ScanResults    string    `gorm:"type:text" json:"scan_results"`
	SeverityCounts string    `gorm:"type:text" json:"severity_counts"`
	Status         string    `gorm:"size:20;default:PENDING" json:"status"`
	ErrorMessage   string    `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (TrivyScan) TableName() string { return "trivy_scans" }

package models

import (
	"time"

	"gorm.io/gorm"
)

// Pull request lifecycle states.
const (
	PRStatusOpen   = "OPEN"
	PRStatusMerged = "MERGED"
	PRStatusClosed = "CLOSED"
)

// PullRequest is a proposed merge between two branches of a project.
type PullRequest struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ProjectID    uint           `gorm:"index;not null" json:"project_id"`
	Title        string         `gorm:"size:500;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	SourceBranch string         `gorm:"size:255;not null" json:"source_branch"`
	TargetBranch string         `gorm:"size:255;not null" json:"target_branch"`
	AuthorID     uint           `gorm:"index;not null" json:"author_id"`
	Author       *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Status       string         `gorm:"size:20;default:OPEN" json:"status"` // OPEN, MERGED, CLOSED
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PullRequest) TableName() string { return "pull_requests" }

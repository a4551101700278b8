package models

import (
	"time"

	"gorm.io/gorm"
)

// Project represents a hosted source repository.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"size:1000" json:"description"`
	RepoPath    string         `gorm:"size:500;not null" json:"repo_path"`
	IsPrivate   bool           `gorm:"default:false" json:"is_private"`
	CreatedByID uint           `gorm:"index;not null" json:"created_by_id"`
	CreatedBy   *User          `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relation counts, filled by the project service on reads.
	MemberCount      int64 `gorm:"-" json:"member_count"`
	BranchCount      int64 `gorm:"-" json:"branch_count"`
	PullRequestCount int64 `gorm:"-" json:"pull_request_count"`
}

func (Project) TableName() string { return "projects" }

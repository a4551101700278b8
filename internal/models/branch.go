package models

import (
	"time"

	"gorm.io/gorm"
)

// Branch is a named line of development within a project.
type Branch struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProjectID uint           `gorm:"uniqueIndex:idx_project_branch;not null" json:"project_id"`
	Name      string         `gorm:"uniqueIndex:idx_project_branch;size:255;not null" json:"name"`
	IsDefault bool           `gorm:"default:false" json:"is_default"`
	Protected bool           `gorm:"default:false" json:"protected"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Branch) TableName() string { return "branches" }

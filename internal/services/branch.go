package services

import (
	"errors"

	"github.com/sithub/sithub/internal/models"
	"github.com/sithub/sithub/pkg/response"
	"gorm.io/gorm"
)

type BranchService struct {
	db *gorm.DB
}

func NewBranchService(db *gorm.DB) *BranchService {
	return &BranchService{db: db}
}

type CreateBranchRequest struct {
	Name      string `json:"name" binding:"required"`
	IsDefault bool   `json:"is_default"`
	Protected bool   `json:"protected"`
}

func (s *BranchService) List(projectID uint) ([]models.Branch, error) {
	if err := s.projectExists(projectID); err != nil {
		return nil, err
	}

	var branches []models.Branch
	if err := s.db.Where("project_id = ?", projectID).
		Order("is_default DESC, name ASC").
		Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func (s *BranchService) Create(projectID uint, req *CreateBranchRequest) (*models.Branch, error) {
	if err := s.projectExists(projectID); err != nil {
		return nil, err
	}

	var existing models.Branch
	if err := s.db.Where("project_id = ? AND name = ?", projectID, req.Name).
		First(&existing).Error; err == nil {
		return nil, response.NewConflict("Branch already exists")
	}

	branch := models.Branch{
		ProjectID: projectID,
		Name:      req.Name,
		IsDefault: req.IsDefault,
		Protected: req.Protected,
	}
	if err := s.db.Create(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (s *BranchService) projectExists(projectID uint) error {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("Project not found")
		}
		return err
	}
	return nil
}

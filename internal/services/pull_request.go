package services

import (
	"errors"

	"github.com/sithub/sithub/internal/models"
	"github.com/sithub/sithub/pkg/response"
	"gorm.io/gorm"
)

type PullRequestService struct {
	db *gorm.DB
}

func NewPullRequestService(db *gorm.DB) *PullRequestService {
	return &PullRequestService{db: db}
}

type CreatePullRequestRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	SourceBranch string `json:"source_branch" binding:"required"`
	TargetBranch string `json:"target_branch" binding:"required"`
}

type UpdatePullRequestRequest struct {
	Status string `json:"status" binding:"required"` // MERGED, CLOSED
}

func (s *PullRequestService) List(projectID uint) ([]models.PullRequest, error) {
	if err := s.projectExists(projectID); err != nil {
		return nil, err
	}

	var pulls []models.PullRequest
	if err := s.db.Where("project_id = ?", projectID).
		Preload("Author").
		Order("created_at DESC").
		Find(&pulls).Error; err != nil {
		return nil, err
	}
	return pulls, nil
}

func (s *PullRequestService) Get(projectID, prID uint) (*models.PullRequest, error) {
	var pr models.PullRequest
	if err := s.db.Preload("Author").
		Where("project_id = ?", projectID).
		First(&pr, prID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Pull request not found")
		}
		return nil, err
	}
	return &pr, nil
}

// Create opens a new pull request authored by authorID. Source and target
// must be distinct.
func (s *PullRequestService) Create(projectID, authorID uint, req *CreatePullRequestRequest) (*models.PullRequest, error) {
	if req.SourceBranch == req.TargetBranch {
		return nil, response.NewBadRequest("Source and target branch must differ")
	}

	if err := s.projectExists(projectID); err != nil {
		return nil, err
	}

	pr := models.PullRequest{
		ProjectID:    projectID,
		Title:        req.Title,
		Description:  req.Description,
		SourceBranch: req.SourceBranch,
		TargetBranch: req.TargetBranch,
		AuthorID:     authorID,
		Status:       models.PRStatusOpen,
	}
	if err := s.db.Create(&pr).Error; err != nil {
		return nil, err
	}

	s.db.Preload("Author").First(&pr, pr.ID)
	return &pr, nil
}

// UpdateStatus transitions an open pull request to MERGED or CLOSED.
func (s *PullRequestService) UpdateStatus(projectID, prID uint, status string) (*models.PullRequest, error) {
	if status != models.PRStatusMerged && status != models.PRStatusClosed {
		return nil, response.NewBadRequest("Invalid status, must be MERGED or CLOSED")
	}

	pr, err := s.Get(projectID, prID)
	if err != nil {
		return nil, err
	}

	if pr.Status != models.PRStatusOpen {
		return nil, response.NewConflict("Pull request is not open")
	}

	if err := s.db.Model(pr).Update("status", status).Error; err != nil {
		return nil, err
	}
	return pr, nil
}

func (s *PullRequestService) projectExists(projectID uint) error {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("Project not found")
		}
		return err
	}
	return nil
}

package services

import (
	"errors"

	"github.com/sithub/sithub/internal/models"
	"github.com/sithub/sithub/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	RepoPath    string `json:"repo_path" binding:"required"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"is_private"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPrivate   *bool   `json:"is_private"`
}

// GetByID returns a project with its creator and relation counts, or
// not-found.
func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("CreatedBy").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Project not found")
		}
		return nil, err
	}

	s.fillCounts(&project)
	return &project, nil
}

// ListForUser returns the union of projects the user created and projects
// the user is a member of. A user who both created and is a member of the
// same project sees it once.
func (s *ProjectService) ListForUser(userID uint, skip, take int) ([]models.Project, error) {
	if take <= 0 {
		take = 10
	}
	if skip < 0 {
		skip = 0
	}

	memberProjects := s.db.Model(&models.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userID)

	var projects []models.Project
	if err := s.db.Preload("CreatedBy").
		Where("created_by_id = ? OR id IN (?)", userID, memberProjects).
		Order("created_at DESC").
		Offset(skip).Limit(take).
		Find(&projects).Error; err != nil {
		return nil, err
	}

	for i := range projects {
		s.fillCounts(&projects[i])
	}
	return projects, nil
}

// Create persists a new project owned by userID. is_private defaults to
// false when omitted.
func (s *ProjectService) Create(req *CreateProjectRequest, userID uint) (*models.Project, error) {
	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		RepoPath:    req.RepoPath,
		IsPrivate:   req.IsPrivate,
		CreatedByID: userID,
	}

	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	s.db.Preload("CreatedBy").First(&project, project.ID)
	return &project, nil
}

// Update applies exactly the fields provided.
func (s *ProjectService) Update(id uint, req *UpdateProjectRequest) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Project not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsPrivate != nil {
		updates["is_private"] = *req.IsPrivate
	}

	if len(updates) > 0 {
		if err := s.db.Model(&project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.db.Preload("CreatedBy").First(&project, id)
	s.fillCounts(&project)
	return &project, nil
}

// Delete removes a project and cascades to its members, branches, pull
// requests and scans in one transaction.
func (s *ProjectService) Delete(id uint) error {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("Project not found")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Branch{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.PullRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.TrivyScan{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}

// Members returns all memberships of a project with user details.
func (s *ProjectService) Members(projectID uint) ([]models.ProjectMember, error) {
	if err := s.ensureExists(projectID); err != nil {
		return nil, err
	}

	var members []models.ProjectMember
	if err := s.db.Where("project_id = ?", projectID).
		Preload("User").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember adds a user to a project with a project-scoped role. At most
// one membership may exist per (project, user) pair.
func (s *ProjectService) AddMember(projectID, userID uint, role string) (*models.ProjectMember, error) {
	if role != models.RoleAdmin && role != models.RoleDeveloper {
		return nil, response.NewBadRequest("Invalid role, must be ADMIN or DEVELOPER")
	}

	if err := s.ensureExists(projectID); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("User not found")
		}
		return nil, err
	}

	var existing models.ProjectMember
	if err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&existing).Error; err == nil {
		return nil, response.NewConflict("User is already a member of this project")
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}

	s.db.Preload("User").First(&member, member.ID)
	return &member, nil
}

// CanModify reports whether userID may mutate the project: the creator and
// project ADMIN members may; everyone else may not.
func (s *ProjectService) CanModify(projectID, userID uint) (bool, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, response.NewNotFound("Project not found")
		}
		return false, err
	}

	if project.CreatedByID == userID {
		return true, nil
	}

	var count int64
	err := s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ? AND role = ?", projectID, userID, models.RoleAdmin).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsParticipant reports whether userID belongs to the project: the creator
// and any member (regardless of project role) do.
func (s *ProjectService) IsParticipant(projectID, userID uint) (bool, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, response.NewNotFound("Project not found")
		}
		return false, err
	}

	if project.CreatedByID == userID {
		return true, nil
	}

	var count int64
	err := s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *ProjectService) ensureExists(projectID uint) error {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("Project not found")
		}
		return err
	}
	return nil
}

func (s *ProjectService) fillCounts(p *models.Project) {
	s.db.Model(&models.ProjectMember{}).Where("project_id = ?", p.ID).Count(&p.MemberCount)
	s.db.Model(&models.Branch{}).Where("project_id = ?", p.ID).Count(&p.BranchCount)
	s.db.Model(&models.PullRequest{}).Where("project_id = ?", p.ID).Count(&p.PullRequestCount)
}

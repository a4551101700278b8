package services

import (
	"errors"

	"github.com/sithub/sithub/internal/models"
	"github.com/sithub/sithub/pkg/response"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetByID returns a user or not-found. The password hash never serializes.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}

type UserListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Username string `form:"username"`
	Role     string `form:"role"`
}

type UserListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []models.User `json:"items"`
}

func (s *UserService) List(req *UserListRequest) (*UserListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 20
	}

	var users []models.User
	var total int64

	query := s.db.Model(&models.User{})

	if req.Username != "" {
		query = query.Where("username LIKE ?", "%"+req.Username+"%")
	}
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("id ASC").Offset(offset).Limit(req.PageSize).Find(&users).Error; err != nil {
		return nil, err
	}

	return &UserListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    users,
	}, nil
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
}

// Update applies exactly the fields provided. Role changes are restricted to
// the admin routes by the handler layer.
func (s *UserService) Update(id uint, req *UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("User not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Username != nil && *req.Username != user.Username {
		if taken, err := s.fieldTaken("username", *req.Username, id); err != nil {
			return nil, err
		} else if taken {
			return nil, response.NewConflict("Username already in use")
		}
		updates["username"] = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		if taken, err := s.fieldTaken("email", *req.Email, id); err != nil {
			return nil, err
		} else if taken {
			return nil, response.NewConflict("Email already in use")
		}
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		if *req.Role != models.RoleAdmin && *req.Role != models.RoleDeveloper {
			return nil, response.NewBadRequest("Invalid role, must be ADMIN or DEVELOPER")
		}
		updates["role"] = *req.Role
	}

	if len(updates) == 0 {
		return nil, response.NewBadRequest("No fields to update")
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.db.First(&user, id)
	return &user, nil
}

func (s *UserService) fieldTaken(column, value string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where(column+" = ? AND id != ?", value, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (s *UserService) Delete(id uint) error {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("User not found")
		}
		return err
	}
	return s.db.Delete(&user).Error
}
